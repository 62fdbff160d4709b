// Package errs defines the sentinel errors returned by protowire.
//
// All errors raised at package boundaries wrap one of these sentinels,
// so callers can classify failures with errors.Is:
//
//	root, err := protowire.FromJSON(data)
//	if errors.Is(err, errs.ErrUnresolvableType) {
//	    // the schema references a type that does not exist
//	}
package errs

import "errors"

// Schema construction errors.
var (
	// ErrInvalidFieldID is returned when a field is constructed with a
	// negative id.
	ErrInvalidFieldID = errors.New("invalid field id")

	// ErrInvalidFieldType is returned when a field is constructed with an
	// empty type name.
	ErrInvalidFieldType = errors.New("invalid field type")

	// ErrInvalidFieldRule is returned when a field rule is not one of
	// required, optional or repeated.
	ErrInvalidFieldRule = errors.New("invalid field rule")

	// ErrInvalidNested is returned when an object outside the closed set of
	// nestable kinds is added to a namespace.
	ErrInvalidNested = errors.New("object cannot be nested here")

	// ErrOrphanExtension is returned when a plain field without an extend
	// target is added directly to a namespace.
	ErrOrphanExtension = errors.New("field added to namespace without extend target")

	// ErrDuplicateName is returned when a child name collides with an
	// existing, non-upgradable sibling.
	ErrDuplicateName = errors.New("duplicate name in namespace")

	// ErrDuplicateFieldID is returned when a field number collides within
	// its owning type.
	ErrDuplicateFieldID = errors.New("duplicate field id")

	// ErrNotMember is returned when removing an object that is not nested
	// in the namespace.
	ErrNotMember = errors.New("object is not a member of this namespace")
)

// Resolution and encoding errors.
var (
	// ErrUnresolvableType is returned when a field's declared type cannot be
	// found by hierarchical lookup.
	ErrUnresolvableType = errors.New("unresolvable field type")

	// ErrInvalidValue is returned when a value cannot be coerced to the
	// field's scalar kind during encoding.
	ErrInvalidValue = errors.New("invalid value for field")

	// ErrInvalidEnumValue is returned when an enum value is neither a known
	// symbolic name nor a number.
	ErrInvalidEnumValue = errors.New("invalid enum value")

	// ErrLongOverflow is returned by JSONConvert when a 64-bit integer does
	// not fit a float64 without precision loss.
	ErrLongOverflow = errors.New("64-bit integer overflows JSON number")
)

// Schema JSON errors.
var (
	// ErrInvalidJSON is returned when schema JSON cannot be parsed or a
	// body is malformed: a missing body, or a field without an id or a
	// type.
	ErrInvalidJSON = errors.New("invalid schema JSON")
)

// Envelope errors.
var (
	// ErrEnvelopeTooShort is returned when envelope data is shorter than the
	// fixed header.
	ErrEnvelopeTooShort = errors.New("envelope data shorter than header")

	// ErrInvalidMagic is returned when the envelope magic number does not
	// match.
	ErrInvalidMagic = errors.New("invalid envelope magic number")

	// ErrInvalidCompression is returned when an envelope carries an unknown
	// compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
)
