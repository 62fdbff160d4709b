package desc

import (
	"fmt"

	"github.com/arloliu/protowire/errs"
	"github.com/arloliu/protowire/format"
	"github.com/arloliu/protowire/wire"
)

// Field rules.
const (
	RuleOptional = "optional"
	RuleRequired = "required"
	RuleRepeated = "repeated"
)

// encodeFn emits one present field value. Built once during Resolve and
// cached, so the per-value dispatch is a single indirect call.
type encodeFn func(f *Field, v any, w *wire.Writer) error

// Field describes a single message field: its id, symbolic type, rule
// and options. After Resolve it additionally carries the bound type
// reference, the computed default value and its encoder.
type Field struct {
	object

	id       int32
	typeName string
	rule     string
	extend   string
	keyType  string
	isMap    bool

	// Post-resolution state. resolvedType is a weak reference into a
	// possibly distant subtree; it never implies ownership.
	resolvedType Object
	typeDefault  any
	defaultValue any
	wireType     format.WireType
	long         bool
	packable     bool
	enc          encodeFn

	// Cross-links installed by OneOf membership and extension setup.
	partOf         *OneOf
	declaringField *Field
	extensionField *Field
}

var _ Object = (*Field)(nil)

// NewField creates a field descriptor.
//
// Parameters:
//   - name: Field name, unique within the owning type
//   - id: Non-negative field number, unique within the owning type
//   - typeName: Scalar keyword or dotted type reference
//
// Returns:
//   - *Field: The created field
//   - error: ErrInvalidFieldID or ErrInvalidFieldType on bad arguments
func NewField(name string, id int32, typeName string) (*Field, error) {
	if id < 0 {
		return nil, fmt.Errorf("%w: %s has id %d", errs.ErrInvalidFieldID, name, id)
	}
	if typeName == "" {
		return nil, fmt.Errorf("%w: %s has empty type", errs.ErrInvalidFieldType, name)
	}

	return &Field{
		object:   object{name: name},
		id:       id,
		typeName: typeName,
	}, nil
}

// ID returns the field number.
func (f *Field) ID() int32 {
	return f.id
}

// TypeName returns the symbolic type reference.
func (f *Field) TypeName() string {
	return f.typeName
}

// SetRule sets the field rule; the empty string means optional.
func (f *Field) SetRule(rule string) error {
	switch rule {
	case "", RuleOptional, RuleRequired, RuleRepeated:
		f.rule = rule
		return nil
	default:
		return fmt.Errorf("%w: %q", errs.ErrInvalidFieldRule, rule)
	}
}

// SetExtend declares the dotted path of the type this field extends.
func (f *Field) SetExtend(path string) {
	f.extend = path
}

// Extend returns the extension target path, or the empty string.
func (f *Field) Extend() string {
	return f.extend
}

// SetKeyType turns the field into a map field with the given scalar key
// type.
func (f *Field) SetKeyType(keyType string) error {
	switch keyType {
	case "double", "float", "bytes":
		return fmt.Errorf("%w: map key type %q", errs.ErrInvalidFieldType, keyType)
	}
	if _, ok := scalarTypes[keyType]; !ok {
		return fmt.Errorf("%w: map key type %q", errs.ErrInvalidFieldType, keyType)
	}
	f.keyType = keyType
	f.isMap = true

	return nil
}

// Required reports whether the rule is required.
func (f *Field) Required() bool {
	return f.rule == RuleRequired
}

// Optional reports whether the field is optional (the default rule).
func (f *Field) Optional() bool {
	return !f.Required() && !f.Repeated()
}

// Repeated reports whether the rule is repeated.
func (f *Field) Repeated() bool {
	return f.rule == RuleRepeated
}

// Map reports whether this is a map field.
func (f *Field) Map() bool {
	return f.isMap
}

// Packed reports whether a repeated packable field uses packed encoding.
// Packed is the default; the packed=false option opts out.
func (f *Field) Packed() bool {
	if !f.Repeated() || !f.packable {
		return false
	}
	if v, ok := f.options["packed"]; ok {
		if b, err := asBool(v); err == nil {
			return b
		}
	}

	return true
}

// ResolvedType returns the bound Message or Enum after resolution, or
// nil for scalar fields.
func (f *Field) ResolvedType() Object {
	return f.resolvedType
}

// DefaultValue returns the computed default after resolution: an empty
// map for map fields, an empty slice for repeated fields, the default
// option when present, otherwise the type's zero default.
func (f *Field) DefaultValue() any {
	return f.defaultValue
}

// OneOf returns the containing oneof, if any.
func (f *Field) OneOf() *OneOf {
	return f.partOf
}

// DeclaringField returns, on an installed extension field, the original
// declaration it was created from.
func (f *Field) DeclaringField() *Field {
	return f.declaringField
}

// ExtensionField returns, on an extension declaration, the sister field
// installed into the extended type.
func (f *Field) ExtensionField() *Field {
	return f.extensionField
}

// Resolve binds the symbolic type reference, computes the default value
// and builds the cached encoder. Resolving twice is a no-op.
func (f *Field) Resolve() error {
	if f.resolved {
		return nil
	}

	if info, ok := scalarTypes[f.typeName]; ok {
		f.resolvedType = nil
		f.typeDefault = info.defaultValue
		f.wireType = info.wireType
		f.long = info.long
		f.packable = info.packable
	} else {
		parent, ok := f.parent.(container)
		if !ok {
			return fmt.Errorf("%w: %s of detached field %s", errs.ErrUnresolvableType, f.typeName, f.name)
		}
		switch found := parent.ns().Lookup(f.typeName).(type) {
		case *Message:
			f.resolvedType = found
			f.typeDefault = nil
			f.wireType = format.WireBytes
			f.packable = false
		case *Enum:
			f.resolvedType = found
			f.typeDefault = int64(0)
			f.wireType = format.WireVarint
			f.packable = true
		default:
			return fmt.Errorf("%w: %s of field %s", errs.ErrUnresolvableType, f.typeName, FullName(f))
		}
	}

	switch {
	case f.isMap:
		f.defaultValue = map[string]any{}
	case f.Repeated():
		f.defaultValue = []any{}
	default:
		if d, ok := f.options["default"]; ok {
			f.defaultValue = d
		} else {
			f.defaultValue = f.typeDefault
		}
	}

	f.enc = buildEncoder(f)

	return f.object.Resolve()
}

// Encode emits the field for a present value. Absent optional fields are
// the caller's concern; Encode does no presence check. An empty packed
// sequence or an empty map emits nothing.
func (f *Field) Encode(value any, w *wire.Writer) error {
	if !f.resolved {
		if err := f.Resolve(); err != nil {
			return err
		}
	}
	if err := f.enc(f, value, w); err != nil {
		return fmt.Errorf("field %s: %w", FullName(f), err)
	}

	return nil
}

// writeScalar emits one bare value (no tag) for a scalar or enum field.
func (f *Field) writeScalar(v any, w *wire.Writer) error {
	if enum, ok := f.resolvedType.(*Enum); ok {
		num, err := enum.Number(v)
		if err != nil {
			return err
		}
		w.Uint32(uint32(num))

		return nil
	}

	return scalarTypes[f.typeName].write(w, v)
}

// buildEncoder selects the encoder variant for a resolved field. The
// dispatch happens exactly once per field.
func buildEncoder(f *Field) encodeFn {
	switch {
	case f.isMap:
		return encodeMap
	case f.Repeated():
		if _, isMsg := f.resolvedType.(*Message); isMsg {
			return encodeRepeatedMessage
		}
		if f.packable && f.Packed() {
			return encodePacked
		}

		return encodeRepeatedScalar
	default:
		if _, isMsg := f.resolvedType.(*Message); isMsg {
			return encodeMessageField
		}

		return encodeScalarField
	}
}

func encodeScalarField(f *Field, v any, w *wire.Writer) error {
	w.Tag(f.id, f.wireType)
	return f.writeScalar(v, w)
}

func encodeMessageField(f *Field, v any, w *wire.Writer) error {
	msg := f.resolvedType.(*Message)
	w.Tag(f.id, format.WireBytes)

	return msg.EncodeDelimited(v, w)
}

// encodePacked emits all elements as one length-delimited block. An
// empty sequence emits nothing at all.
func encodePacked(f *Field, v any, w *wire.Writer) error {
	elems, err := asSlice(v)
	if err != nil {
		return err
	}

	w.Fork()
	for _, elem := range elems {
		if err := f.writeScalar(elem, w); err != nil {
			w.Reset()
			return err
		}
	}
	block := w.Finish()
	w.Reset()

	if len(block) > 0 {
		w.Tag(f.id, format.WireBytes).Bytes(block)
	}

	return nil
}

func encodeRepeatedScalar(f *Field, v any, w *wire.Writer) error {
	elems, err := asSlice(v)
	if err != nil {
		return err
	}
	for _, elem := range elems {
		w.Tag(f.id, f.wireType)
		if err := f.writeScalar(elem, w); err != nil {
			return err
		}
	}

	return nil
}

func encodeRepeatedMessage(f *Field, v any, w *wire.Writer) error {
	msg := f.resolvedType.(*Message)
	elems, err := asSlice(v)
	if err != nil {
		return err
	}
	for _, elem := range elems {
		w.Tag(f.id, format.WireBytes)
		if err := msg.EncodeDelimited(elem, w); err != nil {
			return err
		}
	}

	return nil
}

// encodeMap emits one length-delimited entry per key: field 1 holds the
// key, field 2 the value. Entries are emitted in sorted key order so the
// output is deterministic.
func encodeMap(f *Field, v any, w *wire.Writer) error {
	entries, err := asEntries(v)
	if err != nil {
		return err
	}
	keyInfo := scalarTypes[f.keyType]

	for _, entry := range entries {
		w.Tag(f.id, format.WireBytes)
		w.Fork()

		w.Tag(1, keyInfo.wireType)
		if err := keyInfo.write(w, entry.key); err != nil {
			w.Reset()
			return err
		}

		if msg, ok := f.resolvedType.(*Message); ok {
			w.Tag(2, format.WireBytes)
			if err := msg.EncodeDelimited(entry.val, w); err != nil {
				w.Reset()
				return err
			}
		} else {
			w.Tag(2, f.wireType)
			if err := f.writeScalar(entry.val, w); err != nil {
				w.Reset()
				return err
			}
		}

		body := w.Finish()
		w.Reset()
		w.Bytes(body)
	}

	return nil
}

// JSONConvert converts an in-memory value to its JSON-safe form per the
// options: enum numbers become symbolic names, 64-bit integers become
// decimal strings or checked numbers, repeated and map values convert
// elementwise.
func (f *Field) JSONConvert(value any, opts ConvertOptions) (any, error) {
	if !f.resolved {
		if err := f.Resolve(); err != nil {
			return nil, err
		}
	}

	switch {
	case f.isMap:
		entries, err := asEntries(value)
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(entries))
		for _, entry := range entries {
			conv, err := f.convertSingle(entry.val, opts)
			if err != nil {
				return nil, err
			}
			out[entry.key] = conv
		}

		return out, nil
	case f.Repeated():
		elems, err := asSlice(value)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(elems))
		for i, elem := range elems {
			conv, err := f.convertSingle(elem, opts)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}

		return out, nil
	default:
		return f.convertSingle(value, opts)
	}
}

func (f *Field) convertSingle(value any, opts ConvertOptions) (any, error) {
	if enum, ok := f.resolvedType.(*Enum); ok && opts.Enums {
		if s, isStr := value.(string); isStr {
			return s, nil
		}
		num, err := enum.Number(value)
		if err != nil {
			return nil, err
		}
		if name, ok := enum.NameByValue(num); ok {
			return name, nil
		}

		return num, nil
	}

	if f.long {
		return convertLong(f.typeName, value, opts.Longs)
	}

	return value, nil
}
