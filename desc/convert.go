package desc

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/arloliu/protowire/errs"
)

// Coercion helpers for the dynamic value model. Message values are
// map[string]any, so scalars arrive as whatever the caller (or a JSON
// decoder) produced: any Go integer kind, float64, string, bool, []byte.

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", errs.ErrInvalidValue, n)
		}

		return i, nil
	default:
		return 0, fmt.Errorf("%w: cannot use %T as integer", errs.ErrInvalidValue, v)
	}
}

func asUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case string:
		u, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an unsigned integer", errs.ErrInvalidValue, n)
		}

		return u, nil
	default:
		i, err := asInt64(v)
		if err != nil {
			return 0, err
		}

		return uint64(i), nil
	}
}

func asFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		i, err := asInt64(v)
		if err != nil {
			return 0, fmt.Errorf("%w: cannot use %T as float", errs.ErrInvalidValue, v)
		}

		return float64(i), nil
	}
}

func asBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a bool", errs.ErrInvalidValue, b)
		}

		return parsed, nil
	}

	return false, fmt.Errorf("%w: cannot use %T as bool", errs.ErrInvalidValue, v)
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("%w: cannot use %T as string", errs.ErrInvalidValue, v)
	}
}

func asBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: cannot use %T as bytes", errs.ErrInvalidValue, v)
	}
}

// asSlice normalizes any slice or array kind (except []byte) to []any.
func asSlice(v any) ([]any, error) {
	if s, ok := v.([]any); ok {
		return s, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: cannot use %T as repeated value", errs.ErrInvalidValue, v)
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, nil
}

// mapEntry is one key/value pair of a map field value, key rendered as a
// string for deterministic ordering.
type mapEntry struct {
	key string
	val any
}

// asEntries normalizes a map value to key-sorted entries. Keys are
// stringified; the key scalar writer coerces them back per the field's
// key type.
func asEntries(v any) ([]mapEntry, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("%w: cannot use %T as map value", errs.ErrInvalidValue, v)
	}

	entries := make([]mapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, mapEntry{
			key: fmt.Sprint(iter.Key().Interface()),
			val: iter.Value().Interface(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	return entries, nil
}

// maxSafeInteger is the largest integer a float64 represents exactly.
const maxSafeInteger = 1 << 53

// LongMode selects how JSONConvert renders 64-bit integers.
type LongMode uint8

const (
	// LongsString renders 64-bit integers as decimal strings.
	LongsString LongMode = iota
	// LongsNumber renders 64-bit integers as numbers, failing on values
	// beyond 2^53.
	LongsNumber
)

// ConvertOptions controls Field.JSONConvert.
type ConvertOptions struct {
	// Enums substitutes numeric enum values with their symbolic names.
	Enums bool
	// Longs selects the representation of 64-bit integer types.
	Longs LongMode
}

// unsignedLong reports whether a long scalar type is unsigned.
func unsignedLong(typeName string) bool {
	return typeName == "uint64" || typeName == "fixed64"
}

func convertLong(typeName string, v any, mode LongMode) (any, error) {
	if unsignedLong(typeName) {
		u, err := asUint64(v)
		if err != nil {
			return nil, err
		}
		if mode == LongsNumber {
			if u > maxSafeInteger {
				return nil, fmt.Errorf("%w: %d", errs.ErrLongOverflow, u)
			}

			return float64(u), nil
		}

		return strconv.FormatUint(u, 10), nil
	}

	i, err := asInt64(v)
	if err != nil {
		return nil, err
	}
	if mode == LongsNumber {
		if i > maxSafeInteger || i < -maxSafeInteger {
			return nil, fmt.Errorf("%w: %d", errs.ErrLongOverflow, i)
		}

		return float64(i), nil
	}

	return strconv.FormatInt(i, 10), nil
}
