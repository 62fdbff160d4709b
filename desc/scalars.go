package desc

import (
	"github.com/arloliu/protowire/format"
	"github.com/arloliu/protowire/wire"
)

// scalarInfo describes one scalar wire type: its zero default, framing,
// whether it is an 8-byte integer, whether it may be packed, and the
// writer primitive that emits it.
type scalarInfo struct {
	defaultValue any
	wireType     format.WireType
	long         bool
	packable     bool
	write        func(w *wire.Writer, v any) error
}

// scalarTypes is the process-wide table keyed by scalar type name.
// Read-only after initialization.
var scalarTypes = map[string]scalarInfo{
	"double": {
		defaultValue: float64(0),
		wireType:     format.WireFixed64,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			f, err := asFloat64(v)
			if err != nil {
				return err
			}
			w.Double(f)

			return nil
		},
	},
	"float": {
		defaultValue: float64(0),
		wireType:     format.WireFixed32,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			f, err := asFloat64(v)
			if err != nil {
				return err
			}
			w.Float(float32(f))

			return nil
		},
	},
	"int32": {
		defaultValue: int64(0),
		wireType:     format.WireVarint,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			i, err := asInt64(v)
			if err != nil {
				return err
			}
			w.Int32(int32(i))

			return nil
		},
	},
	"uint32": {
		defaultValue: int64(0),
		wireType:     format.WireVarint,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			u, err := asUint64(v)
			if err != nil {
				return err
			}
			w.Uint32(uint32(u))

			return nil
		},
	},
	"sint32": {
		defaultValue: int64(0),
		wireType:     format.WireVarint,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			i, err := asInt64(v)
			if err != nil {
				return err
			}
			w.Sint32(int32(i))

			return nil
		},
	},
	"fixed32": {
		defaultValue: int64(0),
		wireType:     format.WireFixed32,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			u, err := asUint64(v)
			if err != nil {
				return err
			}
			w.Fixed32(uint32(u))

			return nil
		},
	},
	"sfixed32": {
		defaultValue: int64(0),
		wireType:     format.WireFixed32,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			i, err := asInt64(v)
			if err != nil {
				return err
			}
			w.Sfixed32(int32(i))

			return nil
		},
	},
	"int64": {
		defaultValue: int64(0),
		wireType:     format.WireVarint,
		long:         true,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			i, err := asInt64(v)
			if err != nil {
				return err
			}
			w.Int64(i)

			return nil
		},
	},
	"uint64": {
		defaultValue: int64(0),
		wireType:     format.WireVarint,
		long:         true,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			u, err := asUint64(v)
			if err != nil {
				return err
			}
			w.Uint64(u)

			return nil
		},
	},
	"sint64": {
		defaultValue: int64(0),
		wireType:     format.WireVarint,
		long:         true,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			i, err := asInt64(v)
			if err != nil {
				return err
			}
			w.Sint64(i)

			return nil
		},
	},
	"fixed64": {
		defaultValue: int64(0),
		wireType:     format.WireFixed64,
		long:         true,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			u, err := asUint64(v)
			if err != nil {
				return err
			}
			w.Fixed64(u)

			return nil
		},
	},
	"sfixed64": {
		defaultValue: int64(0),
		wireType:     format.WireFixed64,
		long:         true,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			i, err := asInt64(v)
			if err != nil {
				return err
			}
			w.Sfixed64(i)

			return nil
		},
	},
	"bool": {
		defaultValue: false,
		wireType:     format.WireVarint,
		packable:     true,
		write: func(w *wire.Writer, v any) error {
			b, err := asBool(v)
			if err != nil {
				return err
			}
			w.Bool(b)

			return nil
		},
	},
	"string": {
		defaultValue: "",
		wireType:     format.WireBytes,
		write: func(w *wire.Writer, v any) error {
			s, err := asString(v)
			if err != nil {
				return err
			}
			w.String(s)

			return nil
		},
	},
	"bytes": {
		defaultValue: []byte(nil),
		wireType:     format.WireBytes,
		write: func(w *wire.Writer, v any) error {
			b, err := asBytes(v)
			if err != nil {
				return err
			}
			w.Bytes(b)

			return nil
		},
	},
}

// IsScalarType reports whether name is one of the scalar wire types.
func IsScalarType(name string) bool {
	_, ok := scalarTypes[name]
	return ok
}
