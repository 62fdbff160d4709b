package desc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/protowire/errs"
	"github.com/arloliu/protowire/wire"
)

func TestMessage_Encode(t *testing.T) {
	_, car := carSchema(t)

	w := wire.NewWriter()
	err := car.Encode(map[string]any{
		"wheels": 4,
		"model":  "ab",
	}, w)
	require.NoError(t, err)

	// Fields are emitted in declaration (id) order regardless of map order
	require.Equal(t, []byte{0x0A, 0x02, 0x61, 0x62, 0x10, 0x04}, w.Finish())
}

func TestMessage_EncodeSkipsAbsentAndNil(t *testing.T) {
	_, car := carSchema(t)

	w := wire.NewWriter()
	require.NoError(t, car.Encode(map[string]any{"engine": nil}, w))
	require.Empty(t, w.Finish())

	w = wire.NewWriter()
	require.NoError(t, car.Encode(nil, w))
	require.Empty(t, w.Finish())
}

func TestMessage_EncodeDelimited(t *testing.T) {
	_, car := carSchema(t)

	w := wire.NewWriter()
	require.NoError(t, car.EncodeDelimited(map[string]any{"wheels": 4}, w))
	require.Equal(t, []byte{0x02, 0x10, 0x04}, w.Finish())

	// Delimited encoding composes with surrounding writes
	w = wire.NewWriter()
	w.Uint32(7)
	require.NoError(t, car.EncodeDelimited(map[string]any{"wheels": 4}, w))
	w.Uint32(9)
	require.Equal(t, []byte{0x07, 0x02, 0x10, 0x04, 0x09}, w.Finish())
}

func TestMessage_EncodeDelimitedErrorRestoresWriter(t *testing.T) {
	_, car := carSchema(t)

	w := wire.NewWriter()
	w.Uint32(7)
	err := car.EncodeDelimited(map[string]any{"wheels": "bad"}, w)
	require.ErrorIs(t, err, errs.ErrInvalidValue)

	// The failed sub-stream is discarded, prior writes survive
	require.Equal(t, []byte{0x07}, w.Finish())
}

func TestMessage_EncodeBadValueKind(t *testing.T) {
	_, car := carSchema(t)

	w := wire.NewWriter()
	err := car.Encode("not-a-map", w)
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}

func TestMessage_DuplicateField(t *testing.T) {
	m := NewMessage("M")

	a, err := NewField("a", 1, "int32")
	require.NoError(t, err)
	require.NoError(t, m.Add(a))

	dupName, err := NewField("a", 2, "int32")
	require.NoError(t, err)
	require.ErrorIs(t, m.Add(dupName), errs.ErrDuplicateName)

	dupID, err := NewField("b", 1, "int32")
	require.NoError(t, err)
	require.ErrorIs(t, m.Add(dupID), errs.ErrDuplicateFieldID)
}

func TestMessage_FieldAccessors(t *testing.T) {
	_, car := carSchema(t)

	require.NotNil(t, car.Field("wheels"))
	require.Nil(t, car.Field("missing"))
	require.Equal(t, car.Field("wheels"), car.FieldByID(2))
	require.Nil(t, car.FieldByID(99))

	var order []int32
	car.EachField(func(f *Field) { order = append(order, f.ID()) })
	require.Equal(t, []int32{1, 2, 3, 4, 5, 6, 7, 8}, order)
}

func TestMessage_OneOfLinking(t *testing.T) {
	m := NewMessage("Shape")

	circle, err := NewField("circle", 1, "int32")
	require.NoError(t, err)
	square, err := NewField("square", 2, "int32")
	require.NoError(t, err)

	// Field added before the oneof links on oneof add; field added after
	// links on field add.
	require.NoError(t, m.Add(circle))
	require.NoError(t, m.Add(NewOneOf("kind", "circle", "square")))
	require.NoError(t, m.Add(square))

	kind := m.OneOfByName("kind")
	require.NotNil(t, kind)
	require.Equal(t, kind, circle.OneOf())
	require.Equal(t, kind, square.OneOf())
	require.Len(t, kind.Fields(), 2)

	require.ErrorIs(t, m.Add(NewOneOf("kind")), errs.ErrDuplicateName)
}

func BenchmarkMessage_Encode(b *testing.B) {
	root, err := FromJSON([]byte(`{
		"nested": {
			"Car": {
				"fields": {
					"model":   {"id": 1, "type": "string"},
					"wheels":  {"id": 2, "type": "int32"},
					"ratings": {"id": 3, "type": "int32", "rule": "repeated"}
				}
			}
		}
	}`))
	if err != nil {
		b.Fatal(err)
	}
	if err := root.ResolveAll(); err != nil {
		b.Fatal(err)
	}

	car := root.Lookup("Car").(*Message)
	value := map[string]any{
		"model":   "roadster",
		"wheels":  4,
		"ratings": []int{5, 4, 5, 3, 5},
	}

	w := wire.NewWriter()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := car.Encode(value, w); err != nil {
			b.Fatal(err)
		}
		w.Finish()
	}
}

func TestMessage_NestedTypesResolve(t *testing.T) {
	root, err := FromJSON([]byte(`{
		"nested": {
			"Outer": {
				"fields": {
					"inner": {"id": 1, "type": "Inner"}
				},
				"nested": {
					"Inner": {
						"fields": {
							"x": {"id": 1, "type": "int32"}
						}
					}
				}
			}
		}
	}`))
	require.NoError(t, err)
	require.NoError(t, root.ResolveAll())

	outer := root.Lookup("Outer").(*Message)
	inner := root.Lookup("Outer.Inner").(*Message)
	require.Equal(t, Object(inner), outer.Field("inner").ResolvedType())

	w := wire.NewWriter()
	require.NoError(t, outer.Encode(map[string]any{"inner": map[string]any{"x": 150}}, w))
	require.Equal(t, []byte{0x0A, 0x03, 0x08, 0x96, 0x01}, w.Finish())
}
