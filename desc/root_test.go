package desc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/protowire/errs"
	"github.com/arloliu/protowire/wire"
)

func TestRoot_ResolveAll(t *testing.T) {
	root, car := carSchema(t)

	// Resolution is idempotent
	require.NoError(t, root.ResolveAll())
	require.NotNil(t, car.Field("engine").ResolvedType())
}

func TestRoot_LookupFull(t *testing.T) {
	root, _ := carSchema(t)

	car := root.Lookup("Car")
	require.Equal(t, car, root.LookupFull(".Car"))
	require.Equal(t, car, root.LookupFull("Car"))

	// Fields are indexed too
	wheels := car.(*Message).Field("wheels")
	require.Equal(t, Object(wheels), root.LookupFull(".Car.wheels"))

	require.Nil(t, root.LookupFull(".No.Such.Type"))
}

func TestRoot_LookupFullBeforeResolve(t *testing.T) {
	root := NewRoot()
	msg := NewMessage("M")
	require.NoError(t, root.Add(msg))

	// Falls back to tree lookup when the index is not built yet
	require.Equal(t, Object(msg), root.LookupFull(".M"))
}

func TestRoot_ExtensionInstall(t *testing.T) {
	root, err := FromJSON([]byte(`{
		"nested": {
			"Car": {"fields": {"wheels": {"id": 1, "type": "int32"}}},
			"plate": {"id": 100, "type": "string", "extend": ".Car"}
		}
	}`))
	require.NoError(t, err)
	require.NoError(t, root.ResolveAll())

	car := root.Lookup("Car").(*Message)
	decl := root.Get("plate").(*Field)

	exts := car.Extensions()
	require.Len(t, exts, 1)
	sister := exts[0]
	require.Equal(t, decl, sister.DeclaringField())
	require.Equal(t, sister, decl.ExtensionField())
	require.Equal(t, int32(100), sister.ID())

	// Extension values encode under the declared field number:
	// (100<<3)|2 = 802 varint-encodes as 0xA2 0x06.
	w := wire.NewWriter()
	require.NoError(t, car.Encode(map[string]any{"wheels": 4, "plate": "x"}, w))
	require.Equal(t, []byte{0x08, 0x04, 0xA2, 0x06, 0x01, 0x78}, w.Finish())
}

func TestRoot_ExtensionUnresolvableTarget(t *testing.T) {
	root, err := FromJSON([]byte(`{
		"nested": {
			"plate": {"id": 100, "type": "string", "extend": ".Missing"}
		}
	}`))
	require.NoError(t, err)

	err = root.ResolveAll()
	require.ErrorIs(t, err, errs.ErrUnresolvableType)
}

func TestRoot_ExtensionIDConflict(t *testing.T) {
	root, err := FromJSON([]byte(`{
		"nested": {
			"Car": {"fields": {"wheels": {"id": 1, "type": "int32"}}},
			"clash": {"id": 1, "type": "string", "extend": ".Car"}
		}
	}`))
	require.NoError(t, err)

	err = root.ResolveAll()
	require.ErrorIs(t, err, errs.ErrDuplicateFieldID)
}
