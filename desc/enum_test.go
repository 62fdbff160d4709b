package desc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/protowire/errs"
)

func TestEnum_Values(t *testing.T) {
	e := NewEnum("Color")
	require.NoError(t, e.AddValue("RED", 0))
	require.NoError(t, e.AddValue("GREEN", 1))
	require.NoError(t, e.AddValue("VERDE", 1)) // alias

	n, ok := e.ValueByName("GREEN")
	require.True(t, ok)
	require.Equal(t, int32(1), n)

	// Reverse lookup keeps the first declared symbol
	name, ok := e.NameByValue(1)
	require.True(t, ok)
	require.Equal(t, "GREEN", name)

	_, ok = e.ValueByName("MAGENTA")
	require.False(t, ok)

	require.ErrorIs(t, e.AddValue("RED", 5), errs.ErrDuplicateName)
	require.Equal(t, 3, e.Len())
}

func TestEnum_Number(t *testing.T) {
	e := NewEnum("Color")
	require.NoError(t, e.AddValue("RED", 0))

	n, err := e.Number("RED")
	require.NoError(t, err)
	require.Equal(t, int32(0), n)

	n, err = e.Number(7)
	require.NoError(t, err)
	require.Equal(t, int32(7), n)

	_, err = e.Number("MAGENTA")
	require.ErrorIs(t, err, errs.ErrInvalidEnumValue)

	_, err = e.Number(3.5)
	require.NoError(t, err) // numeric kinds coerce
}
