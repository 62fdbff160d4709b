package protowire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/protowire/desc"
	"github.com/arloliu/protowire/errs"
	"github.com/arloliu/protowire/format"
)

const carSchemaJSON = `{
	"nested": {
		"Car": {
			"fields": {
				"model":   {"id": 1, "type": "string"},
				"wheels":  {"id": 2, "type": "int32"},
				"ratings": {"id": 3, "type": "int32", "rule": "repeated"}
			}
		}
	}
}`

func carType(t *testing.T) *desc.Message {
	t.Helper()

	root, err := FromJSON([]byte(carSchemaJSON))
	require.NoError(t, err)
	require.NoError(t, root.ResolveAll())

	car, ok := root.Lookup("Car").(*desc.Message)
	require.True(t, ok)

	return car
}

func TestMarshal(t *testing.T) {
	car := carType(t)

	data, err := Marshal(car, map[string]any{
		"model":   "ab",
		"wheels":  4,
		"ratings": []int{1, 2, 150},
	})
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x0A, 0x02, 0x61, 0x62, // model
		0x10, 0x04, // wheels
		0x1A, 0x04, 0x01, 0x02, 0x96, 0x01, // packed ratings
	}, data)
}

func TestMarshal_EmptyValue(t *testing.T) {
	car := carType(t)

	data, err := Marshal(car, map[string]any{})
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestNewWriter(t *testing.T) {
	require.Equal(t, []byte{0x96, 0x01}, NewWriter().Uint32(150).Finish())
	require.Equal(t, []byte{0x96, 0x01}, NewWriterSize(32).Uint32(150).Finish())
}

func TestEnvelope_RoundTrip(t *testing.T) {
	car := carType(t)
	value := map[string]any{
		"model":   "roadster",
		"wheels":  4,
		"ratings": []int{5, 5, 4, 5},
	}

	plain, err := Marshal(car, value)
	require.NoError(t, err)

	for _, ctype := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ctype.String(), func(t *testing.T) {
			enveloped, err := MarshalEnvelope(car, value, WithCompression(ctype))
			require.NoError(t, err)

			payload, err := UnmarshalEnvelope(enveloped)
			require.NoError(t, err)
			require.Equal(t, plain, payload)
		})
	}
}

func TestEnvelope_DefaultCompression(t *testing.T) {
	car := carType(t)

	enveloped, err := MarshalEnvelope(car, map[string]any{"wheels": 4})
	require.NoError(t, err)

	payload, err := UnmarshalEnvelope(enveloped)
	require.NoError(t, err)
	require.Equal(t, []byte{0x10, 0x04}, payload)
}

func TestEnvelope_InvalidCompressionOption(t *testing.T) {
	car := carType(t)

	_, err := MarshalEnvelope(car, map[string]any{}, WithCompression(format.CompressionType(0xE)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestUnmarshalEnvelope_Truncated(t *testing.T) {
	_, err := UnmarshalEnvelope([]byte{0x10, 0xEC, 0x01})
	require.ErrorIs(t, err, errs.ErrEnvelopeTooShort)
}
