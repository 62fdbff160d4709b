package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/protowire/endian"
	"github.com/arloliu/protowire/errs"
	"github.com/arloliu/protowire/format"
)

func TestEnvelopeHeader_RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	h := NewEnvelopeHeader(format.CompressionZstd, 12345)
	buf := h.Append(nil, engine)
	require.Len(t, buf, HeaderSize)

	parsed, err := ParseEnvelopeHeader(buf, engine)
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestEnvelopeHeader_Layout(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	buf := NewEnvelopeHeader(format.CompressionNone, 1).Append(nil, engine)
	require.Equal(t, []byte{0x10, 0xEC, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00}, buf)
}

func TestParseEnvelopeHeader_Errors(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := ParseEnvelopeHeader([]byte{0x10, 0xEC}, engine)
	require.ErrorIs(t, err, errs.ErrEnvelopeTooShort)

	bad := NewEnvelopeHeader(format.CompressionNone, 0).Append(nil, engine)
	bad[1] = 0xFF
	_, err = ParseEnvelopeHeader(bad, engine)
	require.ErrorIs(t, err, errs.ErrInvalidMagic)

	badComp := NewEnvelopeHeader(format.CompressionNone, 0).Append(nil, engine)
	badComp[2] = 0x0F
	_, err = ParseEnvelopeHeader(badComp, engine)
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}
