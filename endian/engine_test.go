package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := make([]byte, 4)
	engine.PutUint32(buf, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)

	appended := engine.AppendUint16(nil, 0xEC10)
	require.Equal(t, []byte{0x10, 0xEC}, appended)
}

func TestBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()

	buf := make([]byte, 4)
	engine.PutUint32(buf, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
}

func TestEngineRoundTrip(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		buf := engine.AppendUint64(nil, 0xDEADBEEFCAFEF00D)
		require.Len(t, buf, 8)
		require.Equal(t, uint64(0xDEADBEEFCAFEF00D), engine.Uint64(buf))
	}
}
