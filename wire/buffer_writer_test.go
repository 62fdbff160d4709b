package wire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/protowire/format"
)

func TestBufferWriter_MatchesWriter(t *testing.T) {
	bw := NewBufferWriter()
	defer bw.Release()

	w := NewWriter()

	bw.Tag(1, format.WireBytes).Bytes([]byte{0xAA, 0xBB}).
		Uint32(150).Int32(-5).Sint32(-1).Sint64(-2).
		Fixed32(1).Sfixed32(-1).Fixed64(7).Sfixed64(-7).
		Float(1.5).Double(-2.25).Bool(true).String("€uro")

	w.Tag(1, format.WireBytes).Bytes([]byte{0xAA, 0xBB}).
		Uint32(150).Int32(-5).Sint32(-1).Sint64(-2).
		Fixed32(1).Sfixed32(-1).Fixed64(7).Sfixed64(-7).
		Float(1.5).Double(-2.25).Bool(true).String("€uro")

	require.Equal(t, w.Finish(), bw.Finish())
}

func TestBufferWriter_ForkFinishReset(t *testing.T) {
	bw := NewBufferWriter()
	defer bw.Release()

	bw.Uint32(1).Uint32(2)

	bw.Fork()
	bw.Uint32(150)
	sub := bw.Finish()
	bw.Reset()

	require.Equal(t, []byte{0x96, 0x01}, sub)
	require.Equal(t, []byte{0x01, 0x02}, bw.Finish())
}

func TestBufferWriter_NestedForks(t *testing.T) {
	bw := NewBufferWriter()
	defer bw.Release()

	bw.Uint32(9)
	bw.Fork()
	bw.Uint32(1)
	bw.Fork()
	bw.Uint32(2)
	inner := bw.Finish()
	bw.Reset()
	outer := bw.Finish()
	bw.Reset()

	require.Equal(t, []byte{0x02}, inner)
	require.Equal(t, []byte{0x01}, outer)
	require.Equal(t, []byte{0x09}, bw.Finish())
}

func TestBufferWriter_ResetDiscardsForkedWrites(t *testing.T) {
	bw := NewBufferWriter()
	defer bw.Release()

	bw.Uint32(1)
	bw.Fork()
	bw.Uint32(2).Uint32(3)
	bw.Reset() // abandon the sub-stream without Finish

	require.Equal(t, []byte{0x01}, bw.Finish())
}

func TestBufferWriter_FinishEmpty(t *testing.T) {
	bw := NewBufferWriter()
	defer bw.Release()

	out := bw.Finish()
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestBufferWriter_FinishCopyIsStable(t *testing.T) {
	bw := NewBufferWriter()
	defer bw.Release()

	first := bw.Uint32(7).Finish()
	bw.Uint32(200).Uint32(200)

	// Later writes must not alias earlier Finish results
	require.Equal(t, []byte{0x07}, first)
}

func BenchmarkBufferWriter_Uint64(b *testing.B) {
	bw := NewBufferWriter()
	defer bw.Release()

	for i := 0; i < b.N; i++ {
		bw.Uint64(1 << 40)
		if bw.Len() > 1<<20 {
			bw.Finish()
		}
	}
}
