package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte{1, 2, 3})
	require.Equal(t, 3, bb.Len())
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 16)
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)

	// Extend within capacity succeeds
	require.True(t, bb.Extend(4))
	require.Equal(t, 4, bb.Len())

	// Extend beyond capacity fails, ExtendOrGrow succeeds
	require.False(t, bb.Extend(1024))
	bb.ExtendOrGrow(1024)
	require.Equal(t, 4+1024, bb.Len())
}

func TestByteBuffer_Truncate(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{1, 2, 3, 4})

	bb.Truncate(2)
	require.Equal(t, []byte{1, 2}, bb.Bytes())

	require.Panics(t, func() { bb.Truncate(3) })
	require.Panics(t, func() { bb.Truncate(-1) })
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.Grow(8192)
	require.GreaterOrEqual(t, bb.Cap(), 8192)

	// Growing within capacity is a no-op
	capBefore := bb.Cap()
	bb.Grow(1)
	require.Equal(t, capBefore, bb.Cap())
}

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte{1, 2, 3})
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len())

	// Oversized buffers are discarded, nil is tolerated
	big := NewByteBuffer(128)
	p.Put(big)
	p.Put(nil)
}

func TestDefaultWirePool(t *testing.T) {
	bb := GetWireBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	PutWireBuffer(bb)
}
