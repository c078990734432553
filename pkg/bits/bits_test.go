package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterUnaligned(t *testing.T) {
	buf := make([]byte, 3)
	w := NewWriter(buf)
	w.WriteBits(0b101, 3)
	w.WriteBits(0, 5)
	w.WriteBits(0xFF, 8)
	w.WriteBits(0x02, 8)
	assert.Equal(t, []byte{0x05, 0xFF, 0x02}, buf)
	assert.Equal(t, 24, w.Offset())
}

func TestWriterCrossesByteBoundary(t *testing.T) {
	buf := make([]byte, 2)
	w := NewWriter(buf)
	w.WriteBits(0b1, 3)
	w.WriteBits(0b111111111, 9)
	assert.Equal(t, []byte{0b11111001, 0b00001111}, buf)
}

func TestWriterPreservesSurroundingBits(t *testing.T) {
	buf := []byte{0xFF, 0xFF}
	w := NewWriter(buf)
	w.Skip(4)
	w.WriteBits(0, 6)
	assert.Equal(t, []byte{0x0F, 0xFC}, buf)
}

func TestScannerRoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	w := NewWriter(buf)
	w.WriteBits(0b101, 3)
	w.WriteBits(0x1FF, 9)
	w.WriteBits(0xABCD&0xFFFFF, 20)

	s := NewScanner(buf)
	assert.Equal(t, uint32(0b101), s.ReadBits(3))
	assert.Equal(t, uint32(0x1FF), s.ReadBits(9))
	assert.Equal(t, uint32(0xABCD), s.ReadBits(20))
}

func TestSignExtend(t *testing.T) {
	assert.Equal(t, int32(-1), SignExtend(0xFF, 8))
	assert.Equal(t, int32(127), SignExtend(0x7F, 8))
	assert.Equal(t, int32(-128), SignExtend(0x80, 8))
	assert.Equal(t, int32(-1), SignExtend(0b1, 1))
	assert.Equal(t, int32(2), SignExtend(2, 8))
	assert.Equal(t, int32(-1), SignExtend(0xFFFFFFFF, 32))
}

func TestFromString(t *testing.T) {
	b, err := FromString("00000101 111")
	require.NoError(t, err)
	assert.Equal(t, 11, b.Len())
	assert.Equal(t, []byte{0x05, 0b11100000}, b.Bytes())

	_, err = FromString("101 00000000")
	assert.Error(t, err)
}

func TestBitsEqualClone(t *testing.T) {
	b, err := FromString("10101010 01")
	require.NoError(t, err)
	c := b.Clone()
	assert.True(t, b.Equal(c))
	c.Bytes()[0] = 0
	assert.False(t, b.Equal(c))
}
