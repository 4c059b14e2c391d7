package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 23, 24, 255, 256, 65535, 65536, 4294967295, 4294967296}
	for _, v := range cases {
		buf := make([]byte, 16)
		n := PutUint(buf, v)
		require.Greater(t, n, 0, "encode %d", v)

		got, m, err := Uint64(buf[:n])
		require.NoError(t, err)
		assert.Equal(t, n, m)
		assert.Equal(t, v, got)
	}
}

func TestUint16Bounds(t *testing.T) {
	buf := make([]byte, 16)
	PutUint(buf, 65535)
	v, _, err := Uint16(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), v)

	PutUint(buf, 65536)
	_, _, err = Uint16(buf)
	assert.ErrorIs(t, err, ErrRange)

	PutInt(buf, -1)
	_, _, err = Uint16(buf)
	assert.ErrorIs(t, err, ErrWrongMajorType)
}

func TestIntRoundTrip(t *testing.T) {
	cases := []int64{0, -1, -24, -25, -256, -257, 32767, -32768, 2147483647, -2147483648}
	for _, v := range cases {
		buf := make([]byte, 16)
		n := PutInt(buf, v)
		require.Greater(t, n, 0, "encode %d", v)

		got, m, err := Int64(buf[:n])
		require.NoError(t, err)
		assert.Equal(t, n, m)
		assert.Equal(t, v, got)
	}
}

func TestInt16Range(t *testing.T) {
	buf := make([]byte, 16)
	PutInt(buf, 32767)
	v, _, err := Int16(buf)
	require.NoError(t, err)
	assert.Equal(t, int16(32767), v)

	PutInt(buf, 32768)
	_, _, err = Int16(buf)
	assert.ErrorIs(t, err, ErrRange)

	PutInt(buf, -32769)
	_, _, err = Int16(buf)
	assert.ErrorIs(t, err, ErrRange)
}

func TestFloat32RoundTrip(t *testing.T) {
	buf := make([]byte, 5)
	n := PutFloat32(buf, 52.8)
	require.Equal(t, 5, n)

	got, m, err := Float32(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, m)
	assert.InDelta(t, 52.8, got, 0.0001)
}

func TestFloat32Overflow(t *testing.T) {
	buf := make([]byte, 4)
	assert.Equal(t, 0, PutFloat32(buf, 1.0))
}

func TestBoolRoundTrip(t *testing.T) {
	buf := make([]byte, 1)
	PutBool(buf, true)
	v, n, err := Bool(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, v)

	PutBool(buf, false)
	v, _, err = Bool(buf)
	require.NoError(t, err)
	assert.False(t, v)
}

func TestTextRoundTrip(t *testing.T) {
	buf := make([]byte, 32)
	n := PutText(buf, "Libre Solar")
	require.Greater(t, n, 0)

	got, m, err := Text(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, "Libre Solar", got)
}

func TestTextOverflowReturnsZero(t *testing.T) {
	buf := make([]byte, 3)
	assert.Equal(t, 0, PutText(buf, "too long for buffer"))
}

func TestArrayAndMapHeader(t *testing.T) {
	buf := make([]byte, 8)
	n := PutArrayHeader(buf, 3)
	major, count, consumed, err := NumElements(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, MajorArray, major)
	assert.Equal(t, uint64(3), count)
	assert.Equal(t, n, consumed)

	n = PutMapHeader(buf, 2)
	major, count, _, err = NumElements(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, MajorMap, major)
	assert.Equal(t, uint64(2), count)
}

func TestDecimalFractionRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	n := PutDecimalFraction(buf, -2, 1440)
	require.Greater(t, n, 0)

	exp, mantissa, consumed, err := DecimalFraction(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, n, consumed)
	assert.Equal(t, -2, exp)
	assert.Equal(t, int64(1440), mantissa)
}

func TestIsEmptyMarkers(t *testing.T) {
	buf := make([]byte, 4)
	PutNull(buf)
	assert.True(t, IsNull(buf))
	assert.False(t, IsEmptyArray(buf))

	PutArrayHeader(buf, 0)
	assert.True(t, IsEmptyArray(buf))
	assert.False(t, IsEmptyMap(buf))

	PutMapHeader(buf, 0)
	assert.True(t, IsEmptyMap(buf))
}

func TestDecodeHeadTruncated(t *testing.T) {
	_, _, err := DecodeHead(nil)
	assert.ErrorIs(t, err, ErrTruncated)

	buf := []byte{MajorUnsignedInt<<5 | 25, 0x01}
	_, _, err = DecodeHead(buf)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeHeadRejectsIndefiniteLength(t *testing.T) {
	buf := []byte{MajorArray<<5 | 31}
	_, _, err := DecodeHead(buf)
	assert.ErrorIs(t, err, ErrIndefiniteLength)
}
