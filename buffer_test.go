package thingset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutBufWriteByteOverflow(t *testing.T) {
	o := newOutBuf(make([]byte, 2))
	require.True(t, o.WriteByte('a'))
	require.True(t, o.WriteByte('b'))
	assert.False(t, o.WriteByte('c'))
	assert.Equal(t, 2, o.Len())
}

func TestOutBufAppendViaDoesNotClobberOnOverflow(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF}
	o := newOutBuf(buf)
	require.True(t, o.WriteByte('x'))
	ok := o.AppendVia(func(b []byte) []byte {
		return append(b, "way too long for this buffer"...)
	})
	assert.False(t, ok)
	assert.Equal(t, 1, o.Len())
	assert.Equal(t, byte('x'), buf[0])
	assert.Equal(t, byte(0xFF), buf[1])
}

func TestOutBufPutViaCommitsOnSuccess(t *testing.T) {
	o := newOutBuf(make([]byte, 4))
	ok := o.PutVia(func(b []byte) int {
		if len(b) < 2 {
			return 0
		}
		b[0], b[1] = 1, 2
		return 2
	})
	assert.True(t, ok)
	assert.Equal(t, 2, o.Len())
}

func TestOutBufResetDiscardsPartialOutput(t *testing.T) {
	o := newOutBuf(make([]byte, 4))
	o.WriteByte('a')
	o.WriteByte('b')
	o.Reset()
	assert.Equal(t, 0, o.Len())
}
