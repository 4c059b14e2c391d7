package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeObjectWithValues(t *testing.T) {
	buf := []byte(`{"f32":52.8,"i32":50.6}`)
	toks, err := Tokenize(buf, make([]Token, 16))
	require.NoError(t, err)
	require.Len(t, toks, 6)

	assert.Equal(t, ObjectOpen, toks[0].Kind)
	assert.Equal(t, String, toks[1].Kind)
	assert.Equal(t, "f32", Unescape(buf, toks[1]))
	assert.Equal(t, Primitive, toks[2].Kind)
	assert.Equal(t, "52.8", primitiveString(buf, toks[2]))
	assert.Equal(t, String, toks[3].Kind)
	assert.Equal(t, "i32", Unescape(buf, toks[3]))
	assert.Equal(t, Primitive, toks[4].Kind)
	assert.Equal(t, ObjectClose, toks[5].Kind)
}

func TestTokenizeArray(t *testing.T) {
	buf := []byte(`["n1","n2"]`)
	toks, err := Tokenize(buf, make([]Token, 16))
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, ArrayOpen, toks[0].Kind)
	assert.Equal(t, "n1", Unescape(buf, toks[1]))
	assert.Equal(t, "n2", Unescape(buf, toks[2]))
	assert.Equal(t, ArrayClose, toks[3].Kind)
}

func TestTokenizeEscapedString(t *testing.T) {
	buf := []byte(`"a\"b\\c"`)
	toks, err := Tokenize(buf, make([]Token, 4))
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, `a"b\c`, Unescape(buf, toks[0]))
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize([]byte(`"unterminated`), make([]Token, 4))
	assert.ErrorIs(t, err, ErrUnterminated)
}

func TestTokenizeUnterminatedObject(t *testing.T) {
	_, err := Tokenize([]byte(`{"a":1`), make([]Token, 8))
	assert.ErrorIs(t, err, ErrUnterminated)
}

func TestTokenizeTooManyTokens(t *testing.T) {
	_, err := Tokenize([]byte(`["a","b","c"]`), make([]Token, 2))
	assert.ErrorIs(t, err, ErrTooManyTokens)
}

func TestTokenizeBareName(t *testing.T) {
	buf := []byte(`"dummy"`)
	toks, err := Tokenize(buf, make([]Token, 4))
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "dummy", Unescape(buf, toks[0]))
}

func TestParseNumericPrimitives(t *testing.T) {
	buf := []byte(`52.8`)
	toks, err := Tokenize(buf, make([]Token, 2))
	require.NoError(t, err)
	i, err := ParseInt64(buf, toks[0])
	require.NoError(t, err)
	assert.Equal(t, int64(52), i, "truncation toward zero")
}

func TestRenderFloatZeroDecimals(t *testing.T) {
	got := AppendFloat(nil, 52.8, 0)
	assert.Equal(t, "53", string(got))
}

func TestRenderQuotedStringEscaping(t *testing.T) {
	got := AppendQuotedString(nil, `say "hi"\now`)
	assert.Equal(t, `"say \"hi\"\\now"`, string(got))
}
