package text

import (
	"strconv"

	"github.com/pkg/errors"
)

// ErrNotABool, ErrNotANumber classify primitive-token conversion failures.
var (
	ErrNotABool   = errors.New("text: primitive is not true/false")
	ErrNotANumber = errors.New("text: primitive is not a number")
)

func primitiveString(buf []byte, tok Token) string {
	return string(buf[tok.Start:tok.End])
}

// ParseBool interprets a Primitive token as a boolean literal.
func ParseBool(buf []byte, tok Token) (bool, error) {
	switch primitiveString(buf, tok) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, ErrNotABool
	}
}

// IsNull reports whether a Primitive token is the null literal.
func IsNull(buf []byte, tok Token) bool {
	return primitiveString(buf, tok) == "null"
}

// ParseInt64 interprets a Primitive token as an integer, truncating toward
// zero if the literal contains a fractional part (the text write path
// accepts a float literal against an integer-typed object and truncates).
func ParseInt64(buf []byte, tok Token) (int64, error) {
	s := primitiveString(buf, tok)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	return int64(f), nil
}

// ParseUint64 interprets a Primitive token as an unsigned integer, with the
// same float-truncation fallback as ParseInt64.
func ParseUint64(buf []byte, tok Token) (uint64, error) {
	s := primitiveString(buf, tok)
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, ErrNotANumber
	}
	return uint64(f), nil
}

// ParseFloat64 interprets a Primitive token as a floating-point number;
// bare integer literals are accepted too.
func ParseFloat64(buf []byte, tok Token) (float64, error) {
	f, err := strconv.ParseFloat(primitiveString(buf, tok), 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	return f, nil
}
