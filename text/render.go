package text

import "strconv"

// AppendInt appends the shortest decimal form of v to dst.
func AppendInt(dst []byte, v int64) []byte {
	return strconv.AppendInt(dst, v, 10)
}

// AppendUint appends the shortest decimal form of v to dst.
func AppendUint(dst []byte, v uint64) []byte {
	return strconv.AppendUint(dst, v, 10)
}

// AppendBool appends the token "true" or "false" to dst.
func AppendBool(dst []byte, v bool) []byte {
	return strconv.AppendBool(dst, v)
}

// AppendFloat appends v rendered with decimals fractional digits; a
// decimals of 0 produces an integer-rounded form with no decimal point.
func AppendFloat(dst []byte, v float64, decimals int) []byte {
	return strconv.AppendFloat(dst, v, 'f', decimals, 64)
}

// AppendQuotedString appends s re-quoted and backslash-escaped for `"` and
// `\`.
func AppendQuotedString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			dst = append(dst, '\\')
		}
		dst = append(dst, c)
	}
	return append(dst, '"')
}

// AppendNull appends the null literal to dst.
func AppendNull(dst []byte) []byte {
	return append(dst, 'n', 'u', 'l', 'l')
}
