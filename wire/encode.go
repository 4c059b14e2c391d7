package wire

import (
	"encoding/binary"
	"math"
)

// PutUint serializes an unsigned integer in the narrowest representation
// that fits, returning bytes written or 0 if buf is too small.
func PutUint(buf []byte, v uint64) int {
	return putHead(buf, MajorUnsignedInt, v)
}

// PutInt serializes a signed integer, using MajorNegativeInt for negative
// values (stored as -1-v per the major-type convention) and
// MajorUnsignedInt otherwise, in the narrowest representation that fits.
func PutInt(buf []byte, v int64) int {
	if v >= 0 {
		return putHead(buf, MajorUnsignedInt, uint64(v))
	}
	return putHead(buf, MajorNegativeInt, uint64(-1-v))
}

// PutBool serializes a boolean as a one-byte simple value.
func PutBool(buf []byte, v bool) int {
	if len(buf) < 1 {
		return 0
	}
	if v {
		buf[0] = MajorSimple<<5 | simpleTrue
	} else {
		buf[0] = MajorSimple<<5 | simpleFalse
	}
	return 1
}

// PutNull serializes the null simple value.
func PutNull(buf []byte) int {
	if len(buf) < 1 {
		return 0
	}
	buf[0] = MajorSimple<<5 | simpleNull
	return 1
}

// PutFloat32 always serializes v as 5 bytes: a tag byte followed by 4
// big-endian bytes, regardless of whether a shorter encoding exists.
func PutFloat32(buf []byte, v float32) int {
	if len(buf) < 5 {
		return 0
	}
	buf[0] = MajorSimple<<5 | simpleFloat32
	binary.BigEndian.PutUint32(buf[1:5], math.Float32bits(v))
	return 5
}

// PutText serializes s as a length-prefixed text string.
func PutText(buf []byte, s string) int {
	n := putHead(buf, MajorTextString, uint64(len(s)))
	if n == 0 {
		return 0
	}
	if len(buf) < n+len(s) {
		return 0
	}
	copy(buf[n:], s)
	return n + len(s)
}

// PutArrayHeader serializes an array header announcing count elements to
// follow; the elements themselves are serialized by the caller.
func PutArrayHeader(buf []byte, count uint64) int {
	return putHead(buf, MajorArray, count)
}

// PutMapHeader serializes a map header announcing count key/value pairs to
// follow.
func PutMapHeader(buf []byte, count uint64) int {
	return putHead(buf, MajorMap, count)
}

// PutDecimalFraction serializes value = mantissa * 10^exponent as the
// 2-element array form [exponent, mantissa], the transport encoding for
// integer-backed scaled quantities.
func PutDecimalFraction(buf []byte, exponent int, mantissa int64) int {
	n := PutArrayHeader(buf, 2)
	if n == 0 {
		return 0
	}
	m := PutInt(buf[n:], int64(exponent))
	if m == 0 {
		return 0
	}
	n += m
	m = PutInt(buf[n:], mantissa)
	if m == 0 {
		return 0
	}
	return n + m
}
