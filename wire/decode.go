package wire

import (
	"encoding/binary"
	"math"
)

// signedValue turns a decoded header into the signed integer it represents,
// per the major-type sign convention (negative values are stored as -1-n).
func signedValue(h Head) (int64, error) {
	switch h.Major {
	case MajorUnsignedInt:
		if h.Arg > math.MaxInt64 {
			return 0, ErrRange
		}
		return int64(h.Arg), nil
	case MajorNegativeInt:
		if h.Arg > math.MaxInt64 {
			return 0, ErrRange
		}
		return -1 - int64(h.Arg), nil
	default:
		return 0, ErrWrongMajorType
	}
}

// Uint16 decodes an unsigned integer that fits in 16 bits. It rejects
// negative values and wider encodings whose value exceeds 2^16-1.
func Uint16(buf []byte) (uint16, int, error) {
	h, n, err := DecodeHead(buf)
	if err != nil {
		return 0, 0, err
	}
	if h.Major != MajorUnsignedInt {
		return 0, 0, ErrWrongMajorType
	}
	if h.Arg > math.MaxUint16 {
		return 0, 0, ErrRange
	}
	return uint16(h.Arg), n, nil
}

// Uint32 decodes an unsigned integer that fits in 32 bits, with the same
// rejection rules as Uint16.
func Uint32(buf []byte) (uint32, int, error) {
	h, n, err := DecodeHead(buf)
	if err != nil {
		return 0, 0, err
	}
	if h.Major != MajorUnsignedInt {
		return 0, 0, ErrWrongMajorType
	}
	if h.Arg > math.MaxUint32 {
		return 0, 0, ErrRange
	}
	return uint32(h.Arg), n, nil
}

// Uint64 decodes an unsigned integer.
func Uint64(buf []byte) (uint64, int, error) {
	h, n, err := DecodeHead(buf)
	if err != nil {
		return 0, 0, err
	}
	if h.Major != MajorUnsignedInt {
		return 0, 0, ErrWrongMajorType
	}
	return h.Arg, n, nil
}

// Int16 decodes a signed integer that fits in int16's range.
func Int16(buf []byte) (int16, int, error) {
	h, n, err := DecodeHead(buf)
	if err != nil {
		return 0, 0, err
	}
	v, err := signedValue(h)
	if err != nil {
		return 0, 0, err
	}
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, 0, ErrRange
	}
	return int16(v), n, nil
}

// Int32 decodes a signed integer that fits in int32's range.
func Int32(buf []byte) (int32, int, error) {
	h, n, err := DecodeHead(buf)
	if err != nil {
		return 0, 0, err
	}
	v, err := signedValue(h)
	if err != nil {
		return 0, 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, 0, ErrRange
	}
	return int32(v), n, nil
}

// Int64 decodes a signed integer.
func Int64(buf []byte) (int64, int, error) {
	h, n, err := DecodeHead(buf)
	if err != nil {
		return 0, 0, err
	}
	v, err := signedValue(h)
	if err != nil {
		return 0, 0, err
	}
	return v, n, nil
}

// Bool decodes a boolean simple value.
func Bool(buf []byte) (bool, int, error) {
	h, n, err := DecodeHead(buf)
	if err != nil {
		return false, 0, err
	}
	if h.Major != MajorSimple {
		return false, 0, ErrWrongMajorType
	}
	switch h.Arg {
	case uint64(simpleTrue):
		return true, n, nil
	case uint64(simpleFalse):
		return false, n, nil
	default:
		return false, 0, ErrWrongMajorType
	}
}

// Float32 decodes a float32 encoded by PutFloat32 (tag byte + 4 big-endian
// bytes). Other simple-value widths are rejected: this package only ever
// produces the 5-byte form, and the engine never needs to accept a wider
// float from a peer.
func Float32(buf []byte) (float32, int, error) {
	if len(buf) < 1 {
		return 0, 0, ErrTruncated
	}
	if buf[0] != MajorSimple<<5|simpleFloat32 {
		return 0, 0, ErrWrongMajorType
	}
	if len(buf) < 5 {
		return 0, 0, ErrTruncated
	}
	return math.Float32frombits(binary.BigEndian.Uint32(buf[1:5])), 5, nil
}

// Text decodes a length-prefixed text string.
func Text(buf []byte) (string, int, error) {
	h, n, err := DecodeHead(buf)
	if err != nil {
		return "", 0, err
	}
	if h.Major != MajorTextString {
		return "", 0, ErrWrongMajorType
	}
	end := n + int(h.Arg)
	if uint64(end-n) != h.Arg || len(buf) < end {
		return "", 0, ErrTruncated
	}
	return string(buf[n:end]), end, nil
}

// DecimalFraction decodes the 2-element array form [exponent, mantissa]
// representing value = mantissa * 10^exponent.
func DecimalFraction(buf []byte) (exponent int, mantissa int64, consumed int, err error) {
	h, n, err := DecodeHead(buf)
	if err != nil {
		return 0, 0, 0, err
	}
	if h.Major != MajorArray || h.Arg != 2 {
		return 0, 0, 0, ErrWrongMajorType
	}
	pos := n
	exp32, m, err := Int32(buf[pos:])
	if err != nil {
		return 0, 0, 0, err
	}
	pos += m
	mant, m, err := Int64(buf[pos:])
	if err != nil {
		return 0, 0, 0, err
	}
	pos += m
	return int(exp32), mant, pos, nil
}
