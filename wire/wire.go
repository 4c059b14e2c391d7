// Package wire implements the engine's binary request/response codec: a
// self-describing, deterministic tag-length-value encoding for the scalar
// and container values that cross the wire. Every exported function is
// purely functional — a slice in, a slice out, a byte count. On the decode
// path the only allocations are the string Text returns and the error for
// a reserved additional-info value.
//
// The top three bits of the first byte of every encoded item select a major
// type; the low five bits select an inline length (0-23), a 1/2/4/8-byte
// follow-on length, or a reserved indefinite-length marker that this
// package never produces and rejects on input.
package wire

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Major type tags, carried in the top 3 bits of the lead byte.
const (
	MajorUnsignedInt byte = 0
	MajorNegativeInt byte = 1
	MajorByteString  byte = 2
	MajorTextString  byte = 3
	MajorArray       byte = 4
	MajorMap         byte = 5
	MajorTag         byte = 6
	MajorSimple      byte = 7
)

// Additional-info values under MajorSimple.
const (
	simpleFalse   byte = 20
	simpleTrue    byte = 21
	simpleNull    byte = 22
	simpleFloat32 byte = 26
	simpleFloat64 byte = 27
)

// TagDecimalFraction marks a 2-element array [exponent, mantissa]
// representing value = mantissa * 10^exponent.
const TagDecimalFraction uint64 = 4

const (
	info1Byte     byte = 24
	info2Byte     byte = 25
	info4Byte     byte = 26
	info8Byte     byte = 27
	infoReserved1 byte = 28
	infoReserved2 byte = 30
	infoIndefinite byte = 31
)

// ErrIndefiniteLength is returned when the input uses the reserved
// indefinite-length marker, which this package never produces and always
// rejects.
var ErrIndefiniteLength = errors.New("wire: indefinite-length encoding not supported")

// ErrTruncated is returned when buf does not contain enough bytes for the
// item being decoded.
var ErrTruncated = errors.New("wire: truncated input")

// ErrOverflow names the condition of buf being too small to hold an
// encoded item. The encoders in this package do not return it: they report
// that condition as a zero byte count. The error is for callers that want
// a reason.
var ErrOverflow = errors.New("wire: output buffer too small")

// ErrWrongMajorType is returned when decoding expects one major type but
// finds another.
var ErrWrongMajorType = errors.New("wire: unexpected major type")

// ErrRange is returned when a decoded numeric value does not fit the
// target width.
var ErrRange = errors.New("wire: value out of range for target type")

// Head is a decoded major-type/argument header.
type Head struct {
	Major byte
	Arg   uint64
}

// putHead writes the narrowest encoding of (major, arg) into buf, returning
// bytes written or 0 if buf is too small.
func putHead(buf []byte, major byte, arg uint64) int {
	lead := major << 5
	switch {
	case arg < uint64(info1Byte):
		if len(buf) < 1 {
			return 0
		}
		buf[0] = lead | byte(arg)
		return 1
	case arg <= 0xFF:
		if len(buf) < 2 {
			return 0
		}
		buf[0] = lead | info1Byte
		buf[1] = byte(arg)
		return 2
	case arg <= 0xFFFF:
		if len(buf) < 3 {
			return 0
		}
		buf[0] = lead | info2Byte
		binary.BigEndian.PutUint16(buf[1:3], uint16(arg))
		return 3
	case arg <= 0xFFFFFFFF:
		if len(buf) < 5 {
			return 0
		}
		buf[0] = lead | info4Byte
		binary.BigEndian.PutUint32(buf[1:5], uint32(arg))
		return 5
	default:
		if len(buf) < 9 {
			return 0
		}
		buf[0] = lead | info8Byte
		binary.BigEndian.PutUint64(buf[1:9], arg)
		return 9
	}
}

// DecodeHead decodes the major type and argument at the start of buf,
// returning the header and the number of bytes it occupies.
func DecodeHead(buf []byte) (Head, int, error) {
	if len(buf) < 1 {
		return Head{}, 0, ErrTruncated
	}
	lead := buf[0]
	major := lead >> 5
	info := lead & 0x1F

	switch {
	case info < info1Byte:
		return Head{Major: major, Arg: uint64(info)}, 1, nil
	case info == info1Byte:
		if len(buf) < 2 {
			return Head{}, 0, ErrTruncated
		}
		return Head{Major: major, Arg: uint64(buf[1])}, 2, nil
	case info == info2Byte:
		if len(buf) < 3 {
			return Head{}, 0, ErrTruncated
		}
		return Head{Major: major, Arg: uint64(binary.BigEndian.Uint16(buf[1:3]))}, 3, nil
	case info == info4Byte:
		if len(buf) < 5 {
			return Head{}, 0, ErrTruncated
		}
		return Head{Major: major, Arg: uint64(binary.BigEndian.Uint32(buf[1:5]))}, 5, nil
	case info == info8Byte:
		if len(buf) < 9 {
			return Head{}, 0, ErrTruncated
		}
		return Head{Major: major, Arg: binary.BigEndian.Uint64(buf[1:9])}, 9, nil
	case info == infoIndefinite:
		return Head{}, 0, ErrIndefiniteLength
	default: // infoReserved1..infoReserved2
		return Head{}, 0, errors.Errorf("wire: reserved additional-info value %d", info)
	}
}

// NumElements decodes an array or map header and returns the element (or
// pair) count along with the major type seen, mirroring the original
// firmware's cbor_num_elements: callers use this to learn how many values
// follow without committing to array-vs-map ahead of time.
func NumElements(buf []byte) (major byte, count uint64, consumed int, err error) {
	h, n, err := DecodeHead(buf)
	if err != nil {
		return 0, 0, 0, err
	}
	return h.Major, h.Arg, n, nil
}

// IsNull reports whether buf starts with the null simple value.
func IsNull(buf []byte) bool {
	return len(buf) >= 1 && buf[0] == MajorSimple<<5|simpleNull
}

// IsEmptyArray reports whether buf starts with a zero-length array header.
func IsEmptyArray(buf []byte) bool {
	return len(buf) >= 1 && buf[0] == MajorArray<<5|0
}

// IsEmptyMap reports whether buf starts with a zero-length map header.
func IsEmptyMap(buf []byte) bool {
	return len(buf) >= 1 && buf[0] == MajorMap<<5|0
}

// TypeMask isolates the major-type bits of a lead byte, matching the
// firmware's CBOR_TYPE_MASK.
func TypeMask(leadByte byte) byte {
	return leadByte & 0xE0
}
