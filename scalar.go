package thingset

import (
	"math"

	"github.com/libresolar/thingset-go/text"
	"github.com/libresolar/thingset-go/wire"
)

// serializeBinary appends d's current value to o in binary form. It
// reports false on response overflow.
func serializeBinary(o *outBuf, d *Descriptor) bool {
	switch v := d.Value.(type) {
	case BoolSlot:
		return o.PutVia(func(b []byte) int { return wire.PutBool(b, *v.Ptr) })
	case Uint16Slot:
		return o.PutVia(func(b []byte) int { return wire.PutUint(b, uint64(*v.Ptr)) })
	case Int16Slot:
		return o.PutVia(func(b []byte) int { return wire.PutInt(b, int64(*v.Ptr)) })
	case Uint32Slot:
		return o.PutVia(func(b []byte) int { return wire.PutUint(b, uint64(*v.Ptr)) })
	case Int32Slot:
		return o.PutVia(func(b []byte) int { return wire.PutInt(b, int64(*v.Ptr)) })
	case Uint64Slot:
		return o.PutVia(func(b []byte) int { return wire.PutUint(b, *v.Ptr) })
	case Int64Slot:
		return o.PutVia(func(b []byte) int { return wire.PutInt(b, *v.Ptr) })
	case Float32Slot:
		return o.PutVia(func(b []byte) int { return wire.PutFloat32(b, *v.Ptr) })
	case TextSlot:
		return o.PutVia(func(b []byte) int { return wire.PutText(b, *v.Ptr) })
	case DecimalSlot:
		return o.PutVia(func(b []byte) int { return wire.PutDecimalFraction(b, d.Detail, *v.Ptr) })
	case Int32ArraySlot:
		n := *v.Len
		if !o.PutVia(func(b []byte) int { return wire.PutArrayHeader(b, uint64(n)) }) {
			return false
		}
		for i := 0; i < n; i++ {
			if !o.PutVia(func(b []byte) int { return wire.PutInt(b, int64(v.Values[i])) }) {
				return false
			}
		}
		return true
	case Float32ArraySlot:
		n := *v.Len
		if !o.PutVia(func(b []byte) int { return wire.PutArrayHeader(b, uint64(n)) }) {
			return false
		}
		for i := 0; i < n; i++ {
			if !o.PutVia(func(b []byte) int { return wire.PutFloat32(b, v.Values[i]) }) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// deserializeBinary parses a value out of buf into d's slot, returning
// bytes consumed or an error classifying the failure.
func deserializeBinary(buf []byte, d *Descriptor) (int, error) {
	switch v := d.Value.(type) {
	case BoolSlot:
		val, n, err := wire.Bool(buf)
		if err != nil {
			return 0, classifyWireErr(err)
		}
		*v.Ptr = val
		return n, nil
	case Uint16Slot:
		val, n, err := wire.Uint16(buf)
		if err != nil {
			return 0, classifyWireErr(err)
		}
		*v.Ptr = val
		return n, nil
	case Int16Slot:
		val, n, err := wire.Int16(buf)
		if err != nil {
			return 0, classifyWireErr(err)
		}
		*v.Ptr = val
		return n, nil
	case Uint32Slot:
		val, n, err := wire.Uint32(buf)
		if err != nil {
			return 0, classifyWireErr(err)
		}
		*v.Ptr = val
		return n, nil
	case Int32Slot:
		val, n, err := wire.Int32(buf)
		if err != nil {
			return 0, classifyWireErr(err)
		}
		*v.Ptr = val
		return n, nil
	case Uint64Slot:
		val, n, err := wire.Uint64(buf)
		if err != nil {
			return 0, classifyWireErr(err)
		}
		*v.Ptr = val
		return n, nil
	case Int64Slot:
		val, n, err := wire.Int64(buf)
		if err != nil {
			return 0, classifyWireErr(err)
		}
		*v.Ptr = val
		return n, nil
	case Float32Slot:
		val, n, err := wire.Float32(buf)
		if err != nil {
			return 0, classifyWireErr(err)
		}
		*v.Ptr = val
		return n, nil
	case TextSlot:
		val, n, err := wire.Text(buf)
		if err != nil {
			return 0, classifyWireErr(err)
		}
		if len(val) > v.Capacity {
			return 0, ErrInvalidValue
		}
		*v.Ptr = val
		return n, nil
	case Int32ArraySlot:
		return deserializeInt32Array(buf, v)
	case Float32ArraySlot:
		return deserializeFloat32Array(buf, v)
	default:
		return 0, ErrWrongType
	}
}

func deserializeInt32Array(buf []byte, v Int32ArraySlot) (int, error) {
	_, count, n, err := wire.NumElements(buf)
	if err != nil {
		return 0, classifyWireErr(err)
	}
	if int(count) > len(v.Values) {
		return 0, ErrInvalidValue
	}
	pos := n
	for i := uint64(0); i < count; i++ {
		val, m, err := wire.Int32(buf[pos:])
		if err != nil {
			return 0, classifyWireErr(err)
		}
		v.Values[i] = val
		pos += m
	}
	*v.Len = int(count)
	return pos, nil
}

func deserializeFloat32Array(buf []byte, v Float32ArraySlot) (int, error) {
	_, count, n, err := wire.NumElements(buf)
	if err != nil {
		return 0, classifyWireErr(err)
	}
	if int(count) > len(v.Values) {
		return 0, ErrInvalidValue
	}
	pos := n
	for i := uint64(0); i < count; i++ {
		val, m, err := wire.Float32(buf[pos:])
		if err != nil {
			return 0, classifyWireErr(err)
		}
		v.Values[i] = val
		pos += m
	}
	*v.Len = int(count)
	return pos, nil
}

// classifyWireErr maps a low-level wire decode error onto the engine's
// status-bearing error kinds.
func classifyWireErr(err error) error {
	switch err {
	case wire.ErrWrongMajorType:
		return ErrWrongType
	case wire.ErrRange:
		return ErrInvalidValue
	default:
		return ErrWrongFormat
	}
}

// renderText appends d's current value to o in text form.
func renderText(o *outBuf, d *Descriptor) bool {
	switch v := d.Value.(type) {
	case BoolSlot:
		return o.AppendVia(func(b []byte) []byte { return text.AppendBool(b, *v.Ptr) })
	case Uint16Slot:
		return o.AppendVia(func(b []byte) []byte { return text.AppendUint(b, uint64(*v.Ptr)) })
	case Int16Slot:
		return o.AppendVia(func(b []byte) []byte { return text.AppendInt(b, int64(*v.Ptr)) })
	case Uint32Slot:
		return o.AppendVia(func(b []byte) []byte { return text.AppendUint(b, uint64(*v.Ptr)) })
	case Int32Slot:
		return o.AppendVia(func(b []byte) []byte { return text.AppendInt(b, int64(*v.Ptr)) })
	case Uint64Slot:
		return o.AppendVia(func(b []byte) []byte { return text.AppendUint(b, *v.Ptr) })
	case Int64Slot:
		return o.AppendVia(func(b []byte) []byte { return text.AppendInt(b, *v.Ptr) })
	case Float32Slot:
		return o.AppendVia(func(b []byte) []byte { return text.AppendFloat(b, float64(*v.Ptr), d.Detail) })
	case TextSlot:
		return o.AppendVia(func(b []byte) []byte { return text.AppendQuotedString(b, *v.Ptr) })
	case DecimalSlot:
		scaled := float64(*v.Ptr) * math.Pow(10, float64(d.Detail))
		return o.AppendVia(func(b []byte) []byte { return text.AppendFloat(b, scaled, decimalRenderDigits(d.Detail)) })
	case Int32ArraySlot:
		return renderInt32ArrayText(o, v)
	case Float32ArraySlot:
		return renderFloat32ArrayText(o, v, d.Detail)
	default:
		return false
	}
}

// decimalRenderDigits picks a sensible number of fractional digits for
// rendering a decimal-fraction value in text: enough to show the
// exponent's implied precision, never negative.
func decimalRenderDigits(exponent int) int {
	if exponent >= 0 {
		return 0
	}
	return -exponent
}

func renderInt32ArrayText(o *outBuf, v Int32ArraySlot) bool {
	if !o.WriteByte('[') {
		return false
	}
	for i := 0; i < *v.Len; i++ {
		if i > 0 && !o.WriteByte(',') {
			return false
		}
		val := v.Values[i]
		if !o.AppendVia(func(b []byte) []byte { return text.AppendInt(b, int64(val)) }) {
			return false
		}
	}
	return o.WriteByte(']')
}

func renderFloat32ArrayText(o *outBuf, v Float32ArraySlot, decimals int) bool {
	if !o.WriteByte('[') {
		return false
	}
	for i := 0; i < *v.Len; i++ {
		if i > 0 && !o.WriteByte(',') {
			return false
		}
		val := v.Values[i]
		if !o.AppendVia(func(b []byte) []byte { return text.AppendFloat(b, float64(val), decimals) }) {
			return false
		}
	}
	return o.WriteByte(']')
}

// parseText parses a single text token (or, for array slots, a run of
// tokens starting at toks[idx]) into d's slot, returning the number of
// tokens consumed and an error classifying any failure.
func parseText(buf []byte, toks []text.Token, idx int, d *Descriptor) (int, error) {
	switch d.Value.(type) {
	case BoolSlot, Uint16Slot, Int16Slot, Uint32Slot, Int32Slot, Uint64Slot, Int64Slot, Float32Slot:
		if toks[idx].Kind != text.Primitive {
			return 0, ErrWrongType
		}
	}
	switch v := d.Value.(type) {
	case BoolSlot:
		b, err := text.ParseBool(buf, toks[idx])
		if err != nil {
			return 0, ErrWrongType
		}
		*v.Ptr = b
		return 1, nil
	case Uint16Slot:
		n, err := text.ParseUint64(buf, toks[idx])
		if err != nil {
			return 0, ErrWrongType
		}
		if n > math.MaxUint16 {
			return 0, ErrInvalidValue
		}
		*v.Ptr = uint16(n)
		return 1, nil
	case Int16Slot:
		n, err := text.ParseInt64(buf, toks[idx])
		if err != nil {
			return 0, ErrWrongType
		}
		if n < math.MinInt16 || n > math.MaxInt16 {
			return 0, ErrInvalidValue
		}
		*v.Ptr = int16(n)
		return 1, nil
	case Uint32Slot:
		n, err := text.ParseUint64(buf, toks[idx])
		if err != nil {
			return 0, ErrWrongType
		}
		if n > math.MaxUint32 {
			return 0, ErrInvalidValue
		}
		*v.Ptr = uint32(n)
		return 1, nil
	case Int32Slot:
		n, err := text.ParseInt64(buf, toks[idx])
		if err != nil {
			return 0, ErrWrongType
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, ErrInvalidValue
		}
		*v.Ptr = int32(n)
		return 1, nil
	case Uint64Slot:
		n, err := text.ParseUint64(buf, toks[idx])
		if err != nil {
			return 0, ErrWrongType
		}
		*v.Ptr = n
		return 1, nil
	case Int64Slot:
		n, err := text.ParseInt64(buf, toks[idx])
		if err != nil {
			return 0, ErrWrongType
		}
		*v.Ptr = n
		return 1, nil
	case Float32Slot:
		f, err := text.ParseFloat64(buf, toks[idx])
		if err != nil {
			return 0, ErrWrongType
		}
		*v.Ptr = float32(f)
		return 1, nil
	case TextSlot:
		if toks[idx].Kind != text.String {
			return 0, ErrWrongType
		}
		s := text.Unescape(buf, toks[idx])
		if len(s) > v.Capacity {
			return 0, ErrInvalidValue
		}
		*v.Ptr = s
		return 1, nil
	case Int32ArraySlot:
		return parseInt32ArrayText(buf, toks, idx, v)
	case Float32ArraySlot:
		return parseFloat32ArrayText(buf, toks, idx, v)
	default:
		return 0, ErrWrongType
	}
}

func parseInt32ArrayText(buf []byte, toks []text.Token, idx int, v Int32ArraySlot) (int, error) {
	if toks[idx].Kind != text.ArrayOpen {
		return 0, ErrWrongType
	}
	i := idx + 1
	count := 0
	for toks[i].Kind != text.ArrayClose {
		if count >= len(v.Values) {
			return 0, ErrInvalidValue
		}
		n, err := text.ParseInt64(buf, toks[i])
		if err != nil {
			return 0, ErrWrongType
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, ErrInvalidValue
		}
		v.Values[count] = int32(n)
		count++
		i++
	}
	*v.Len = count
	return i - idx + 1, nil
}

func parseFloat32ArrayText(buf []byte, toks []text.Token, idx int, v Float32ArraySlot) (int, error) {
	if toks[idx].Kind != text.ArrayOpen {
		return 0, ErrWrongType
	}
	i := idx + 1
	count := 0
	for toks[i].Kind != text.ArrayClose {
		if count >= len(v.Values) {
			return 0, ErrInvalidValue
		}
		f, err := text.ParseFloat64(buf, toks[i])
		if err != nil {
			return 0, ErrWrongType
		}
		v.Values[count] = float32(f)
		count++
		i++
	}
	*v.Len = count
	return i - idx + 1, nil
}
