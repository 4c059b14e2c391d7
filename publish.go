package thingset

import (
	"github.com/libresolar/thingset-go/text"
	"github.com/libresolar/thingset-go/wire"
)

// pubCode is the distinct function-code byte publications carry in
// place of a request-derived status: a raw byte, never OR'd with
// 0x80, per spec §6 (PUBMSG) and original_source's
// `resp[0] = TS_FUNCTION_PUBMSG`.
const pubCode byte = 0x1F

// Publish serializes the object ids registered on the channel at
// channelIndex into resp, skipping objects the current auth level
// cannot read. It returns 0 if channelIndex is out of range (resp is left
// untouched) or if the serialized payload would overflow resp (the bytes
// written before the overflow stay in resp).
func (e *Engine) Publish(channelIndex int, binary bool, resp []byte) int {
	if channelIndex < 0 || channelIndex >= len(e.channels) {
		e.log.Warnf("publish: channel index %d out of range (%d channels)", channelIndex, len(e.channels))
		return 0
	}
	ch := e.channels[channelIndex]
	e.log.Debugf("publish: channel=%q objects=%d binary=%v", ch.Name, len(ch.ObjectIDs), binary)
	return e.publishIDs(ch.ObjectIDs, binary, resp)
}

// PublishIDs is the ad-hoc variant of Publish that serializes an explicit
// id list rather than a preconfigured channel.
func (e *Engine) PublishIDs(ids []uint16, binary bool, resp []byte) int {
	return e.publishIDs(ids, binary, resp)
}

func (e *Engine) publishIDs(ids []uint16, binary bool, resp []byte) int {
	o := newOutBuf(resp)
	if binary {
		return e.publishBinary(ids, o)
	}
	return e.publishText(ids, o)
}

func (e *Engine) publishBinary(ids []uint16, o *outBuf) int {
	if !o.WriteByte(pubCode) {
		o.Reset()
		return 0
	}
	n := 0
	for _, id := range ids {
		if d := e.table.ByID(id); d != nil && d.CanRead(e.sess.level) {
			n++
		}
	}
	if !o.PutVia(func(b []byte) int { return wire.PutMapHeader(b, uint64(n)) }) {
		o.Reset()
		return 0
	}
	for _, id := range ids {
		d := e.table.ByID(id)
		if d == nil || !d.CanRead(e.sess.level) {
			continue
		}
		if !o.PutVia(func(b []byte) int { return wire.PutUint(b, uint64(d.ID)) }) {
			o.Reset()
			return 0
		}
		if !serializeBinary(o, d) {
			o.Reset()
			return 0
		}
	}
	return o.Len()
}

func (e *Engine) publishText(ids []uint16, o *outBuf) int {
	if !o.WriteByte('#') || !o.WriteByte('{') {
		o.Reset()
		return 0
	}
	first := true
	for _, id := range ids {
		d := e.table.ByID(id)
		if d == nil || !d.CanRead(e.sess.level) {
			continue
		}
		if !first && !o.WriteByte(',') {
			o.Reset()
			return 0
		}
		first = false
		if !o.AppendVia(func(b []byte) []byte { return text.AppendQuotedString(b, d.Name) }) {
			o.Reset()
			return 0
		}
		if !o.WriteByte(':') {
			o.Reset()
			return 0
		}
		if !renderText(o, d) {
			o.Reset()
			return 0
		}
	}
	if !o.WriteByte('}') {
		o.Reset()
		return 0
	}
	return o.Len()
}
