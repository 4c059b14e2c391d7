package thingset

import "github.com/libresolar/thingset-go/wire"

// binaryCategories is the set of category bytes the binary classifier
// accepts: the seven contiguous wire categories plus the synthetic
// CategoryPub byte Engine.Process also lets through; any other value
// in 0x00..CategoryExec is unknown-function.
var binaryCategories = map[byte]Category{
	byte(CategoryInfo):   CategoryInfo,
	byte(CategoryConf):   CategoryConf,
	byte(CategoryInput):  CategoryInput,
	byte(CategoryOutput): CategoryOutput,
	byte(CategoryRec):    CategoryRec,
	byte(CategoryCal):    CategoryCal,
	byte(CategoryExec):   CategoryExec,
	byte(CategoryPub):    CategoryPub,
}

// processBinary implements the classifier of spec §4.5 for req[0] <=
// TS_EXEC, plus the synthetic CategoryPub byte: resolve the category,
// then route to list/write/execute/read by inspecting req[1].
func (e *Engine) processBinary(req, resp []byte) int {
	o := newOutBuf(resp)
	cat, ok := binaryCategories[req[0]]
	if !ok {
		o.WriteByte(StatusUnknownFunction.Byte())
		return o.Len()
	}
	if len(req) < 2 {
		o.WriteByte(StatusWrongFormat.Byte())
		return o.Len()
	}
	arg := req[1:]

	if len(req) == 2 && (wire.IsNull(arg) || wire.IsEmptyArray(arg) || wire.IsEmptyMap(arg)) {
		return e.listBinary(cat, arg[0], o)
	}
	if wire.TypeMask(arg[0]) == wire.MajorMap<<5 {
		return e.writeBinary(cat, arg, o)
	}
	if cat == CategoryExec {
		return e.executeBinary(arg, o)
	}
	return e.readBinary(cat, arg, o)
}

type listStyle int

const (
	listIDs listStyle = iota
	listNames
	listValues
)

func (e *Engine) listBinary(cat Category, styleByte byte, o *outBuf) int {
	var style listStyle
	switch {
	case wire.IsNull([]byte{styleByte}):
		style = listIDs
	case wire.TypeMask(styleByte) == wire.MajorArray<<5:
		style = listNames
	default:
		style = listValues
	}

	count := 0
	e.table.InCategory(cat, func(d *Descriptor) bool {
		if d.CanRead(e.sess.level) {
			count++
		}
		return true
	})

	if !o.WriteByte(StatusContent.Byte()) {
		return e.overflow(o)
	}
	switch style {
	case listValues:
		if !o.PutVia(func(b []byte) int { return wire.PutMapHeader(b, uint64(count)) }) {
			return e.overflow(o)
		}
	default:
		if !o.PutVia(func(b []byte) int { return wire.PutArrayHeader(b, uint64(count)) }) {
			return e.overflow(o)
		}
	}

	var failed bool
	e.table.InCategory(cat, func(d *Descriptor) bool {
		if !d.CanRead(e.sess.level) {
			return true
		}
		switch style {
		case listIDs:
			if !o.PutVia(func(b []byte) int { return wire.PutUint(b, uint64(d.ID)) }) {
				failed = true
				return false
			}
		case listNames:
			if !o.PutVia(func(b []byte) int { return wire.PutText(b, d.Name) }) {
				failed = true
				return false
			}
		case listValues:
			if !o.PutVia(func(b []byte) int { return wire.PutUint(b, uint64(d.ID)) }) {
				failed = true
				return false
			}
			if !serializeBinary(o, d) {
				failed = true
				return false
			}
		}
		return true
	})
	if failed {
		return e.overflow(o)
	}
	return o.Len()
}

func (e *Engine) readBinary(cat Category, arg []byte, o *outBuf) int {
	var ids []uint16
	if wire.TypeMask(arg[0]) == wire.MajorArray<<5 {
		_, count, n, err := wire.NumElements(arg)
		if err != nil {
			return e.status(o, StatusWrongFormat)
		}
		pos := n
		for i := uint64(0); i < count; i++ {
			id, m, err := wire.Uint16(arg[pos:])
			if err != nil {
				return e.status(o, StatusWrongFormat)
			}
			ids = append(ids, id)
			pos += m
		}
	} else {
		id, _, err := wire.Uint16(arg)
		if err != nil {
			return e.status(o, StatusWrongFormat)
		}
		ids = []uint16{id}
	}
	_ = cat // category is informational in the binary read form; ids are global

	descs := make([]*Descriptor, len(ids))
	for i, id := range ids {
		d := e.table.ByID(id)
		if d == nil {
			e.log.Debugf("binary read: unknown object id=%d", id)
			return e.status(o, StatusUnknownDataObject)
		}
		if !d.CanRead(e.sess.level) {
			e.log.Warnf("binary read denied: object=%q auth=%d", d.Name, e.sess.level)
			return e.status(o, StatusUnauthorized)
		}
		descs[i] = d
	}

	if !o.WriteByte(StatusContent.Byte()) {
		return e.overflow(o)
	}
	if len(descs) > 1 {
		if !o.PutVia(func(b []byte) int { return wire.PutArrayHeader(b, uint64(len(descs))) }) {
			return e.overflow(o)
		}
	}
	for _, d := range descs {
		if !serializeBinary(o, d) {
			return e.overflow(o)
		}
	}
	return o.Len()
}

func (e *Engine) writeBinary(cat Category, arg []byte, o *outBuf) int {
	status, ok := e.applyWriteMap(arg, cat, e.sess.level)
	if !ok {
		return e.status(o, status)
	}
	return e.status(o, StatusChanged)
}

// applyWriteMap decodes a binary map of id->value pairs and applies them
// left-to-right, stopping at the first failure. Always access-checked
// against auth; the access-bypassing restore path does not go through
// this function (see Engine.RestoreValue).
func (e *Engine) applyWriteMap(arg []byte, cat Category, auth AuthLevel) (Status, bool) {
	_, count, n, err := wire.NumElements(arg)
	if err != nil {
		return StatusWrongFormat, false
	}
	pos := n
	for i := uint64(0); i < count; i++ {
		id, m, err := wire.Uint16(arg[pos:])
		if err != nil {
			return StatusWrongFormat, false
		}
		pos += m
		d := e.table.ByID(id)
		if d == nil {
			e.log.Debugf("binary write: unknown object id=%d", id)
			return StatusUnknownDataObject, false
		}
		if !d.CanWrite(auth) {
			e.log.Warnf("binary write denied: object=%q auth=%d", d.Name, auth)
			return StatusUnauthorized, false
		}
		consumed, err := deserializeBinary(arg[pos:], d)
		if err != nil {
			e.log.Debugf("binary write: decode failed for object=%q: %v", d.Name, err)
			return statusForErr(err), false
		}
		pos += consumed
	}
	if cat == CategoryConf && e.OnConfigChanged != nil {
		e.OnConfigChanged()
	}
	return StatusChanged, true
}

func (e *Engine) executeBinary(arg []byte, o *outBuf) int {
	id, _, err := wire.Uint16(arg)
	if err != nil {
		return e.status(o, StatusWrongFormat)
	}
	d := e.table.ByID(id)
	if d == nil {
		e.log.Debugf("binary execute: unknown object id=%d", id)
		return e.status(o, StatusUnknownDataObject)
	}
	if d.Type != TypeExec {
		return e.status(o, StatusWrongType)
	}
	if !d.CanExec(e.sess.level) {
		e.log.Warnf("binary execute denied: object=%q auth=%d", d.Name, e.sess.level)
		return e.status(o, StatusUnauthorized)
	}
	if d.Exec != nil {
		d.Exec()
	}
	return e.status(o, StatusValid)
}

func (e *Engine) status(o *outBuf, s Status) int {
	o.Reset()
	o.WriteByte(s.Byte())
	return o.Len()
}

func (e *Engine) overflow(o *outBuf) int {
	o.Reset()
	o.WriteByte(StatusResponseTooLong.Byte())
	return o.Len()
}

func statusForErr(err error) Status {
	switch err {
	case ErrUnauthorized:
		return StatusUnauthorized
	case ErrUnknownObject:
		return StatusUnknownDataObject
	case ErrWrongType:
		return StatusWrongType
	case ErrInvalidValue:
		return StatusInvalidValue
	case ErrWrongFormat:
		return StatusWrongFormat
	default:
		return StatusGenericError
	}
}
