package thingset

import "github.com/libresolar/thingset-go/text"

const hexDigits = "0123456789ABCDEF"

func appendHex2(dst []byte, b byte) []byte {
	return append(dst, hexDigits[b>>4], hexDigits[b&0x0F])
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isTextSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// scanWord reads the leading run of ASCII letters from buf, returning the
// word and the remaining bytes.
func scanWord(buf []byte) (string, []byte) {
	i := 0
	for i < len(buf) && isWordByte(buf[i]) {
		i++
	}
	return string(buf[:i]), buf[i:]
}

func trimLeadingSpace(buf []byte) []byte {
	i := 0
	for i < len(buf) && isTextSpace(buf[i]) {
		i++
	}
	return buf[i:]
}

// processText implements the classifier and dispatcher for `!`-prefixed
// requests per spec §4.5/§4.6.
func (e *Engine) processText(req, resp []byte) int {
	o := newOutBuf(resp)
	word, rest := scanWord(req[1:])

	if word == "auth" {
		return e.authText(trimLeadingSpace(rest), o)
	}

	cat, ok := categoryWords[word]
	if !ok {
		return e.textStatus(o, StatusUnknownDataObject, false)
	}

	rest = trimLeadingSpace(rest)
	if len(rest) > 0 && rest[0] == '/' {
		return e.listText(cat, listNames, o)
	}
	if len(rest) == 0 {
		return e.textStatus(o, StatusWrongFormat, false)
	}

	toks, err := text.Tokenize(rest, e.tokBuf)
	if err != nil || len(toks) == 0 {
		return e.textStatus(o, StatusWrongFormat, false)
	}

	switch toks[0].Kind {
	case text.ObjectOpen:
		if len(toks) == 2 && toks[1].Kind == text.ObjectClose {
			return e.listText(cat, listValues, o)
		}
		return e.writeText(cat, rest, toks, o)
	case text.ArrayOpen:
		return e.readTextMulti(rest, toks, o)
	case text.String:
		if cat == CategoryExec {
			return e.executeText(rest, toks, o)
		}
		return e.readTextSingle(rest, toks, o)
	default:
		return e.textStatus(o, StatusWrongFormat, false)
	}
}

// textStatus writes a bare status line (no payload) and returns its
// length.
func (e *Engine) textStatus(o *outBuf, s Status, isAuthVerb bool) int {
	o.Reset()
	o.AppendVia(func(b []byte) []byte {
		b = append(b, ':')
		b = appendHex2(b, s.Byte())
		b = append(b, ' ')
		b = append(b, s.phrase(isAuthVerb)...)
		return b
	})
	return o.Len()
}

func (e *Engine) textOverflow(o *outBuf) int {
	return e.textStatus(o, StatusResponseTooLong, false)
}

func (e *Engine) listText(cat Category, style listStyle, o *outBuf) int {
	if !o.AppendVia(func(b []byte) []byte {
		b = append(b, ':')
		b = appendHex2(b, StatusContent.Byte())
		b = append(b, ' ')
		b = append(b, StatusContent.phrase(false)...)
		return append(b, ' ')
	}) {
		return e.textOverflow(o)
	}

	open, closeByte := byte('['), byte(']')
	if style == listValues {
		open, closeByte = '{', '}'
	}
	if !o.WriteByte(open) {
		return e.textOverflow(o)
	}

	first := true
	failed := false
	e.table.InCategory(cat, func(d *Descriptor) bool {
		if !d.CanRead(e.sess.level) {
			return true
		}
		if !first && !o.WriteByte(',') {
			failed = true
			return false
		}
		first = false
		if !o.AppendVia(func(b []byte) []byte { return text.AppendQuotedString(b, d.Name) }) {
			failed = true
			return false
		}
		if style == listValues {
			if !o.WriteByte(':') {
				failed = true
				return false
			}
			if !renderText(o, d) {
				failed = true
				return false
			}
		}
		return true
	})
	if failed {
		return e.textOverflow(o)
	}
	if !o.WriteByte(closeByte) {
		return e.textOverflow(o)
	}
	return o.Len()
}

func (e *Engine) readTextSingle(buf []byte, toks []text.Token, o *outBuf) int {
	name := text.Unescape(buf, toks[0])
	d := e.table.ByName(name)
	if d == nil {
		e.log.Debugf("text read: unknown object name=%q", name)
		return e.textStatus(o, StatusUnknownDataObject, false)
	}
	if !d.CanRead(e.sess.level) {
		e.log.Warnf("text read denied: object=%q auth=%d", d.Name, e.sess.level)
		return e.textStatus(o, StatusUnauthorized, false)
	}
	if !o.AppendVia(func(b []byte) []byte {
		b = append(b, ':')
		b = appendHex2(b, StatusContent.Byte())
		b = append(b, ' ')
		b = append(b, StatusContent.phrase(false)...)
		return append(b, ' ')
	}) {
		return e.textOverflow(o)
	}
	if !renderText(o, d) {
		return e.textOverflow(o)
	}
	return o.Len()
}

func (e *Engine) readTextMulti(buf []byte, toks []text.Token, o *outBuf) int {
	var descs []*Descriptor
	i := 1
	for toks[i].Kind != text.ArrayClose {
		if toks[i].Kind != text.String {
			return e.textStatus(o, StatusWrongFormat, false)
		}
		name := text.Unescape(buf, toks[i])
		d := e.table.ByName(name)
		if d == nil {
			e.log.Debugf("text read: unknown object name=%q", name)
			return e.textStatus(o, StatusUnknownDataObject, false)
		}
		if !d.CanRead(e.sess.level) {
			e.log.Warnf("text read denied: object=%q auth=%d", d.Name, e.sess.level)
			return e.textStatus(o, StatusUnauthorized, false)
		}
		descs = append(descs, d)
		i++
	}

	if !o.AppendVia(func(b []byte) []byte {
		b = append(b, ':')
		b = appendHex2(b, StatusContent.Byte())
		b = append(b, ' ')
		b = append(b, StatusContent.phrase(false)...)
		return append(b, ' ')
	}) {
		return e.textOverflow(o)
	}
	if !o.WriteByte('[') {
		return e.textOverflow(o)
	}
	for i, d := range descs {
		if i > 0 && !o.WriteByte(',') {
			return e.textOverflow(o)
		}
		if !renderText(o, d) {
			return e.textOverflow(o)
		}
	}
	if !o.WriteByte(']') {
		return e.textOverflow(o)
	}
	return o.Len()
}

func (e *Engine) writeText(cat Category, buf []byte, toks []text.Token, o *outBuf) int {
	i := 1
	for toks[i].Kind != text.ObjectClose {
		if toks[i].Kind != text.String {
			return e.textStatus(o, StatusWrongFormat, false)
		}
		name := text.Unescape(buf, toks[i])
		i++
		d := e.table.ByName(name)
		if d == nil {
			e.log.Debugf("text write: unknown object name=%q", name)
			return e.textStatus(o, StatusUnknownDataObject, false)
		}
		if !d.CanWrite(e.sess.level) {
			e.log.Warnf("text write denied: object=%q auth=%d", d.Name, e.sess.level)
			return e.textStatus(o, StatusUnauthorized, false)
		}
		consumed, err := parseText(buf, toks, i, d)
		if err != nil {
			e.log.Debugf("text write: decode failed for object=%q: %v", d.Name, err)
			return e.textStatus(o, statusForErr(err), false)
		}
		i += consumed
	}
	if cat == CategoryConf && e.OnConfigChanged != nil {
		e.OnConfigChanged()
	}
	return e.textStatus(o, StatusChanged, false)
}

func (e *Engine) executeText(buf []byte, toks []text.Token, o *outBuf) int {
	name := text.Unescape(buf, toks[0])
	d := e.table.ByName(name)
	if d == nil {
		e.log.Debugf("text execute: unknown object name=%q", name)
		return e.textStatus(o, StatusUnknownDataObject, false)
	}
	if d.Type != TypeExec {
		return e.textStatus(o, StatusWrongType, false)
	}
	if !d.CanExec(e.sess.level) {
		e.log.Warnf("text execute denied: object=%q auth=%d", d.Name, e.sess.level)
		return e.textStatus(o, StatusUnauthorized, false)
	}
	if d.Exec != nil {
		d.Exec()
	}
	return e.textStatus(o, StatusValid, false)
}

func (e *Engine) authText(buf []byte, o *outBuf) int {
	var password string
	if len(buf) > 0 {
		toks, err := text.Tokenize(buf, e.tokBuf)
		if err != nil || len(toks) != 1 || toks[0].Kind != text.String {
			return e.textStatus(o, StatusWrongFormat, true)
		}
		password = text.Unescape(buf, toks[0])
	}
	if e.sess.authenticate(password) {
		return e.textStatus(o, StatusValid, true)
	}
	e.log.Warnf("auth denied: level reset to none")
	return e.textStatus(o, StatusConflict, true)
}
