package thingset

import (
	"github.com/sirupsen/logrus"

	"github.com/libresolar/thingset-go/text"
)

// Logger is the logging surface the engine needs: debug detail (raw
// bytes, resolved object, auth level), warnings for operational
// failures (access-denied, decode-failure), and errors for engine
// misconfiguration. *logrus.Logger satisfies it directly.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// defaultLogger backs Engine.log when the caller does not supply one,
// mirroring the teacher's package-level logrus default.
var defaultLogger = logrus.New()

// Channel is a named publication bundle: an immutable list of object ids
// and a mutable enabled flag the engine toggles in response to `pub`
// category wire requests.
type Channel struct {
	Name      string
	ObjectIDs []uint16
	Enabled   bool
}

// pubObjectBaseID is the first synthetic object id NewEngine assigns to
// a publication channel's enable-flag descriptor; channels are
// numbered sequentially from here. Callers must not register ordinary
// objects in this id range.
const pubObjectBaseID = 0x1900

// pubDescriptors builds one CategoryPub descriptor per channel, naming
// and binding it to that channel's Enabled flag so `pub` list/read/write
// requests reach it like any other object — no special-casing beyond
// the category table entry, per the committed pub-category design.
func pubDescriptors(channels []Channel) []Descriptor {
	out := make([]Descriptor, len(channels))
	for i := range channels {
		out[i] = Descriptor{
			ID:       pubObjectBaseID + uint16(i),
			Name:     channels[i].Name,
			Category: CategoryPub,
			Access:   AccessRead | AccessWrite,
			Type:     TypeBool,
			Value:    BoolSlot{Ptr: &channels[i].Enabled},
		}
	}
	return out
}

// Engine is a single protocol instance: an object table, authentication
// session, publication channels, and the logging/callback hooks an
// embedder wires in. Unlike the reference firmware, all of this state is
// instance-scoped, so independent engines can coexist in one process.
type Engine struct {
	table    *Table
	sess     session
	channels []Channel
	log      Logger

	// OnConfigChanged is invoked exactly once after a successful write to
	// the conf category, binary or text. Nil disables the callback.
	OnConfigChanged func()

	tokBuf []text.Token
}

// NewEngine constructs an Engine over table, with the given publication
// channels and auth passwords. Either password may be empty to disable
// that level. channels is borrowed, not copied: the engine mutates the
// Enabled field of entries in place, and each channel's enable flag is
// also reachable as an ordinary CategoryPub object named after the
// channel, merged into table's objects at construction time.
func NewEngine(table *Table, channels []Channel, userPassword, makerPassword string) *Engine {
	merged := append(append([]Descriptor{}, table.objects...), pubDescriptors(channels)...)
	return &Engine{
		table:    NewTable(merged),
		sess:     session{userPass: userPassword, makerPass: makerPassword},
		channels: channels,
		log:      defaultLogger,
		tokBuf:   make([]text.Token, 64),
	}
}

// SetLogger overrides the engine's logger.
func (e *Engine) SetLogger(l Logger) {
	e.log = l
}

// AuthLevel reports the engine's current authentication level.
func (e *Engine) AuthLevel() AuthLevel {
	return e.sess.level
}

// Process parses req, performs the addressed operation, and writes a
// response into resp, returning the number of bytes written. A return of
// 0 with resp untouched beyond its pre-call contents means the request
// was not addressed to this engine (neither binary-category nor `!`
// prefixed) — the embedder is expected to multiplex the transport with
// other protocols in that case.
func (e *Engine) Process(req, resp []byte) int {
	if len(req) == 0 {
		return 0
	}
	switch {
	case req[0] <= byte(CategoryExec), req[0] == byte(CategoryPub):
		return e.processBinary(req, resp)
	case req[0] == '!':
		return e.processText(req, resp)
	default:
		return 0
	}
}

// RestoreValue writes raw into the object identified by id, bypassing
// the access check but still enforcing type and range validation. This
// is the "ignore access" mode named in the access engine design — used
// by startup restore flows loading persisted configuration — and is
// never reachable from the wire.
func (e *Engine) RestoreValue(id uint16, raw []byte) error {
	d := e.table.ByID(id)
	if d == nil {
		return ErrUnknownObject
	}
	if d.Type == TypeExec {
		return ErrWrongType
	}
	_, err := deserializeBinary(raw, d)
	return err
}
