package thingset

// AuthLevel is the current authentication level of an Engine instance.
// Unlike the reference firmware (which keeps this as process-wide global
// state), it lives on Engine so independent engines can coexist in one
// process; an embedder that wants a process-wide singleton gets that by
// constructing a single Engine.
type AuthLevel uint8

const (
	AuthNone AuthLevel = iota
	AuthUser
	AuthMaker
)

// maxPasswordLen bounds the password argument accepted by the auth
// handler. It mirrors the firmware's fixed internal scratch buffer: a
// password longer than this always fails with conflict, never with a
// buffer error, so the two failure modes stay distinguishable to callers.
const maxPasswordLen = 64

// session holds the process-wide (per Engine) authentication state.
type session struct {
	level     AuthLevel
	userPass  string
	makerPass string
}

// authenticate implements the `auth` verb: empty resets to AuthNone, a
// match against userPass or makerPass elevates, anything else drops to
// AuthNone and reports conflict.
func (s *session) authenticate(password string) (ok bool) {
	if password == "" {
		s.level = AuthNone
		return true
	}
	if len(password) > maxPasswordLen {
		s.level = AuthNone
		return false
	}
	switch {
	case s.makerPass != "" && password == s.makerPass:
		s.level = AuthMaker
		return true
	case s.userPass != "" && password == s.userPass:
		s.level = AuthUser
		return true
	default:
		s.level = AuthNone
		return false
	}
}
