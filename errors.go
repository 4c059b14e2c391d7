package thingset

// Error is a sentinel error type for the engine's fixed set of internal
// decode/access failures, each of which maps directly onto a Status.
//
// See http://dave.cheney.net/2016/04/07/constant-errors for the rationale.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrUnknownObject indicates a request addressed an id or name not
	// present in the object table.
	ErrUnknownObject Error = "thingset: unknown data object"
	// ErrUnauthorized indicates the current auth level does not permit
	// the requested operation on the resolved object.
	ErrUnauthorized Error = "thingset: unauthorized"
	// ErrWrongFormat indicates the request payload could not be parsed
	// into the shape the operation expects (e.g. a write without a map).
	ErrWrongFormat Error = "thingset: wrong format"
	// ErrWrongType indicates a value's wire type does not match the
	// target object's declared type.
	ErrWrongType Error = "thingset: wrong type"
	// ErrInvalidValue indicates a value's wire type matched but its
	// magnitude or length does not fit the target object.
	ErrInvalidValue Error = "thingset: invalid value"
)
