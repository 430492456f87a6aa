package types

import "github.com/govm-net/guestsdk/memory"

// WasmError is an error whose message travels across the boundary as the
// data of a failed CallResult.
type WasmError struct {
	msg string
}

// NewWasmError creates an error carrying msg.
func NewWasmError(msg string) *WasmError {
	return &WasmError{msg: msg}
}

func (e *WasmError) Error() string {
	return e.msg
}

// Is matches any error with the same message, so a message decoded from a
// CallResult compares equal to the sentinel that produced it.
func (e *WasmError) Is(target error) bool {
	if target == nil {
		return false
	}
	return e.msg == target.Error()
}

// Error kinds. The message of each is exactly what crosses the boundary.
var (
	ErrMalformedInput       = NewWasmError("malformed input")
	ErrSerialization        = NewWasmError("serialization failure")
	ErrDeserialization      = NewWasmError("deserialization failure")
	ErrMethodNotFound       = NewWasmError("method not found")
	ErrIncompatibleContract = NewWasmError("incompatible contract app")
	ErrBadArguments         = NewWasmError("bad arguments")
	ErrAccountLocked        = NewWasmError("account locked")
	ErrInsufficientFunds    = NewWasmError("error during transfer")
	ErrCallDepthExceeded    = NewWasmError("call depth exceeded")
	ErrBadPattern           = NewWasmError("last char of search pattern must be '*'")

	// ErrOutOfMemory is never returned: arena exhaustion panics.
	ErrOutOfMemory = memory.ErrOutOfMemory
)
