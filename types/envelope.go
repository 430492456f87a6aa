package types

import (
	"math"
	"unicode/utf8"

	"github.com/shamaton/msgpack/v2"
)

// callContextFields is the number of fields of a CallContext record.
const callContextFields = 6

// CallContext is the execution context handed to a method invocation.
//
// WARNING: the field names and order are part of the wire format shared with
// the host. Any modification breaks compatibility.
type CallContext struct {
	// Nested call depth, 0 for the external call.
	Depth uint16 `msgpack:"depth"`
	// Network identifier.
	Network string `msgpack:"network"`
	// Account whose state the method may mutate.
	Owner string `msgpack:"owner"`
	// Immediate invoker.
	Caller string `msgpack:"caller"`
	// Method name.
	Method string `msgpack:"method"`
	// Original external submitter, unchanged along the call chain.
	Origin string `msgpack:"origin"`
}

// Child derives the context of a nested call from c into callee.
func (c CallContext) Child(callee, method string) CallContext {
	return CallContext{
		Depth:   c.Depth + 1,
		Network: c.Network,
		Owner:   callee,
		Caller:  c.Owner,
		Method:  method,
		Origin:  c.Origin,
	}
}

func (c CallContext) valid() bool {
	return utf8.ValidString(c.Network) &&
		utf8.ValidString(c.Owner) &&
		utf8.ValidString(c.Caller) &&
		utf8.ValidString(c.Method) &&
		utf8.ValidString(c.Origin)
}

// EncodeCall encodes the context with fields tagged by name.
func EncodeCall(ctx CallContext) ([]byte, error) {
	return SerializeNamed(ctx)
}

// callContextWire is the decoding form of CallContext. Depth is read wide so
// that an out-of-range value is rejected instead of truncated.
type callContextWire struct {
	Depth   int64  `msgpack:"depth"`
	Network string `msgpack:"network"`
	Owner   string `msgpack:"owner"`
	Caller  string `msgpack:"caller"`
	Method  string `msgpack:"method"`
	Origin  string `msgpack:"origin"`
}

var callContextKeys = map[string]bool{
	"depth": true, "network": true, "owner": true,
	"caller": true, "method": true, "origin": true,
}

// namedFields reports whether buf is a map holding every CallContext key
// exactly once and nothing else.
func namedFields(buf []byte) bool {
	if n, ok := MapLen(buf); !ok || n != callContextFields {
		return false
	}
	var m map[string]any
	if err := msgpack.Unmarshal(buf, &m); err != nil || len(m) != callContextFields {
		return false
	}
	for k := range m {
		if !callContextKeys[k] {
			return false
		}
	}
	return true
}

// DecodeCall decodes a context encoded either by name (EncodeCall) or
// positionally. Any other shape, a wrong field count, an unknown or repeated
// key, a depth outside the uint16 range or a string field that is not valid
// UTF-8 yields ErrDeserialization.
func DecodeCall(buf []byte) (CallContext, error) {
	var w callContextWire
	var err error
	if n, ok := ArrayLen(buf); ok {
		if n != callContextFields {
			return CallContext{}, ErrDeserialization
		}
		err = msgpack.UnmarshalAsArray(buf, &w)
	} else if _, ok := MapLen(buf); ok {
		if !namedFields(buf) {
			return CallContext{}, ErrDeserialization
		}
		err = msgpack.UnmarshalAsMap(buf, &w)
	} else {
		return CallContext{}, ErrDeserialization
	}
	if err != nil || w.Depth < 0 || w.Depth > math.MaxUint16 {
		return CallContext{}, ErrDeserialization
	}
	ctx := CallContext{
		Depth:   uint16(w.Depth),
		Network: w.Network,
		Owner:   w.Owner,
		Caller:  w.Caller,
		Method:  w.Method,
		Origin:  w.Origin,
	}
	if !ctx.valid() {
		return CallContext{}, ErrDeserialization
	}
	return ctx, nil
}

// CallResult is the only shape ever returned across the boundary. On success
// Data holds the serialized return value, on failure a UTF-8 error message.
//
// WARNING: encoded positionally as [success, bin data]. Any modification
// breaks compatibility.
type CallResult struct {
	Success bool   `msgpack:"success"`
	Data    []byte `msgpack:"data"`
}

// Ok builds a successful result.
func Ok(data []byte) CallResult {
	if data == nil {
		data = []byte{}
	}
	return CallResult{Success: true, Data: data}
}

// Ko builds a failed result carrying msg.
func Ko(msg string) CallResult {
	return CallResult{Success: false, Data: []byte(msg)}
}

// KoErr builds a failed result from err's message.
func KoErr(err error) CallResult {
	return Ko(err.Error())
}

// Err returns nil for a successful result and the carried message otherwise.
func (r CallResult) Err() error {
	if r.Success {
		return nil
	}
	return NewWasmError(string(r.Data))
}

// EncodeResult encodes the result as a two-element array.
func EncodeResult(r CallResult) ([]byte, error) {
	if r.Data == nil {
		r.Data = []byte{}
	}
	return Serialize(r)
}

// DecodeResult decodes a result produced by EncodeResult.
func DecodeResult(buf []byte) (CallResult, error) {
	if n, ok := ArrayLen(buf); !ok || n != 2 {
		return CallResult{}, ErrDeserialization
	}
	var r CallResult
	if err := msgpack.UnmarshalAsArray(buf, &r); err != nil {
		return CallResult{}, ErrDeserialization
	}
	if r.Data == nil {
		r.Data = []byte{}
	}
	return r, nil
}
