package host

import "github.com/govm-net/guestsdk/types"

// callStack holds the context of every active call frame. The top is the
// identity capability calls act for.
type callStack struct {
	frames []types.CallContext
}

func (s *callStack) push(ctx types.CallContext) {
	s.frames = append(s.frames, ctx)
}

func (s *callStack) pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// current returns the top frame, or the zero context when idle.
func (s *callStack) current() types.CallContext {
	if len(s.frames) == 0 {
		return types.CallContext{}
	}
	return s.frames[len(s.frames)-1]
}

func (s *callStack) size() int {
	return len(s.frames)
}

// Frame records one completed or running call.
type Frame struct {
	Depth   uint16
	Network string
	Owner   string
	Caller  string
	Method  string
	Origin  string
	Success bool
}

// callTracer records frames in call order.
type callTracer struct {
	frames []Frame
}

// begin records ctx and returns its index for end.
func (t *callTracer) begin(ctx types.CallContext) int {
	t.frames = append(t.frames, Frame{
		Depth:   ctx.Depth,
		Network: ctx.Network,
		Owner:   ctx.Owner,
		Caller:  ctx.Caller,
		Method:  ctx.Method,
		Origin:  ctx.Origin,
	})
	return len(t.frames) - 1
}

func (t *callTracer) end(i int, success bool) {
	if i >= 0 && i < len(t.frames) {
		t.frames[i].Success = success
	}
}

func (t *callTracer) snapshot() []Frame {
	out := make([]Frame, len(t.frames))
	copy(out, t.frames)
	return out
}

func (t *callTracer) reset() {
	t.frames = t.frames[:0]
}
