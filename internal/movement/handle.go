package movement

import "github.com/udisondev/skirmish/internal/model"

// Handle tracks one admitted destination until it resolves.
// It resolves exactly once: reached=true on arrival, reached=false when the
// destination is removed, preempted or the queue is torn down.
type Handle struct {
	dest     *model.Destination
	done     bool
	reached  bool
	resolved model.Signal[bool]
}

func newHandle(dest *model.Destination) *Handle {
	return &Handle{dest: dest}
}

// Destination returns the destination this handle tracks.
func (h *Handle) Destination() *model.Destination {
	return h.dest
}

// Done reports whether the handle has resolved.
func (h *Handle) Done() bool {
	return h.done
}

// Reached reports whether the destination was reached (valid once Done).
func (h *Handle) Reached() bool {
	return h.reached
}

// OnResolved registers fn for the resolution.
// If the handle is already resolved fn runs immediately.
func (h *Handle) OnResolved(fn func(reached bool)) (cancel func()) {
	if h.done {
		fn(h.reached)
		return func() {}
	}
	return h.resolved.Subscribe(fn)
}

func (h *Handle) resolve(reached bool) {
	if h.done {
		return
	}
	h.done = true
	h.reached = reached
	h.resolved.Emit(reached)
	h.resolved.Reset()
}
