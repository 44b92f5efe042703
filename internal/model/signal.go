package model

// Signal is a synchronous observer list.
// Subscribers run in subscription order on the emitting goroutine.
// Unsubscribing during Emit is safe: a removed subscriber is not called
// even if it was part of the in-flight snapshot.
//
// Not thread-safe: owned by the simulation goroutine.
type Signal[T any] struct {
	subs []*subscriber[T]
}

type subscriber[T any] struct {
	fn     func(T)
	active bool
}

// Subscribe registers fn and returns a function removing it.
// The returned cancel is idempotent.
func (s *Signal[T]) Subscribe(fn func(T)) (cancel func()) {
	sub := &subscriber[T]{fn: fn, active: true}
	s.subs = append(s.subs, sub)

	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, other := range s.subs {
			if other == sub {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

// Emit calls every active subscriber with v.
func (s *Signal[T]) Emit(v T) {
	if len(s.subs) == 0 {
		return
	}

	snapshot := make([]*subscriber[T], len(s.subs))
	copy(snapshot, s.subs)

	for _, sub := range snapshot {
		if sub.active {
			sub.fn(v)
		}
	}
}

// Len returns number of active subscribers.
func (s *Signal[T]) Len() int {
	return len(s.subs)
}

// Reset drops all subscribers.
func (s *Signal[T]) Reset() {
	for _, sub := range s.subs {
		sub.active = false
	}
	s.subs = nil
}
