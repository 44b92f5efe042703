package ai

import (
	"github.com/udisondev/skirmish/internal/combat"
	"github.com/udisondev/skirmish/internal/model"
)

// chase is one pursuit of a session target, re-evaluated every tick until
// its predicate fails. Cleanup runs exactly once.
type chase struct {
	target  combat.Attackable
	session uint64
	dest    *model.Destination

	cancelWatch func()
	done        bool
}

// newChase binds a chase to the session just opened on agg and ends it
// through onOverride as soon as the session changes (release, target
// death or another Attack).
func newChase(agg *combat.Aggressive, onOverride func(*chase)) *chase {
	ch := &chase{
		target:  agg.Target(),
		session: agg.Session(),
	}
	ch.cancelWatch = agg.OnTargetChange(func(combat.TargetChange) {
		if !ch.owns(agg) {
			onOverride(ch)
		}
	})
	return ch
}

// owns reports whether the session that started this chase is still current.
func (c *chase) owns(agg *combat.Aggressive) bool {
	return !c.done && agg.Session() == c.session && agg.Target() == c.target
}

// finish marks the chase done. Returns false if it was already finished.
func (c *chase) finish() bool {
	if c.done {
		return false
	}
	c.done = true
	c.cancelWatch()
	return true
}
