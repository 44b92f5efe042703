package combat

import (
	"log/slog"
	"slices"

	"github.com/udisondev/skirmish/internal/model"
)

// RangeTracker maintains the live set of enemies within detection radius of
// one aggressive entity.
//
// Members are kept in insertion order. A member is dropped on proximity
// exit or on its death; the tracker never holds an entity of the owner's team,
// a neutral entity or a dead one.
//
// Not thread-safe: owned by the simulation goroutine.
type RangeTracker struct {
	owner   *model.WorldObject
	members []Attackable
	cancels map[Attackable]func()
}

// NewRangeTracker creates an empty tracker for owner.
func NewRangeTracker(owner *model.WorldObject) *RangeTracker {
	return &RangeTracker{
		owner:   owner,
		cancels: make(map[Attackable]func()),
	}
}

// IsEnemy reports whether att is a valid enemy of the owner.
func (t *RangeTracker) IsEnemy(att Attackable) bool {
	return att != nil && model.IsEnemy(t.owner.Team(), att.Object().Team())
}

// Enter handles a proximity-enter event. Returns true if att was added.
func (t *RangeTracker) Enter(att Attackable) bool {
	if !t.IsEnemy(att) || !att.Health().IsAlive() || t.Contains(att) {
		return false
	}

	t.members = append(t.members, att)
	t.cancels[att] = att.Health().OnDeath(func() {
		t.Exit(att)
	})

	slog.Debug("enemy in range",
		"owner", t.owner.Name(),
		"enemy", att.Object().Name())
	return true
}

// Exit handles a proximity-exit event. Returns true if att was removed.
func (t *RangeTracker) Exit(att Attackable) bool {
	idx := slices.Index(t.members, att)
	if idx < 0 {
		return false
	}

	t.members = slices.Delete(t.members, idx, idx+1)
	if cancel, ok := t.cancels[att]; ok {
		cancel()
		delete(t.cancels, att)
	}

	slog.Debug("enemy out of range",
		"owner", t.owner.Name(),
		"enemy", att.Object().Name())
	return true
}

// Contains reports whether att is tracked (within detection range).
func (t *RangeTracker) Contains(att Attackable) bool {
	return att != nil && slices.Contains(t.members, att)
}

// Members returns a copy of tracked enemies in insertion order.
func (t *RangeTracker) Members() []Attackable {
	return slices.Clone(t.members)
}

// Len returns number of tracked enemies.
func (t *RangeTracker) Len() int {
	return len(t.members)
}

// Prune drops members that are no longer enemies (after a team change).
func (t *RangeTracker) Prune() {
	for _, att := range t.Members() {
		if !t.IsEnemy(att) {
			t.Exit(att)
		}
	}
}

// Clear drops all members and their death subscriptions.
func (t *RangeTracker) Clear() {
	for _, cancel := range t.cancels {
		cancel()
	}
	clear(t.cancels)
	t.members = nil
}
