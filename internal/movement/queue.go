package movement

import (
	"errors"
	"log/slog"

	"github.com/udisondev/skirmish/internal/model"
)

// ErrNilNavigator is returned when a queue is built without a navigator.
var ErrNilNavigator = errors.New("movement: nil navigator")

// Queue is the movement slot of a movable entity.
//
// It holds at most one destination. A new destination replaces the current
// one only if its kind is greater than or equal to the current kind, so a
// player order can never be preempted by autonomous behaviour.
//
// Not thread-safe: owned by the simulation goroutine.
type Queue struct {
	owner *model.WorldObject
	nav   Navigator

	current *model.Destination
	handle  *Handle

	// pendingStart is set while waiting for the entity to be placed on the
	// navigable surface before the path can start.
	pendingStart bool

	changed model.Signal[*model.Destination]
}

// NewQueue creates a destination queue driving nav.
func NewQueue(owner *model.WorldObject, nav Navigator) (*Queue, error) {
	if nav == nil {
		return nil, ErrNilNavigator
	}
	return &Queue{owner: owner, nav: nav}, nil
}

// Current returns current destination or nil.
func (q *Queue) Current() *model.Destination {
	return q.current
}

// CurrentKind returns current destination kind and whether one is set.
func (q *Queue) CurrentKind() (model.DestKind, bool) {
	if q.current == nil {
		return 0, false
	}
	return q.current.Kind, true
}

// HasKind reports whether current destination is of kind.
func (q *Queue) HasKind(kind model.DestKind) bool {
	return q.current != nil && q.current.Kind == kind
}

// Handle returns handle of current destination or nil.
func (q *Queue) Handle() *Handle {
	return q.handle
}

// PendingStart reports whether the path start is deferred.
func (q *Queue) PendingStart() bool {
	return q.pendingStart
}

// Add tries to admit dest and start the path toward it.
// Returns nil if a destination with strictly higher priority is active.
func (q *Queue) Add(dest *model.Destination) *Handle {
	if dest == nil {
		return nil
	}

	if q.current != nil && q.current.Kind > dest.Kind {
		slog.Debug("destination rejected",
			"object", q.owner.Name(),
			"current", q.current.Kind,
			"requested", dest.Kind)
		return nil
	}

	prev := q.handle
	q.current = dest
	q.handle = newHandle(dest)
	q.startPath()

	slog.Debug("destination added",
		"object", q.owner.Name(),
		"dest", dest)

	if prev != nil {
		prev.resolve(false)
	}
	q.changed.Emit(dest)

	return q.handle
}

// Remove clears current destination if it is dest (identity) and stops.
func (q *Queue) Remove(dest *model.Destination) bool {
	if dest == nil || q.current != dest {
		return false
	}
	q.clear(false)
	return true
}

// RemoveKind clears current destination if it is of kind and stops.
func (q *Queue) RemoveKind(kind model.DestKind) bool {
	if !q.HasKind(kind) {
		return false
	}
	q.clear(false)
	return true
}

// OnChange subscribes to slot changes. fn receives nil when the slot empties.
func (q *Queue) OnChange(fn func(dest *model.Destination)) (cancel func()) {
	return q.changed.Subscribe(fn)
}

// Tick starts a deferred path once the entity is placed on the surface and
// checks arrival. Called once per simulation tick.
func (q *Queue) Tick() {
	if q.current == nil {
		return
	}

	if q.pendingStart {
		if !q.nav.CanPlace() {
			return
		}
		q.pendingStart = false
		q.nav.SetAgentEnabled(true)
		q.nav.SetDestination(q.current.Position, q.current.ArrivalDistance)
		return
	}

	if q.reached() {
		slog.Debug("destination reached",
			"object", q.owner.Name(),
			"dest", q.current)
		q.clear(true)
	}
}

// Clear drops current destination (aborted) and all listeners.
// Used on entity teardown.
func (q *Queue) Clear() {
	if q.current != nil {
		q.clear(false)
	}
	q.changed.Reset()
}

func (q *Queue) startPath() {
	if q.nav.OnSurface() {
		q.pendingStart = false
		q.nav.SetDestination(q.current.Position, q.current.ArrivalDistance)
		return
	}

	// Parked entities carve the surface; lift the obstacle and start the
	// path once the entity samples onto the surface again.
	q.nav.SetObstacleEnabled(false)
	q.pendingStart = true
}

func (q *Queue) reached() bool {
	return q.nav.OnSurface() &&
		!q.nav.PathPending() &&
		q.nav.RemainingDistance() <= q.nav.StoppingDistance() &&
		(!q.nav.HasPath() || q.nav.Speed() == 0)
}

func (q *Queue) clear(reached bool) {
	h := q.handle
	q.current = nil
	q.handle = nil
	q.pendingStart = false

	q.nav.ResetPath()
	q.nav.SetAgentEnabled(false)
	q.nav.SetObstacleEnabled(true)

	if h != nil {
		h.resolve(reached)
	}
	q.changed.Emit(nil)
}
