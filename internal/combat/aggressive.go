package combat

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/skirmish/internal/model"
)

// HitResult содержит результат одного выстрела.
type HitResult struct {
	AttackerID uint32
	TargetID   uint32
	Damage     float64
	Killed     bool
	At         time.Duration // sim time
}

// TargetChange describes a session target switch. New is nil on release.
type TargetChange struct {
	Old, New Attackable
}

// Aggressive is the attack session of one entity: at most one target and a
// weapon gated by a fire throttle.
//
// Every Attack opens a new session (Session increments) even for the same
// target, so a chase started by one controller can tell it has been
// overridden by another.
//
// Not thread-safe: owned by the simulation goroutine.
type Aggressive struct {
	owner   *model.WorldObject
	weapon  model.Weapon
	tracker *RangeTracker

	target      Attackable
	session     uint64
	cancelDeath func()
	throttle    Throttle

	targetChanged model.Signal[TargetChange]

	// hitObserver: callback для наблюдения за результатами атак (nil если не нужен).
	hitObserver func(HitResult)
}

// NewAggressive creates an attack session for owner.
// tracker may be nil for entities without detection (WithinRange is then false).
func NewAggressive(owner *model.WorldObject, weapon model.Weapon, tracker *RangeTracker) (*Aggressive, error) {
	if err := weapon.Validate(); err != nil {
		return nil, fmt.Errorf("aggressive %s: %w", owner.Name(), err)
	}
	return &Aggressive{
		owner:    owner,
		weapon:   weapon,
		tracker:  tracker,
		throttle: NewThrottle(weapon.Period),
	}, nil
}

// SetHitObserver sets callback for observing attack results.
func (a *Aggressive) SetHitObserver(fn func(HitResult)) {
	a.hitObserver = fn
}

// Owner returns attacking object.
func (a *Aggressive) Owner() *model.WorldObject {
	return a.owner
}

// Weapon returns weapon parameters.
func (a *Aggressive) Weapon() model.Weapon {
	return a.weapon
}

// Tracker returns the range tracker (may be nil).
func (a *Aggressive) Tracker() *RangeTracker {
	return a.tracker
}

// Target returns current target or nil.
func (a *Aggressive) Target() Attackable {
	return a.target
}

// Session returns current session number.
func (a *Aggressive) Session() uint64 {
	return a.session
}

// Attack sets target and opens a new session. No validation: callers check
// enmity before calling. The session is released in the same tick the target
// dies.
func (a *Aggressive) Attack(target Attackable) {
	if target == nil {
		return
	}

	old := a.target
	a.dropDeathWatch()

	a.target = target
	a.session++
	a.cancelDeath = target.Health().OnDeath(func() {
		a.Release(target)
	})

	if IsDebugEnabled() {
		slog.Debug("attack",
			"attacker", a.owner.Name(),
			"target", target.Object().Name(),
			"session", a.session)
	}
	a.targetChanged.Emit(TargetChange{Old: old, New: target})
}

// Release clears target if it is the current one. Returns whether cleared.
func (a *Aggressive) Release(target Attackable) bool {
	if target == nil || a.target != target {
		return false
	}

	a.dropDeathWatch()
	a.target = nil
	a.session++

	if IsDebugEnabled() {
		slog.Debug("release",
			"attacker", a.owner.Name(),
			"target", target.Object().Name())
	}
	a.targetChanged.Emit(TargetChange{Old: target})
	return true
}

// OnTargetChange subscribes to target switches.
func (a *Aggressive) OnTargetChange(fn func(TargetChange)) (cancel func()) {
	return a.targetChanged.Subscribe(fn)
}

// WithinWeaponRange reports whether target is strictly closer than weapon range.
func (a *Aggressive) WithinWeaponRange(target Attackable) bool {
	if target == nil {
		return false
	}
	return a.owner.DistanceTo(target.Object()) < a.weapon.Range
}

// WithinRange reports whether target is inside the detection range.
func (a *Aggressive) WithinRange(target Attackable) bool {
	return a.tracker != nil && a.tracker.Contains(target)
}

// Tick fires at the target when it is alive, within weapon range and the
// weapon has cooled down.
func (a *Aggressive) Tick(now time.Duration) {
	target := a.target
	if !IsAlive(target) || !a.WithinWeaponRange(target) {
		return
	}
	if !a.throttle.Allow(now) {
		return
	}

	killed := target.Health().ApplyDamage(a.weapon.Damage)

	if IsDebugEnabled() {
		slog.Debug("hit",
			"attacker", a.owner.Name(),
			"target", target.Object().Name(),
			"damage", a.weapon.Damage,
			"hp", target.Health().CurrentHP(),
			"killed", killed)
	}

	if a.hitObserver != nil {
		a.hitObserver(HitResult{
			AttackerID: a.owner.ObjectID(),
			TargetID:   target.Object().ObjectID(),
			Damage:     a.weapon.Damage,
			Killed:     killed,
			At:         now,
		})
	}
}

// Stop releases the target and drops all listeners (teardown).
func (a *Aggressive) Stop() {
	if a.target != nil {
		a.Release(a.target)
	}
	a.dropDeathWatch()
	a.targetChanged.Reset()
	a.hitObserver = nil
}

func (a *Aggressive) dropDeathWatch() {
	if a.cancelDeath != nil {
		a.cancelDeath()
		a.cancelDeath = nil
	}
}
