package ai

import (
	"log/slog"
	"time"

	"github.com/udisondev/skirmish/internal/combat"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/movement"
)

// PlayerAttack is the player-ordered combat policy: chase the target to
// death. The chase has no distance limit; only a player move order stops it.
//
// queue is nil for immovable entities, which can only be ordered to attack
// targets already in detection range.
type PlayerAttack struct {
	owner *model.WorldObject
	agg   *combat.Aggressive
	queue *movement.Queue

	running bool
	chase   *chase
}

// NewPlayerAttack creates player attack controller.
func NewPlayerAttack(agg *combat.Aggressive, queue *movement.Queue) *PlayerAttack {
	return &PlayerAttack{
		owner: agg.Owner(),
		agg:   agg,
		queue: queue,
	}
}

// Start starts the controller
func (c *PlayerAttack) Start() {
	c.running = true
}

// Stop ends the current chase (teardown).
func (c *PlayerAttack) Stop() {
	c.running = false
	if c.chase != nil {
		c.endChase(c.chase, true)
	}
}

// CurrentIntention returns derived intention
func (c *PlayerAttack) CurrentIntention() model.Intention {
	if c.chase != nil {
		return model.IntentionChase
	}
	return model.IntentionIdle
}

// Target returns the target of the active chase or nil.
func (c *PlayerAttack) Target() combat.Attackable {
	if c.chase == nil {
		return nil
	}
	return c.chase.target
}

// Attack orders an attack on target. Returns false if rejected.
func (c *PlayerAttack) Attack(target combat.Attackable) bool {
	if !c.running || !combat.IsAlive(target) {
		return false
	}

	if c.queue == nil && !c.agg.WithinRange(target) {
		slog.Info("target out of range",
			"object", c.owner.Name(),
			"target", target.Object().Name())
		return false
	}

	if c.queue != nil {
		c.queue.RemoveKind(model.DestPlayerSet)
	}

	// Previous order is superseded: drop its chase, the new session takes
	// over the target.
	if c.chase != nil {
		c.endChase(c.chase, false)
	}

	slog.Info("player attack",
		"object", c.owner.Name(),
		"target", target.Object().Name())

	c.agg.Attack(target)
	c.chase = newChase(c.agg, func(ch *chase) { c.endChase(ch, true) })
	c.stepChase(c.chase)
	return true
}

// Tick advances the chase.
func (c *PlayerAttack) Tick(time.Duration) {
	if !c.running || c.chase == nil {
		return
	}
	c.stepChase(c.chase)
}

func (c *PlayerAttack) stepChase(ch *chase) {
	if !ch.owns(c.agg) || !combat.IsAlive(ch.target) || !c.reachable(ch.target) {
		c.endChase(ch, true)
		return
	}
	if c.queue == nil {
		return
	}

	if !c.agg.WithinWeaponRange(ch.target) {
		pos := ch.target.Object().Location()
		if ch.dest == nil || ch.dest.Position != pos || c.queue.Current() != ch.dest {
			ch.dest = model.NewDestination(pos, model.DestPlayerAttack)
			c.queue.Add(ch.dest)
		}
		return
	}
	c.queue.RemoveKind(model.DestPlayerAttack)
}

// reachable := within weapon range OR (immovable AND tracked) OR
// (movable AND no player move order).
func (c *PlayerAttack) reachable(target combat.Attackable) bool {
	if c.agg.WithinWeaponRange(target) {
		return true
	}
	if c.queue == nil {
		return c.agg.WithinRange(target)
	}
	return !c.queue.HasKind(model.DestPlayerSet)
}

func (c *PlayerAttack) endChase(ch *chase, release bool) {
	if !ch.finish() {
		return
	}
	if c.chase == ch {
		c.chase = nil
	}

	if release && c.agg.Session() == ch.session {
		c.agg.Release(ch.target)
	}
	if c.queue != nil {
		c.queue.Remove(ch.dest)
	}

	if IsDebugEnabled() {
		slog.Debug("player chase ended",
			"object", c.owner.Name(),
			"target", ch.target.Object().Name())
	}
}
