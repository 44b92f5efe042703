package ai

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/skirmish/internal/combat"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/movement"
)

// ErrInvalidAutoAttack is returned when auto-attack geometry cannot work:
// a target acquired at AttackRange must be hittable before the chase limit.
var ErrInvalidAutoAttack = errors.New("invalid auto attack config")

// AutoAttackConfig holds auto-attack distances.
type AutoAttackConfig struct {
	// AttackRange - max distance to acquire a target automatically (strict).
	AttackRange float64
	// ChaseRange - max distance from the return position while chasing (strict).
	ChaseRange float64
}

// AutoAttack is the autonomous combat policy of one aggressive entity.
//
// Idle → Chasing: no session target and an enemy within AttackRange.
// Chasing: move toward the target until within weapon range, stand and fire.
// Chasing → Returning: chase predicate fails; walk back to the return position.
// Returning → Idle: return reached or preempted by a player order.
//
// queue is nil for immovable entities (turrets): they only fire.
type AutoAttack struct {
	owner *model.WorldObject
	agg   *combat.Aggressive
	queue *movement.Queue
	cfg   AutoAttackConfig

	running bool
	chase   *chase

	returnPos   *model.Location
	cancelWatch func()
}

// NewAutoAttack creates auto-attack controller. agg must have a tracker.
func NewAutoAttack(agg *combat.Aggressive, queue *movement.Queue, cfg AutoAttackConfig) (*AutoAttack, error) {
	if agg == nil || agg.Tracker() == nil {
		return nil, fmt.Errorf("%w: aggressive with range tracker required", ErrInvalidAutoAttack)
	}
	if cfg.ChaseRange+agg.Weapon().Range <= cfg.AttackRange {
		return nil, fmt.Errorf("%w: chase %.2f + weapon %.2f <= attack %.2f",
			ErrInvalidAutoAttack, cfg.ChaseRange, agg.Weapon().Range, cfg.AttackRange)
	}

	return &AutoAttack{
		owner: agg.Owner(),
		agg:   agg,
		queue: queue,
		cfg:   cfg,
	}, nil
}

// Start starts the controller
func (c *AutoAttack) Start() {
	c.running = true

	if IsDebugEnabled() {
		slog.Debug("auto attack started",
			"object", c.owner.Name(),
			"attackRange", c.cfg.AttackRange,
			"chaseRange", c.cfg.ChaseRange)
	}
}

// Stop ends the chase without returning and forgets the return position.
func (c *AutoAttack) Stop() {
	c.running = false
	if c.chase != nil {
		c.endChase(c.chase, false)
	}
	c.clearReturn()
}

// CurrentIntention returns derived intention
func (c *AutoAttack) CurrentIntention() model.Intention {
	switch {
	case c.chase != nil:
		return model.IntentionChase
	case c.queue != nil && c.queue.HasKind(model.DestAutoAttackReturn):
		return model.IntentionReturn
	default:
		return model.IntentionIdle
	}
}

// ReturnPosition returns stored return position.
func (c *AutoAttack) ReturnPosition() (model.Location, bool) {
	if c.returnPos == nil {
		return model.Location{}, false
	}
	return *c.returnPos, true
}

// Tick advances the chase or acquires a new target.
func (c *AutoAttack) Tick(time.Duration) {
	if !c.running {
		return
	}

	if c.chase != nil {
		c.stepChase(c.chase)
		return
	}

	if c.agg.Target() != nil {
		return
	}
	if target := c.findTarget(); target != nil {
		c.start(target)
	}
}

// findTarget picks the nearest tracked enemy strictly within AttackRange.
// Equal distances resolve to the earliest tracked one.
func (c *AutoAttack) findTarget() combat.Attackable {
	var best combat.Attackable
	bestDist := math.MaxFloat64

	for _, enemy := range c.agg.Tracker().Members() {
		if !combat.IsAlive(enemy) {
			continue
		}
		d := c.owner.DistanceTo(enemy.Object())
		if d < c.cfg.AttackRange && d < bestDist {
			best, bestDist = enemy, d
		}
	}
	return best
}

func (c *AutoAttack) start(target combat.Attackable) {
	if IsDebugEnabled() {
		slog.Debug("auto attacking",
			"object", c.owner.Name(),
			"target", target.Object().Name())
	}

	c.agg.Attack(target)

	if c.queue != nil {
		if cur := c.queue.Current(); cur != nil && cur.Kind == model.DestPlayerSet {
			pos := cur.Position
			c.returnPos = &pos
		} else if c.returnPos == nil {
			pos := c.owner.Location()
			c.returnPos = &pos
		}
	}

	c.chase = newChase(c.agg, func(ch *chase) { c.endChase(ch, true) })
	c.stepChase(c.chase)
}

func (c *AutoAttack) stepChase(ch *chase) {
	if !ch.owns(c.agg) || !combat.IsAlive(ch.target) || !c.reachable(ch.target) {
		c.endChase(ch, true)
		return
	}
	if c.queue == nil {
		return
	}

	if !c.agg.WithinWeaponRange(ch.target) {
		ch.dest = c.addChaseDest(ch.target.Object().Location())
		return
	}
	c.queue.RemoveKind(model.DestAutoAttack)
	c.queue.RemoveKind(model.DestAutoAttackReturn)
}

// reachable := within weapon range OR (no player move AND still within
// chase range of the return position).
func (c *AutoAttack) reachable(target combat.Attackable) bool {
	if c.agg.WithinWeaponRange(target) {
		return true
	}
	if c.queue == nil || c.queue.HasKind(model.DestPlayerSet) || c.returnPos == nil {
		return false
	}
	return c.owner.Location().Distance(*c.returnPos) < c.cfg.ChaseRange
}

// addChaseDest re-targets the chase only when the target moved.
func (c *AutoAttack) addChaseDest(pos model.Location) *model.Destination {
	if cur := c.queue.Current(); cur != nil && cur.Kind == model.DestAutoAttack && cur.Position == pos {
		return cur
	}
	dest := model.NewDestination(pos, model.DestAutoAttack)
	c.queue.Add(dest)
	return dest
}

func (c *AutoAttack) endChase(ch *chase, allowReturn bool) {
	if !ch.finish() {
		return
	}
	if c.chase == ch {
		c.chase = nil
	}

	if c.agg.Session() == ch.session {
		c.agg.Release(ch.target)
	}

	if IsDebugEnabled() {
		slog.Debug("auto chase ended",
			"object", c.owner.Name(),
			"target", ch.target.Object().Name())
	}

	if c.queue == nil {
		return
	}
	c.queue.Remove(ch.dest)
	if allowReturn && c.running && c.queue.Current() == nil && c.returnPos != nil {
		c.addReturn()
	}
}

func (c *AutoAttack) addReturn() {
	h := c.queue.Add(model.NewDestination(*c.returnPos, model.DestAutoAttackReturn))
	if h == nil {
		return
	}

	if c.cancelWatch != nil {
		c.cancelWatch()
	}
	cancelHandle := h.OnResolved(func(reached bool) {
		if reached {
			c.clearReturn()
		}
	})
	cancelQueue := c.queue.OnChange(func(dest *model.Destination) {
		if dest != nil && dest.Kind > model.DestAutoAttack {
			c.clearReturn()
		}
	})
	c.cancelWatch = func() {
		cancelHandle()
		cancelQueue()
	}

	slog.Debug("auto attack returning",
		"object", c.owner.Name(),
		"to", *c.returnPos)
}

func (c *AutoAttack) clearReturn() {
	c.returnPos = nil
	if c.cancelWatch != nil {
		c.cancelWatch()
		c.cancelWatch = nil
	}
}
