package unit

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/skirmish/internal/ai"
	"github.com/udisondev/skirmish/internal/combat"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/proximity"
	"github.com/udisondev/skirmish/internal/selection"
)

// core holds what every entity variant shares: identity, health, view and
// the optional combat capabilities.
type core struct {
	obj    *model.WorldObject
	health *model.Health
	view   View

	body   *proximity.Body
	sensor *proximity.Sensor // detection range, nil without weapon
	agg    *combat.Aggressive
	auto   *ai.AutoAttack
	player *ai.PlayerAttack

	retired bool
	retire  model.Signal[struct{}]
	cancels []func()
}

func newCore(obj *model.WorldObject, maxHP float64, view View, self any) *core {
	if view == nil {
		view = NopView{}
	}
	c := &core{
		obj:    obj,
		health: model.NewHealth(maxHP),
		view:   view,
	}
	c.body = proximity.NewBody(obj, self)

	// Registered first: the entity retires before any tracker or session
	// reacts to the same death.
	c.cancels = append(c.cancels,
		c.health.OnChange(func(hp float64) { c.view.HPChanged(hp, c.health.MaxHP()) }),
		c.health.OnDeath(func() { c.Retire() }),
	)
	return c
}

// armCombat wires weapon, detection sensor and controllers.
func (c *core) armCombat(w model.Weapon, sensing float64) error {
	tracker := combat.NewRangeTracker(c.obj)
	agg, err := combat.NewAggressive(c.obj, w, tracker)
	if err != nil {
		return err
	}
	c.agg = agg

	c.sensor = proximity.NewFollowSensor(c.obj, sensing)
	c.sensor.OnEnter(func(b *proximity.Body) {
		if att, ok := b.Payload.(combat.Attackable); ok {
			tracker.Enter(att)
		}
	})
	c.sensor.OnExit(func(b *proximity.Body) {
		if att, ok := b.Payload.(combat.Attackable); ok {
			tracker.Exit(att)
		}
	})
	return nil
}

// Object returns identity and position.
func (c *core) Object() *model.WorldObject { return c.obj }

// Health returns hit points.
func (c *core) Health() *model.Health { return c.health }

// View returns rendering sink.
func (c *core) View() View { return c.view }

// Body returns the proximity body.
func (c *core) Body() *proximity.Body { return c.body }

// Sensor returns the detection sensor (nil without weapon).
func (c *core) Sensor() *proximity.Sensor { return c.sensor }

// Aggressive returns attack session (nil without weapon).
func (c *core) Aggressive() *combat.Aggressive { return c.agg }

// AutoAttack returns auto-attack controller or nil.
func (c *core) AutoAttack() *ai.AutoAttack { return c.auto }

// PlayerAttack returns player-attack controller or nil.
func (c *core) PlayerAttack() *ai.PlayerAttack { return c.player }

// Controllers returns controllers to register with the tick manager.
func (c *core) Controllers() []ai.Controller {
	var out []ai.Controller
	if c.player != nil {
		out = append(out, c.player)
	}
	if c.auto != nil {
		out = append(out, c.auto)
	}
	return out
}

// Retired reports whether the entity is scheduled for destruction.
func (c *core) Retired() bool { return c.retired }

// OnRetire subscribes to retirement (fires once).
func (c *core) OnRetire(fn func()) (cancel func()) {
	return c.retire.Subscribe(func(struct{}) { fn() })
}

// Retire marks the entity for destruction at the end of the tick.
// Returns false if already retired.
func (c *core) Retire() bool {
	if c.retired {
		return false
	}
	c.retired = true
	slog.Info("entity retired", "object", c.obj.Name(), "objectID", c.obj.ObjectID())
	c.retire.Emit(struct{}{})
	c.retire.Reset()
	return true
}

// OnSelected forwards selection to the view.
func (c *core) OnSelected(selected bool) {
	c.view.Selected(selected)
}

// OnTargeted forwards targeting to the view.
func (c *core) OnTargeted() {
	c.view.Targeted()
}

// OnTeamChanged sets team (clamped) and prunes friends from range tracking.
func (c *core) OnTeamChanged(team model.TeamID) {
	if !c.obj.SetTeam(team) {
		return
	}
	c.view.SetTeam(c.obj.Team())
	if c.agg != nil {
		c.agg.Tracker().Prune()
	}
}

// TickCombat fires the weapon.
func (c *core) TickCombat(now time.Duration) {
	if c.agg == nil || c.retired {
		return
	}
	c.agg.Tick(now)
}

// attack validates and issues a player attack order.
func (c *core) attack(target selection.Selectable) {
	att, ok := target.(combat.Attackable)
	if c.player == nil || !ok || target.Object().Team() == c.obj.Team() {
		slog.Info(fmt.Sprintf("%s can't attack %s", c.obj.Name(), target.Object().Name()))
		return
	}
	if c.player.Attack(att) {
		c.view.Attack(target.Object().Location())
	}
}

// destroy releases every capability. Controllers are stopped by the
// tick manager before this runs.
func (c *core) destroy() {
	if c.agg != nil {
		c.agg.Stop()
		c.agg.Tracker().Clear()
	}
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
	c.health.Reset()
	c.view.Destroyed()
}
