package unit

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/skirmish/internal/ai"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/movement"
	"github.com/udisondev/skirmish/internal/selection"
)

// ErrNotArmed is returned when a controller option is applied before WithWeapon.
var ErrNotArmed = errors.New("unit: controller requires a weapon")

// Unit is a movable entity, optionally aggressive.
type Unit struct {
	*core

	agent *movement.Agent
	queue *movement.Queue
}

// UnitOption configures a Unit at spawn.
type UnitOption func(*Unit) error

// WithAgent makes the unit movable, driven by agent.
func WithAgent(agent *movement.Agent) UnitOption {
	return func(u *Unit) error {
		if agent == nil {
			return movement.ErrNilNavigator
		}
		q, err := movement.NewQueue(u.obj, agent)
		if err != nil {
			return err
		}
		u.agent = agent
		u.queue = q
		return nil
	}
}

// WithWeapon arms the unit. sensing is the detection radius.
func WithWeapon(w model.Weapon, sensing float64) UnitOption {
	return func(u *Unit) error {
		return u.armCombat(w, sensing)
	}
}

// WithAutoAttack adds the autonomous combat policy.
func WithAutoAttack(cfg ai.AutoAttackConfig) UnitOption {
	return func(u *Unit) error {
		if u.agg == nil {
			return ErrNotArmed
		}
		auto, err := ai.NewAutoAttack(u.agg, u.queue, cfg)
		if err != nil {
			return err
		}
		u.auto = auto
		return nil
	}
}

// WithPlayerAttack adds the player-ordered combat policy.
func WithPlayerAttack() UnitOption {
	return func(u *Unit) error {
		if u.agg == nil {
			return ErrNotArmed
		}
		u.player = ai.NewPlayerAttack(u.agg, u.queue)
		return nil
	}
}

// NewUnit creates a unit. Options apply in order: movement before weapon
// before controllers.
func NewUnit(obj *model.WorldObject, maxHP float64, view View, opts ...UnitOption) (*Unit, error) {
	u := &Unit{}
	u.core = newCore(obj, maxHP, view, u)

	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, fmt.Errorf("unit %s: %w", obj.Name(), err)
		}
	}
	return u, nil
}

// Queue returns destination queue (nil if immovable).
func (u *Unit) Queue() *movement.Queue { return u.queue }

// Agent returns navigation agent (nil if immovable).
func (u *Unit) Agent() *movement.Agent { return u.agent }

// OnMove orders a player move.
func (u *Unit) OnMove(pos model.Location) {
	if u.queue == nil {
		slog.Info(fmt.Sprintf("%s can't move", u.obj.Name()))
		return
	}
	if u.queue.Add(model.NewDestination(pos, model.DestPlayerSet)) != nil {
		u.view.Move(pos)
	}
}

// OnAttack orders a player attack.
func (u *Unit) OnAttack(target selection.Selectable) {
	u.attack(target)
}

// TickMovement checks arrival and moves the agent by dt.
func (u *Unit) TickMovement(dt time.Duration) {
	if u.queue == nil || u.retired {
		return
	}
	u.queue.Tick()
	u.agent.Step(dt.Seconds())
}

// Destroy releases everything the unit holds.
func (u *Unit) Destroy() {
	if u.queue != nil {
		u.queue.Clear()
	}
	u.destroy()
}
