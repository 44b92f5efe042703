package unit

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/skirmish/internal/ai"
	"github.com/udisondev/skirmish/internal/building"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/selection"
)

// ErrUnknownActivity is returned when ordering an index outside the catalogue.
var ErrUnknownActivity = errors.New("building: unknown activity")

// Treasury spends team funds.
type Treasury interface {
	Spend(team model.TeamID, amount int) error
}

// Building is an immovable entity producing activities; turrets also carry
// a weapon.
type Building struct {
	*core

	catalogue *building.Catalogue
	queue     *building.Queue
	treasury  Treasury
}

// BuildingOption configures a Building at spawn.
type BuildingOption func(*Building) error

// WithCatalogue sets the orderable activities.
func WithCatalogue(c *building.Catalogue) BuildingOption {
	return func(b *Building) error {
		b.catalogue = c
		return nil
	}
}

// WithTreasury sets where order costs are spent.
func WithTreasury(t Treasury) BuildingOption {
	return func(b *Building) error {
		b.treasury = t
		return nil
	}
}

// WithTurret arms the building with auto and player attack.
func WithTurret(w model.Weapon, cfg ai.AutoAttackConfig) BuildingOption {
	return func(b *Building) error {
		if err := b.armCombat(w, max(cfg.AttackRange, w.Range)); err != nil {
			return err
		}
		auto, err := ai.NewAutoAttack(b.agg, nil, cfg)
		if err != nil {
			return err
		}
		b.auto = auto
		b.player = ai.NewPlayerAttack(b.agg, nil)
		return nil
	}
}

// NewBuilding creates a building.
func NewBuilding(obj *model.WorldObject, maxHP float64, view View, opts ...BuildingOption) (*Building, error) {
	b := &Building{queue: building.NewQueue()}
	b.core = newCore(obj, maxHP, view, b)

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("building %s: %w", obj.Name(), err)
		}
	}
	return b, nil
}

// Activities returns the production queue.
func (b *Building) Activities() *building.Queue { return b.queue }

// Catalogue returns orderable activities (may be nil).
func (b *Building) Catalogue() *building.Catalogue { return b.catalogue }

// Order pays for catalogue activity index and queues it.
func (b *Building) Order(index int) error {
	activity, ok := b.catalogue.Get(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownActivity, index)
	}
	if b.treasury != nil && activity.Cost > 0 {
		if err := b.treasury.Spend(b.obj.Team(), activity.Cost); err != nil {
			slog.Info("order rejected",
				"building", b.obj.Name(),
				"activity", activity.Title,
				"error", err)
			return fmt.Errorf("order %s: %w", activity.Title, err)
		}
	}
	b.queue.Add(activity)
	return nil
}

// OnMove is rejected: buildings never move.
func (b *Building) OnMove(model.Location) {
	slog.Info(fmt.Sprintf("%s can't move", b.obj.Name()))
}

// OnAttack orders a turret attack.
func (b *Building) OnAttack(target selection.Selectable) {
	b.attack(target)
}

// TickActivities advances production by dt.
func (b *Building) TickActivities(dt time.Duration) {
	if b.retired {
		return
	}
	b.queue.Advance(dt)
}

// Destroy releases everything the building holds.
func (b *Building) Destroy() {
	b.destroy()
}
