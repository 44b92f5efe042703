package ai

import (
	"fmt"
	"testing"
	"time"

	"github.com/udisondev/skirmish/internal/combat"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/movement"
)

const tickDT = 100 * time.Millisecond

// fighter is a minimal movable aggressive entity wired by hand.
type fighter struct {
	obj   *model.WorldObject
	hp    *model.Health
	agent *movement.Agent
	queue *movement.Queue
	agg   *combat.Aggressive
}

func (f *fighter) Object() *model.WorldObject { return f.obj }
func (f *fighter) Health() *model.Health      { return f.hp }

func newFighter(t *testing.T, id uint32, team model.TeamID, x, y float64, w model.Weapon, movable bool) *fighter {
	t.Helper()

	f := &fighter{
		obj: model.NewWorldObject(id, fmt.Sprintf("fighter-%d", id), model.NewLocation(x, y, 0), team),
		hp:  model.NewHealth(10),
	}
	if movable {
		f.agent = movement.NewAgent(f.obj, 5, movement.Bounds{})
		q, err := movement.NewQueue(f.obj, f.agent)
		if err != nil {
			t.Fatalf("NewQueue: %v", err)
		}
		f.queue = q
	}

	agg, err := combat.NewAggressive(f.obj, w, combat.NewRangeTracker(f.obj))
	if err != nil {
		t.Fatalf("NewAggressive: %v", err)
	}
	f.agg = agg
	return f
}

// arena steps fighters in simulation order: movement, controllers, sessions.
type arena struct {
	now      time.Duration
	fighters []*fighter
	mgr      *TickManager
}

func newArena(fighters ...*fighter) *arena {
	return &arena{fighters: fighters, mgr: NewTickManager()}
}

func (a *arena) step() {
	a.now += tickDT
	for _, f := range a.fighters {
		if f.queue != nil {
			f.queue.Tick()
			f.agent.Step(tickDT.Seconds())
		}
	}
	a.mgr.TickAll(a.now)
	for _, f := range a.fighters {
		if f.hp.IsAlive() {
			f.agg.Tick(a.now)
		}
	}
}

func (a *arena) run(ticks int) {
	for range ticks {
		a.step()
	}
}

var (
	sword = model.Weapon{Damage: 1, Period: time.Second, Range: model.MeleeRange}
	bow   = model.Weapon{Damage: 1, Period: time.Second, Range: 6}
)
