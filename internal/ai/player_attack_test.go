package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/model"
)

func newPlayerAttack(f *fighter) *PlayerAttack {
	c := NewPlayerAttack(f.agg, f.queue)
	c.Start()
	return c
}

func TestPlayerAttack_KillInTwoShots(t *testing.T) {
	a := newFighter(t, 1, 1, 0, 0, axe, true)
	b := newFighter(t, 2, 2, 1, 0, sword, true)

	mgr := NewTickManager()
	pa := NewPlayerAttack(a.agg, a.queue)
	mgr.Register(1, pa)

	require.True(t, pa.Attack(b))
	assert.Nil(t, a.queue.Current(), "already in weapon range")

	mgr.TickAll(0)
	a.agg.Tick(0)
	assert.Equal(t, 5.0, b.hp.CurrentHP())
	assert.Same(t, b, a.agg.Target())

	mgr.TickAll(time.Second)
	a.agg.Tick(time.Second)
	assert.Equal(t, 0.0, b.hp.CurrentHP())
	assert.Nil(t, a.agg.Target(), "target cleared in the tick HP hit zero")
	assert.Equal(t, model.IntentionIdle, pa.CurrentIntention())
}

func TestPlayerAttack_ChaseToDeath(t *testing.T) {
	a := newFighter(t, 1, 1, 0, 0, axe, true)
	b := newFighter(t, 2, 2, 20, 0, sword, false)

	ar := newArena(a)
	pa := NewPlayerAttack(a.agg, a.queue)
	ar.mgr.Register(1, pa)

	require.True(t, pa.Attack(b))
	assert.True(t, a.queue.HasKind(model.DestPlayerAttack))
	assert.Equal(t, model.IntentionChase, pa.CurrentIntention())

	for i := 0; i < 200 && b.hp.IsAlive(); i++ {
		ar.step()
	}

	assert.False(t, b.hp.IsAlive())
	assert.Nil(t, a.agg.Target())
	assert.Nil(t, pa.Target())
	assert.False(t, a.queue.HasKind(model.DestPlayerAttack))
}

func TestPlayerAttack_FollowsMovingTarget(t *testing.T) {
	a := newFighter(t, 1, 1, 0, 0, axe, true)
	b := newFighter(t, 2, 2, 10, 0, sword, false)

	ar := newArena(a)
	pa := NewPlayerAttack(a.agg, a.queue)
	ar.mgr.Register(1, pa)
	require.True(t, pa.Attack(b))

	first := a.queue.Current()
	ar.step()
	assert.Same(t, first, a.queue.Current(), "target did not move")

	b.obj.SetLocation(model.NewLocation(10, 5, 0))
	ar.step()
	require.NotSame(t, first, a.queue.Current())
	assert.Equal(t, model.NewLocation(10, 5, 0), a.queue.Current().Position)
}

func TestPlayerAttack_ImmovableRange(t *testing.T) {
	turret := newFighter(t, 1, 1, 0, 0, bow, false)
	b := newFighter(t, 2, 2, 5, 0, sword, false)
	pa := newPlayerAttack(turret)

	assert.False(t, pa.Attack(b), "not in detection range")
	assert.Nil(t, turret.agg.Target())

	turret.agg.Tracker().Enter(b)
	assert.True(t, pa.Attack(b))
	assert.Same(t, b, turret.agg.Target())
}

func TestPlayerAttack_ImmovableKeepsTrackedTarget(t *testing.T) {
	turret := newFighter(t, 1, 1, 0, 0, bow, false)
	b := newFighter(t, 2, 2, 7, 0, sword, false)
	turret.agg.Tracker().Enter(b)

	ar := newArena(turret, b)
	pa := NewPlayerAttack(turret.agg, nil)
	ar.mgr.Register(1, pa)

	require.True(t, pa.Attack(b))
	assert.Same(t, b, turret.agg.Target(), "tracked target kept outside weapon range")

	ar.step()
	assert.Same(t, b, pa.Target())
	assert.Equal(t, 10.0, b.hp.CurrentHP())

	b.obj.SetLocation(model.NewLocation(5, 0, 0))
	ar.step()
	assert.Equal(t, 9.0, b.hp.CurrentHP())

	turret.agg.Tracker().Exit(b)
	b.obj.SetLocation(model.NewLocation(7, 0, 0))
	ar.step()
	assert.Nil(t, pa.Target())
	assert.Nil(t, turret.agg.Target())
}

func TestPlayerAttack_RejectsDead(t *testing.T) {
	a := newFighter(t, 1, 1, 0, 0, axe, true)
	b := newFighter(t, 2, 2, 1, 0, sword, false)
	b.hp.ApplyDamage(100)

	pa := newPlayerAttack(a)
	assert.False(t, pa.Attack(b))
	assert.False(t, pa.Attack(nil))
}

func TestPlayerAttack_ClearsPlayerMove(t *testing.T) {
	a := newFighter(t, 1, 1, 0, 0, axe, true)
	b := newFighter(t, 2, 2, 1, 0, sword, false)
	move := model.NewDestination(model.NewLocation(0, 30, 0), model.DestPlayerSet)
	require.NotNil(t, a.queue.Add(move))

	pa := newPlayerAttack(a)
	require.True(t, pa.Attack(b))
	assert.False(t, a.queue.HasKind(model.DestPlayerSet))
}

func TestPlayerAttack_MoveOrderStopsChase(t *testing.T) {
	a := newFighter(t, 1, 1, 0, 0, axe, true)
	b := newFighter(t, 2, 2, 20, 0, sword, false)

	ar := newArena(a)
	pa := NewPlayerAttack(a.agg, a.queue)
	ar.mgr.Register(1, pa)
	require.True(t, pa.Attack(b))
	ar.step()

	move := model.NewDestination(model.NewLocation(0, -10, 0), model.DestPlayerSet)
	require.NotNil(t, a.queue.Add(move))
	ar.step()

	assert.Nil(t, a.agg.Target())
	assert.Nil(t, pa.Target())
	assert.Same(t, move, a.queue.Current())
}

func TestPlayerAttack_NotBlockedByAutoDestinations(t *testing.T) {
	for _, kind := range []model.DestKind{model.DestAutoAttackReturn, model.DestAutoAttack} {
		t.Run(kind.String(), func(t *testing.T) {
			a := newFighter(t, 1, 1, 0, 0, axe, true)
			b := newFighter(t, 2, 2, 20, 0, sword, false)
			require.NotNil(t, a.queue.Add(model.NewDestination(model.NewLocation(0, 5, 0), kind)))

			pa := newPlayerAttack(a)
			require.True(t, pa.Attack(b))
			assert.True(t, a.queue.HasKind(model.DestPlayerAttack))
		})
	}
}

func TestPlayerAttack_Retarget(t *testing.T) {
	a := newFighter(t, 1, 1, 0, 0, axe, true)
	b := newFighter(t, 2, 2, 20, 0, sword, false)
	c := newFighter(t, 3, 2, -20, 0, sword, false)

	pa := newPlayerAttack(a)
	require.True(t, pa.Attack(b))
	first := a.queue.Current()

	require.True(t, pa.Attack(c))
	assert.Same(t, c, a.agg.Target())
	assert.Same(t, c, pa.Target())
	assert.NotSame(t, first, a.queue.Current())
	assert.Equal(t, model.NewLocation(-20, 0, 0), a.queue.Current().Position)

	// Old target's death does not affect the new chase.
	b.hp.ApplyDamage(100)
	assert.Same(t, c, a.agg.Target())
}

func TestPlayerAttack_OverridesAutoChase(t *testing.T) {
	a := newFighter(t, 1, 1, 0, 0, axe, true)
	near := newFighter(t, 2, 2, 5, 0, sword, false)
	far := newFighter(t, 3, 2, 30, 0, sword, false)
	a.agg.Tracker().Enter(near)

	ar := newArena(a)
	auto := newAuto(t, a, AutoAttackConfig{AttackRange: 8, ChaseRange: 10})
	pa := NewPlayerAttack(a.agg, a.queue)
	ar.mgr.Register(1, pa)
	ar.mgr.Register(1, auto)

	ar.step()
	require.Same(t, near, a.agg.Target())
	require.Equal(t, model.IntentionChase, auto.CurrentIntention())

	require.True(t, pa.Attack(far))
	assert.Same(t, far, a.agg.Target(), "auto cleanup must not release the new target")
	assert.Equal(t, model.IntentionIdle, auto.CurrentIntention())
	assert.True(t, a.queue.HasKind(model.DestPlayerAttack))
	_, ok := auto.ReturnPosition()
	assert.False(t, ok, "player order clears the return position")

	ar.run(5)
	assert.Same(t, far, a.agg.Target(), "auto does not steal a live session")
}

func TestPlayerAttack_Stop(t *testing.T) {
	a := newFighter(t, 1, 1, 0, 0, axe, true)
	b := newFighter(t, 2, 2, 20, 0, sword, false)

	pa := newPlayerAttack(a)
	require.True(t, pa.Attack(b))
	pa.Stop()

	assert.Nil(t, a.agg.Target())
	assert.Nil(t, a.queue.Current())
	assert.False(t, pa.Attack(b), "stopped controller rejects orders")
}
