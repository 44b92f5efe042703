package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/skirmish/internal/model"
)

func TestRangeTracker_EnterFiltersTeams(t *testing.T) {
	owner := newDummy(1, 1, 0, 10)
	tr := NewRangeTracker(owner.obj)

	friend := newDummy(2, 1, 1, 10)
	neutral := newDummy(3, model.TeamNeutral, 1, 10)
	enemy := newDummy(4, 2, 1, 10)

	assert.False(t, tr.Enter(friend), "own team")
	assert.False(t, tr.Enter(neutral), "neutral")
	assert.False(t, tr.Enter(nil))
	assert.True(t, tr.Enter(enemy))
	assert.False(t, tr.Enter(enemy), "already tracked")

	assert.Equal(t, 1, tr.Len())
	assert.True(t, tr.Contains(enemy))
	assert.False(t, tr.Contains(friend))
}

func TestRangeTracker_DeadNotAdded(t *testing.T) {
	tr := NewRangeTracker(newDummy(1, 1, 0, 10).obj)
	corpse := newDummy(2, 2, 1, 10)
	corpse.hp.ApplyDamage(10)

	assert.False(t, tr.Enter(corpse))
}

func TestRangeTracker_DeathRemoves(t *testing.T) {
	tr := NewRangeTracker(newDummy(1, 1, 0, 10).obj)
	a := newDummy(2, 2, 1, 10)
	b := newDummy(3, 2, 2, 10)
	tr.Enter(a)
	tr.Enter(b)

	a.hp.ApplyDamage(4)
	assert.True(t, tr.Contains(a), "still alive")

	a.hp.ApplyDamage(6)
	assert.False(t, tr.Contains(a))
	assert.Equal(t, []Attackable{b}, tr.Members())
}

func TestRangeTracker_ExitCancelsDeathWatch(t *testing.T) {
	tr := NewRangeTracker(newDummy(1, 1, 0, 10).obj)
	a := newDummy(2, 2, 1, 10)
	tr.Enter(a)

	assert.True(t, tr.Exit(a))
	assert.False(t, tr.Exit(a))

	// Re-entering after exit subscribes once again.
	tr.Enter(a)
	a.hp.ApplyDamage(10)
	assert.Zero(t, tr.Len())
}

func TestRangeTracker_MembersInsertionOrder(t *testing.T) {
	tr := NewRangeTracker(newDummy(1, 1, 0, 10).obj)
	c := newDummy(4, 2, 3, 10)
	a := newDummy(2, 2, 1, 10)
	b := newDummy(3, 2, 2, 10)
	tr.Enter(c)
	tr.Enter(a)
	tr.Enter(b)

	members := tr.Members()
	assert.Equal(t, []Attackable{c, a, b}, members)

	members[0] = nil
	assert.Equal(t, c, tr.Members()[0], "Members returns a copy")
}

func TestRangeTracker_Prune(t *testing.T) {
	owner := newDummy(1, 1, 0, 10)
	tr := NewRangeTracker(owner.obj)
	a := newDummy(2, 2, 1, 10)
	b := newDummy(3, 1, 1, 10)
	tr.Enter(a)

	owner.obj.SetTeam(2)
	tr.Prune()
	assert.Zero(t, tr.Len(), "never holds own team")

	assert.True(t, tr.Enter(b))
}

func TestRangeTracker_Clear(t *testing.T) {
	tr := NewRangeTracker(newDummy(1, 1, 0, 10).obj)
	a := newDummy(2, 2, 1, 10)
	tr.Enter(a)

	tr.Clear()
	assert.Zero(t, tr.Len())

	a.hp.ApplyDamage(10)
	assert.Zero(t, tr.Len())
}
