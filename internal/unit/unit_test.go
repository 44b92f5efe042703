package unit

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/ai"
	"github.com/udisondev/skirmish/internal/building"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/movement"
	"github.com/udisondev/skirmish/internal/proximity"
)

type recView struct {
	NopView
	selected  []bool
	moves     []model.Location
	attacks   []model.Location
	targeted  int
	teams     []model.TeamID
	hp        []float64
	destroyed int
}

func (v *recView) Selected(s bool)              { v.selected = append(v.selected, s) }
func (v *recView) Move(pos model.Location)      { v.moves = append(v.moves, pos) }
func (v *recView) Attack(at model.Location)     { v.attacks = append(v.attacks, at) }
func (v *recView) Targeted()                    { v.targeted++ }
func (v *recView) SetTeam(team model.TeamID)    { v.teams = append(v.teams, team) }
func (v *recView) HPChanged(hp, _ float64)      { v.hp = append(v.hp, hp) }
func (v *recView) Destroyed()                   { v.destroyed++ }

var spear = model.Weapon{Damage: 5, Period: time.Second, Range: 2}

func newSoldier(t *testing.T, id uint32, team model.TeamID, x float64) (*Unit, *recView) {
	t.Helper()
	obj := model.NewWorldObject(id, fmt.Sprintf("soldier-%d", id), model.NewLocation(x, 0, 0), team)
	view := &recView{}
	u, err := NewUnit(obj, 10, view,
		WithAgent(movement.NewAgent(obj, 5, movement.Bounds{})),
		WithWeapon(spear, 8),
		WithAutoAttack(ai.AutoAttackConfig{AttackRange: 6, ChaseRange: 6}),
		WithPlayerAttack(),
	)
	require.NoError(t, err)
	for _, c := range u.Controllers() {
		c.Start()
	}
	return u, view
}

func TestNewUnit_ControllerWithoutWeapon(t *testing.T) {
	obj := model.NewWorldObject(1, "peasant", model.Location{}, 1)
	_, err := NewUnit(obj, 10, nil, WithPlayerAttack())
	assert.ErrorIs(t, err, ErrNotArmed)

	_, err = NewUnit(obj, 10, nil, WithAgent(nil))
	assert.ErrorIs(t, err, movement.ErrNilNavigator)
}

func TestNewUnit_InvalidAutoAttack(t *testing.T) {
	obj := model.NewWorldObject(1, "archer", model.Location{}, 1)
	_, err := NewUnit(obj, 10, nil,
		WithWeapon(spear, 8),
		WithAutoAttack(ai.AutoAttackConfig{AttackRange: 20, ChaseRange: 1}),
	)
	assert.ErrorIs(t, err, ai.ErrInvalidAutoAttack)
}

func TestUnit_OnMove(t *testing.T) {
	u, view := newSoldier(t, 1, 1, 0)
	u.OnMove(model.NewLocation(5, 5, 0))

	require.NotNil(t, u.Queue().Current())
	assert.Equal(t, model.DestPlayerSet, u.Queue().Current().Kind)
	assert.Equal(t, []model.Location{model.NewLocation(5, 5, 0)}, view.moves)

	obj := model.NewWorldObject(2, "statue", model.Location{}, 1)
	statue, err := NewUnit(obj, 10, nil)
	require.NoError(t, err)
	statue.OnMove(model.NewLocation(1, 1, 0))
	assert.Nil(t, statue.Queue())
}

func TestUnit_OnAttack(t *testing.T) {
	u, view := newSoldier(t, 1, 1, 0)
	friend, _ := newSoldier(t, 2, 1, 1)
	enemy, _ := newSoldier(t, 3, 2, 10)

	u.OnAttack(friend)
	assert.Nil(t, u.Aggressive().Target(), "same team rejected")

	u.OnAttack(enemy)
	assert.Same(t, enemy, u.Aggressive().Target())
	assert.Equal(t, []model.Location{model.NewLocation(10, 0, 0)}, view.attacks)
	assert.True(t, u.Queue().HasKind(model.DestPlayerAttack))
}

func TestUnit_OnAttackUnarmed(t *testing.T) {
	obj := model.NewWorldObject(1, "peasant", model.Location{}, 1)
	peasant, err := NewUnit(obj, 10, nil)
	require.NoError(t, err)
	enemy, _ := newSoldier(t, 2, 2, 1)

	peasant.OnAttack(enemy)
	assert.Empty(t, peasant.Controllers())
}

func TestUnit_TeamChange(t *testing.T) {
	u, view := newSoldier(t, 1, 1, 0)
	other, _ := newSoldier(t, 2, 2, 1)
	u.Aggressive().Tracker().Enter(other)

	u.OnTeamChanged(1)
	assert.Empty(t, view.teams, "unchanged team is silent")

	u.OnTeamChanged(7)
	assert.Equal(t, model.MaxTeam, u.Object().Team(), "clamped")
	assert.Equal(t, []model.TeamID{model.MaxTeam}, view.teams)
	assert.Zero(t, u.Aggressive().Tracker().Len(), "former enemy is now a friend")
}

func TestUnit_DeathRetiresOnce(t *testing.T) {
	u, view := newSoldier(t, 1, 1, 0)
	retired := 0
	u.OnRetire(func() { retired++ })

	u.Health().ApplyDamage(4)
	u.Health().ApplyDamage(6)
	u.Health().ApplyDamage(6)

	assert.True(t, u.Retired())
	assert.Equal(t, 1, retired)
	assert.Equal(t, []float64{6, 0}, view.hp, "bar sees every value including zero")
	assert.False(t, u.Retire(), "second retire is a no-op")
}

func TestUnit_DestroyReleases(t *testing.T) {
	u, view := newSoldier(t, 1, 1, 0)
	enemy, _ := newSoldier(t, 2, 2, 10)
	u.OnAttack(enemy)

	for _, c := range u.Controllers() {
		c.Stop()
	}
	u.Destroy()

	assert.Nil(t, u.Aggressive().Target())
	assert.Nil(t, u.Queue().Current())
	assert.Zero(t, u.Aggressive().Tracker().Len())
	assert.Equal(t, 1, view.destroyed)
}

func TestUnit_SensorFeedsTracker(t *testing.T) {
	u, _ := newSoldier(t, 1, 1, 0)
	enemy, _ := newSoldier(t, 2, 2, 5)
	friend, _ := newSoldier(t, 3, 1, 5)

	field := proximity.NewField(0)
	for _, s := range []*Unit{u, enemy, friend} {
		require.NoError(t, field.AddBody(s.Body()))
	}
	field.AddSensor(u.Sensor())
	field.Update()

	assert.True(t, u.Aggressive().WithinRange(enemy))
	assert.False(t, u.Aggressive().WithinRange(friend))

	enemy.Object().SetLocation(model.NewLocation(50, 0, 0))
	field.Update()
	assert.False(t, u.Aggressive().WithinRange(enemy))
}

type wallet struct {
	funds map[model.TeamID]int
}

var errBroke = errors.New("broke")

func (w *wallet) Spend(team model.TeamID, amount int) error {
	if w.funds[team] < amount {
		return errBroke
	}
	w.funds[team] -= amount
	return nil
}

func TestBuilding_Order(t *testing.T) {
	spawned := 0
	cat, err := building.NewCatalogue(
		building.Activity{Title: "soldier", Duration: 3 * time.Second, Cost: 10, Effect: func() { spawned++ }},
	)
	require.NoError(t, err)

	w := &wallet{funds: map[model.TeamID]int{1: 15}}
	obj := model.NewWorldObject(10, "barracks", model.Location{}, 1)
	b, err := NewBuilding(obj, 100, nil, WithCatalogue(cat), WithTreasury(w))
	require.NoError(t, err)

	require.NoError(t, b.Order(0))
	assert.Equal(t, 5, w.funds[1])

	err = b.Order(0)
	assert.ErrorIs(t, err, errBroke)
	assert.Equal(t, 1, b.Activities().Len(), "rejected order is not queued")

	assert.ErrorIs(t, b.Order(3), ErrUnknownActivity)

	for range 3 {
		b.TickActivities(time.Second)
	}
	assert.Equal(t, 1, spawned)
	assert.Zero(t, b.Activities().Len())
}

func TestBuilding_Immovable(t *testing.T) {
	obj := model.NewWorldObject(10, "farm", model.Location{}, 1)
	b, err := NewBuilding(obj, 100, nil)
	require.NoError(t, err)

	b.OnMove(model.NewLocation(5, 5, 0))
	assert.Equal(t, model.Location{}, b.Object().Location())
	assert.Nil(t, b.Aggressive())
	assert.Nil(t, b.Sensor())
}

func TestBuilding_Turret(t *testing.T) {
	obj := model.NewWorldObject(10, "tower", model.Location{}, 1)
	bow := model.Weapon{Damage: 2, Period: time.Second, Range: 6}
	tower, err := NewBuilding(obj, 100, nil, WithTurret(bow, ai.AutoAttackConfig{AttackRange: 6, ChaseRange: 1}))
	require.NoError(t, err)
	require.Len(t, tower.Controllers(), 2)
	assert.Equal(t, 6.0, tower.Sensor().Radius())

	enemy, _ := newSoldier(t, 2, 2, 4)
	for _, c := range tower.Controllers() {
		c.Start()
	}

	tower.OnAttack(enemy)
	assert.False(t, tower.Aggressive().WithinRange(enemy), "not sensed yet")
	assert.Nil(t, tower.Aggressive().Target())

	tower.Aggressive().Tracker().Enter(enemy)
	tower.OnAttack(enemy)
	assert.Same(t, enemy, tower.Aggressive().Target())

	tower.TickCombat(0)
	assert.Equal(t, 8.0, enemy.Health().CurrentHP())
}
