package world

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/config"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/unit"
)

const step = 100 * time.Millisecond

func testConfig() config.Simulation {
	cfg := config.DefaultSimulation()
	cfg.TickInterval = time.Millisecond
	cfg.Duration = 0
	cfg.StartingFunds = 15
	cfg.Spawns = nil
	cfg.Units = map[string]config.UnitTemplate{
		"soldier": {
			MaxHP:        10,
			Speed:        3,
			Weapon:       &config.WeaponConfig{Damage: 5, Period: time.Second, Range: 2},
			AutoAttack:   &config.AutoAttackConfig{AttackRange: 6, ChaseRange: 6},
			PlayerAttack: true,
		},
		"worker": {MaxHP: 10, Speed: 2},
	}
	cfg.Buildings = map[string]config.BuildingTemplate{
		"barracks": {
			MaxHP: 30,
			Activities: []config.ActivityConfig{
				{Title: "Worker", Duration: 3 * time.Second, Cost: 10, Spawn: "worker"},
			},
		},
	}
	return cfg
}

func newTestSimulation(t *testing.T, opts ...Option) *Simulation {
	t.Helper()
	opts = append([]Option{WithViews(func(string) unit.View { return unit.NopView{} })}, opts...)
	s, err := NewSimulation(testConfig(), opts...)
	require.NoError(t, err)
	return s
}

func spawn(t *testing.T, s *Simulation, template string, team model.TeamID, x, y float64) *unit.Unit {
	t.Helper()
	u, err := s.Spawn(template, team, model.NewLocation(x, y, 0))
	require.NoError(t, err)
	return u
}

func steps(s *Simulation, n int) {
	for range n {
		s.Step(step)
	}
}
