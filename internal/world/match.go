package world

import (
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/selection"
	"github.com/udisondev/skirmish/internal/unit"
)

// ErrInsufficientFunds is returned by Spend when a team can't pay.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Match tracks per-team state of one skirmish: rosters, funds and kills.
// Implements selection.Roster and unit.Treasury.
//
// Not thread-safe: owned by the simulation goroutine.
type Match struct {
	localTeam model.TeamID

	rosters map[model.TeamID][]selection.Selectable
	funds   map[model.TeamID]int
	kills   map[model.TeamID]int
}

// NewMatch creates a match where every player team starts with funds.
func NewMatch(localTeam model.TeamID, funds int) *Match {
	m := &Match{
		localTeam: model.ClampTeam(localTeam),
		rosters:   make(map[model.TeamID][]selection.Selectable),
		funds:     make(map[model.TeamID]int),
		kills:     make(map[model.TeamID]int),
	}
	for team := model.TeamNeutral + 1; team <= model.MaxTeam; team++ {
		m.funds[team] = funds
	}
	return m
}

// LocalTeam implements selection.Roster.
func (m *Match) LocalTeam() model.TeamID {
	return m.localTeam
}

// LocalUnits implements selection.Roster: movable entities of the local team.
func (m *Match) LocalUnits() []selection.Selectable {
	var out []selection.Selectable
	for _, sel := range m.rosters[m.localTeam] {
		if _, ok := sel.(*unit.Unit); ok {
			out = append(out, sel)
		}
	}
	return out
}

// Join adds sel to the roster of its current team.
func (m *Match) Join(sel selection.Selectable) {
	team := sel.Object().Team()
	if slices.Contains(m.rosters[team], sel) {
		return
	}
	m.rosters[team] = append(m.rosters[team], sel)
}

// Leave removes sel from whichever roster holds it.
func (m *Match) Leave(sel selection.Selectable) {
	for team, roster := range m.rosters {
		if i := slices.Index(roster, sel); i >= 0 {
			m.rosters[team] = slices.Delete(roster, i, i+1)
			return
		}
	}
}

// Roster returns a copy of the team roster.
func (m *Match) Roster(team model.TeamID) []selection.Selectable {
	return slices.Clone(m.rosters[team])
}

// Funds returns team balance.
func (m *Match) Funds(team model.TeamID) int {
	return m.funds[team]
}

// Deposit credits team.
func (m *Match) Deposit(team model.TeamID, amount int) {
	m.funds[team] += amount
}

// Spend implements unit.Treasury.
func (m *Match) Spend(team model.TeamID, amount int) error {
	if amount < 0 {
		return fmt.Errorf("spend: negative amount %d", amount)
	}
	if m.funds[team] < amount {
		return fmt.Errorf("%w: team %d has %d, needs %d", ErrInsufficientFunds, team, m.funds[team], amount)
	}
	m.funds[team] -= amount
	return nil
}

// RecordKill credits a kill to team.
func (m *Match) RecordKill(team model.TeamID) {
	m.kills[team]++
}

// Kills returns kills credited to team.
func (m *Match) Kills(team model.TeamID) int {
	return m.kills[team]
}

// Winner returns the only player team with entities left.
// ok is false while two or more teams are still standing, or none is.
func (m *Match) Winner() (team model.TeamID, ok bool) {
	for t := model.TeamNeutral + 1; t <= model.MaxTeam; t++ {
		if len(m.rosters[t]) == 0 {
			continue
		}
		if ok {
			return 0, false
		}
		team, ok = t, true
	}
	return team, ok
}
