package world

import (
	"time"

	"github.com/udisondev/skirmish/internal/ai"
	"github.com/udisondev/skirmish/internal/combat"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/proximity"
	"github.com/udisondev/skirmish/internal/selection"
	"github.com/udisondev/skirmish/internal/unit"
)

// Entity is what the simulation owns: a unit or a building.
type Entity interface {
	selection.Selectable
	Health() *model.Health

	Body() *proximity.Body
	Sensor() *proximity.Sensor
	Aggressive() *combat.Aggressive
	Controllers() []ai.Controller

	OnTeamChanged(team model.TeamID)
	TickCombat(now time.Duration)

	Retired() bool
	Retire() bool
	OnRetire(fn func()) (cancel func())
	Destroy()
}

// HitEvent is a landed shot enriched with teams and tick.
type HitEvent struct {
	combat.HitResult
	AttackerTeam model.TeamID
	TargetTeam   model.TeamID
	Tick         uint64
}

// Recorder receives hit events (persistence, replay).
// Called on the simulation goroutine; must not block.
type Recorder interface {
	RecordHit(HitEvent)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(HitEvent)

// RecordHit implements Recorder.
func (f RecorderFunc) RecordHit(e HitEvent) { f(e) }

// ViewFactory creates the rendering sink for a spawned entity.
type ViewFactory func(name string) unit.View
