package unit

import (
	"log/slog"

	"github.com/udisondev/skirmish/internal/model"
)

// View receives fire-and-forget notifications for the rendering layer.
// The core never reads state back.
type View interface {
	Selected(selected bool)
	Move(pos model.Location)
	Attack(target model.Location)
	Targeted()
	SetTeam(team model.TeamID)
	HPChanged(current, max float64)
	Destroyed()
}

// NopView discards every notification.
type NopView struct{}

func (NopView) Selected(bool)               {}
func (NopView) Move(model.Location)         {}
func (NopView) Attack(model.Location)       {}
func (NopView) Targeted()                   {}
func (NopView) SetTeam(model.TeamID)        {}
func (NopView) HPChanged(float64, float64)  {}
func (NopView) Destroyed()                  {}

// LogView writes notifications to slog at debug level.
// Used by the headless runner.
type LogView struct {
	Name string
}

func (v LogView) Selected(selected bool) {
	slog.Debug("view: selected", "object", v.Name, "selected", selected)
}

func (v LogView) Move(pos model.Location) {
	slog.Debug("view: move", "object", v.Name, "to", pos)
}

func (v LogView) Attack(target model.Location) {
	slog.Debug("view: attack", "object", v.Name, "at", target)
}

func (v LogView) Targeted() {
	slog.Debug("view: targeted", "object", v.Name)
}

func (v LogView) SetTeam(team model.TeamID) {
	slog.Debug("view: team", "object", v.Name, "team", team)
}

func (v LogView) HPChanged(current, max float64) {
	slog.Debug("view: hp", "object", v.Name, "hp", current, "max", max)
}

func (v LogView) Destroyed() {
	slog.Debug("view: destroyed", "object", v.Name)
}
