package selection

import "github.com/udisondev/skirmish/internal/model"

// Selectable is an entity the player can select and command.
// Implemented per entity variant (unit, building).
type Selectable interface {
	Object() *model.WorldObject

	// OnSelected is called once on insertion (true) and once on removal (false).
	OnSelected(selected bool)
	// OnMove orders a move to pos.
	OnMove(pos model.Location)
	// OnAttack orders an attack on target.
	OnAttack(target Selectable)
	// OnTargeted notifies that the entity was picked as an attack target.
	OnTargeted()
}

// Picker resolves screen positions (input layer).
type Picker interface {
	// PickSelectable returns the entity under screen or nil.
	PickSelectable(screen model.Location) Selectable
	// PickGround returns the ground point under screen.
	PickGround(screen model.Location) (model.Location, bool)
}

// Roster gives the local player's units.
type Roster interface {
	LocalTeam() model.TeamID
	LocalUnits() []Selectable
}

// Effects spawns one-shot visual feedback (fire-and-forget).
type Effects interface {
	DestinationFX(pos model.Location)
}

type nopEffects struct{}

func (nopEffects) DestinationFX(model.Location) {}
