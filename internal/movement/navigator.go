package movement

import "github.com/udisondev/skirmish/internal/model"

// Navigator is the navigation collaborator driving one movable entity.
// Pathfinding itself lives behind this interface; the queue only issues
// destinations and polls path state.
type Navigator interface {
	// OnSurface reports whether the agent is enabled and placed on the
	// navigable surface, i.e. a path can be started right away.
	OnSurface() bool

	// CanPlace reports whether the entity position samples onto the navigable
	// surface (the obstacle it carves no longer covers it).
	CanPlace() bool

	SetAgentEnabled(enabled bool)
	SetObstacleEnabled(enabled bool)

	// SetDestination starts a path toward pos stopping within stop units.
	SetDestination(pos model.Location, stop float64)
	// ResetPath drops the current path and stops motion.
	ResetPath()

	PathPending() bool
	HasPath() bool
	RemainingDistance() float64
	StoppingDistance() float64
	// Speed is the current velocity magnitude.
	Speed() float64
}
