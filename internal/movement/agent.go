package movement

import (
	"math"

	"github.com/udisondev/skirmish/internal/model"
)

// Bounds is the rectangular navigable surface of the reference agent (XY plane).
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether loc lies on the surface.
// Zero Bounds means unbounded.
func (b Bounds) Contains(loc model.Location) bool {
	if b == (Bounds{}) {
		return true
	}
	return loc.X >= b.MinX && loc.X <= b.MaxX && loc.Y >= b.MinY && loc.Y <= b.MaxY
}

// Agent is the reference Navigator: straight-line kinematic motion on an
// obstacle-free surface (no geodata, direct path).
//
// A parked agent is an obstacle. Lifting the obstacle takes effect on the
// next Step, the same one-frame delay a carving navmesh obstacle has.
type Agent struct {
	obj    *model.WorldObject
	speed  float64
	bounds Bounds

	agentEnabled    bool
	obstacleEnabled bool
	carved          bool // obstacle state as seen by surface sampling

	target   model.Location
	stopping float64
	hasPath  bool
	pending  bool
	velocity float64
}

// NewAgent creates a parked agent moving obj at speed units/second.
func NewAgent(obj *model.WorldObject, speed float64, bounds Bounds) *Agent {
	return &Agent{
		obj:             obj,
		speed:           speed,
		bounds:          bounds,
		obstacleEnabled: true,
		carved:          true,
	}
}

// OnSurface implements Navigator.
func (a *Agent) OnSurface() bool {
	return a.agentEnabled && a.bounds.Contains(a.obj.Location())
}

// CanPlace implements Navigator.
func (a *Agent) CanPlace() bool {
	return !a.carved && a.bounds.Contains(a.obj.Location())
}

// SetAgentEnabled implements Navigator. Disabling drops the path.
func (a *Agent) SetAgentEnabled(enabled bool) {
	a.agentEnabled = enabled
	if !enabled {
		a.ResetPath()
	}
}

// SetObstacleEnabled implements Navigator.
func (a *Agent) SetObstacleEnabled(enabled bool) {
	a.obstacleEnabled = enabled
}

// SetDestination implements Navigator. The path is computed on next Step.
func (a *Agent) SetDestination(pos model.Location, stop float64) {
	a.target = pos
	a.stopping = stop
	a.hasPath = true
	a.pending = true
}

// ResetPath implements Navigator.
func (a *Agent) ResetPath() {
	a.hasPath = false
	a.pending = false
	a.velocity = 0
}

// PathPending implements Navigator.
func (a *Agent) PathPending() bool { return a.pending }

// HasPath implements Navigator.
func (a *Agent) HasPath() bool { return a.hasPath }

// StoppingDistance implements Navigator.
func (a *Agent) StoppingDistance() float64 { return a.stopping }

// Speed implements Navigator.
func (a *Agent) Speed() float64 { return a.velocity }

// RemainingDistance implements Navigator.
func (a *Agent) RemainingDistance() float64 {
	if a.pending {
		return math.Inf(1)
	}
	if !a.hasPath {
		return 0
	}
	return a.obj.Location().Distance(a.target)
}

// Target returns the current path target.
func (a *Agent) Target() (model.Location, bool) {
	return a.target, a.hasPath
}

// Step advances the agent by dt seconds.
func (a *Agent) Step(dt float64) {
	a.carved = a.obstacleEnabled

	if !a.agentEnabled || !a.hasPath {
		a.velocity = 0
		return
	}
	a.pending = false

	pos := a.obj.Location()
	delta := a.target.Sub(pos)
	dist := delta.Length()

	if dist <= a.stopping {
		a.hasPath = false
		a.velocity = 0
		return
	}

	travel := min(a.speed*dt, dist-a.stopping)
	next := pos.Add(delta.Scale(travel / dist))
	if !a.bounds.Contains(next) {
		// Edge of the surface: stop where we are.
		a.hasPath = false
		a.velocity = 0
		return
	}
	a.obj.SetLocation(next)

	if dist-travel <= a.stopping {
		a.hasPath = false
		a.velocity = 0
		return
	}
	a.velocity = a.speed
}
