package proximity

import "github.com/udisondev/skirmish/internal/model"

// Sensor receives enter/exit events for bodies inside its area.
//
// A sensor either follows an owner (disc of fixed radius around it, owner
// itself never sensed) or has a static area set by SetArea.
// An inactive sensor senses nothing; deactivation forgets the bodies inside
// without exit events.
type Sensor struct {
	owner  *model.WorldObject
	radius float64
	area   Area

	active bool
	inside map[uint32]*Body

	entered model.Signal[*Body]
	exited  model.Signal[*Body]
}

// NewFollowSensor creates an active sensor of radius around owner.
func NewFollowSensor(owner *model.WorldObject, radius float64) *Sensor {
	return &Sensor{
		owner:  owner,
		radius: radius,
		active: true,
		inside: make(map[uint32]*Body),
	}
}

// NewSensor creates an inactive sensor with a static area.
func NewSensor(area Area) *Sensor {
	return &Sensor{
		area:   area,
		inside: make(map[uint32]*Body),
	}
}

// SetArea replaces the static area. Takes effect on next field update.
func (s *Sensor) SetArea(area Area) {
	s.area = area
}

// Radius returns follow radius (0 for static sensors).
func (s *Sensor) Radius() float64 {
	return s.radius
}

// Active reports whether the sensor is sensing.
func (s *Sensor) Active() bool {
	return s.active
}

// SetActive enables or disables sensing.
func (s *Sensor) SetActive(active bool) {
	s.active = active
	if !active {
		clear(s.inside)
	}
}

// Inside reports whether body id is currently inside.
func (s *Sensor) Inside(id uint32) bool {
	_, ok := s.inside[id]
	return ok
}

// Len returns number of bodies inside.
func (s *Sensor) Len() int {
	return len(s.inside)
}

// OnEnter subscribes to enter events.
func (s *Sensor) OnEnter(fn func(b *Body)) (cancel func()) {
	return s.entered.Subscribe(fn)
}

// OnExit subscribes to exit events.
func (s *Sensor) OnExit(fn func(b *Body)) (cancel func()) {
	return s.exited.Subscribe(fn)
}

func (s *Sensor) currentArea() Area {
	if s.owner != nil {
		return Circle{Center: s.owner.Location(), Radius: s.radius}
	}
	return s.area
}

func (s *Sensor) senses(b *Body) bool {
	return s.owner == nil || b.ID() != s.owner.ObjectID()
}
