package selection

import (
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/proximity"
)

// DefaultMarkerRadius - радиус маркера выделения.
const DefaultMarkerRadius = 1.5

// Marker is the box-select brush: a sensor following the pointer while a
// long-press drag is active. Selectables it touches are reported to onEnter.
type Marker struct {
	sensor *proximity.Sensor
	radius float64
	pos    model.Location
}

func newMarker(field *proximity.Field, radius float64, onEnter func(Selectable)) *Marker {
	m := &Marker{
		sensor: proximity.NewSensor(proximity.Circle{Radius: radius}),
		radius: radius,
	}
	m.sensor.OnEnter(func(b *proximity.Body) {
		if sel, ok := b.Payload.(Selectable); ok {
			onEnter(sel)
		}
	})
	field.AddSensor(m.sensor)
	return m
}

// Active reports whether the marker is sensing.
func (m *Marker) Active() bool {
	return m.sensor.Active()
}

// Position returns marker position.
func (m *Marker) Position() model.Location {
	return m.pos
}

func (m *Marker) moveTo(pos model.Location) {
	m.pos = pos
	m.sensor.SetArea(proximity.Circle{Center: pos, Radius: m.radius})
}

func (m *Marker) setActive(active bool) {
	m.sensor.SetActive(active)
}
