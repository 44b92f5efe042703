package proximity

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// ErrDuplicateBody is returned when a body with the same objectID is added twice.
var ErrDuplicateBody = errors.New("proximity: duplicate body")

type event struct {
	sensor *Sensor
	body   *Body
}

// Field delivers enter/exit events between bodies and sensors.
//
// Bodies are bucketed into a uniform grid rebuilt on every Update, so a
// sensor only tests bodies of the cells overlapping its extent.
// Within one Update all exits are delivered before any enter; per sensor,
// bodies are visited in objectID order.
//
// Not thread-safe: owned by the simulation goroutine.
type Field struct {
	cellSize float64

	bodies  map[uint32]*Body
	sensors []*Sensor
	cells   map[Cell][]*Body
}

// NewField creates an empty field. cellSize <= 0 selects DefaultCellSize.
func NewField(cellSize float64) *Field {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Field{
		cellSize: cellSize,
		bodies:   make(map[uint32]*Body),
		cells:    make(map[Cell][]*Body),
	}
}

// AddBody registers b. It is sensed from next Update.
func (f *Field) AddBody(b *Body) error {
	if _, exists := f.bodies[b.ID()]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateBody, b.ID())
	}
	f.bodies[b.ID()] = b
	return nil
}

// RemoveBody unregisters body id. Sensors holding it receive exit right away.
func (f *Field) RemoveBody(id uint32) {
	b, ok := f.bodies[id]
	if !ok {
		return
	}
	delete(f.bodies, id)

	for _, s := range f.sensors {
		if _, inside := s.inside[id]; inside {
			delete(s.inside, id)
			s.exited.Emit(b)
		}
	}
}

// Body returns body by objectID.
func (f *Field) Body(id uint32) (*Body, bool) {
	b, ok := f.bodies[id]
	return b, ok
}

// BodyCount returns number of registered bodies.
func (f *Field) BodyCount() int {
	return len(f.bodies)
}

// AddSensor registers s.
func (f *Field) AddSensor(s *Sensor) {
	if slices.Contains(f.sensors, s) {
		return
	}
	f.sensors = append(f.sensors, s)
}

// RemoveSensor unregisters s without exit events and drops its listeners.
func (f *Field) RemoveSensor(s *Sensor) {
	idx := slices.Index(f.sensors, s)
	if idx < 0 {
		return
	}
	f.sensors = slices.Delete(f.sensors, idx, idx+1)
	clear(s.inside)
	s.entered.Reset()
	s.exited.Reset()
}

// SensorCount returns number of registered sensors.
func (f *Field) SensorCount() int {
	return len(f.sensors)
}

// Update recomputes sensor contents and delivers events.
func (f *Field) Update() {
	f.rebuildCells()

	var exits, enters []event
	for _, s := range f.sensors {
		if !s.active {
			continue
		}

		now := f.query(s)

		for _, id := range sortedIDs(s.inside) {
			if _, still := now[id]; !still {
				exits = append(exits, event{sensor: s, body: s.inside[id]})
			}
		}
		for _, id := range sortedIDs(now) {
			if _, was := s.inside[id]; !was {
				enters = append(enters, event{sensor: s, body: now[id]})
			}
		}
	}

	// Listeners may remove bodies or sensors; skip stale events.
	for _, ev := range exits {
		if _, inside := ev.sensor.inside[ev.body.ID()]; !inside {
			continue
		}
		delete(ev.sensor.inside, ev.body.ID())
		ev.sensor.exited.Emit(ev.body)
	}
	for _, ev := range enters {
		if !ev.sensor.active || !f.registered(ev.sensor) {
			continue
		}
		if cur, ok := f.bodies[ev.body.ID()]; !ok || cur != ev.body {
			continue
		}
		if _, inside := ev.sensor.inside[ev.body.ID()]; inside {
			continue
		}
		ev.sensor.inside[ev.body.ID()] = ev.body
		ev.sensor.entered.Emit(ev.body)
	}

	if len(exits)+len(enters) > 0 {
		slog.Debug("proximity update",
			"exits", len(exits),
			"enters", len(enters))
	}
}

// Reset removes all bodies and sensors without events.
// Used for test isolation.
func (f *Field) Reset() {
	for _, s := range f.sensors {
		clear(s.inside)
	}
	f.sensors = nil
	clear(f.bodies)
	clear(f.cells)
}

func (f *Field) rebuildCells() {
	for k := range f.cells {
		f.cells[k] = f.cells[k][:0]
	}
	for _, b := range f.bodies {
		c := CoordToCell(b.obj.Location(), f.cellSize)
		f.cells[c] = append(f.cells[c], b)
	}
}

func (f *Field) query(s *Sensor) map[uint32]*Body {
	area := s.currentArea()
	found := make(map[uint32]*Body)
	if area == nil {
		return found
	}

	lo, hi := area.Extent()
	for _, c := range CellsInRange(lo, hi, f.cellSize) {
		for _, b := range f.cells[c] {
			if s.senses(b) && area.Contains(b.obj.Location()) {
				found[b.ID()] = b
			}
		}
	}
	return found
}

func (f *Field) registered(s *Sensor) bool {
	return slices.Contains(f.sensors, s)
}

func sortedIDs(m map[uint32]*Body) []uint32 {
	ids := make([]uint32, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
