package selection

import (
	"log/slog"
	"slices"

	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/proximity"
)

// Set is the player's current selection and group command dispatcher.
//
// Membership is unique and insertion-ordered. Every insertion notifies the
// entity with OnSelected(true) exactly once, every removal with
// OnSelected(false).
//
// Not thread-safe: owned by the simulation goroutine.
type Set struct {
	roster  Roster
	picker  Picker
	effects Effects
	marker  *Marker

	selected []Selectable
}

// Option configures a Set.
type Option func(*Set)

// WithPicker sets the screen hit resolver used by Select.
func WithPicker(p Picker) Option {
	return func(s *Set) { s.picker = p }
}

// WithEffects sets the visual feedback sink.
func WithEffects(e Effects) Option {
	return func(s *Set) { s.effects = e }
}

// NewSet creates an empty selection for the local player of roster.
// The box-select marker is registered in field.
func NewSet(roster Roster, field *proximity.Field, opts ...Option) *Set {
	s := &Set{
		roster:  roster,
		effects: nopEffects{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.marker = newMarker(field, DefaultMarkerRadius, s.addFromMarker)
	return s
}

// Marker returns the box-select marker.
func (s *Set) Marker() *Marker {
	return s.marker
}

// SetSelection clears the selection then selects sel (nil only clears).
func (s *Set) SetSelection(sel Selectable) {
	s.Clear()
	if sel != nil {
		slog.Debug("selected", "object", sel.Object().Name())
		s.AddSelection(sel)
	}
}

// AddSelection adds sel without clearing.
func (s *Set) AddSelection(sel Selectable) {
	if sel == nil || s.IsSelected(sel) {
		return
	}
	s.selected = append(s.selected, sel)
	sel.OnSelected(true)
}

// Deselect removes sel. Returns whether it was selected.
func (s *Set) Deselect(sel Selectable) bool {
	idx := slices.Index(s.selected, sel)
	if idx < 0 {
		return false
	}
	s.selected = slices.Delete(s.selected, idx, idx+1)
	sel.OnSelected(false)
	return true
}

// IsSelected reports whether sel is selected.
func (s *Set) IsSelected(sel Selectable) bool {
	return sel != nil && slices.Contains(s.selected, sel)
}

// Selected returns a copy of the selection in insertion order.
func (s *Set) Selected() []Selectable {
	return slices.Clone(s.selected)
}

// Len returns selection size.
func (s *Set) Len() int {
	return len(s.selected)
}

// Clear deselects everything.
func (s *Set) Clear() {
	for _, sel := range slices.Clone(s.selected) {
		s.Deselect(sel)
	}
}

// Select handles a resolved tap: a single tap selects whatever is under
// screen, multiple taps dispatch a group command.
func (s *Set) Select(screen model.Location, tapCount int) {
	if s.picker == nil || tapCount <= 0 {
		return
	}

	target := s.picker.PickSelectable(screen)
	if tapCount == 1 {
		s.SetSelection(target)
		return
	}

	ground, ok := s.picker.PickGround(screen)
	if !ok && target == nil {
		slog.Debug("action on nothing", "screen", screen)
		return
	}
	s.SetAction(target, ground)
}

// SetAction dispatches a group command: move to ground when target is nil
// or friendly, attack target otherwise.
func (s *Set) SetAction(target Selectable, ground model.Location) {
	if target == nil || target.Object().Team() == s.roster.LocalTeam() {
		s.effects.DestinationFX(ground)
		for _, sel := range slices.Clone(s.selected) {
			sel.OnMove(ground)
		}
		return
	}

	target.OnTargeted()
	s.effects.DestinationFX(target.Object().Location())
	for _, sel := range slices.Clone(s.selected) {
		sel.OnAttack(target)
	}
}

// AllUnits replaces the selection with every unit of the local player.
func (s *Set) AllUnits() {
	s.Clear()
	for _, sel := range s.roster.LocalUnits() {
		s.AddSelection(sel)
	}
}

// BeginLongSel clears the selection and activates the marker at pos.
func (s *Set) BeginLongSel(pos model.Location) {
	s.Clear()
	s.marker.moveTo(pos)
	s.marker.setActive(true)
}

// LongSel drags the marker to pos.
func (s *Set) LongSel(pos model.Location) {
	if !s.marker.Active() {
		return
	}
	s.marker.moveTo(pos)
}

// EndLongSel deactivates the marker.
func (s *Set) EndLongSel() {
	s.marker.setActive(false)
}

func (s *Set) addFromMarker(sel Selectable) {
	if !s.marker.Active() || sel.Object().Team() != s.roster.LocalTeam() {
		return
	}
	s.AddSelection(sel)
}
