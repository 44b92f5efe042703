package proximity

import "github.com/udisondev/skirmish/internal/model"

// Area is a sensing volume projected on the XY plane.
type Area interface {
	Contains(loc model.Location) bool
	// Extent returns the bounding rectangle used for the grid query.
	Extent() (minLoc, maxLoc model.Location)
}

// Circle is a disc of Radius around Center. The edge counts as inside.
type Circle struct {
	Center model.Location
	Radius float64
}

// Contains implements Area.
func (c Circle) Contains(loc model.Location) bool {
	dx := loc.X - c.Center.X
	dy := loc.Y - c.Center.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Extent implements Area.
func (c Circle) Extent() (model.Location, model.Location) {
	return model.NewLocation(c.Center.X-c.Radius, c.Center.Y-c.Radius, 0),
		model.NewLocation(c.Center.X+c.Radius, c.Center.Y+c.Radius, 0)
}

// Rect is an axis-aligned rectangle spanned by two opposite corners
// given in any order.
type Rect struct {
	A, B model.Location
}

// Contains implements Area.
func (r Rect) Contains(loc model.Location) bool {
	lo, hi := r.Extent()
	return loc.X >= lo.X && loc.X <= hi.X && loc.Y >= lo.Y && loc.Y <= hi.Y
}

// Extent implements Area.
func (r Rect) Extent() (model.Location, model.Location) {
	return model.NewLocation(min(r.A.X, r.B.X), min(r.A.Y, r.B.Y), 0),
		model.NewLocation(max(r.A.X, r.B.X), max(r.A.Y, r.B.Y), 0)
}
