package model

import (
	"fmt"
	"math"
)

// Location представляет координаты в игровом мире.
// Value type, передаётся по значению (immutable).
type Location struct {
	X float64
	Y float64
	Z float64
}

// NewLocation создаёт Location с указанными координатами.
func NewLocation(x, y, z float64) Location {
	return Location{X: x, Y: y, Z: z}
}

// WithCoordinates возвращает новый Location с обновлёнными координатами (immutable pattern).
func (l Location) WithCoordinates(x, y, z float64) Location {
	l.X = x
	l.Y = y
	l.Z = z
	return l
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для производительности).
func (l Location) DistanceSquared(other Location) float64 {
	dx := l.X - other.X
	dy := l.Y - other.Y
	dz := l.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the Euclidean distance to other.
func (l Location) Distance(other Location) float64 {
	return math.Sqrt(l.DistanceSquared(other))
}

// Sub returns l - other as a vector.
func (l Location) Sub(other Location) Location {
	return Location{X: l.X - other.X, Y: l.Y - other.Y, Z: l.Z - other.Z}
}

// Add returns l + other.
func (l Location) Add(other Location) Location {
	return Location{X: l.X + other.X, Y: l.Y + other.Y, Z: l.Z + other.Z}
}

// Scale multiplies every component by f.
func (l Location) Scale(f float64) Location {
	return Location{X: l.X * f, Y: l.Y * f, Z: l.Z * f}
}

// Length returns the vector magnitude.
func (l Location) Length() float64 {
	return math.Sqrt(l.X*l.X + l.Y*l.Y + l.Z*l.Z)
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", l.X, l.Y, l.Z)
}
