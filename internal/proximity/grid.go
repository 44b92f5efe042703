package proximity

import (
	"math"

	"github.com/udisondev/skirmish/internal/model"
)

// DefaultCellSize - размер ячейки сетки в игровых единицах.
// Should be close to the largest sensing radius so a query touches a 3×3 window.
const DefaultCellSize = 16.0

// Cell is a grid bucket index.
type Cell struct {
	X, Y int32
}

// CoordToCell converts world coordinates to a cell index.
// Formula: floor(coord / cellSize)
func CoordToCell(loc model.Location, cellSize float64) Cell {
	return Cell{
		X: int32(math.Floor(loc.X / cellSize)),
		Y: int32(math.Floor(loc.Y / cellSize)),
	}
}

// CellsInRange returns every cell overlapping the [min, max] rectangle.
func CellsInRange(minLoc, maxLoc model.Location, cellSize float64) []Cell {
	lo := CoordToCell(minLoc, cellSize)
	hi := CoordToCell(maxLoc, cellSize)

	cells := make([]Cell, 0, int((hi.X-lo.X+1)*(hi.Y-lo.Y+1)))
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}
