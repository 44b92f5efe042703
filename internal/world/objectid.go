package world

import "sync/atomic"

// ObjectIDGenerator generates unique object IDs for simulation entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid)
//	0x10000000 - 0x1FFFFFFF: Units
//	0x20000000 - 0x2FFFFFFF: Buildings
type ObjectIDGenerator struct {
	nextUnitID     atomic.Uint32
	nextBuildingID atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextUnitID.Store(0x10000000)
	gen.nextBuildingID.Store(0x20000000)
	return gen
}

// NextUnitID generates next unique unit object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextUnitID() uint32 {
	return g.nextUnitID.Add(1)
}

// NextBuildingID generates next unique building object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextBuildingID() uint32 {
	return g.nextBuildingID.Add(1)
}

// IsBuildingID reports whether id lies in the building range.
func IsBuildingID(id uint32) bool {
	return id >= 0x20000000 && id < 0x30000000
}
