package world

import "sync/atomic"

// ObjectIDGenerator generates unique object IDs for all world entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid/mock objects)
//	0x10000000 - 0x1FFFFFFF: NPCs (268M IDs)
//	0x20000000 - 0x2FFFFFFF: Fixed (IFIX) objects
//	0x30000000 - 0xFFFFFFFF: Other objects
type ObjectIDGenerator struct {
	nextNpcID    atomic.Uint32
	nextFixedID  atomic.Uint32
	nextObjectID atomic.Uint32
}

// ID range starts.
const (
	NpcIDBase    = 0x10000000
	FixedIDBase  = 0x20000000
	ObjectIDBase = 0x30000000
)

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextNpcID.Store(NpcIDBase)
	gen.nextFixedID.Store(FixedIDBase)
	gen.nextObjectID.Store(ObjectIDBase)
	return gen
}

// NextNpcID generates next unique NPC object ID.
// Thread-safe via atomic increment.
func (g *ObjectIDGenerator) NextNpcID() uint32 {
	return g.nextNpcID.Add(1)
}

// NextFixedID generates next unique ID for an object loaded from IFIX data.
func (g *ObjectIDGenerator) NextFixedID() uint32 {
	return g.nextFixedID.Add(1)
}

// NextObjectID generates next unique ID for any other object.
func (g *ObjectIDGenerator) NextObjectID() uint32 {
	return g.nextObjectID.Add(1)
}
