package model

import "github.com/udisondev/isoworld/internal/game/geo"

// Move relocates the object to absolute tile t on map mapNum
// (-1 = the map it is on, or the current map). A tile outside the grid
// is a no-op. Works for objects that are not placed yet.
//
// The old and new areas are both marked dirty. An object inside a
// container is taken out of it first.
func (o *Object) Move(t geo.Coord, mapNum int) {
	m := o.resolveMap(mapNum)
	if m == nil || t.TX < 0 || t.TY < 0 {
		return
	}
	newChunk := m.Chunk(t.TX/geo.TilesPerChunk, t.TY/geo.TilesPerChunk)
	if newChunk == nil {
		o.env.Log.Debug("move to bad location ignored", "object", o, "tile", t)
		return
	}

	if o.owner != nil {
		o.owner.removeContent(o)
	}
	if old := o.chunk; old != nil {
		o.env.Dirty.MarkDirty(o)
		o.markIfixModified()
		old.Remove(o)
	}
	o.lift = t.TZ
	o.tx = t.TX % geo.TilesPerChunk
	o.ty = t.TY % geo.TilesPerChunk
	newChunk.Add(o)
	o.markIfixModified()
	o.env.Dirty.MarkDirty(o)
}

func (o *Object) resolveMap(mapNum int) Map {
	maps := o.env.Maps
	if maps == nil {
		return nil
	}
	var m Map
	if mapNum >= 0 {
		m = maps.Map(mapNum)
	} else {
		m = o.Map()
	}
	if m == nil {
		m = maps.Current()
	}
	return m
}

// ChangeFrame sets the frame and repaints the old and new areas.
func (o *Object) ChangeFrame(frame int) {
	o.env.Dirty.MarkDirty(o)
	o.frame = frame
	o.env.Dirty.MarkDirty(o)
}

// RemoveThis detaches the object from its chunk or container.
// With keep the object stays intact for re-adding elsewhere; without it
// the object is gone for good: its dependency edges are dropped and it
// stops being the edited object.
func (o *Object) RemoveThis(keep bool) {
	if o.owner != nil {
		o.owner.removeContent(o)
	}
	if o.chunk != nil {
		o.env.Dirty.MarkDirty(o)
		o.markIfixModified()
		o.chunk.Remove(o)
	}
	if keep {
		return
	}
	o.ClearDependencies()
	if o.env.Editing() == o {
		o.env.SetEditing(nil)
	}
}

func (o *Object) markIfixModified() {
	if !o.HasFlag(FlagIfix) || o.chunk == nil {
		return
	}
	if m := o.chunk.Map(); m != nil {
		m.SetIfixModified(o.chunk.CX(), o.chunk.CY())
	}
}
