package model

import (
	"slices"

	"github.com/udisondev/isoworld/internal/game/geo"
)

// FindNearbyAt appends objects within radius tiles of pos matching the
// filters to out. Uses the current map.
func (e *Env) FindNearbyAt(out []*Object, pos geo.Coord, shape, radius, mask, quality, frame int) []*Object {
	if e.Maps == nil {
		return out
	}
	m := e.Maps.Current()
	if m == nil {
		return out
	}
	return m.FindNearby(out, pos, shape, radius, mask, quality, frame)
}

// FindNearby appends objects within radius tiles of this one matching the
// filters to out. Uses the map the object is on.
func (o *Object) FindNearby(out []*Object, shape, radius, mask, quality, frame int) []*Object {
	m := o.Map()
	if m == nil {
		return out
	}
	return m.FindNearby(out, o.Tile(), shape, radius, mask, quality, frame)
}

// FindNearbyActors appends NPCs near the object. AnyShape matches any NPC.
func (o *Object) FindNearbyActors(out []*Object, shape, radius, mask int) []*Object {
	return o.FindNearby(out, shape, radius, mask|8, AnyQuality, AnyFrame)
}

// FindNearbyEggs appends eggs near the object.
func (o *Object) FindNearbyEggs(out []*Object, shape, radius, quality, frame int) []*Object {
	return o.FindNearby(out, shape, radius, MaskEggs, quality, frame)
}

// FindClosestList returns every object of the given shapes within radius,
// closest first (stable for equal distances). AnyShape matches any NPC.
func (o *Object) FindClosestList(shapes []int, radius int) []*Object {
	var found []*Object
	for _, shape := range shapes {
		found = o.FindNearby(found, shape, radius, MaskAnything, AnyQuality, AnyFrame)
	}
	if len(found) > 1 {
		pos := o.Tile()
		slices.SortStableFunc(found, func(a, b *Object) int {
			return a.Tile().Distance(pos) - b.Tile().Distance(pos)
		})
	}
	return found
}

// FindClosest returns the object of the given shapes within radius of pos
// that is closest to pos, or nil.
func (e *Env) FindClosest(pos geo.Coord, shapes []int, radius int) *Object {
	var found []*Object
	for _, shape := range shapes {
		found = e.FindNearbyAt(found, pos, shape, radius, MaskAnything, AnyQuality, AnyFrame)
	}
	var closest *Object
	best := 10000
	for _, obj := range found {
		if d := obj.Tile().Distance(pos); d < best {
			closest = obj
			best = d
		}
	}
	return closest
}
