package world

import (
	"fmt"
	"maps"
	"slices"

	"github.com/udisondev/isoworld/internal/model"
)

// World is the set of maps plus the current map.
// Implements model.MapSet.
type World struct {
	maps    map[int]*Map
	current int
	ids     *ObjectIDGenerator
}

// New creates a world with map 0 as the current map.
func New() *World {
	w := &World{
		maps: make(map[int]*Map),
		ids:  NewObjectIDGenerator(),
	}
	w.AddMap(0)
	return w
}

// IDs returns the world's object ID generator.
func (w *World) IDs() *ObjectIDGenerator { return w.ids }

// AddMap creates map num if it does not exist and returns it.
func (w *World) AddMap(num int) *Map {
	if m, ok := w.maps[num]; ok {
		return m
	}
	m := NewMap(num)
	w.maps[num] = m
	return m
}

// Map returns map num, or nil.
func (w *World) Map(num int) model.Map {
	m, ok := w.maps[num]
	if !ok {
		return nil
	}
	return m
}

// GetMap returns map num.
func (w *World) GetMap(num int) (*Map, bool) {
	m, ok := w.maps[num]
	return m, ok
}

// Current returns the current map.
func (w *World) Current() model.Map {
	return w.Map(w.current)
}

// CurrentMap returns the current map.
func (w *World) CurrentMap() *Map {
	return w.maps[w.current]
}

// SetCurrent switches the current map. Returns error if map does not exist.
func (w *World) SetCurrent(num int) error {
	if _, ok := w.maps[num]; !ok {
		return fmt.Errorf("map %d does not exist", num)
	}
	w.current = num
	return nil
}

// MapNums returns the numbers of all maps, sorted.
func (w *World) MapNums() []int {
	return slices.Sorted(maps.Keys(w.maps))
}

// Object returns an object placed on any map by ID.
func (w *World) Object(id uint32) (*model.Object, bool) {
	for _, m := range w.maps {
		if obj, ok := m.Object(id); ok {
			return obj, true
		}
	}
	return nil, false
}

// ObjectCount returns total number of objects on all maps.
func (w *World) ObjectCount() int {
	count := 0
	for _, m := range w.maps {
		count += m.ObjectCount()
	}
	return count
}
