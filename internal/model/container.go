package model

import (
	"slices"

	"github.com/udisondev/isoworld/internal/data"
)

// IsContainer reports whether the object can hold other objects.
// NPCs carry inventory, so they count as containers.
func (o *Object) IsContainer() bool {
	info := o.Info()
	return info.Class == data.ClassContainer || info.IsNPC()
}

// Contents returns the directly contained objects. The slice must not be
// modified by the caller.
func (o *Object) Contents() []*Object { return o.contents }

// VolumeUsed returns the total volume of the contents.
func (o *Object) VolumeUsed() int { return o.volumeUsed }

// ModifyVolumeUsed adjusts the used volume by delta.
func (o *Object) ModifyVolumeUsed(delta int) { o.volumeUsed += delta }

// MaxVolume returns the container capacity, 0 meaning unlimited.
func (o *Object) MaxVolume() int {
	if o.Info().IsNPC() {
		return 0
	}
	return o.Info().Volume
}

// Outermost returns the root of the owner chain, or the object itself.
func (o *Object) Outermost() *Object {
	top := o
	for top.owner != nil {
		top = top.owner
	}
	return top
}

// InsideLocked reports whether any owner is a locked container.
func (o *Object) InsideLocked() bool {
	for above := o.owner; above != nil; above = above.owner {
		if above.Info().Locked {
			return true
		}
	}
	return false
}

// isAncestorOf reports whether o is in the owner chain of obj (or is obj).
func (o *Object) isAncestorOf(obj *Object) bool {
	for cur := obj; cur != nil; cur = cur.owner {
		if cur == o {
			return true
		}
	}
	return false
}

// Add puts a detached obj into this object.
//
// Non-containers only accept obj by combining stacks (combine must be
// true). Containers first try to combine with a matching stack in their
// contents, then check room and append. Returns false if obj was not
// taken; with combine it may have been partially merged. Returns true if
// obj was stored or fully merged (in which case it has been removed).
func (o *Object) Add(obj *Object, combine bool) bool {
	if obj.chunk != nil || obj.owner != nil {
		return false
	}
	if !o.IsContainer() {
		if combine {
			return o.Drop(obj)
		}
		return false
	}
	// The owner graph must stay a forest.
	if obj.isAncestorOf(o) {
		return false
	}
	if combine && obj.Info().HasQuantity() {
		for _, c := range o.contents {
			if c.Drop(obj) {
				return true
			}
		}
	}
	maxVol := o.MaxVolume()
	if maxVol > 0 && o.volumeUsed+obj.Volume() > maxVol {
		return false
	}
	obj.owner = o
	o.contents = append(o.contents, obj)
	o.volumeUsed += obj.Volume()
	return true
}

// removeContent detaches obj from this container.
func (o *Object) removeContent(obj *Object) {
	i := slices.Index(o.contents, obj)
	if i < 0 {
		return
	}
	o.contents = slices.Delete(o.contents, i, i+1)
	o.volumeUsed -= obj.Volume()
	obj.owner = nil
}

// FindContent returns the first contained object (searching nested
// containers depth-first) with the given shape, or nil.
// Use AnyQuality/AnyFrame as wildcards.
func (o *Object) FindContent(shape, quality, frame int) *Object {
	for _, c := range o.contents {
		if c.shape == shape &&
			(quality == AnyQuality || c.quality == quality) &&
			(frame == AnyFrame || c.frame == frame) {
			return c
		}
		if found := c.FindContent(shape, quality, frame); found != nil {
			return found
		}
	}
	return nil
}
