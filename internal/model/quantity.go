package model

import "github.com/udisondev/isoworld/internal/data"

// ModifyQuantity adds delta (negative removes) to the stack count and
// sets the matching frame, even if delta is 0.
//
// Returns the part of delta that was not absorbed and whether the object
// was removed. Objects whose shape does not stack are removed for
// delta <= 0 and left alone for delta > 0.
func (o *Object) ModifyQuantity(delta int) (int, bool) {
	info := o.Info()
	if !info.HasQuantity() {
		if delta > 0 {
			return delta, false
		}
		o.RemoveThis(false)
		return delta + 1, true
	}

	quant := o.quality & 0x7f
	if quant == 0 {
		quant = 1
	}
	newQuant := quant + delta
	if delta >= 0 {
		newQuant = min(newQuant, MaxQuantity)
	} else if newQuant <= 0 {
		o.RemoveThis(false)
		return delta + quant, true
	}

	oldVol := o.Volume()
	o.quality = newQuant
	switch {
	case info.Weapon != nil:
		// Starbursts, throwing knives: one frame regardless of count.
		o.ChangeFrame(0)
	case info.QuantityFrames:
		o.ChangeFrame(quantityFrameBase(info) + quantityFrame(newQuant))
	}
	if o.owner != nil {
		o.owner.ModifyVolumeUsed(o.Volume() - oldVol)
	}
	return delta - (newQuant - quant), false
}

// quantityFrameBase is 24 for ammunition shapes (and triple bolts).
func quantityFrameBase(info *data.ShapeInfo) int {
	if info.Ammo != nil || info.Ready == data.ReadyTripleBolts {
		return 24
	}
	return 0
}

// quantityFrame maps a count to one of the 8 pile frames.
func quantityFrame(n int) int {
	switch {
	case n > 12:
		return 7
	case n > 6:
		return 6
	default:
		return n - 1
	}
}

// Drop tries to merge the incoming stack into this one. On success the
// incoming object is removed. Rejection leaves both objects untouched.
func (o *Object) Drop(incoming *Object) bool {
	info := o.Info()
	if incoming.shape != o.shape || !info.HasQuantity() ||
		(!info.QuantityFrames && o.frame != incoming.frame) {
		return false
	}
	objq := incoming.Quantity()
	if o.Quantity()+objq > MaxQuantity {
		return false
	}
	o.ModifyQuantity(objq)
	incoming.RemoveThis(false)
	return true
}
