package model

// Event is the reason a usecode function is called.
type Event int

const (
	EventNone Event = iota
	EventDoubleClick
	EventNPCProximity
	EventEggProximity
	EventWeapon
	EventReadied
	EventUnreadied
	EventDied
)

// DestroyObjectsUsecode is the usecode entry point that destroys objects
// broken in combat.
const DestroyObjectsUsecode = 0x626

// Usecode returns the object's usecode function: a frame/quality binding
// (by name first, then by number), else the shape's function.
func (o *Object) Usecode() int {
	info := o.Info()
	if bind := info.FrameUsecode(o.frame, o.qualityKey(info)); bind != nil {
		fn := -1
		if bind.Name != "" {
			fn = o.env.Scripts.FindFunction(bind.Name)
		}
		if fn == -1 {
			fn = bind.ID
		}
		if fn >= 0 {
			return fn
		}
	}
	return o.env.Scripts.ShapeFunction(o.shape)
}

// UsecodeExists reports whether the object has a usecode function.
func (o *Object) UsecodeExists() bool {
	return o.env.Scripts.Exists(o.Usecode())
}

// Activate runs the object's usecode for event, unless the live-edit
// link takes the object instead.
func (o *Object) Activate(event Event) {
	if o.env.Editor != nil && o.env.Editor.Edit(o) {
		return
	}
	o.env.Scripts.Call(o.Usecode(), o, event)
}
