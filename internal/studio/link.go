package studio

import (
	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
)

// Sender delivers a message to the connected editor.
type Sender interface {
	// Send returns an error if no editor is connected or the message
	// could not be queued.
	Send(msg []byte) error
	Connected() bool
}

// Link connects world objects to the external map editor.
// Реализует model.Editor. Используется только из игрового потока.
type Link struct {
	env       *model.Env
	out       Sender
	mapEditor bool
}

// NewLink creates a link sending through out.
func NewLink(env *model.Env, out Sender) *Link {
	return &Link{env: env, out: out}
}

// SetMapEditor turns map-editor mode on or off. Objects are only handed
// to the editor in that mode.
func (l *Link) SetMapEditor(on bool) {
	l.mapEditor = on
}

// Edit sends obj to the editor and makes it the edited object.
// Returns false if no editor is connected or map-editor mode is off.
func (l *Link) Edit(obj *model.Object) bool {
	if l.out == nil || !l.out.Connected() || !l.mapEditor {
		return false
	}
	l.env.SetEditing(nil)

	t := obj.Tile()
	msg := ObjectMessage{
		ID:      obj.ID(),
		TX:      t.TX,
		TY:      t.TY,
		TZ:      t.TZ,
		Shape:   obj.Shape(),
		Frame:   obj.Frame(),
		Quality: obj.Quality(),
		Name:    obj.Name(),
	}
	if err := l.out.Send(msg.Encode()); err != nil {
		l.env.Log.Warn("sending object to editor", "object", obj, "error", err)
		return true
	}
	l.env.Log.Debug("sent object to editor", "object", obj)
	l.env.SetEditing(obj)
	return true
}

// UpdateFromStudio applies an object message from the editor to the
// edited object. Malformed messages, and messages for any other object,
// are logged and dropped.
func (l *Link) UpdateFromStudio(data []byte) {
	msg, err := DecodeObject(data)
	if err != nil {
		l.env.Log.Warn("decoding object from editor", "error", err)
		return
	}
	obj := l.env.Editing()
	if obj == nil || obj.ID() != msg.ID {
		l.env.Log.Warn("object from editor is not being edited", "id", msg.ID)
		return
	}

	l.env.Dirty.MarkDirty(obj)
	obj.SetShape(msg.Shape, msg.Frame)
	l.env.Dirty.MarkDirty(obj)
	obj.SetQuality(msg.Quality)
	if msg.Name != obj.Name() {
		obj.SetName(msg.Name)
	}
	// Only objects on the map move; an unchanged position still marks
	// the chunk modified.
	if obj.Owner() == nil {
		obj.Move(geo.NewCoord(msg.TX, msg.TY, msg.TZ), -1)
	}
}

// Poll applies every message received from the editor since the last call.
// Must be called from the game loop.
func (l *Link) Poll(in <-chan []byte) int {
	n := 0
	for {
		select {
		case data := <-in:
			l.UpdateFromStudio(data)
			n++
		default:
			return n
		}
	}
}

var _ model.Editor = (*Link)(nil)
