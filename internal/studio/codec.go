package studio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf16"
)

// MsgObject is the message type of an object record.
const MsgObject byte = 0x01

// DefaultStringCapacity — типичная длина имени объекта (characters).
const DefaultStringCapacity = 16

var (
	// ErrUnknownMessage is returned for messages of an unexpected type.
	ErrUnknownMessage = errors.New("unknown studio message")
	// ErrShortMessage is returned when a message ends inside a field.
	ErrShortMessage = errors.New("studio message too short")
)

// ObjectMessage mirrors an object between the game and the editor.
//
// Wire layout (little-endian):
//
//	type    u8  (MsgObject)
//	id      u32
//	tx, ty  i16
//	tz      i16
//	shape   i16
//	frame   i16
//	quality i16
//	name    UTF-16LE, null-terminated
type ObjectMessage struct {
	ID      uint32
	TX, TY  int
	TZ      int
	Shape   int
	Frame   int
	Quality int
	Name    string
}

// headerSize is the fixed part of an object message: type, id and six i16.
const headerSize = 1 + 4 + 6*2

// Encode serializes m.
func (m ObjectMessage) Encode() []byte {
	b := make([]byte, 0, headerSize+2*len(m.Name)+2)
	b = append(b, MsgObject)
	b = binary.LittleEndian.AppendUint32(b, m.ID)
	b = appendTile(b, m.TX, m.TY, m.TZ)
	b = appendShapeFrame(b, m.Shape, m.Frame)
	b = appendI16(b, m.Quality)
	return appendName(b, m.Name)
}

// DecodeObject parses an object message.
func DecodeObject(data []byte) (ObjectMessage, error) {
	var m ObjectMessage
	if len(data) == 0 {
		return m, fmt.Errorf("%w: empty", ErrShortMessage)
	}
	if data[0] != MsgObject {
		return m, fmt.Errorf("%w: type 0x%02x", ErrUnknownMessage, data[0])
	}

	r := objectReader{data: data, pos: 1}
	var err error
	if m.ID, err = r.readID(); err != nil {
		return m, err
	}
	if m.TX, m.TY, m.TZ, err = r.readTile(); err != nil {
		return m, err
	}
	if m.Shape, m.Frame, err = r.readShapeFrame(); err != nil {
		return m, err
	}
	if m.Quality, err = r.readQuality(); err != nil {
		return m, err
	}
	if m.Name, err = r.readName(); err != nil {
		return m, err
	}
	if n := len(r.data) - r.pos; n != 0 {
		return m, fmt.Errorf("%d trailing bytes after name", n)
	}
	return m, nil
}

// objectReader walks the fields of an object message in wire order.
type objectReader struct {
	data []byte
	pos  int
}

func (r *objectReader) take(n int, field string) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: %s at offset %d", ErrShortMessage, field, r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *objectReader) i16(field string) (int, error) {
	b, err := r.take(2, field)
	if err != nil {
		return 0, err
	}
	return int(int16(binary.LittleEndian.Uint16(b))), nil
}

func (r *objectReader) readID() (uint32, error) {
	b, err := r.take(4, "id")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *objectReader) readTile() (tx, ty, tz int, err error) {
	if tx, err = r.i16("tx"); err != nil {
		return
	}
	if ty, err = r.i16("ty"); err != nil {
		return
	}
	tz, err = r.i16("tz")
	return
}

func (r *objectReader) readShapeFrame() (shape, frame int, err error) {
	if shape, err = r.i16("shape"); err != nil {
		return
	}
	frame, err = r.i16("frame")
	return
}

func (r *objectReader) readQuality() (int, error) {
	return r.i16("quality")
}

// readName reads the UTF-16LE name up to its 0 code unit.
func (r *objectReader) readName() (string, error) {
	units := make([]uint16, 0, DefaultStringCapacity)
	for {
		b, err := r.take(2, "name")
		if err != nil {
			return "", err
		}
		u := binary.LittleEndian.Uint16(b)
		if u == 0 {
			return string(utf16.Decode(units)), nil
		}
		units = append(units, u)
	}
}

func appendI16(b []byte, v int) []byte {
	return binary.LittleEndian.AppendUint16(b, uint16(int16(v)))
}

func appendTile(b []byte, tx, ty, tz int) []byte {
	return appendI16(appendI16(appendI16(b, tx), ty), tz)
}

func appendShapeFrame(b []byte, shape, frame int) []byte {
	return appendI16(appendI16(b, shape), frame)
}

func appendName(b []byte, name string) []byte {
	for _, u := range utf16.Encode([]rune(name)) {
		b = binary.LittleEndian.AppendUint16(b, u)
	}
	return append(b, 0x00, 0x00)
}
