package world

import (
	"errors"
	"fmt"

	"github.com/udisondev/isoworld/internal/model"
)

// IFIX record sizes.
const (
	IfixRecordSize   = 4 // shape < 1024, frame < 64
	IfixRecordSizeV2 = 5 // 16-bit shape, 8-bit frame
)

// ErrIfixLength is returned for data that is not a whole number of records.
var ErrIfixLength = errors.New("ifix data length is not a multiple of the record size")

// IfixRecord is one fixed object of a chunk.
type IfixRecord struct {
	TX, TY int // chunk-relative, 0..15
	Lift   int
	Shape  int
	Frame  int
}

// recordSize returns the record size for the format version.
func recordSize(v2 bool) int {
	if v2 {
		return IfixRecordSizeV2
	}
	return IfixRecordSize
}

// AppendIfix appends the encoded record to buf.
func AppendIfix(buf []byte, r IfixRecord, v2 bool) []byte {
	buf = append(buf, byte(r.TX<<4|r.TY&0x0f), byte(r.Lift))
	if v2 {
		return append(buf, byte(r.Shape), byte(r.Shape>>8), byte(r.Frame))
	}
	return append(buf, byte(r.Shape), byte((r.Shape>>8)&3|r.Frame<<2))
}

// DecodeIfix decodes a chunk's fixed-object records.
func DecodeIfix(raw []byte, v2 bool) ([]IfixRecord, error) {
	size := recordSize(v2)
	if len(raw)%size != 0 {
		return nil, fmt.Errorf("decoding %d bytes: %w", len(raw), ErrIfixLength)
	}
	out := make([]IfixRecord, 0, len(raw)/size)
	for i := 0; i < len(raw); i += size {
		b := raw[i : i+size]
		r := IfixRecord{
			TX:   int(b[0] >> 4),
			TY:   int(b[0] & 0x0f),
			Lift: int(b[1]),
		}
		if v2 {
			r.Shape = int(b[2]) | int(b[3])<<8
			r.Frame = int(b[4])
		} else {
			r.Shape = int(b[2]) | int(b[3]&3)<<8
			r.Frame = int(b[3] >> 2)
		}
		out = append(out, r)
	}
	return out, nil
}

// RecordOf returns the IFIX record for an object placed on a map.
func RecordOf(obj *model.Object) IfixRecord {
	return IfixRecord{
		TX:    obj.TX(),
		TY:    obj.TY(),
		Lift:  obj.Lift(),
		Shape: obj.Shape(),
		Frame: obj.Frame(),
	}
}

// EncodeIfix encodes the fixed objects (FlagIfix) of the chunk.
func (c *Chunk) EncodeIfix(v2 bool) []byte {
	buf := make([]byte, 0, len(c.objects)*recordSize(v2))
	for _, obj := range c.objects {
		if obj.HasFlag(model.FlagIfix) {
			buf = AppendIfix(buf, RecordOf(obj), v2)
		}
	}
	return buf
}

// LoadIfix decodes raw and places the objects in chunk (cx, cy) as fixed
// objects. Returns the number of objects added.
func (m *Map) LoadIfix(env *model.Env, ids *ObjectIDGenerator, cx, cy int, raw []byte, v2 bool) (int, error) {
	c := m.ChunkAt(cx, cy)
	if c == nil {
		return 0, fmt.Errorf("loading ifix: chunk (%d, %d) out of range", cx, cy)
	}
	recs, err := DecodeIfix(raw, v2)
	if err != nil {
		return 0, fmt.Errorf("loading ifix for chunk (%d, %d): %w", cx, cy, err)
	}
	for _, r := range recs {
		obj := model.NewObject(env, ids.NextFixedID(), r.Shape, r.Frame, 0)
		obj.SetFlag(model.FlagIfix)
		obj.SetLift(r.Lift)
		obj.SetChunkTile(r.TX, r.TY)
		c.Add(obj)
	}
	return len(recs), nil
}
