package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ShapeTable — registry всех shape records (read-only, process lifetime).
type ShapeTable struct {
	shapes map[int]*ShapeInfo
	empty  ShapeInfo
}

// NewShapeTable builds a table from the given records.
// Later records with the same shape number replace earlier ones.
func NewShapeTable(infos ...*ShapeInfo) *ShapeTable {
	t := &ShapeTable{shapes: make(map[int]*ShapeInfo, len(infos))}
	for _, info := range infos {
		t.shapes[info.Shape] = info
	}
	return t
}

// Info returns the record for shape. Unknown shapes get an empty record,
// never nil.
func (t *ShapeTable) Info(shape int) *ShapeInfo {
	if info, ok := t.shapes[shape]; ok {
		return info
	}
	return &t.empty
}

// Has reports whether shape has a record.
func (t *ShapeTable) Has(shape int) bool {
	_, ok := t.shapes[shape]
	return ok
}

// Len returns the number of records.
func (t *ShapeTable) Len() int {
	return len(t.shapes)
}

type shapeFile struct {
	Shapes []*ShapeInfo `yaml:"shapes"`
}

// ParseShapeTable decodes a YAML shape table document.
func ParseShapeTable(raw []byte) (*ShapeTable, error) {
	var f shapeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing shape table: %w", err)
	}
	for i, info := range f.Shapes {
		if info == nil {
			return nil, fmt.Errorf("shape entry %d is empty", i)
		}
		if info.Shape < 0 {
			return nil, fmt.Errorf("shape entry %d: negative shape number %d", i, info.Shape)
		}
	}
	return NewShapeTable(f.Shapes...), nil
}

// LoadShapeTable loads the shape table from a YAML file.
func LoadShapeTable(path string) (*ShapeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading shape table %s: %w", path, err)
	}
	t, err := ParseShapeTable(raw)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	slog.Info("loaded shape table", "path", path, "count", t.Len())
	return t, nil
}

// UnmarshalYAML decodes a shape record; a missing "ready" means not wearable.
func (s *ShapeInfo) UnmarshalYAML(node *yaml.Node) error {
	type plain ShapeInfo
	v := plain{Ready: ReadyNone}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*s = ShapeInfo(v)
	return nil
}

// UnmarshalYAML defaults frame and quality to -1 (any).
func (h *FrameHP) UnmarshalYAML(node *yaml.Node) error {
	type plain FrameHP
	v := plain{Frame: -1, Quality: -1}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*h = FrameHP(v)
	return nil
}

// UnmarshalYAML defaults frame, quality and id to -1.
func (u *FrameUsecode) UnmarshalYAML(node *yaml.Node) error {
	type plain FrameUsecode
	v := plain{Frame: -1, Quality: -1, ID: -1}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*u = FrameUsecode(v)
	return nil
}

// UnmarshalYAML defaults frame and quality to -1 (any).
func (n *FrameName) UnmarshalYAML(node *yaml.Node) error {
	type plain FrameName
	v := plain{Frame: -1, Quality: -1}
	if err := node.Decode(&v); err != nil {
		return err
	}
	*n = FrameName(v)
	return nil
}
