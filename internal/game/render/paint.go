package render

import (
	"log/slog"
	"slices"

	"github.com/udisondev/isoworld/internal/model"
)

// Painter orders the objects of a redraw region.
type Painter struct {
	proj Projector
	log  *slog.Logger
}

// NewPainter creates a painter. A nil logger means slog.Default().
func NewPainter(proj Projector, log *slog.Logger) *Painter {
	if log == nil {
		log = slog.Default()
	}
	return &Painter{proj: proj, log: log}
}

// Dependencies records, for every pair in objs that competes for paint
// order, that the later object depends on the earlier one.
func (p *Painter) Dependencies(objs []*model.Object) *model.Dependencies {
	deps := model.NewDependencies()
	infos := make([]OrderingInfo, len(objs))
	for i, obj := range objs {
		infos[i] = ObjectOrdering(obj, p.proj.ShapeRect(obj))
	}
	for i := range objs {
		for j := i + 1; j < len(objs); j++ {
			switch Compare(infos[i], infos[j]) {
			case Before:
				deps.Add(objs[j].ID(), objs[i].ID())
			case After:
				deps.Add(objs[i].ID(), objs[j].ID())
			}
		}
	}
	return deps
}

// PaintOrder returns objs in paint order: every object comes after the
// objects it depends on. Input order breaks ties, so the result is stable.
// A dependency cycle is broken at the object reached first; each object is
// emitted exactly once.
func (p *Painter) PaintOrder(objs []*model.Object) []*model.Object {
	deps := p.Dependencies(objs)

	index := make(map[uint32]int, len(objs))
	for i, obj := range objs {
		index[obj.ID()] = i
	}

	const (
		unseen = iota
		active
		done
	)
	state := make([]int, len(objs))
	out := make([]*model.Object, 0, len(objs))

	var visit func(i int)
	visit = func(i int) {
		state[i] = active
		below := make([]int, 0, 4)
		for _, id := range deps.DependsOn(objs[i].ID()) {
			below = append(below, index[id])
		}
		slices.Sort(below)
		for _, j := range below {
			switch state[j] {
			case unseen:
				visit(j)
			case active:
				p.log.Debug("paint order cycle broken",
					"object", objs[i], "depends_on", objs[j])
			}
		}
		state[i] = done
		out = append(out, objs[i])
	}

	for i := range objs {
		if state[i] == unseen {
			visit(i)
		}
	}
	return out
}
