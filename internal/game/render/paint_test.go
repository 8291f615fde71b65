package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/isoworld/internal/data"
	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/game/render"
	"github.com/udisondev/isoworld/internal/model"
	"github.com/udisondev/isoworld/internal/world"
)

const (
	shapeCrate  = 100
	shapeStatue = 101
	shapeRoof   = 102
	shapePillar = 103
	shapeRug    = 104
)

// sameScreen puts every object in the same screen rectangle.
type sameScreen struct{}

func (sameScreen) ShapeRect(*model.Object) geo.Rect { return geo.Rect{W: 100, H: 100} }

type scene struct {
	w   *world.World
	env *model.Env
}

func newScene(t *testing.T) *scene {
	t.Helper()
	shapes := data.NewShapeTable(
		&data.ShapeInfo{Shape: shapeCrate, Dims: [3]int{1, 1, 1}},
		&data.ShapeInfo{Shape: shapeStatue, Dims: [3]int{3, 1, 1}},
		&data.ShapeInfo{Shape: shapeRoof, Dims: [3]int{10, 1, 1}, Occludes: true},
		&data.ShapeInfo{Shape: shapePillar, Dims: [3]int{5, 1, 9}},
		&data.ShapeInfo{Shape: shapeRug, Dims: [3]int{2, 2, 0}},
	)
	w := world.New()
	env := model.NewEnv(shapes)
	env.Maps = w
	return &scene{w: w, env: env}
}

func (s *scene) place(t *testing.T, shape int, at geo.Coord) *model.Object {
	t.Helper()
	obj := model.NewObject(s.env, s.w.IDs().NextObjectID(), shape, 0, 0)
	obj.Move(at, -1)
	require.Equal(t, at, obj.Tile())
	return obj
}

func TestIsoProjector_BoxRect(t *testing.T) {
	p := render.NewIsoProjector(0, 0)

	assert.Equal(t, geo.Rect{X: 76, Y: 76, W: 12, H: 12},
		p.BoxRect(geo.NewCoord(10, 10, 0), 1, 1, 1))
	assert.Equal(t, geo.Rect{X: 68, Y: 68, W: 12, H: 12},
		p.BoxRect(geo.NewCoord(10, 10, 2), 1, 1, 1), "lift shifts up and left")
	assert.Equal(t, geo.Rect{X: 64, Y: 72, W: 24, H: 16},
		p.BoxRect(geo.NewCoord(10, 10, 0), 3, 2, 0))

	wrapped := render.NewIsoProjector(geo.NumTiles-2, 0)
	assert.Equal(t, geo.Rect{X: 20, Y: -4, W: 12, H: 12},
		wrapped.BoxRect(geo.NewCoord(1, 0, 0), 1, 1, 1), "scroll wraps")
}

func TestLess(t *testing.T) {
	s := newScene(t)
	p := render.NewIsoProjector(0, 0)
	back := s.place(t, shapeCrate, geo.NewCoord(10, 10, 0))
	front := s.place(t, shapeCrate, geo.NewCoord(11, 11, 0))
	far := s.place(t, shapeCrate, geo.NewCoord(100, 100, 0))

	less, ok := render.Less(p, back, front)
	assert.True(t, ok)
	assert.True(t, less)

	less, ok = render.Less(p, front, back)
	assert.True(t, ok)
	assert.False(t, less)

	_, ok = render.Less(p, back, far)
	assert.False(t, ok, "disjoint on screen")
}

func TestPaintOrder(t *testing.T) {
	s := newScene(t)
	painter := render.NewPainter(render.NewIsoProjector(0, 0), nil)
	back := s.place(t, shapeCrate, geo.NewCoord(10, 10, 0))
	front := s.place(t, shapeCrate, geo.NewCoord(11, 11, 0))
	far := s.place(t, shapeCrate, geo.NewCoord(100, 100, 0))

	got := painter.PaintOrder([]*model.Object{front, far, back})

	assert.Equal(t, []*model.Object{back, front, far}, got)
}

func TestPaintOrder_FlatFirst(t *testing.T) {
	s := newScene(t)
	painter := render.NewPainter(sameScreen{}, nil)
	crate := s.place(t, shapeCrate, geo.NewCoord(20, 20, 0))
	rug := s.place(t, shapeRug, geo.NewCoord(20, 20, 1))

	got := painter.PaintOrder([]*model.Object{crate, rug})

	assert.Equal(t, []*model.Object{rug, crate}, got)
}

func TestPaintOrder_Cycle(t *testing.T) {
	s := newScene(t)
	painter := render.NewPainter(sameScreen{}, nil)
	statue := s.place(t, shapeStatue, geo.NewCoord(12, 20, 4))
	roof := s.place(t, shapeRoof, geo.NewCoord(9, 20, 6))
	pillar := s.place(t, shapePillar, geo.NewCoord(15, 20, 0))

	deps := painter.Dependencies([]*model.Object{statue, roof, pillar})
	assert.True(t, deps.Has(roof.ID(), statue.ID()))
	assert.True(t, deps.Has(pillar.ID(), roof.ID()))
	assert.True(t, deps.Has(statue.ID(), pillar.ID()))

	got := painter.PaintOrder([]*model.Object{statue, roof, pillar})

	require.Len(t, got, 3)
	assert.Equal(t, []*model.Object{roof, pillar, statue}, got,
		"cycle broken at the first object, each emitted once")
}
