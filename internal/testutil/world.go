package testutil

import (
	"testing"

	"github.com/udisondev/isoworld/internal/data"
	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
	"github.com/udisondev/isoworld/internal/world"
)

// TestWorld — мир из одной карты с записывающими коллабораторами.
type TestWorld struct {
	World *world.World
	Env   *model.Env
	Rec   *Recorder
}

// NewTestWorld creates a world whose shape table holds shapes.
// The random source is seeded deterministically.
func NewTestWorld(tb testing.TB, shapes ...*data.ShapeInfo) *TestWorld {
	tb.Helper()
	w := world.New()
	env := model.NewEnv(data.NewShapeTable(shapes...))
	env.Maps = w
	env.Rand = NewRand(1)
	rec := NewRecorder()
	rec.Install(env)
	return &TestWorld{World: w, Env: env, Rec: rec}
}

// NewObject creates a detached object.
func (tw *TestWorld) NewObject(shape, frame, quality int) *model.Object {
	return model.NewObject(tw.Env, tw.World.IDs().NextObjectID(), shape, frame, quality)
}

// Place creates an object and moves it to at on the current map.
func (tw *TestWorld) Place(tb testing.TB, shape, frame, quality int, at geo.Coord) *model.Object {
	tb.Helper()
	obj := tw.NewObject(shape, frame, quality)
	obj.Move(at, -1)
	if obj.Tile() != at.Fix() {
		tb.Fatalf("placing shape %d at %v: object is at %v", shape, at, obj.Tile())
	}
	return obj
}
