package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/isoworld/internal/game/geo"
	"github.com/udisondev/isoworld/internal/model"
)

func TestOutermost(t *testing.T) {
	f := newFixture(t)
	outer := f.newObject(shapeChest, 0, 0)
	inner := f.newObject(shapeChest, 0, 0)
	rock := f.newObject(shapeRock, 0, 0)

	require.True(t, inner.Add(rock, false))
	require.True(t, outer.Add(inner, false))

	assert.Same(t, outer, rock.Outermost())
	assert.Same(t, outer, inner.Outermost())
	assert.Same(t, outer, outer.Outermost())
}

func TestInsideLocked(t *testing.T) {
	f := newFixture(t)
	locked := f.newObject(shapeLocked, 0, 0)
	open := f.newObject(shapeChest, 0, 0)
	rock := f.newObject(shapeRock, 0, 0)

	require.True(t, open.Add(rock, false))
	assert.False(t, rock.InsideLocked())

	require.True(t, locked.Add(open, false))
	assert.True(t, rock.InsideLocked(), "any ancestor counts")
	assert.False(t, locked.InsideLocked(), "the locked container itself is not inside")
}

func TestAdd_Rejects(t *testing.T) {
	f := newFixture(t)
	outer := f.newObject(shapeChest, 0, 0)
	inner := f.newObject(shapeChest, 0, 0)
	require.True(t, outer.Add(inner, false))

	// Detach and try to put the parent inside its former child's subtree.
	inner.RemoveThis(true)
	require.True(t, inner.Add(f.newObject(shapeRock, 0, 0), false))
	assert.False(t, inner.Add(inner, false), "self")

	assert.False(t, outer.Add(inner.Contents()[0], false), "still owned")

	rock := f.newObject(shapeRock, 0, 0)
	assert.False(t, rock.Add(f.newObject(shapeRock, 0, 0), false), "not a container")

	placed := f.place(t, shapeRock, geo.NewCoord(5, 5, 0))
	assert.False(t, outer.Add(placed, false), "on the map")

	small := f.newObject(shapeChest, 0, 0)
	require.True(t, small.Add(f.newObject(shapeRock, 0, 0), false))
	require.True(t, small.Add(f.newObject(shapeRock, 0, 0), false))
	assert.False(t, small.Add(f.newObject(shapeRock, 0, 0), false), "no room")
	assert.Equal(t, 8, small.VolumeUsed())
}

func TestAdd_NoCycles(t *testing.T) {
	f := newFixture(t)
	a := f.newObject(shapeChest, 0, 0)
	b := f.newObject(shapeChest, 0, 0)
	require.True(t, a.Add(b, false))

	a.RemoveThis(true)
	// a is detached but b is still inside a: b must not take a.
	assert.False(t, b.Add(a, false))
}

func TestRemoveThis_TransfersOwnership(t *testing.T) {
	f := newFixture(t)
	chest := f.newObject(shapeChest, 0, 0)
	rock := f.newObject(shapeRock, 0, 0)
	require.True(t, chest.Add(rock, false))

	rock.RemoveThis(true)
	assert.Nil(t, rock.Owner())
	assert.Empty(t, chest.Contents())
	assert.Equal(t, 0, chest.VolumeUsed())

	rock.Move(geo.NewCoord(3, 3, 0), -1)
	assert.Equal(t, geo.NewCoord(3, 3, 0), rock.Tile())

	// Moving out of a container detaches it first.
	other := f.newObject(shapeRock, 0, 0)
	require.True(t, chest.Add(other, false))
	other.Move(geo.NewCoord(4, 3, 0), -1)
	assert.Nil(t, other.Owner())
	assert.Empty(t, chest.Contents())
}

func TestFindContent(t *testing.T) {
	f := newFixture(t)
	chest := f.newObject(shapeChest, 0, 0)
	bag := f.newObject(shapeChest, 0, 0)
	coin := f.newObject(shapeCoin, 2, 7)
	require.True(t, bag.Add(coin, false))
	require.True(t, chest.Add(bag, false))

	assert.Same(t, coin, chest.FindContent(shapeCoin, model.AnyQuality, model.AnyFrame))
	assert.Same(t, coin, chest.FindContent(shapeCoin, 7, 2))
	assert.Nil(t, chest.FindContent(shapeCoin, 8, model.AnyFrame))
	assert.Nil(t, chest.FindContent(shapeRock, model.AnyQuality, model.AnyFrame))
}

func TestDependencies(t *testing.T) {
	deps := model.NewDependencies()

	deps.Add(1, 2)
	deps.Add(1, 3)
	deps.Add(4, 1)

	assert.ElementsMatch(t, []uint32{2, 3}, deps.DependsOn(1))
	assert.ElementsMatch(t, []uint32{4}, deps.Dependors(1))
	assert.ElementsMatch(t, []uint32{1}, deps.Dependors(2))
	assert.True(t, deps.Has(4, 1))
	assert.Equal(t, 3, deps.Len())

	deps.Clear(1)

	assert.Empty(t, deps.DependsOn(1))
	assert.Empty(t, deps.Dependors(1))
	assert.Empty(t, deps.Dependors(2), "mirror edge removed")
	assert.Empty(t, deps.DependsOn(4), "mirror edge removed")
	assert.Equal(t, 0, deps.Len())
}

func TestDependencies_Remove(t *testing.T) {
	deps := model.NewDependencies()
	deps.Add(1, 2)
	deps.Add(1, 3)

	deps.Remove(1, 2)

	assert.Equal(t, []uint32{3}, deps.DependsOn(1))
	assert.Empty(t, deps.Dependors(2))
	assert.False(t, deps.Has(1, 2))
}

func TestObject_DependenciesClearedOnDelete(t *testing.T) {
	f := newFixture(t)
	a := f.place(t, shapeRock, geo.NewCoord(1, 1, 0))
	b := f.place(t, shapeRock, geo.NewCoord(2, 1, 0))
	c := f.place(t, shapeRock, geo.NewCoord(3, 1, 0))

	a.AddDependency(b)
	c.AddDependency(a)

	a.RemoveThis(true)
	assert.Equal(t, 2, f.env.Deps.Len(), "kept objects keep their edges")

	a.RemoveThis(false)
	assert.Equal(t, 0, f.env.Deps.Len())
	assert.Empty(t, f.env.Deps.Dependors(b.ID()))
	assert.Empty(t, f.env.Deps.DependsOn(c.ID()))
}
