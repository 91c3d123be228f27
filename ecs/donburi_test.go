package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/sapling"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	var store sapling.EntityStore = NewDonburiStore(world)
	require.NotNil(t, store)
}

func TestDonburiStore_EmitTraverse(t *testing.T) {
	world := donburi.NewWorld()
	g := sapling.NewGraph(sapling.DefaultConfig())
	g.SetEntityStore(NewDonburiStore(world))

	var received []sapling.TraverseEvent
	TraverseEventType.Subscribe(world, func(w donburi.World, e sapling.TraverseEvent) {
		received = append(received, e)
	})

	root := g.NewNode()
	root.SetSize(sapling.Size{W: 10, H: 10})
	root.AttachNode()
	root.Traverse()
	root.Traverse()

	// Events are queued until processed.
	assert.Empty(t, received)
	TraverseEventType.ProcessEvents(world)

	require.Len(t, received, 1)
	assert.Equal(t, root.ID(), received[0].Root)
	assert.Equal(t, 2, received[0].Nodes)
	assert.Equal(t, 2, received[0].Inserted)
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	TraverseEventType.Subscribe(world, func(w donburi.World, e sapling.TraverseEvent) {
		count1++
	})
	TraverseEventType.Subscribe(world, func(w donburi.World, e sapling.TraverseEvent) {
		count2++
	})

	store.EmitTraverse(sapling.TraverseEvent{Root: 3, Resized: true})
	events.ProcessAllEvents(world)

	assert.Equal(t, 1, count1)
	assert.Equal(t, 1, count2)
}

func TestAttachAndDetachEntity(t *testing.T) {
	world := donburi.NewWorld()
	g := sapling.NewGraph(sapling.DefaultConfig())
	n := g.NewNode()

	e := AttachEntity(world, n)
	assert.Equal(t, 2, n.RefCount())
	assert.Equal(t, n, NodeOf(world.Entry(e)))

	n.Release()
	assert.True(t, n.Valid(), "entity keeps the node alive")

	DetachEntity(world, e)
	assert.False(t, world.Valid(e))
	assert.False(t, n.Valid())

	DetachEntity(world, e)
}

func TestQueryEntities(t *testing.T) {
	world := donburi.NewWorld()
	g := sapling.NewGraph(sapling.DefaultConfig())
	root := g.NewNode()
	root.SetSize(sapling.Size{W: 100, H: 100})

	box := func(x, y float64, depth int) sapling.Node {
		n := root.AttachNode()
		n.SetXY(x, y)
		n.SetSize(sapling.Size{W: 5, H: 5})
		n.SetDepth(depth)
		return n
	}
	front := box(10, 10, 5)
	back := box(12, 12, 1)
	box(14, 14, 3) // no entity
	away := box(80, 80, 0)

	eFront := AttachEntity(world, front)
	eBack := AttachEntity(world, back)
	AttachEntity(world, away)

	other := sapling.NewGraph(sapling.DefaultConfig()).NewNode()
	AttachEntity(world, other)

	got := QueryEntities(world, root, sapling.NewAABB(0, 0, 30, 30))
	require.Len(t, got, 2)
	assert.Equal(t, eBack, got[0].Entity())
	assert.Equal(t, eFront, got[1].Entity())
}

func TestPrune(t *testing.T) {
	world := donburi.NewWorld()
	g := sapling.NewGraph(sapling.DefaultConfig())
	root := g.NewNode()
	child := root.AttachNode()

	eRoot := AttachEntity(world, root)
	eChild := AttachEntity(world, child)

	// drop every count on child so its slot is freed
	child.Release()
	child.Release()

	assert.Equal(t, 1, Prune(world))
	assert.True(t, world.Valid(eRoot))
	assert.False(t, world.Valid(eChild))
	assert.Equal(t, 0, Prune(world))
}
