package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/sapling"
)

// TraverseEventType is the Donburi event type for sapling traversal events.
// Subscribe to this in your ECS systems to react to index updates.
var TraverseEventType = events.NewEventType[sapling.TraverseEvent]()

// NodeComponent holds the scene node an entity is bound to. The handle is
// retained by AttachEntity and released by DetachEntity.
var NodeComponent = donburi.NewComponentType[sapling.Node]()

var nodeQuery = donburi.NewQuery(filter.Contains(NodeComponent))

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Traversal events are published to TraverseEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) sapling.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitTraverse(event sapling.TraverseEvent) {
	TraverseEventType.Publish(s.world, event)
}

// AttachEntity creates an entity bound to n and retains n for it.
func AttachEntity(world donburi.World, n sapling.Node) donburi.Entity {
	e := world.Create(NodeComponent)
	NodeComponent.SetValue(world.Entry(e), n.Retain())
	return e
}

// DetachEntity removes the entity and releases its node.
func DetachEntity(world donburi.World, e donburi.Entity) {
	if !world.Valid(e) {
		return
	}
	entry := world.Entry(e)
	if entry.HasComponent(NodeComponent) {
		if n := NodeComponent.GetValue(entry); n.Valid() {
			n.Release()
		}
	}
	world.Remove(e)
}

// NodeOf returns the node bound to entry.
func NodeOf(entry *donburi.Entry) sapling.Node {
	return NodeComponent.GetValue(entry)
}

// QueryEntities returns the entities whose nodes root.Query finds in b,
// sorted by relative depth. Nodes without an entity are skipped.
func QueryEntities(world donburi.World, root sapling.Node, b sapling.AABB) []*donburi.Entry {
	byID := make(map[int]*donburi.Entry)
	nodeQuery.Each(world, func(entry *donburi.Entry) {
		n := NodeComponent.GetValue(entry)
		if n.Valid() && n.Graph() == root.Graph() {
			byID[n.ID()] = entry
		}
	})
	var out []*donburi.Entry
	for _, n := range root.Query(b, true) {
		if entry, ok := byID[n.ID()]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// Prune removes entities whose nodes have been freed and returns how many
// were removed.
func Prune(world donburi.World) int {
	var stale []donburi.Entity
	nodeQuery.Each(world, func(entry *donburi.Entry) {
		if !NodeComponent.GetValue(entry).Valid() {
			stale = append(stale, entry.Entity())
		}
	})
	for _, e := range stale {
		world.Remove(e)
	}
	return len(stale)
}
