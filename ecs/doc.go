// Package ecs bridges sapling scene graphs into a [Donburi] world.
//
// [NewDonburiStore] publishes every traversal that did work as a
// [TraverseEventType] event. [NodeComponent] attaches a node handle to an
// entity so systems can look nodes up, and [QueryEntities] answers a
// spatial query with the matching entities instead of bare nodes.
//
// Usage:
//
//	world := donburi.NewWorld()
//	graph.SetEntityStore(ecs.NewDonburiStore(world))
//	e := ecs.AttachEntity(world, hero)
//	visible := ecs.QueryEntities(world, root, view)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
