// Package sapling is a retained-mode 2D scene graph with lazily resolved
// world transforms and a per-root spatial index.
//
// A [Graph] stores every node in flat arrays; a [Node] is a small handle
// into it. Nodes form trees: [Graph.NewNode] creates a root and
// [Node.AttachNode] creates a child. Children inherit their parent's
// position, scale, angle and depth.
//
// # Quick start
//
//	g := sapling.NewGraph(sapling.DefaultConfig())
//	root := g.NewNode()
//	root.SetSize(sapling.Size{W: 640, H: 480})
//
//	hero := root.AttachNode()
//	hero.SetXY(100, 50)
//	hero.SetSize(sapling.Size{W: 16, H: 16})
//	hero.SetAngle(45)
//
//	visible := root.Query(sapling.NewAABB(0, 0, 640, 480), true)
//
// # Relative values
//
// Setters only change local state and flag the node and its subtree dirty.
// Getters such as [Node.RelativePos] and [Node.AABB] recompute just the
// dirty path from the root down to the node. [Node.Traverse] resolves a
// whole tree and brings its [Quadtree] up to date; queries call it for you.
//
// The From family ([Node.PosFrom], [Node.SetPosFrom] and friends) reads and
// writes values as seen from another node of the same graph.
//
// # Animation and scheduling
//
// [Interval] tweens node channels with [gween]; a [Sequence] chains them.
// [TaskManager] runs named callbacks each frame or after a delay. The
// sapling/ebitengame package drives both from an [Ebitengine] game loop,
// and sapling/ecs forwards traversal events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package sapling
