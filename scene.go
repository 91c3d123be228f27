package sapling

// EntityStore is the interface for optional ECS integration.
// When set on a Graph, every traversal that did work is reported to it.
type EntityStore interface {
	EmitTraverse(event TraverseEvent)
}

// TraverseEvent describes one traversal of a root.
type TraverseEvent struct {
	Root     int  // id of the traversed root
	Nodes    int  // nodes recomputed
	Inserted int  // nodes newly added to the quadtree
	Moved    int  // nodes whose indexed bounds changed
	Resized  bool // the quadtree had to grow to fit the subtree
}

// afterTraverse forwards the stats of a finished traversal to the debug log
// and the entity store.
func (g *Graph) afterTraverse(s traverseStats) {
	g.debugLog(s)
	if g.store != nil {
		g.store.EmitTraverse(TraverseEvent{
			Root:     s.root,
			Nodes:    s.nodes,
			Inserted: s.inserted,
			Moved:    s.moved,
			Resized:  s.resized,
		})
	}
}
