package sapling

// Node is a handle to one node record in a Graph. Copying a Node yields an
// uncounted alias of the same record: every alias sees every mutation
// immediately. Retain returns a counted handle and Release gives one back;
// when the count reaches zero the record is freed and all handles to it go
// stale. Any use of a stale or zero Node panics.
type Node struct {
	g   *Graph
	id  int
	gen uint32
}

// check returns the owning graph, panicking if n is stale.
func (n Node) check() *Graph {
	if n.g == nil {
		panic("sapling: use of zero Node")
	}
	if !n.g.live(n.id) || n.g.gen[n.id] != n.gen {
		panic("sapling: use of released node")
	}
	return n.g
}

// Valid reports whether n still refers to a live node.
func (n Node) Valid() bool {
	return n.g != nil && n.g.live(n.id) && n.g.gen[n.id] == n.gen
}

// ID returns the slot index of the node. Ids are reused after a node is
// freed; use Graph.Lookup to turn an id from a query back into a handle.
func (n Node) ID() int {
	n.check()
	return n.id
}

// Graph returns the graph that owns the node.
func (n Node) Graph() *Graph { return n.g }

// --- Reference counting ---

// Retain increments the reference count and returns a counted handle.
func (n Node) Retain() Node {
	g := n.check()
	*g.refs.At(n.id)++
	return n
}

// Release decrements the reference count. At zero the node is freed: it
// leaves its spatial index, a quadtree it owned is dropped, its children
// become roots and its former ancestors are dirtied.
func (n Node) Release() {
	g := n.check()
	rc := g.refs.At(n.id)
	*rc--
	if *rc == 0 {
		g.free(n.id)
	}
}

// RefCount returns the number of counted handles.
func (n Node) RefCount() int {
	g := n.check()
	return int(*g.refs.At(n.id))
}

func (g *Graph) free(id int) {
	g.unindex(id)
	if g.tree[id] != nil {
		g.dropTree(id)
	}

	kids := g.children(nil, id)
	for _, c := range kids {
		g.unindexSubtree(c)
		g.parent[c] = c
		g.propagateDirty(c)
	}
	if !g.isRoot(id) {
		g.dirtyChain(g.parent[id])
	}

	g.parent[id] = id
	g.flags[id] = FlagFree
	g.gen[id]++
	g.refs.Erase(id)
}

// --- Hierarchy ---

// AttachNode creates a child of n that inherits its origin and
// distance-relative flag, and returns the first handle to it.
func (n Node) AttachNode() Node {
	g := n.check()
	id := g.acquire(n.id)
	g.origin[id] = g.origin[n.id]
	g.flags[id] = g.flags[id].set(FlagDistanceRelative, g.flags[n.id].Has(FlagDistanceRelative))
	g.propagateDirty(n.id)
	if g.debug {
		g.debugCheckTreeDepth(id)
	}
	return Node{g: g, id: id, gen: g.gen[id]}
}

// ReparentTo moves n (with its subtree) under parent. It panics, leaving the
// graph untouched, if parent is n itself or one of its descendants.
func (n Node) ReparentTo(parent Node) {
	g := n.check()
	parent.check()
	if parent.g != g {
		panic("sapling: reparent across graphs")
	}
	if parent.id == n.id || g.isAncestor(n.id, parent.id) {
		panic("sapling: reparent would create a cycle")
	}
	if g.parent[n.id] == parent.id {
		return
	}

	if g.isRoot(n.id) {
		if g.tree[n.id] != nil {
			g.dropTree(n.id)
		}
	} else {
		g.dirtyChain(g.parent[n.id])
	}
	g.unindexSubtree(n.id)
	g.parent[n.id] = parent.id
	g.propagateDirty(n.id)
	if g.debug {
		g.debugCheckTreeDepth(n.id)
	}
}

// Parent returns an uncounted handle to the parent. A root is its own parent.
func (n Node) Parent() Node {
	g := n.check()
	p := g.parent[n.id]
	return Node{g: g, id: p, gen: g.gen[p]}
}

// IsRoot reports whether n has no parent.
func (n Node) IsRoot() bool {
	g := n.check()
	return g.isRoot(n.id)
}

// Root returns an uncounted handle to the root of n's tree.
func (n Node) Root() Node {
	g := n.check()
	r := g.rootOf(n.id)
	return Node{g: g, id: r, gen: g.gen[r]}
}

// Children returns uncounted handles to the direct children of n, in slot
// order.
func (n Node) Children() []Node {
	g := n.check()
	ids := g.children(nil, n.id)
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{g: g, id: id, gen: g.gen[id]}
	}
	return out
}

// --- Local state ---

// Pos returns the local position.
func (n Node) Pos() Vec2 { return n.check().pos[n.id] }

// SetPos sets the local position, measured from the parent's top-left corner
// to n's origin anchor.
func (n Node) SetPos(p Vec2) {
	g := n.check()
	if g.pos[n.id] == p {
		return
	}
	g.pos[n.id] = p
	g.propagateDirty(n.id)
}

// SetXY is shorthand for SetPos(Vec2{x, y}).
func (n Node) SetXY(x, y float64) { n.SetPos(Vec2{x, y}) }

// Scale returns the local scale.
func (n Node) Scale() Scale { return n.check().scale[n.id] }

// SetScale sets the local scale. Both components must be positive.
func (n Node) SetScale(s Scale) {
	g := n.check()
	if s.SX <= 0 || s.SY <= 0 {
		panic("sapling: scale must be positive")
	}
	if g.scale[n.id] == s {
		return
	}
	g.scale[n.id] = s
	g.propagateDirty(n.id)
}

// SetUniformScale sets both scale components to s.
func (n Node) SetUniformScale(s float64) { n.SetScale(Scale{s, s}) }

// Angle returns the local rotation in degrees.
func (n Node) Angle() float64 { return n.check().angle[n.id] }

// AngleRadians returns the local rotation in radians.
func (n Node) AngleRadians() float64 { return n.Angle() * degToRad }

// SetAngle sets the local rotation in degrees. Positive angles turn
// counterclockwise on screen.
func (n Node) SetAngle(deg float64) {
	g := n.check()
	if g.angle[n.id] == deg {
		return
	}
	g.angle[n.id] = deg
	g.propagateDirty(n.id)
}

// SetAngleRadians sets the local rotation in radians.
func (n Node) SetAngleRadians(rad float64) { n.SetAngle(rad * radToDeg) }

// Depth returns the local depth.
func (n Node) Depth() int { return n.check().depth[n.id] }

// SetDepth sets the local depth. Relative depth is the sum along the chain.
func (n Node) SetDepth(d int) {
	g := n.check()
	if g.depth[n.id] == d {
		return
	}
	g.depth[n.id] = d
	g.propagateDirty(n.id)
}

// Size returns the local size.
func (n Node) Size() Size { return n.check().size[n.id] }

// SetSize sets the local size. Negative components panic.
func (n Node) SetSize(s Size) {
	g := n.check()
	if s.W < 0 || s.H < 0 {
		panic("sapling: size must not be negative")
	}
	if g.size[n.id] == s {
		return
	}
	g.size[n.id] = s
	g.propagateDirty(n.id)
}

// Origin returns the origin anchor.
func (n Node) Origin() Origin { return n.check().origin[n.id] }

// SetOrigin sets the anchor that Pos locates.
func (n Node) SetOrigin(o Origin) {
	g := n.check()
	if o > OriginBottomRight {
		panic("sapling: invalid origin")
	}
	if g.origin[n.id] == o {
		return
	}
	g.origin[n.id] = o
	g.propagateDirty(n.id)
}

// RotationCenter returns the explicit rotation center and whether one is
// set.
func (n Node) RotationCenter() (Vec2, bool) {
	g := n.check()
	return g.rotCenter[n.id], g.flags[n.id].Has(FlagRotationCenterSet)
}

// SetRotationCenter makes n rotate about c, an offset from its top-left
// corner in local units, instead of about its geometric center.
func (n Node) SetRotationCenter(c Vec2) {
	g := n.check()
	if g.flags[n.id].Has(FlagRotationCenterSet) && g.rotCenter[n.id] == c {
		return
	}
	g.rotCenter[n.id] = c
	g.flags[n.id] |= FlagRotationCenterSet
	g.propagateDirty(n.id)
}

// ClearRotationCenter reverts to rotating about the geometric center.
func (n Node) ClearRotationCenter() {
	g := n.check()
	if !g.flags[n.id].Has(FlagRotationCenterSet) {
		return
	}
	g.rotCenter[n.id] = Vec2{}
	g.flags[n.id] &^= FlagRotationCenterSet
	g.propagateDirty(n.id)
}

// DistanceRelative reports whether the local position is scaled by the
// relative scale.
func (n Node) DistanceRelative() bool {
	return n.check().flags[n.id].Has(FlagDistanceRelative)
}

// SetDistanceRelative toggles scaling of the local position by the relative
// scale.
func (n Node) SetDistanceRelative(on bool) {
	n.setFlag(FlagDistanceRelative, on)
}

// Hidden reports whether n itself is hidden.
func (n Node) Hidden() bool { return n.check().flags[n.id].Has(FlagHidden) }

// Hide excludes n and its subtree from queries.
func (n Node) Hide() { n.setFlag(FlagHidden, true) }

// Show undoes Hide.
func (n Node) Show() { n.setFlag(FlagHidden, false) }

// Flags returns the public state bits of n.
func (n Node) Flags() Flags {
	return n.check().flags[n.id] &^ flagIndexStale
}

func (n Node) setFlag(f Flags, on bool) {
	g := n.check()
	if g.flags[n.id].Has(f) == on {
		return
	}
	g.flags[n.id] = g.flags[n.id].set(f, on)
	g.propagateDirty(n.id)
}

// --- Relative state ---

// RelativePos returns the world position of n's rotated top-left corner.
func (n Node) RelativePos() Vec2 {
	g := n.check()
	g.minimalClean(n.id)
	return g.rPos[n.id]
}

// RelativeScale returns the product of the scales along the chain.
func (n Node) RelativeScale() Scale {
	g := n.check()
	g.minimalClean(n.id)
	return g.rScale[n.id]
}

// RelativeAngle returns the sum of the angles along the chain, in degrees.
func (n Node) RelativeAngle() float64 {
	g := n.check()
	g.minimalClean(n.id)
	return g.rAngle[n.id]
}

// RelativeDepth returns the sum of the depths along the chain.
func (n Node) RelativeDepth() int {
	g := n.check()
	g.minimalClean(n.id)
	return g.rDepth[n.id]
}

// RelativeSize returns the local size times the relative scale.
func (n Node) RelativeSize() Size {
	g := n.check()
	g.minimalClean(n.id)
	return g.rSize[n.id]
}

// AABB returns the world bounds of n's rotated box.
func (n Node) AABB() AABB {
	g := n.check()
	g.minimalClean(n.id)
	return g.aabb[n.id]
}

// Dirty reports whether n's relative values are stale.
func (n Node) Dirty() bool { return n.check().flags[n.id].Has(FlagDirty) }
