package sapling

import "math"

// process recomputes the relative values of id from its local values and its
// parent's relative values, which must already be clean, and clears
// FlagDirty.
//
// Order matters: angle, depth and scale first, then size and position, which
// depend on the relative scale and angle.
func (g *Graph) process(id int) {
	p := g.parent[id]
	if p == id {
		g.rAngle[id] = g.angle[id]
		g.rDepth[id] = g.depth[id]
		g.rScale[id] = g.scale[id]
	} else {
		g.rAngle[id] = g.rAngle[p] + g.angle[id]
		g.rDepth[id] = g.rDepth[p] + g.depth[id]
		g.rScale[id] = g.rScale[p].Mul(g.scale[id])
	}
	g.rSize[id] = g.size[id].MulScale(g.rScale[id])
	g.processPos(id)
	g.flags[id] &^= FlagDirty
}

// processPos resolves the relative position (the world position of the
// node's rotated top-left corner) and the AABB of id.
//
// The local position is measured from the parent's top-left corner in the
// parent's rotated frame and locates the node's origin anchor. The node's box
// turns about its rotation center, and that center is carried around the
// parent by the parent's rotation.
func (g *Graph) processPos(id int) {
	p := g.parent[id]
	f := g.flags[id]
	rs := g.rScale[id]
	sz := g.rSize[id]

	d := g.pos[id]
	if f.Has(FlagDistanceRelative) {
		d = d.MulScale(rs)
	}
	topLeft := d.Sub(g.origin[id].offset(sz))

	var center Vec2
	if f.Has(FlagRotationCenterSet) {
		center = topLeft.Add(g.rotCenter[id].MulScale(rs))
	} else {
		center = topLeft.Add(Vec2{sz.W / 2, sz.H / 2})
	}

	var base Vec2
	var parentAngle float64
	if p != id {
		base = g.rPos[p]
		parentAngle = g.rAngle[p]
	}
	angle := g.rAngle[id]
	pos := base.Add(center.Rotate(parentAngle)).Add(topLeft.Sub(center).Rotate(angle))
	g.rPos[id] = pos
	g.aabb[id] = boxAABB(pos, sz, angle)
}

// boxAABB returns the bounds of a w x h box whose top-left corner sits at tl
// and which is rotated by angle degrees about that corner.
func boxAABB(tl Vec2, sz Size, angle float64) AABB {
	if angle == 0 {
		return NewAABB(tl.X, tl.Y, tl.X+sz.W, tl.Y+sz.H)
	}
	ex := Vec2{sz.W, 0}.Rotate(angle)
	ey := Vec2{0, sz.H}.Rotate(angle)
	corners := [3]Vec2{tl.Add(ex), tl.Add(ey), tl.Add(ex).Add(ey)}
	minX, minY, maxX, maxY := tl.X, tl.Y, tl.X, tl.Y
	for _, c := range corners {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return NewAABB(minX, minY, maxX, maxY)
}
