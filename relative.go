package sapling

import "math"

// relEpsilon is the tolerance below which a relative write is a no-op.
const relEpsilon = 1e-9

// pair checks n and other and cleans both.
func (n Node) pair(other Node) *Graph {
	g := n.check()
	if other.check() != g {
		panic("sapling: nodes belong to different graphs")
	}
	g.minimalClean(n.id)
	g.minimalClean(other.id)
	return g
}

// PosFrom returns n's relative position as seen from other.
func (n Node) PosFrom(other Node) Vec2 {
	g := n.pair(other)
	return g.rPos[n.id].Sub(g.rPos[other.id])
}

// SetPosFrom moves n so that PosFrom(other) becomes p, adjusting the local
// position through the parent's rotation and, for distance-relative nodes,
// n's relative scale.
func (n Node) SetPosFrom(other Node, p Vec2) {
	g := n.pair(other)
	delta := g.rPos[other.id].Add(p).Sub(g.rPos[n.id])

	var parentAngle float64
	if par := g.parent[n.id]; par != n.id {
		parentAngle = g.rAngle[par]
	}
	delta = delta.Rotate(-parentAngle)
	if g.flags[n.id].Has(FlagDistanceRelative) {
		rs := g.rScale[n.id]
		delta = Vec2{delta.X / rs.SX, delta.Y / rs.SY}
	}
	if math.Abs(delta.X) < relEpsilon && math.Abs(delta.Y) < relEpsilon {
		return
	}
	n.SetPos(g.pos[n.id].Add(delta))
}

// ScaleFrom returns n's relative scale divided by other's.
func (n Node) ScaleFrom(other Node) Scale {
	g := n.pair(other)
	a, b := g.rScale[n.id], g.rScale[other.id]
	return Scale{a.SX / b.SX, a.SY / b.SY}
}

// SetScaleFrom rescales n so that ScaleFrom(other) becomes s.
func (n Node) SetScaleFrom(other Node, s Scale) {
	if s.SX <= 0 || s.SY <= 0 {
		panic("sapling: scale must be positive")
	}
	g := n.pair(other)
	cur, ref, local := g.rScale[n.id], g.rScale[other.id], g.scale[n.id]
	next := Scale{
		local.SX * ref.SX * s.SX / cur.SX,
		local.SY * ref.SY * s.SY / cur.SY,
	}
	if math.Abs(next.SX-local.SX) < relEpsilon && math.Abs(next.SY-local.SY) < relEpsilon {
		return
	}
	n.SetScale(next)
}

// AngleFrom returns n's relative angle minus other's, in degrees.
func (n Node) AngleFrom(other Node) float64 {
	g := n.pair(other)
	return g.rAngle[n.id] - g.rAngle[other.id]
}

// SetAngleFrom rotates n so that AngleFrom(other) becomes deg.
func (n Node) SetAngleFrom(other Node, deg float64) {
	g := n.pair(other)
	delta := g.rAngle[other.id] + deg - g.rAngle[n.id]
	if math.Abs(delta) < relEpsilon {
		return
	}
	n.SetAngle(g.angle[n.id] + delta)
}

// DepthFrom returns n's relative depth minus other's.
func (n Node) DepthFrom(other Node) int {
	g := n.pair(other)
	return g.rDepth[n.id] - g.rDepth[other.id]
}

// SetDepthFrom changes n's depth so that DepthFrom(other) becomes d.
func (n Node) SetDepthFrom(other Node, d int) {
	g := n.pair(other)
	delta := g.rDepth[other.id] + d - g.rDepth[n.id]
	if delta == 0 {
		return
	}
	n.SetDepth(g.depth[n.id] + delta)
}
