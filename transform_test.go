package sapling

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAABBNear(t *testing.T, name string, got, want AABB) {
	t.Helper()
	assertNear(t, name+".X", got.X, want.X)
	assertNear(t, name+".Y", got.Y, want.Y)
	assertNear(t, name+".HW", got.HW, want.HW)
	assertNear(t, name+".HH", got.HH, want.HH)
}

// --- Scale, angle and depth composition ---

func TestRelativeScaleIsChainProduct(t *testing.T) {
	g := newTestGraph()
	scales := []Scale{{2, 1}, {0.5, 3}, {3, 0.25}, {1.5, 2}, {4, 4}}
	n := g.NewNode()
	n.SetScale(scales[0])
	want := scales[0]
	for _, s := range scales[1:] {
		n = n.AttachNode()
		n.SetScale(s)
		want = want.Mul(s)
	}
	got := n.RelativeScale()
	assertNear(t, "sx", got.SX, want.SX)
	assertNear(t, "sy", got.SY, want.SY)
}

func TestRelativeAngleAndDepthAreChainSums(t *testing.T) {
	g := newTestGraph()
	r := g.NewNode()
	r.SetAngle(10)
	r.SetDepth(1)
	a := r.AttachNode()
	a.SetAngle(-25)
	a.SetDepth(3)
	b := a.AttachNode()
	b.SetAngle(40)
	b.SetDepth(-2)

	assertNear(t, "angle", b.RelativeAngle(), 25)
	assert.Equal(t, 2, b.RelativeDepth())
}

func TestScaleScenario(t *testing.T) {
	g := newTestGraph()
	r := g.NewNode()
	a := r.AttachNode()
	a.SetSize(Size{10, 10})
	a.SetXY(0, 0)
	b := a.AttachNode()
	b.SetSize(Size{4, 4})
	b.SetXY(2, 2)

	a.SetScale(Scale{2, 2})
	r.Traverse()

	assertVecNear(t, "B.RelativePos", b.RelativePos(), Vec2{4, 4})
	assert.Equal(t, Size{8, 8}, b.RelativeSize())
}

func TestScaleScenarioMinimalClean(t *testing.T) {
	g := newTestGraph()
	r := g.NewNode()
	a := r.AttachNode()
	a.SetSize(Size{10, 10})
	b := a.AttachNode()
	b.SetSize(Size{4, 4})
	b.SetXY(2, 2)
	a.SetScale(Scale{2, 2})

	// no traversal: the getters clean just the path they need
	assertVecNear(t, "B.RelativePos", b.RelativePos(), Vec2{4, 4})
	assert.Equal(t, Size{8, 8}, b.RelativeSize())
	assert.True(t, r.Traverse(), "root still index-stale after a minimal clean")
}

func TestDistanceRelativeOff(t *testing.T) {
	g := newTestGraph()
	r := g.NewNode()
	r.SetScale(Scale{2, 2})
	c := r.AttachNode()
	c.SetDistanceRelative(false)
	c.SetXY(2, 3)
	c.SetSize(Size{1, 1})

	assertVecNear(t, "pos", c.RelativePos(), Vec2{2, 3})
	assert.Equal(t, Size{2, 2}, c.RelativeSize())
}

// --- Origin and rotation ---

func TestOriginShiftsTopLeft(t *testing.T) {
	g := newTestGraph()
	n := g.NewNode()
	n.SetSize(Size{1, 1})
	n.SetOrigin(OriginBottomRight)
	assertVecNear(t, "bottom-right", n.RelativePos(), Vec2{-1, -1})

	n.SetSize(Size{10, 6})
	n.SetOrigin(OriginCenter)
	n.SetXY(5, 3)
	assertVecNear(t, "center", n.RelativePos(), Vec2{0, 0})
	assertAABBNear(t, "aabb", n.AABB(), NewAABB(0, 0, 10, 6))
}

func TestRotationAboutGeometricCenter(t *testing.T) {
	g := newTestGraph()
	n := g.NewNode()
	n.SetSize(Size{10, 10})
	n.SetAngle(90)

	// the top-left corner swings around the center to the bottom-left
	assertVecNear(t, "pos", n.RelativePos(), Vec2{0, 10})
	assertAABBNear(t, "aabb", n.AABB(), NewAABB(0, 0, 10, 10))
}

func TestRotationAboutExplicitCenter(t *testing.T) {
	g := newTestGraph()
	n := g.NewNode()
	n.SetSize(Size{10, 4})
	n.SetRotationCenter(Vec2{0, 0})
	n.SetAngle(90)

	assertVecNear(t, "pos", n.RelativePos(), Vec2{0, 0})
	assertAABBNear(t, "aabb", n.AABB(), NewAABB(0, -10, 4, 0))
}

func TestChildFollowsRotatedParent(t *testing.T) {
	g := newTestGraph()
	p := g.NewNode()
	p.SetSize(Size{10, 10})
	p.SetAngle(90)
	c := p.AttachNode()
	c.SetSize(Size{2, 2})
	c.SetXY(8, 0)

	// local (8, 0) lies along the parent's rotated x axis from its top-left
	assertVecNear(t, "pos", c.RelativePos(), Vec2{0, 2})
	assertNear(t, "angle", c.RelativeAngle(), 90)
	assertAABBNear(t, "aabb", c.AABB(), NewAABB(0, 0, 2, 2))
}

func TestRotatedAABBEnclosesCorners(t *testing.T) {
	g := newTestGraph()
	n := g.NewNode()
	n.SetSize(Size{4, 2})
	n.SetAngle(45)
	b := n.AABB()

	tl := n.RelativePos()
	ex := Vec2{4, 0}.Rotate(45)
	ey := Vec2{0, 2}.Rotate(45)
	for _, c := range []Vec2{tl, tl.Add(ex), tl.Add(ey), tl.Add(ex).Add(ey)} {
		assert.True(t, b.Expand(epsilon, epsilon).InsidePoint(c.X, c.Y), "corner %v outside %v", c, b)
	}
	// center of the box is invariant under rotation about it
	assertNear(t, "cx", b.X, 2)
	assertNear(t, "cy", b.Y, 1)
}

// --- Minimal clean vs full traversal ---

// buildRandomGraph applies the same pseudo-random construction and mutation
// sequence for a given seed.
func buildRandomGraph(seed uint64) (*Graph, []Node) {
	r := rand.New(rand.NewPCG(seed, seed^0x5a5a))
	g := newTestGraph()
	nodes := []Node{g.NewNode()}
	for i := 0; i < 60; i++ {
		parent := nodes[r.IntN(len(nodes))]
		nodes = append(nodes, parent.AttachNode())
	}
	for i := 0; i < 200; i++ {
		n := nodes[r.IntN(len(nodes))]
		switch r.IntN(7) {
		case 0:
			n.SetXY(r.Float64()*40-20, r.Float64()*40-20)
		case 1:
			n.SetScale(Scale{0.5 + r.Float64()*1.5, 0.5 + r.Float64()*1.5})
		case 2:
			n.SetAngle(r.Float64()*360 - 180)
		case 3:
			n.SetDepth(r.IntN(10) - 5)
		case 4:
			n.SetSize(Size{r.Float64() * 10, r.Float64() * 10})
		case 5:
			n.SetOrigin(Origin(r.IntN(9)))
		case 6:
			if r.IntN(2) == 0 {
				n.SetRotationCenter(Vec2{r.Float64() * 5, r.Float64() * 5})
			} else {
				n.SetDistanceRelative(r.IntN(2) == 0)
			}
		}
	}
	return g, nodes
}

func TestMinimalCleanMatchesFullTraversal(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		_, lazy := buildRandomGraph(seed)
		_, full := buildRandomGraph(seed)
		require.True(t, full[0].Traverse())

		// read the lazy graph leaf side first so each getter cleans a path
		for i := len(lazy) - 1; i >= 0; i-- {
			l, f := lazy[i], full[i]
			assertVecNear(t, "pos", l.RelativePos(), f.RelativePos())
			ls, fs := l.RelativeScale(), f.RelativeScale()
			assertNear(t, "sx", ls.SX, fs.SX)
			assertNear(t, "sy", ls.SY, fs.SY)
			assertNear(t, "angle", l.RelativeAngle(), f.RelativeAngle())
			assert.Equal(t, f.RelativeDepth(), l.RelativeDepth())
			lz, fz := l.RelativeSize(), f.RelativeSize()
			assertNear(t, "w", lz.W, fz.W)
			assertNear(t, "h", lz.H, fz.H)
			assertAABBNear(t, "aabb", l.AABB(), f.AABB())
		}
	}
}

func TestMinimalCleanLeavesSiblingsDirty(t *testing.T) {
	g := newTestGraph()
	r := g.NewNode()
	a := r.AttachNode()
	b := r.AttachNode()
	a.RelativePos()

	assert.False(t, a.Dirty())
	assert.False(t, r.Dirty())
	assert.True(t, b.Dirty())
}

func BenchmarkTraverse(b *testing.B) {
	g, nodes := buildRandomGraph(9)
	root := nodes[0]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nodes[1+i%(len(nodes)-1)].SetXY(float64(i%17), float64(i%13))
		root.Traverse()
	}
	_ = g
}
