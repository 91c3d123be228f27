package ebitengame

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/sapling"
)

const epsilon = 1e-9

func newScene() (sapling.Node, sapling.Node, sapling.Node) {
	g := sapling.NewGraph(sapling.DefaultConfig())
	root := g.NewNode()
	root.SetSize(sapling.Size{W: 100, H: 100})
	near := root.AttachNode()
	near.SetXY(10, 10)
	near.SetSize(sapling.Size{W: 8, H: 8})
	near.SetDepth(2)
	far := root.AttachNode()
	far.SetXY(500, 500)
	far.SetSize(sapling.Size{W: 8, H: 8})
	return root, near, far
}

func ids(nodes []sapling.Node) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}

func TestStepQueriesView(t *testing.T) {
	root, near, _ := newScene()
	g := New(root, RunConfig{Title: "t", Width: 64, Height: 64})
	g.Step(1.0 / 60)
	assert.Equal(t, []int{root.ID(), near.ID()}, ids(g.Visible()))

	g.UseIndex = true
	g.Step(1.0 / 60)
	assert.Equal(t, []int{root.ID(), near.ID()}, ids(g.Visible()))
}

func TestSetView(t *testing.T) {
	root, _, far := newScene()
	g := New(root, RunConfig{Width: 64, Height: 64})
	g.SetView(sapling.NewAABB(490, 490, 520, 520))
	g.Step(0.1)
	assert.Equal(t, []int{far.ID()}, ids(g.Visible()))
	assert.Equal(t, sapling.NewAABB(490, 490, 520, 520), g.View())
}

func TestStepRunsTasksThenSequences(t *testing.T) {
	root, near, _ := newScene()
	g := New(root, RunConfig{Width: 64, Height: 64})

	var order []string
	g.Tasks().Add("log", 0, func(float64) { order = append(order, "task") })

	seq := sapling.NewSequence(sapling.NewInterval(near, 1, nil).MoveTo(sapling.Vec2{X: 300, Y: 10}))
	g.AddSequence(seq)
	seq.Play()

	g.Step(1)
	assert.Equal(t, []string{"task"}, order)
	assert.Equal(t, sapling.Vec2{X: 300, Y: 10}, near.Pos())
	assert.Equal(t, []int{root.ID()}, ids(g.Visible()), "animated node left the view")
}

func TestStepAfterRootReleased(t *testing.T) {
	root, _, _ := newScene()
	g := New(root, RunConfig{Width: 64, Height: 64})
	g.Step(0.1)
	require.NotEmpty(t, g.Visible())

	root.Release()
	g.Step(0.1)
	assert.Empty(t, g.Visible())
}

func TestUpdateAndLayout(t *testing.T) {
	root, _, _ := newScene()
	g := New(root, RunConfig{Width: 320, Height: 240})
	assert.NoError(t, g.Update())
	w, h := g.Layout(1000, 1000)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
	assert.Equal(t, root, g.Root())
}

func TestDrawCallsOnDraw(t *testing.T) {
	root, near, _ := newScene()
	g := New(root, RunConfig{Width: 64, Height: 64})
	g.Draw(nil)

	var got []sapling.Node
	g.OnDraw = func(_ *ebiten.Image, visible []sapling.Node) { got = visible }
	g.Step(0.1)
	g.Draw(nil)
	assert.Equal(t, []int{root.ID(), near.ID()}, ids(got))
}

func TestNewRejectsEmptyWindow(t *testing.T) {
	root, _, _ := newScene()
	assert.Panics(t, func() { New(root, RunConfig{}) })
}

func assertApply(t *testing.T, m ebiten.GeoM, x, y, wantX, wantY float64) {
	t.Helper()
	gx, gy := m.Apply(x, y)
	if math.Abs(gx-wantX) > epsilon || math.Abs(gy-wantY) > epsilon {
		t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", x, y, gx, gy, wantX, wantY)
	}
}

func TestGeoMTranslatesAndScales(t *testing.T) {
	g := sapling.NewGraph(sapling.DefaultConfig())
	n := g.NewNode()
	n.SetXY(10, 20)
	n.SetSize(sapling.Size{W: 4, H: 2})
	n.SetScale(sapling.Scale{SX: 2, SY: 3})

	m := GeoM(n)
	p := n.RelativePos()
	assertApply(t, m, 0, 0, p.X, p.Y)
	assertApply(t, m, 4, 2, p.X+8, p.Y+6)
}

func TestGeoMRotationMatchesBox(t *testing.T) {
	g := sapling.NewGraph(sapling.DefaultConfig())
	n := g.NewNode()
	n.SetSize(sapling.Size{W: 4, H: 2})
	n.SetAngle(90)

	m := GeoM(n)
	// a quarter turn about the box center (2, 1)
	assertApply(t, m, 0, 0, 1, 3)
	assertApply(t, m, 4, 0, 1, -1)
	assertApply(t, m, 4, 2, 3, -1)

	b := n.AABB()
	assert.InDelta(t, 2, b.X, epsilon)
	assert.InDelta(t, 1, b.Y, epsilon)
	assert.InDelta(t, 1, b.HW, epsilon)
	assert.InDelta(t, 2, b.HH, epsilon)
}
