// Package ebitengame runs a sapling scene inside an Ebitengine game loop.
//
// Each tick the [Game] runs its tasks, steps its animation sequences,
// traverses the scene and queries the visible nodes, which are handed to
// OnDraw in depth order:
//
//	g := ebitengame.New(root, ebitengame.RunConfig{Title: "demo", Width: 640, Height: 480})
//	g.OnDraw = func(screen *ebiten.Image, visible []sapling.Node) {
//		for _, n := range visible {
//			op := &ebiten.DrawImageOptions{GeoM: ebitengame.GeoM(n)}
//			screen.DrawImage(sprites[n.ID()], op)
//		}
//	}
//	log.Fatal(ebitengame.Run(g))
package ebitengame

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sapling"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Game implements ebiten.Game for a single scene root.
type Game struct {
	// OnDraw receives the screen and the nodes overlapping the view,
	// sorted by relative depth.
	OnDraw func(screen *ebiten.Image, visible []sapling.Node)

	// UseIndex answers the view query through the root's quadtree instead
	// of a direct scan.
	UseIndex bool

	root      sapling.Node
	cfg       RunConfig
	tasks     *sapling.TaskManager
	sequences []*sapling.Sequence
	view      sapling.AABB
	visible   []sapling.Node
}

// New creates a Game for root. The view starts as the window rectangle.
func New(root sapling.Node, cfg RunConfig) *Game {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		panic("ebitengame: window size must be positive")
	}
	return &Game{
		root:  root,
		cfg:   cfg,
		tasks: sapling.NewTaskManager(),
		view:  sapling.NewAABB(0, 0, float64(cfg.Width), float64(cfg.Height)),
	}
}

// Root returns the scene root the game drives.
func (g *Game) Root() sapling.Node { return g.root }

// Tasks returns the game's task manager.
func (g *Game) Tasks() *sapling.TaskManager { return g.tasks }

// AddSequence registers a sequence to be stepped every tick. The caller
// still controls Play, Pause and Stop.
func (g *Game) AddSequence(s *sapling.Sequence) {
	g.sequences = append(g.sequences, s)
}

// SetView changes the rectangle queried for visible nodes.
func (g *Game) SetView(b sapling.AABB) { g.view = b }

// View returns the rectangle queried for visible nodes.
func (g *Game) View() sapling.AABB { return g.view }

// Visible returns the nodes found by the last tick.
func (g *Game) Visible() []sapling.Node { return g.visible }

// Update advances the game by one tick of 1/TPS seconds.
func (g *Game) Update() error {
	g.Step(1.0 / float64(ebiten.TPS()))
	return nil
}

// Step advances the game by dt seconds.
func (g *Game) Step(dt float64) {
	g.tasks.Execute(dt)
	for _, s := range g.sequences {
		s.Step(dt)
	}
	if !g.root.Valid() {
		g.visible = g.visible[:0]
		return
	}
	if g.UseIndex {
		g.visible = g.root.QueryIndex(g.view, true)
	} else {
		g.visible = g.root.Query(g.view, true)
	}
}

// Draw hands the visible nodes to OnDraw.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.OnDraw != nil {
		g.OnDraw(screen, g.visible)
	}
}

// Layout keeps a fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and blocks until the game ends.
func Run(g *Game) error {
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	return ebiten.RunGame(g)
}

// GeoM returns the matrix that draws an image of the node's local size at
// its world position, scale and angle.
func GeoM(n sapling.Node) ebiten.GeoM {
	s := n.RelativeScale()
	p := n.RelativePos()
	var m ebiten.GeoM
	m.Scale(s.SX, s.SY)
	// ebiten rotates clockwise on screen for positive angles
	m.Rotate(-n.RelativeAngle() * math.Pi / 180)
	m.Translate(p.X, p.Y)
	return m
}
