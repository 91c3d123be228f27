package sapling

import (
	"log/slog"

	"github.com/phanxgames/sapling/arena"
)

// Graph owns every node record of a scene graph in struct-of-arrays form,
// plus the quadtree of each root that has been traversed. Node handles are
// thin views into a Graph.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	cfg    Config
	logger *slog.Logger
	debug  bool
	store  EntityStore

	// refs holds the reference count of each live slot; its free chain
	// decides slot reuse.
	refs arena.ExtFreeList[uint32]
	gen  []uint32 // bumped on every free, never truncated

	flags     []Flags
	parent    []int
	pos       []Vec2
	scale     []Scale
	angle     []float64
	depth     []int
	size      []Size
	rotCenter []Vec2
	origin    []Origin

	rPos   []Vec2
	rScale []Scale
	rAngle []float64
	rDepth []int
	rSize  []Size
	aabb   []AABB

	tree        []*Quadtree // by root id
	indexedIn   []int       // root whose tree holds the slot, or -1
	indexedAABB []AABB      // bounds the slot was indexed with

	level   []int32 // scratch for subtree discovery, 0 = unvisited
	order   []int
	entries []indexEntry
	stats   traverseStats
}

// NewGraph creates an empty graph. It panics if cfg does not validate; use
// DefaultConfig for the standard tuning.
func NewGraph(cfg Config) *Graph {
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	g := &Graph{
		cfg:    cfg,
		logger: discardLogger(),
		debug:  cfg.Debug,
	}
	if cfg.Debug {
		g.logger = NewLogger(cfg)
	}
	return g
}

// Config returns the configuration the graph was created with.
func (g *Graph) Config() Config { return g.cfg }

// SetLogger sets the logger used for debug output. A nil logger discards.
func (g *Graph) SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger()
	}
	g.logger = l
}

// SetDebugMode toggles per-traversal logging and tree depth warnings.
func (g *Graph) SetDebugMode(on bool) { g.debug = on }

// SetEntityStore installs a sink that receives a TraverseEvent after every
// traversal that did work. Pass nil to remove it.
func (g *Graph) SetEntityStore(s EntityStore) { g.store = s }

// Len returns the number of live nodes.
func (g *Graph) Len() int { return g.refs.Len() }

// NewNode creates a root node and returns the first handle to it.
func (g *Graph) NewNode() Node {
	id := g.acquire(-1)
	g.flags[id] = g.flags[id].set(FlagDistanceRelative, g.cfg.DistanceRelative)
	return Node{g: g, id: id, gen: g.gen[id]}
}

// Lookup returns an uncounted handle for the live node with the given id, as
// returned by Node.ID or a quadtree query.
func (g *Graph) Lookup(id int) (Node, bool) {
	if !g.refs.Active(id) {
		return Node{}, false
	}
	return Node{g: g, id: id, gen: g.gen[id]}, true
}

// acquire takes a slot with identity transform and reference count one. A
// negative parent makes the slot a root.
func (g *Graph) acquire(parent int) int {
	id := g.refs.Insert(1)
	if id == len(g.parent) {
		g.grow()
	}
	if parent < 0 {
		parent = id
	}
	g.flags[id] = FlagDirty
	if parent == id {
		g.flags[id] |= flagIndexStale
	}
	g.parent[id] = parent
	g.pos[id] = Vec2{}
	g.scale[id] = identityScale
	g.angle[id] = 0
	g.depth[id] = 0
	g.size[id] = Size{}
	g.rotCenter[id] = Vec2{}
	g.origin[id] = OriginTopLeft
	g.rPos[id] = Vec2{}
	g.rScale[id] = identityScale
	g.rAngle[id] = 0
	g.rDepth[id] = 0
	g.rSize[id] = Size{}
	g.aabb[id] = AABB{}
	g.tree[id] = nil
	g.indexedIn[id] = -1
	g.indexedAABB[id] = AABB{}
	g.level[id] = 0
	return id
}

func (g *Graph) grow() {
	g.gen = append(g.gen, 0)
	g.flags = append(g.flags, 0)
	g.parent = append(g.parent, 0)
	g.pos = append(g.pos, Vec2{})
	g.scale = append(g.scale, Scale{})
	g.angle = append(g.angle, 0)
	g.depth = append(g.depth, 0)
	g.size = append(g.size, Size{})
	g.rotCenter = append(g.rotCenter, Vec2{})
	g.origin = append(g.origin, 0)
	g.rPos = append(g.rPos, Vec2{})
	g.rScale = append(g.rScale, Scale{})
	g.rAngle = append(g.rAngle, 0)
	g.rDepth = append(g.rDepth, 0)
	g.rSize = append(g.rSize, Size{})
	g.aabb = append(g.aabb, AABB{})
	g.tree = append(g.tree, nil)
	g.indexedIn = append(g.indexedIn, -1)
	g.indexedAABB = append(g.indexedAABB, AABB{})
	g.level = append(g.level, 0)
}

// live reports whether slot i holds a node.
func (g *Graph) live(i int) bool { return g.refs.Active(i) }

// isRoot reports whether slot i is its own parent.
func (g *Graph) isRoot(i int) bool { return g.parent[i] == i }

// rootOf walks the parent chain of i up to its root.
func (g *Graph) rootOf(i int) int {
	for g.parent[i] != i {
		i = g.parent[i]
	}
	return i
}

// depthOf returns the number of ancestors of i.
func (g *Graph) depthOf(i int) int {
	d := 0
	for g.parent[i] != i {
		i = g.parent[i]
		d++
	}
	return d
}

// subtree appends id and its live descendants to dst, parents before
// children. Descendants are discovered level by level with linear scans of
// the parent array. With skipHidden set, hidden nodes and everything below
// them are left out (including id itself).
func (g *Graph) subtree(dst []int, id int, skipHidden bool) []int {
	if skipHidden && g.flags[id].Has(FlagHidden) {
		return dst
	}
	start := len(dst)
	dst = append(dst, id)
	g.level[id] = 1
	n := g.refs.Range()
	for lvl := int32(1); ; lvl++ {
		found := false
		for i := 0; i < n; i++ {
			if g.level[i] != 0 || !g.live(i) || g.isRoot(i) {
				continue
			}
			if g.level[g.parent[i]] != lvl {
				continue
			}
			if skipHidden && g.flags[i].Has(FlagHidden) {
				continue
			}
			g.level[i] = lvl + 1
			dst = append(dst, i)
			found = true
		}
		if !found {
			break
		}
	}
	for _, i := range dst[start:] {
		g.level[i] = 0
	}
	return dst
}

// children appends the direct live children of id to dst.
func (g *Graph) children(dst []int, id int) []int {
	n := g.refs.Range()
	for i := 0; i < n; i++ {
		if i != id && g.live(i) && g.parent[i] == id {
			dst = append(dst, i)
		}
	}
	return dst
}

// isAncestor reports whether a is a proper ancestor of i.
func (g *Graph) isAncestor(a, i int) bool {
	for g.parent[i] != i {
		i = g.parent[i]
		if i == a {
			return true
		}
	}
	return false
}

// hiddenFrom reports whether i or any of its ancestors up to and including
// top is hidden.
func (g *Graph) hiddenFrom(i, top int) bool {
	for {
		if g.flags[i].Has(FlagHidden) {
			return true
		}
		if i == top || g.parent[i] == i {
			return false
		}
		i = g.parent[i]
	}
}
