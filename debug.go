package sapling

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// traverseStats holds the bookkeeping of one traversal. elapsed is only
// measured when the graph is in debug mode.
type traverseStats struct {
	root     int
	nodes    int
	inserted int
	moved    int
	resized  bool
	elapsed  time.Duration
}

// LastTraverse returns what the most recent traversal that did work reported.
func (g *Graph) LastTraverse() TraverseEvent {
	s := g.stats
	return TraverseEvent{Root: s.root, Nodes: s.nodes, Inserted: s.inserted, Moved: s.moved, Resized: s.resized}
}

// debugLog writes one record per traversal when debug mode is on.
func (g *Graph) debugLog(s traverseStats) {
	if !g.debug {
		return
	}
	g.logger.LogAttrs(context.Background(), slog.LevelDebug, "traverse",
		slog.Int("root", s.root),
		slog.Int("nodes", s.nodes),
		slog.Int("inserted", s.inserted),
		slog.Int("moved", s.moved),
		slog.Bool("resized", s.resized),
		slog.Duration("elapsed", s.elapsed),
	)
}

// debugMaxTreeDepth is the depth past which attaching or reparenting warns.
const debugMaxTreeDepth = 32

func (g *Graph) debugCheckTreeDepth(id int) {
	if d := g.depthOf(id); d > debugMaxTreeDepth {
		g.logger.Warn("tree depth exceeds threshold",
			slog.Int("node", id),
			slog.Int("depth", d),
			slog.Int("threshold", debugMaxTreeDepth),
		)
	}
}

// NewLogger returns a text logger on stderr at the configured level. Debug
// mode lowers the level so traversal records get through.
func NewLogger(cfg Config) *slog.Logger {
	l, err := cfg.Level()
	if err != nil {
		l = slog.LevelInfo
	}
	if cfg.Debug {
		l = min(l, slog.LevelDebug)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
