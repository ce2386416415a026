// Package graph restructures a parsed commit history into linear per-branch
// stems and, for a chosen base branch, a squash map (CSM) that attaches to
// every base commit the commits merged into it at that point.
//
// The package provides:
//   - Graph, an id-addressed arena of mutable nodes over immutable records
//   - leaf detection and stem decomposition along first-parent chains
//   - CSM construction with nested-merge squashing
//   - pull-request enrichment and cursor pagination of CSM entries
//
// Everything here is synchronous and single-threaded. Decompose writes a
// node's stem id once and Build consumes stem nodes as it squashes them, so
// a Graph must not be shared between concurrent runs.
package graph

import (
	"github.com/rs/zerolog/log"

	"github.com/audi70r/gitstems/internal/git"
)

// Node wraps one commit record with the fields filled in by decomposition.
type Node struct {
	Commit *git.CommitRecord

	// StemID is "" until Decompose claims the node; it is never reassigned.
	StemID string

	// MergedIntoBaseStem is the stem of the merge commit that reached this
	// node as a non-primary parent, or "".
	MergedIntoBaseStem string

	// Synthetic nodes come from pull-request data and are not in the graph.
	Synthetic bool
}

// ID returns the commit hash
func (n *Node) ID() string {
	return n.Commit.ID
}

// Sequence returns the commit's recency key (0 = most recent)
func (n *Node) Sequence() int {
	return n.Commit.Sequence
}

// IsMerge reports whether the commit has more than one parent
func (n *Node) IsMerge() bool {
	return n.Commit.IsMerge()
}

// Graph is a lookup from commit id to node. Edges are the parent ids on each
// record and are resolved through Lookup.
type Graph struct {
	nodes []*Node
	index map[string]*Node
}

// New builds a graph with one node per record. On a duplicate id the first
// record wins.
func New(commits []git.CommitRecord) *Graph {
	g := &Graph{
		nodes: make([]*Node, 0, len(commits)),
		index: make(map[string]*Node, len(commits)),
	}

	for i := range commits {
		c := &commits[i]
		if _, dup := g.index[c.ID]; dup {
			log.Debug().Str("commit", c.ID).Msg("Ignoring duplicate commit record")
			continue
		}
		n := &Node{Commit: c}
		g.nodes = append(g.nodes, n)
		g.index[c.ID] = n
	}

	return g
}

// Lookup resolves a commit id. Ids outside the graph (grafts, shallow
// history) are reported as absent.
func (g *Graph) Lookup(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Nodes returns the nodes in insertion order
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// parent resolves the i-th parent of n
func (g *Graph) parent(n *Node, i int) (*Node, bool) {
	if i >= len(n.Commit.ParentIDs) {
		return nil, false
	}
	return g.Lookup(n.Commit.ParentIDs[i])
}
