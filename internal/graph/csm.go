package graph

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/audi70r/gitstems/internal/pullrequest"
)

// Entry is one base-branch commit and the commits squashed into it, most
// recent first.
type Entry struct {
	Base   *Node
	Source []*Node
}

// Table maps a base branch name to its entries, one per commit of the base
// stem and in the same order.
type Table map[string][]Entry

// Build constructs the squash map for base. For every commit of the base
// stem, the history reached through its secondary parents is squashed into
// the entry: each such parent and its still-unclaimed first-parent ancestors
// are cut out of their stem, and merges among them pull in their own
// secondary parents the same way. Squashed nodes leave their stems, so no commit lands
// in two entries. Entries whose base is a pull request's merge commit are
// then enriched from prs.
//
// Build consumes d; decompose again before building a second table.
func Build(g *Graph, d *Decomposition, base string, prs []pullrequest.Summary) (Table, error) {
	if d == nil || d.Len() == 0 {
		return nil, fmt.Errorf("%w: no stems to build from", ErrGraphIntegrity)
	}
	baseStem, ok := d.Get(base)
	if !ok {
		return nil, fmt.Errorf("%w: base branch %q not found", ErrGraphIntegrity, base)
	}

	nodes := make([]*Node, len(baseStem.Nodes))
	copy(nodes, baseStem.Nodes)

	entries := make([]Entry, 0, len(nodes))
	squashed := 0
	for _, n := range nodes {
		entry := Entry{Base: n, Source: []*Node{}}

		if seeds := mergeParents(g, n); len(seeds) > 0 {
			entry.Source = squash(g, d, base, seeds)
			squashed += len(entry.Source)
		}

		entries = append(entries, entry)
	}

	log.Debug().
		Str("base", base).
		Int("entries", len(entries)).
		Int("squashed", squashed).
		Msg("Built commit sequence map")

	table := Table{base: entries}
	Enrich(table, base, prs)

	return table, nil
}

// mergeParents resolves the secondary parents of n. An octopus merge seeds
// the squash with every side branch it joins.
func mergeParents(g *Graph, n *Node) []*Node {
	var parents []*Node
	for i := 1; i < len(n.Commit.ParentIDs); i++ {
		if p, ok := g.parent(n, i); ok {
			parents = append(parents, p)
		}
	}
	return parents
}

// squash absorbs the seeds and everything they drag in. Candidates are
// processed first in, first out.
func squash(g *Graph, d *Decomposition, base string, seeds []*Node) []*Node {
	result := []*Node{}
	queue := append([]*Node(nil), seeds...)

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if c.StemID == "" || c.StemID == base {
			continue
		}
		stem, ok := d.Get(c.StemID)
		if !ok {
			continue
		}
		idx := stem.indexOf(c.ID())
		if idx < 0 {
			// already squashed by an earlier candidate
			continue
		}

		removed := stem.Nodes[idx:]
		stem.Nodes = stem.Nodes[:idx:idx]
		result = append(result, removed...)

		for _, r := range removed {
			if !r.IsMerge() {
				continue
			}
			for i := 1; i < len(r.Commit.ParentIDs); i++ {
				p, ok := g.parent(r, i)
				if !ok {
					continue
				}
				if p.StemID == base || p.StemID == stem.ID {
					continue
				}
				queue = append(queue, p)
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Sequence() < result[j].Sequence()
	})
	return result
}
