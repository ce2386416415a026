package graph

import (
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"
)

// HeadRef is the ref name of a detached HEAD and the id of its stem
const HeadRef = "HEAD"

const implicitPrefix = "implicit-"

// Stem is one maximal first-parent run of commits, most recent first.
type Stem struct {
	ID    string
	Nodes []*Node
}

// indexOf returns the position of the commit in the stem, or -1
func (s *Stem) indexOf(id string) int {
	for i, n := range s.Nodes {
		if n.ID() == id {
			return i
		}
	}
	return -1
}

// Decomposition is the set of stems produced by Decompose.
type Decomposition struct {
	stems map[string]*Stem
	order []string

	// NextImplicit is the implicit-id counter after the run; pass it as the
	// seed of a later run to keep ids unique across both.
	NextImplicit int
}

// Get returns the stem with the given id
func (d *Decomposition) Get(id string) (*Stem, bool) {
	s, ok := d.stems[id]
	return s, ok
}

// Len returns the number of stems
func (d *Decomposition) Len() int {
	return len(d.stems)
}

// Stems returns the stems in the order they were built
func (d *Decomposition) Stems() []*Stem {
	stems := make([]*Stem, 0, len(d.order))
	for _, id := range d.order {
		stems = append(stems, d.stems[id])
	}
	return stems
}

func (d *Decomposition) add(s *Stem) {
	if _, exists := d.stems[s.ID]; !exists {
		d.order = append(d.order, s.ID)
	}
	d.stems[s.ID] = s
}

// Decompose partitions every commit reachable from a branch tip into stems.
// Tips are walked along primary parents; a walk stops at the first node
// another stem already claimed, and every secondary parent met on the way is
// queued as a new tip. The base branch tip is walked first and a detached
// HEAD last, so the base stem owns all of its first-parent history.
//
// Tips without branch refs get ids "implicit-<n>" numbered from
// implicitSeed.
func Decompose(g *Graph, base string, implicitSeed int) *Decomposition {
	d := &Decomposition{
		stems:        make(map[string]*Stem),
		NextImplicit: implicitSeed,
	}

	main, head, queue := seedQueue(LeafNodes(g), base)

	for len(queue) > 0 {
		tail := queue[0]
		queue = queue[1:]

		id := d.stemID(tail, main, head, base)

		var nodes []*Node
		for current := tail; current != nil; {
			if current.StemID != "" {
				break
			}
			current.StemID = id
			nodes = append(nodes, current)

			for i := 1; i < len(current.Commit.ParentIDs); i++ {
				p, ok := g.parent(current, i)
				if !ok {
					log.Debug().
						Str("commit", current.ID()).
						Str("parent", current.Commit.ParentIDs[i]).
						Msg("Skipping merge parent outside the graph")
					continue
				}
				if p.MergedIntoBaseStem == "" {
					p.MergedIntoBaseStem = id
				}
				queue = append(queue, p)
			}

			next, ok := g.parent(current, 0)
			if !ok {
				break
			}
			current = next
		}

		if len(nodes) > 0 {
			d.add(&Stem{ID: id, Nodes: nodes})
		}
	}

	log.Debug().
		Str("base", base).
		Int("stems", d.Len()).
		Int("commits", g.Len()).
		Msg("Decomposed history into stems")

	return d
}

// seedQueue orders the tips: base tip first, remaining tips most recent
// first (ties by branch name), detached HEAD last.
func seedQueue(leaves []*Node, base string) (main, head *Node, queue []*Node) {
	var rest []*Node
	for _, n := range leaves {
		switch {
		case main == nil && n.Commit.HasBranch(base):
			main = n
		case head == nil && n.Commit.HasBranch(HeadRef):
			head = n
		default:
			rest = append(rest, n)
		}
	}

	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].Sequence() != rest[j].Sequence() {
			return rest[i].Sequence() < rest[j].Sequence()
		}
		return firstBranch(rest[i]) < firstBranch(rest[j])
	})

	if main != nil {
		queue = append(queue, main)
	}
	queue = append(queue, rest...)
	if head != nil {
		queue = append(queue, head)
	}
	return main, head, queue
}

func (d *Decomposition) stemID(tail, main, head *Node, base string) string {
	switch {
	case len(tail.Commit.BranchRefs) == 0:
		id := implicitPrefix + strconv.Itoa(d.NextImplicit)
		d.NextImplicit++
		return id
	case tail == main:
		return base
	case tail == head:
		return HeadRef
	default:
		return tail.Commit.BranchRefs[0]
	}
}

func firstBranch(n *Node) string {
	if len(n.Commit.BranchRefs) == 0 {
		return ""
	}
	return n.Commit.BranchRefs[0]
}
