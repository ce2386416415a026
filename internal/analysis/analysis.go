// Package analysis runs the whole pipeline for one or more base branches:
// graph, stems, squash map and pull request enrichment.
package analysis

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/audi70r/gitstems/internal/cluster"
	"github.com/audi70r/gitstems/internal/git"
	"github.com/audi70r/gitstems/internal/graph"
	"github.com/audi70r/gitstems/internal/pullrequest"
)

// Options configures a single run
type Options struct {
	Base         string
	PullRequests []pullrequest.Summary
	ImplicitSeed int
}

// Result is the outcome of one run
type Result struct {
	Base           string
	Graph          *graph.Graph
	Decomposition  *graph.Decomposition
	Table          graph.Table
	ReachableStems int // stems left after squashing, the base stem included
}

// Entries returns the squash map entries of the run's base branch
func (r *Result) Entries() []graph.Entry {
	return r.Table[r.Base]
}

// Clusters projects the entries for display
func (r *Result) Clusters() []cluster.Cluster {
	return cluster.FromEntries(r.Entries())
}

// Page returns one page of entries; see graph.Page
func (r *Result) Page(perPage int, cursor string) ([]graph.Entry, error) {
	return graph.Page(r.Table, r.Base, perPage, cursor)
}

// Run builds a fresh graph over commits and computes the squash map for
// opts.Base. Records are only read; every run owns its own nodes.
func Run(commits []git.CommitRecord, opts Options) (*Result, error) {
	if opts.Base == "" {
		return nil, fmt.Errorf("%w: empty base branch", graph.ErrGraphIntegrity)
	}

	g := graph.New(commits)
	d := graph.Decompose(g, opts.Base, opts.ImplicitSeed)

	table, err := graph.Build(g, d, opts.Base, opts.PullRequests)
	if err != nil {
		return nil, err
	}

	remaining := 0
	for _, s := range d.Stems() {
		if len(s.Nodes) > 0 {
			remaining++
		}
	}

	log.Debug().
		Str("base", opts.Base).
		Int("entries", len(table[opts.Base])).
		Int("stems", remaining).
		Msg("Analysis complete")

	return &Result{
		Base:           opts.Base,
		Graph:          g,
		Decomposition:  d,
		Table:          table,
		ReachableStems: remaining,
	}, nil
}

// RunAll runs one analysis per base branch concurrently. Results are in the
// order of bases. The first failure cancels the rest.
func RunAll(ctx context.Context, commits []git.CommitRecord, bases []string, prs []pullrequest.Summary) ([]*Result, error) {
	results := make([]*Result, len(bases))

	g, ctx := errgroup.WithContext(ctx)
	for i, base := range bases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(commits, Options{Base: base, PullRequests: prs})
			if err != nil {
				return fmt.Errorf("base %s: %w", base, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Merge combines several runs into one table keyed by base branch
func Merge(results []*Result) graph.Table {
	table := make(graph.Table, len(results))
	for _, r := range results {
		table[r.Base] = r.Table[r.Base]
	}
	return table
}
