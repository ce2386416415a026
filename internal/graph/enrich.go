package graph

import (
	"github.com/rs/zerolog/log"

	"github.com/audi70r/gitstems/internal/git"
	"github.com/audi70r/gitstems/internal/pullrequest"
)

// Enrich rewrites the entries of base whose base commit is the merge commit
// of a pull request. The base node is replaced by a copy carrying the pull
// request's title, body and totals; the record shared with the graph is left
// untouched. An entry with an empty source, as left by a squash or rebase
// merge, gets one synthetic node per pull request commit, most recent first.
func Enrich(table Table, base string, prs []pullrequest.Summary) {
	entries, ok := table[base]
	if !ok || len(prs) == 0 {
		return
	}

	byMerge := pullrequest.Index(prs)
	enriched := 0
	for i := range entries {
		pr, ok := byMerge[entries[i].Base.ID()]
		if !ok {
			continue
		}
		entries[i].Base = withPullRequest(entries[i].Base, pr)
		if len(entries[i].Source) == 0 {
			entries[i].Source = syntheticSource(entries[i].Base, pr)
		}
		enriched++

		log.Debug().
			Str("commit", entries[i].Base.ID()).
			Int("pr", pr.Number).
			Int("source", len(entries[i].Source)).
			Msg("Enriched entry from pull request")
	}

	log.Debug().Str("base", base).Int("enriched", enriched).Msg("Pull request enrichment done")
}

func withPullRequest(n *Node, pr *pullrequest.Summary) *Node {
	rec := *n.Commit
	rec.Message = pr.FullMessage()
	rec.DiffStats = git.DiffStats{
		Insertions: pr.Additions,
		Deletions:  pr.Deletions,
		Files:      map[string]git.FileStat{},
	}
	rec.CommitType = git.CommitTypeLabel(rec.Subject())

	cp := *n
	cp.Commit = &rec
	return &cp
}

// syntheticSource converts the provider's oldest-first commit list into
// nodes ordered like a squashed source. Sequences continue from the base so
// the ordering invariant holds within the entry.
func syntheticSource(baseNode *Node, pr *pullrequest.Summary) []*Node {
	n := len(pr.Commits)
	nodes := make([]*Node, 0, n)
	for i := n - 1; i >= 0; i-- {
		c := pr.Commits[i]
		rec := &git.CommitRecord{
			Sequence:   baseNode.Sequence() + 1 + len(nodes),
			ID:         c.ID,
			ParentIDs:  append([]string(nil), c.ParentIDs...),
			Author:     git.Signature{Name: c.Author.Name, Email: c.Author.Email},
			Committer:  git.Signature{Name: c.Committer.Name, Email: c.Committer.Email},
			AuthorTime: c.Author.Date,
			CommitTime: c.Committer.Date,
			Message:    c.Message,
		}
		rec.DiffStats.Files = make(map[string]git.FileStat, len(c.Files))
		for _, f := range c.Files {
			rec.DiffStats.Add(f.Path, f.Additions, f.Deletions)
		}
		rec.CommitType = git.CommitTypeLabel(rec.Subject())

		nodes = append(nodes, &Node{Commit: rec, Synthetic: true})
	}
	return nodes
}
