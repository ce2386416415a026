package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/audi70r/gitstems/internal/git"
)

// commit describes one record of a hand-built history, most recent first
type commit struct {
	id       string
	parents  []string
	branches []string
}

func records(commits ...commit) []git.CommitRecord {
	out := make([]git.CommitRecord, 0, len(commits))
	for i, cm := range commits {
		out = append(out, git.CommitRecord{
			Sequence:   i,
			ID:         cm.id,
			ParentIDs:  cm.parents,
			BranchRefs: cm.branches,
			Message:    "change " + cm.id,
			DiffStats:  git.DiffStats{Files: map[string]git.FileStat{}},
		})
	}
	return out
}

func c(id string, parents ...string) commit {
	return commit{id: id, parents: parents}
}

func tip(id string, branch string, parents ...string) commit {
	return commit{id: id, parents: parents, branches: []string{branch}}
}

// loadFixture parses a log under testdata
func loadFixture(t *testing.T, name string) []git.CommitRecord {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	l, err := git.Parse(f)
	require.NoError(t, err)
	require.Empty(t, l.Issues)
	return l.Commits
}

func ids(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID())
	}
	return out
}

func entryIDs(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Base.ID())
	}
	return out
}
