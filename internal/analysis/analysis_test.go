package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/gitstems/internal/git"
	"github.com/audi70r/gitstems/internal/graph"
	"github.com/audi70r/gitstems/internal/pullrequest"
)

func loadCommits(t *testing.T) []git.CommitRecord {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "nested_merges.log"))
	require.NoError(t, err)
	defer f.Close()

	l, err := git.Parse(f)
	require.NoError(t, err)
	return l.Commits
}

func sourceIDs(e graph.Entry) []string {
	out := make([]string, 0, len(e.Source))
	for _, n := range e.Source {
		out = append(out, n.ID())
	}
	return out
}

func TestRun(t *testing.T) {
	commits := loadCommits(t)

	res, err := Run(commits, Options{Base: "master"})
	require.NoError(t, err)

	entries := res.Entries()
	require.Len(t, entries, 6)
	assert.Equal(t, []string{"8", "13", "12", "7", "6"}, sourceIDs(entries[2]))
	assert.Equal(t, 1, res.ReachableStems, "side branches are fully squashed")

	clusters := res.Clusters()
	require.Len(t, clusters, 6)
	assert.Len(t, clusters[3].Commits, 7)
	assert.Equal(t, []string{"v1.1.0"}, clusters[0].Commits[0].ReleaseTags)

	page, err := res.Page(2, "1")
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "2", page[0].Base.ID())
}

func TestRunUnknownBase(t *testing.T) {
	_, err := Run(loadCommits(t), Options{Base: "develop"})
	assert.ErrorIs(t, err, graph.ErrGraphIntegrity)

	_, err = Run(loadCommits(t), Options{})
	assert.ErrorIs(t, err, graph.ErrGraphIntegrity)
}

func TestRunDoesNotShareState(t *testing.T) {
	commits := loadCommits(t)

	first, err := Run(commits, Options{Base: "master"})
	require.NoError(t, err)
	second, err := Run(commits, Options{Base: "master"})
	require.NoError(t, err)

	assert.Equal(t, sourceIDs(first.Entries()[3]), sourceIDs(second.Entries()[3]))
}

func TestRunAll(t *testing.T) {
	commits := loadCommits(t)
	prs := []pullrequest.Summary{{Number: 12, Title: "Land sub1", MergeCommitID: "3"}}

	results, err := RunAll(context.Background(), commits, []string{"master", "sub1", "sub2"}, prs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "master", results[0].Base)
	assert.Equal(t, "Land sub1", results[0].Entries()[3].Base.Commit.Subject())

	// sub1 as base owns its own first-parent chain down to the root
	sub1 := results[1].Entries()
	require.Len(t, sub1, 7)
	assert.Equal(t, "11", sub1[0].Base.ID())
	assert.Equal(t, []string{"16", "15", "14", "13", "12"}, sourceIDs(sub1[0]))
	assert.Equal(t, "5", sub1[6].Base.ID())

	table := Merge(results)
	assert.Len(t, table, 3)
	assert.Len(t, table["sub2"], 7)
}

func TestRunAllFailure(t *testing.T) {
	_, err := RunAll(context.Background(), loadCommits(t), []string{"master", "missing"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrGraphIntegrity)
	assert.Contains(t, err.Error(), "base missing")
}
