package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/gitstems/internal/pullrequest"
)

func TestBuildEnrichesFromPullRequests(t *testing.T) {
	g := New(records(
		tip("s", "main", "m"),
		c("m", "p", "f"),
		c("f", "p"),
		c("p"),
	))
	when := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	prs := []pullrequest.Summary{
		{
			Number:        7,
			Title:         "feat: squash me",
			Body:          "Adds the thing.",
			Additions:     40,
			Deletions:     2,
			MergeCommitID: "s",
			Commits: []pullrequest.Commit{
				{
					ID:      "x1",
					Author:  pullrequest.Signature{Name: "Ada", Email: "ada@example.com", Date: when},
					Message: "fix: first step",
					Files: []pullrequest.File{
						{Path: "a.go", Additions: 30, Deletions: 1},
						{Path: "b.go", Additions: 5},
					},
				},
				{
					ID:        "x2",
					ParentIDs: []string{"x1"},
					Author:    pullrequest.Signature{Name: "Ada", Email: "ada@example.com", Date: when.Add(time.Hour)},
					Message:   "second step",
					Files:     []pullrequest.File{{Path: "a.go", Additions: 5, Deletions: 1}},
				},
			},
		},
		{
			Number:        6,
			Title:         "Merge feature",
			Body:          "Regular merge.",
			Additions:     3,
			MergeCommitID: "m",
			Commits:       []pullrequest.Commit{{ID: "ignored"}},
		},
		{Number: 5, Title: "stale duplicate", MergeCommitID: "s"},
	}

	table, err := Build(g, Decompose(g, "main", 0), "main", prs)
	require.NoError(t, err)
	entries := table["main"]
	require.Len(t, entries, 3)

	squashed := entries[0]
	assert.Equal(t, "feat: squash me\n\nAdds the thing.", squashed.Base.Commit.Message)
	assert.Equal(t, "feat", squashed.Base.Commit.CommitType)
	assert.Equal(t, 40, squashed.Base.Commit.DiffStats.Insertions)
	assert.Equal(t, 2, squashed.Base.Commit.DiffStats.Deletions)
	assert.Empty(t, squashed.Base.Commit.DiffStats.Files)
	assert.Equal(t, "main", squashed.Base.StemID)

	require.Len(t, squashed.Source, 2)
	assert.Equal(t, []string{"x2", "x1"}, ids(squashed.Source))
	for i, n := range squashed.Source {
		assert.True(t, n.Synthetic)
		assert.Empty(t, n.StemID)
		assert.Equal(t, i+1, n.Sequence())
	}
	x1 := squashed.Source[1].Commit
	assert.Equal(t, "fix", x1.CommitType)
	assert.Equal(t, 35, x1.DiffStats.Insertions)
	assert.Len(t, x1.DiffStats.Files, 2)
	assert.True(t, x1.AuthorTime.Equal(when))

	merged := entries[1]
	assert.Equal(t, "Merge feature\n\nRegular merge.", merged.Base.Commit.Message)
	assert.Equal(t, []string{"f"}, ids(merged.Source), "a real source is kept")

	assert.Empty(t, entries[2].Source)

	// graph records are left alone
	orig, ok := g.Lookup("s")
	require.True(t, ok)
	assert.Equal(t, "change s", orig.Commit.Message)
	assert.NotSame(t, orig, squashed.Base)
}

func TestEnrichUnknownBase(t *testing.T) {
	table := Table{}
	Enrich(table, "main", []pullrequest.Summary{{MergeCommitID: "x"}})
	assert.Empty(t, table)
}
