package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/gitstems/internal/cluster"
)

func sampleClusters() []cluster.Cluster {
	return []cluster.Cluster{
		{
			ID:   "c1",
			Base: "m",
			Commits: []cluster.Commit{
				{
					ID: "m", AuthorName: "Ada", AuthorEmail: "ada@example.com",
					AuthorDate: "2024-03-20T12:00:00Z", Message: "Merge feature",
					ReleaseTags: []string{"v1.1.0"},
				},
				{
					ID: "f2", AuthorName: "Grace", AuthorEmail: "grace@example.com",
					AuthorDate: "2024-03-19T09:00:00Z", Message: "feat: two", CommitType: "feat",
					Insertions: 10, Deletions: 2,
					Files: []cluster.FileStat{{Path: "a.go", Insertions: 10, Deletions: 2}},
				},
				{
					ID: "f1", AuthorName: "Grace", AuthorEmail: "grace@example.com",
					AuthorDate: "2024-03-17T09:00:00Z", Message: "feat: one", CommitType: "feat",
					Insertions: 5,
					Files: []cluster.FileStat{{Path: "a.go", Insertions: 3}, {Path: "b.go", Insertions: 2}},
				},
			},
		},
		{
			ID:   "c2",
			Base: "p",
			Commits: []cluster.Commit{
				{
					ID: "p", AuthorName: "Ada", AuthorEmail: "ada@example.com",
					AuthorDate: "2024-03-16T09:00:00Z", Message: "fix: root", CommitType: "fix",
					Insertions: 1, Deletions: 1,
					Files:       []cluster.FileStat{{Path: "a.go", Insertions: 1, Deletions: 1}},
					ReleaseTags: []string{"v1.0.0"},
				},
			},
		},
	}
}

func aggregate(t *testing.T) *Summary {
	t.Helper()
	agg := NewAggregator("main")
	for _, c := range sampleClusters() {
		agg.ProcessCluster(c)
	}
	s := agg.Finalize()
	require.NotNil(t, s)
	return s
}

func TestAggregator(t *testing.T) {
	s := aggregate(t)

	assert.Equal(t, "main", s.Base)
	assert.Equal(t, 2, s.Clusters)
	assert.Equal(t, 1, s.MergeClusters)
	assert.Equal(t, 4, s.TotalCommits)
	assert.Equal(t, 2, s.TotalAuthors)
	assert.Equal(t, 16, s.TotalAdditions)
	assert.Equal(t, 3, s.TotalDeletions)
	assert.Equal(t, "v1.1.0", s.LatestRelease)

	assert.Equal(t, map[string]int{"": 1, "feat": 2, "fix": 1}, s.CommitTypes)
	assert.Equal(t, []string{"feat", "", "fix"}, s.GetCommitTypes())

	ada := s.Authors["ada@example.com"]
	require.NotNil(t, ada)
	assert.Equal(t, 2, ada.Commits)
	assert.Equal(t, 1, ada.Merges)
	assert.Equal(t, "2024-03-16", ada.FirstCommit.Format("2006-01-02"))
	assert.Equal(t, "2024-03-20", ada.LastCommit.Format("2006-01-02"))

	a := s.FileStats["a.go"]
	require.NotNil(t, a)
	assert.Equal(t, 3, a.TouchCount)
	assert.Equal(t, 17, a.TotalChanges)
	assert.Equal(t, map[string]int{"grace@example.com": 2, "ada@example.com": 1}, a.Authors)
}

func TestGetLeaderboard(t *testing.T) {
	s := aggregate(t)

	byAdditions := s.GetLeaderboard("additions", false)
	require.Len(t, byAdditions, 2)
	assert.Equal(t, "Grace", byAdditions[0].Name)

	byName := s.GetLeaderboard("name", true)
	assert.Equal(t, "Ada", byName[0].Name)

	byMerges := s.GetLeaderboard("merges", false)
	assert.Equal(t, "Ada", byMerges[0].Name)

	byChurn := s.GetLeaderboard("churn", true)
	assert.Equal(t, "Ada", byChurn[0].Name)
}

func TestGetLargestClusters(t *testing.T) {
	s := aggregate(t)

	largest := s.GetLargestClusters(1)
	require.Len(t, largest, 1)
	assert.Equal(t, "c1", largest[0].ID)
	assert.Equal(t, "Merge feature", largest[0].Subject)
	assert.Equal(t, 3, largest[0].Commits)
	assert.Equal(t, 17, largest[0].Changes())

	assert.Len(t, s.GetLargestClusters(0), 2)
}

func TestGetTopFiles(t *testing.T) {
	s := aggregate(t)

	files := s.GetTopFiles("changes", false, 0)
	require.Len(t, files, 2)
	assert.Equal(t, "a.go", files[0].Path)

	assert.Len(t, s.GetTopFiles("path", true, 1), 1)
}

func TestGetTimeline(t *testing.T) {
	s := aggregate(t)

	tl := s.GetTimeline(2)
	assert.Equal(t, []string{"2024-03-16", "2024-03-17", "2024-03-18", "2024-03-19", "2024-03-20"}, tl.Labels)
	assert.Equal(t, []int{1, 1, 0, 1, 1}, tl.Values)
	assert.InDelta(t, 0.5, tl.RollingAvg[2], 0.001)

	assert.Empty(t, NewSummary("main").GetTimeline(7).Labels)
}

func TestApplyAuthorMerges(t *testing.T) {
	s := aggregate(t)

	s.ApplyAuthorMerges(map[string]string{"grace@example.com": "ada@example.com"})

	assert.Equal(t, 1, s.TotalAuthors)
	ada := s.Authors["ada@example.com"]
	assert.Equal(t, 4, ada.Commits)
	assert.Equal(t, "2024-03-16", ada.FirstCommit.Format("2006-01-02"))
	assert.Equal(t, map[string]int{"ada@example.com": 3}, s.FileStats["a.go"].Authors)
}
