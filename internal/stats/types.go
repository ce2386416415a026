package stats

import "time"

// Summary holds the statistics of one base branch's clusters
type Summary struct {
	Base          string
	Clusters      int
	MergeClusters int // clusters with squashed history
	TotalCommits  int
	TotalAuthors  int

	// Author statistics
	Authors map[string]*AuthorStats

	// File statistics
	FileStats map[string]*FileStats

	// Conventional-commit label -> commits; unlabeled commits are under ""
	CommitTypes map[string]int

	// "2024-01-15" -> commits, by author date
	DailyActivity map[string]int

	// Totals
	TotalAdditions int
	TotalDeletions int

	// Newest release tag found on a base commit
	LatestRelease string

	sizes []*ClusterSize
}

// NewSummary creates an empty Summary for base
func NewSummary(base string) *Summary {
	return &Summary{
		Base:          base,
		Authors:       make(map[string]*AuthorStats),
		FileStats:     make(map[string]*FileStats),
		CommitTypes:   make(map[string]int),
		DailyActivity: make(map[string]int),
	}
}

// AuthorStats holds statistics for a single author
type AuthorStats struct {
	Name         string
	Email        string
	Commits      int
	Merges       int // clusters whose base commit they authored with squashed history
	Additions    int
	Deletions    int
	FilesTouched map[string]int // file -> touch count
	FirstCommit  time.Time
	LastCommit   time.Time
}

// NewAuthorStats creates a new AuthorStats
func NewAuthorStats(name, email string) *AuthorStats {
	return &AuthorStats{
		Name:         name,
		Email:        email,
		FilesTouched: make(map[string]int),
	}
}

// FileStats holds statistics for a single file
type FileStats struct {
	Path         string
	TotalChanges int            // additions + deletions
	TouchCount   int            // number of commits affecting this file
	Authors      map[string]int // author email -> commits
	Additions    int
	Deletions    int
}

// NewFileStats creates a new FileStats
func NewFileStats(path string) *FileStats {
	return &FileStats{
		Path:    path,
		Authors: make(map[string]int),
	}
}

// ClusterSize summarizes one cluster for size rankings
type ClusterSize struct {
	ID        string
	Base      string
	Subject   string
	Commits   int
	Additions int
	Deletions int
}

// Changes returns additions plus deletions
func (c *ClusterSize) Changes() int {
	return c.Additions + c.Deletions
}

// TimelineData holds time-series commit data
type TimelineData struct {
	Labels     []string
	Values     []int
	RollingAvg []float64
}
