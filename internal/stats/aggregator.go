package stats

import (
	"sort"
	"time"

	"github.com/audi70r/gitstems/internal/cluster"
)

// Aggregator processes clusters and builds statistics
type Aggregator struct {
	summary  *Summary
	releases []cluster.Cluster
}

// NewAggregator creates a new statistics aggregator for base
func NewAggregator(base string) *Aggregator {
	return &Aggregator{
		summary: NewSummary(base),
	}
}

// ProcessCluster adds a cluster's commits to the statistics
func (a *Aggregator) ProcessCluster(c cluster.Cluster) {
	s := a.summary
	s.Clusters++
	if c.IsMerge() {
		s.MergeClusters++
	}

	size := &ClusterSize{ID: c.ID, Base: c.Base, Commits: len(c.Commits)}
	for i, commit := range c.Commits {
		a.processCommit(commit, i == 0 && c.IsMerge())
		size.Additions += commit.Insertions
		size.Deletions += commit.Deletions
	}
	if len(c.Commits) > 0 {
		size.Subject = c.Commits[0].Subject()
		if len(c.Commits[0].ReleaseTags) > 0 {
			a.releases = append(a.releases, c)
		}
	}
	s.sizes = append(s.sizes, size)
}

func (a *Aggregator) processCommit(c cluster.Commit, mergeBase bool) {
	s := a.summary
	s.TotalCommits++
	s.CommitTypes[c.CommitType]++

	// Author stats
	authorKey := c.AuthorEmail
	author, ok := s.Authors[authorKey]
	if !ok {
		author = NewAuthorStats(c.AuthorName, c.AuthorEmail)
		s.Authors[authorKey] = author
		s.TotalAuthors++
	}

	author.Commits++
	if mergeBase {
		author.Merges++
	}
	if when, err := time.Parse(time.RFC3339, c.AuthorDate); err == nil {
		if author.FirstCommit.IsZero() || when.Before(author.FirstCommit) {
			author.FirstCommit = when
		}
		if when.After(author.LastCommit) {
			author.LastCommit = when
		}
		s.DailyActivity[when.Format("2006-01-02")]++
	}

	author.Additions += c.Insertions
	author.Deletions += c.Deletions
	s.TotalAdditions += c.Insertions
	s.TotalDeletions += c.Deletions

	for _, fc := range c.Files {
		author.FilesTouched[fc.Path]++

		fileStat, ok := s.FileStats[fc.Path]
		if !ok {
			fileStat = NewFileStats(fc.Path)
			s.FileStats[fc.Path] = fileStat
		}

		fileStat.Additions += fc.Insertions
		fileStat.Deletions += fc.Deletions
		fileStat.TotalChanges += fc.Insertions + fc.Deletions
		fileStat.TouchCount++
		fileStat.Authors[c.AuthorEmail]++
	}
}

// Finalize calculates derived statistics after all clusters are processed
func (a *Aggregator) Finalize() *Summary {
	a.summary.LatestRelease = cluster.LatestRelease(a.releases)
	return a.summary
}

// GetResult returns the current statistics
func (a *Aggregator) GetResult() *Summary {
	return a.summary
}

// GetLeaderboard returns authors sorted by the given criteria
func (s *Summary) GetLeaderboard(sortBy string, ascending bool) []*AuthorStats {
	authors := make([]*AuthorStats, 0, len(s.Authors))
	for _, a := range s.Authors {
		authors = append(authors, a)
	}

	sort.Slice(authors, func(i, j int) bool {
		var cmp bool
		switch sortBy {
		case "name":
			cmp = authors[i].Name < authors[j].Name
		case "commits":
			cmp = authors[i].Commits < authors[j].Commits
		case "merges":
			cmp = authors[i].Merges < authors[j].Merges
		case "additions":
			cmp = authors[i].Additions < authors[j].Additions
		case "deletions":
			cmp = authors[i].Deletions < authors[j].Deletions
		case "churn":
			cmp = authors[i].Additions+authors[i].Deletions <
				authors[j].Additions+authors[j].Deletions
		default:
			cmp = authors[i].Commits < authors[j].Commits
		}
		if ascending {
			return cmp
		}
		return !cmp
	})

	return authors
}

// GetTopFiles returns files sorted by the given criteria
func (s *Summary) GetTopFiles(sortBy string, ascending bool, limit int) []*FileStats {
	files := make([]*FileStats, 0, len(s.FileStats))
	for _, f := range s.FileStats {
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool {
		var cmp bool
		switch sortBy {
		case "path":
			cmp = files[i].Path < files[j].Path
		case "touches":
			cmp = files[i].TouchCount < files[j].TouchCount
		case "authors":
			cmp = len(files[i].Authors) < len(files[j].Authors)
		default:
			cmp = files[i].TotalChanges < files[j].TotalChanges
		}
		if ascending {
			return cmp
		}
		return !cmp
	})

	if limit > 0 && limit < len(files) {
		return files[:limit]
	}
	return files
}

// GetLargestClusters returns clusters by squashed commit count, then churn
func (s *Summary) GetLargestClusters(limit int) []*ClusterSize {
	sizes := make([]*ClusterSize, len(s.sizes))
	copy(sizes, s.sizes)

	sort.SliceStable(sizes, func(i, j int) bool {
		if sizes[i].Commits != sizes[j].Commits {
			return sizes[i].Commits > sizes[j].Commits
		}
		return sizes[i].Changes() > sizes[j].Changes()
	})

	if limit > 0 && limit < len(sizes) {
		return sizes[:limit]
	}
	return sizes
}

// GetCommitTypes returns the labels ordered by count, most used first
func (s *Summary) GetCommitTypes() []string {
	labels := make([]string, 0, len(s.CommitTypes))
	for label := range s.CommitTypes {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if s.CommitTypes[labels[i]] != s.CommitTypes[labels[j]] {
			return s.CommitTypes[labels[i]] > s.CommitTypes[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}

// GetTimeline returns daily commit data with rolling average
func (s *Summary) GetTimeline(windowDays int) *TimelineData {
	if len(s.DailyActivity) == 0 {
		return &TimelineData{}
	}

	// Get sorted dates
	dates := make([]string, 0, len(s.DailyActivity))
	for d := range s.DailyActivity {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	startDate, _ := time.Parse("2006-01-02", dates[0])
	endDate, _ := time.Parse("2006-01-02", dates[len(dates)-1])

	// Fill in all dates in range
	var labels []string
	var values []int
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		labels = append(labels, dateStr)
		values = append(values, s.DailyActivity[dateStr])
	}

	if windowDays < 1 {
		windowDays = 1
	}
	rollingAvg := make([]float64, len(values))
	for i := range values {
		start := i - windowDays + 1
		if start < 0 {
			start = 0
		}
		sum := 0
		for j := start; j <= i; j++ {
			sum += values[j]
		}
		rollingAvg[i] = float64(sum) / float64(i-start+1)
	}

	return &TimelineData{
		Labels:     labels,
		Values:     values,
		RollingAvg: rollingAvg,
	}
}

// ApplyAuthorMerges folds alias emails into their primary email.
// merges maps email -> primary email.
func (s *Summary) ApplyAuthorMerges(merges map[string]string) {
	for aliasEmail, primaryEmail := range merges {
		if aliasEmail == primaryEmail {
			continue
		}

		alias, aliasExists := s.Authors[aliasEmail]
		primary, primaryExists := s.Authors[primaryEmail]
		if !aliasExists || !primaryExists {
			continue
		}

		primary.Commits += alias.Commits
		primary.Merges += alias.Merges
		primary.Additions += alias.Additions
		primary.Deletions += alias.Deletions
		for file, count := range alias.FilesTouched {
			primary.FilesTouched[file] += count
		}
		if !alias.FirstCommit.IsZero() && (primary.FirstCommit.IsZero() || alias.FirstCommit.Before(primary.FirstCommit)) {
			primary.FirstCommit = alias.FirstCommit
		}
		if alias.LastCommit.After(primary.LastCommit) {
			primary.LastCommit = alias.LastCommit
		}

		delete(s.Authors, aliasEmail)
		s.TotalAuthors--

		for _, fileStat := range s.FileStats {
			if count, exists := fileStat.Authors[aliasEmail]; exists {
				fileStat.Authors[primaryEmail] += count
				delete(fileStat.Authors, aliasEmail)
			}
		}
	}
}
