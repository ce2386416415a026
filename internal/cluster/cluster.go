// Package cluster flattens squash map entries into the display records the
// rendering layer consumes: one cluster per entry, base commit first.
package cluster

import (
	"encoding/hex"
	"sort"
	"time"

	"lukechampine.com/blake3"

	"github.com/audi70r/gitstems/internal/git"
	"github.com/audi70r/gitstems/internal/graph"
)

// Cluster is one base-branch commit together with what was squashed into it
type Cluster struct {
	ID      string   `json:"id" yaml:"id"`
	Base    string   `json:"base" yaml:"base"`
	Commits []Commit `json:"commits" yaml:"commits"`
}

// Commit is the display projection of a commit record
type Commit struct {
	ID             string     `json:"id" yaml:"id"`
	ParentIDs      []string   `json:"parent_ids" yaml:"parent_ids"`
	AuthorName     string     `json:"author_name" yaml:"author_name"`
	AuthorEmail    string     `json:"author_email" yaml:"author_email"`
	CommitterName  string     `json:"committer_name" yaml:"committer_name"`
	CommitterEmail string     `json:"committer_email" yaml:"committer_email"`
	AuthorDate     string     `json:"author_date" yaml:"author_date"`
	CommitDate     string     `json:"commit_date" yaml:"commit_date"`
	Message        string     `json:"message" yaml:"message"`
	CommitType     string     `json:"commit_type,omitempty" yaml:"commit_type,omitempty"`
	Insertions     int        `json:"insertions" yaml:"insertions"`
	Deletions      int        `json:"deletions" yaml:"deletions"`
	Files          []FileStat `json:"files" yaml:"files"`
	ReleaseTags    []string   `json:"release_tags,omitempty" yaml:"release_tags,omitempty"`
	Synthetic      bool       `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}

// FileStat is the change to one path
type FileStat struct {
	Path       string `json:"path" yaml:"path"`
	Insertions int    `json:"insertions" yaml:"insertions"`
	Deletions  int    `json:"deletions" yaml:"deletions"`
}

// Subject returns the first line of the message
func (c Commit) Subject() string {
	return (&git.CommitRecord{Message: c.Message}).Subject()
}

// IsMerge reports whether the cluster squashed anything into its base
func (c Cluster) IsMerge() bool {
	return len(c.Commits) > 1
}

// FromEntries projects every entry into a cluster, preserving entry order.
func FromEntries(entries []graph.Entry) []Cluster {
	clusters := make([]Cluster, 0, len(entries))
	for _, e := range entries {
		clusters = append(clusters, FromEntry(e))
	}
	return clusters
}

// FromEntry projects a single entry
func FromEntry(e graph.Entry) Cluster {
	commits := make([]Commit, 0, 1+len(e.Source))
	commits = append(commits, project(e.Base))
	for _, n := range e.Source {
		commits = append(commits, project(n))
	}

	return Cluster{
		ID:      clusterID(commits),
		Base:    e.Base.ID(),
		Commits: commits,
	}
}

func project(n *graph.Node) Commit {
	rec := n.Commit

	files := make([]FileStat, 0, len(rec.DiffStats.Files))
	for path, fs := range rec.DiffStats.Files {
		files = append(files, FileStat{Path: path, Insertions: fs.Insertions, Deletions: fs.Deletions})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return Commit{
		ID:             rec.ID,
		ParentIDs:      append([]string{}, rec.ParentIDs...),
		AuthorName:     rec.Author.Name,
		AuthorEmail:    rec.Author.Email,
		CommitterName:  rec.Committer.Name,
		CommitterEmail: rec.Committer.Email,
		AuthorDate:     formatTime(rec.AuthorTime),
		CommitDate:     formatTime(rec.CommitTime),
		Message:        rec.Message,
		CommitType:     rec.CommitType,
		Insertions:     rec.DiffStats.Insertions,
		Deletions:      rec.DiffStats.Deletions,
		Files:          files,
		ReleaseTags:    ReleaseTags(rec.TagRefs),
		Synthetic:      n.Synthetic,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// clusterID hashes the member ids in order
func clusterID(commits []Commit) string {
	h := blake3.New(32, nil)
	for _, c := range commits {
		h.Write([]byte(c.ID))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
