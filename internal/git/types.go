package git

import (
	"strings"
	"time"
)

// CommitRecord represents a single parsed commit. Records are never
// modified after parsing.
type CommitRecord struct {
	// Sequence is the 0-based position of the commit header in the log.
	// 0 is the most recently emitted commit.
	Sequence   int
	ID         string
	ParentIDs  []string // first entry is the primary parent
	BranchRefs []string
	TagRefs    []string
	Author     Signature
	Committer  Signature
	AuthorTime time.Time
	CommitTime time.Time
	Message    string
	DiffStats  DiffStats
	CommitType string // conventional-commit label, or empty
}

// Signature represents commit author or committer info
type Signature struct {
	Name  string
	Email string
}

// FileStat represents numstat output for a single path
type FileStat struct {
	Insertions int
	Deletions  int
}

// DiffStats holds running numstat totals for a commit
type DiffStats struct {
	Insertions int
	Deletions  int
	Files      map[string]FileStat
}

// Add accumulates one numstat line into the stats.
func (d *DiffStats) Add(path string, insertions, deletions int) {
	if d.Files == nil {
		d.Files = make(map[string]FileStat)
	}
	fs := d.Files[path]
	fs.Insertions += insertions
	fs.Deletions += deletions
	d.Files[path] = fs

	d.Insertions += insertions
	d.Deletions += deletions
}

// Subject returns the first line of the message
func (c *CommitRecord) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return subject
}

// Body returns everything after the subject line, trimmed
func (c *CommitRecord) Body() string {
	_, body, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(body)
}

// IsMerge reports whether the commit has more than one parent
func (c *CommitRecord) IsMerge() bool {
	return len(c.ParentIDs) > 1
}

// PrimaryParent returns the first parent id, if any
func (c *CommitRecord) PrimaryParent() (string, bool) {
	if len(c.ParentIDs) == 0 {
		return "", false
	}
	return c.ParentIDs[0], true
}

// HasBranch reports whether name is among the commit's branch refs
func (c *CommitRecord) HasBranch(name string) bool {
	for _, ref := range c.BranchRefs {
		if ref == name {
			return true
		}
	}
	return false
}

// Log is the result of parsing a history dump
type Log struct {
	Commits []CommitRecord
	Issues  []Issue
}
