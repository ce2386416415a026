// Package pullrequest holds the provider-neutral pull request records the
// squash map is enriched with. Fetching them is left to callers; this
// package only defines their shape and reads them from saved files.
package pullrequest

import "time"

// Summary is a merged pull request as reported by a hosting provider.
type Summary struct {
	Number        int      `json:"number" yaml:"number"`
	Title         string   `json:"title" yaml:"title"`
	Body          string   `json:"body" yaml:"body"`
	Additions     int      `json:"additions" yaml:"additions"`
	Deletions     int      `json:"deletions" yaml:"deletions"`
	MergeCommitID string   `json:"merge_commit_sha" yaml:"merge_commit_sha"`
	Commits       []Commit `json:"commits" yaml:"commits"`
}

// Commit is one commit of a pull request, oldest first as providers list them.
type Commit struct {
	ID        string    `json:"sha" yaml:"sha"`
	ParentIDs []string  `json:"parents" yaml:"parents"`
	Author    Signature `json:"author" yaml:"author"`
	Committer Signature `json:"committer" yaml:"committer"`
	Message   string    `json:"message" yaml:"message"`
	Files     []File    `json:"files" yaml:"files"`
}

// Signature identifies a commit author or committer
type Signature struct {
	Name  string    `json:"name" yaml:"name"`
	Email string    `json:"email" yaml:"email"`
	Date  time.Time `json:"date" yaml:"date"`
}

// File is the change a commit made to one path
type File struct {
	Path      string `json:"filename" yaml:"filename"`
	Additions int    `json:"additions" yaml:"additions"`
	Deletions int    `json:"deletions" yaml:"deletions"`
}

// FullMessage returns the title and body the way a squash commit would
// carry them.
func (s *Summary) FullMessage() string {
	return s.Title + "\n\n" + s.Body
}

// Index maps merge commit ids to their pull requests. The first pull request
// listed for a merge commit wins.
func Index(prs []Summary) map[string]*Summary {
	idx := make(map[string]*Summary, len(prs))
	for i := range prs {
		pr := &prs[i]
		if pr.MergeCommitID == "" {
			continue
		}
		if _, exists := idx[pr.MergeCommitID]; !exists {
			idx[pr.MergeCommitID] = pr
		}
	}
	return idx
}
