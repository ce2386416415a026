package git

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `commit 3f2a1c 9b8e7d 4c5d6e (HEAD -> main, origin/main, tag: v1.2.0)
Merge: 9b8e7d 4c5d6e
Author:     Jane Doe <jane@example.com>
AuthorDate: Tue Mar 5 14:02:11 2024 +0100
Commit:     GitHub <noreply@github.com>
CommitDate: Tue Mar 5 14:02:11 2024 +0100

    Merge pull request #42 from jane/parser

    feat(parser): tolerate odd headers

commit 4c5d6e 9b8e7d (jane/parser)
Author:     Jane Doe <jane@example.com>
AuthorDate: Mon Mar 4 09:00:00 2024 +0100
Commit:     Jane Doe <jane@example.com>
CommitDate: Mon Mar 4 09:30:00 2024 +0100

    fix!: handle empty refs

12	3	internal/git/parser.go
-	-	docs/diagram.png
1	0	internal/git/parser.go

commit 9b8e7d
Author:     John Roe <john@example.com>
AuthorDate: Sun Mar 3 18:45:00 2024 +0000
Commit:     John Roe <john@example.com>
CommitDate: Sun Mar 3 18:45:00 2024 +0000

    Initial commit

4	0	README.md
`

func TestParse(t *testing.T) {
	l, err := Parse(strings.NewReader(sampleLog))
	require.NoError(t, err)
	require.Len(t, l.Commits, 3)
	assert.Empty(t, l.Issues)

	merge := l.Commits[0]
	assert.Equal(t, 0, merge.Sequence)
	assert.Equal(t, "3f2a1c", merge.ID)
	assert.Equal(t, []string{"9b8e7d", "4c5d6e"}, merge.ParentIDs)
	assert.Equal(t, []string{"main", "origin/main"}, merge.BranchRefs)
	assert.Equal(t, []string{"v1.2.0"}, merge.TagRefs)
	assert.Equal(t, Signature{Name: "Jane Doe", Email: "jane@example.com"}, merge.Author)
	assert.Equal(t, Signature{Name: "GitHub", Email: "noreply@github.com"}, merge.Committer)
	assert.Equal(t, "Merge pull request #42 from jane/parser", merge.Subject())
	assert.Equal(t, "feat(parser): tolerate odd headers", merge.Body())
	assert.True(t, merge.IsMerge())
	assert.Equal(t, "", merge.CommitType)
	assert.Empty(t, merge.DiffStats.Files)
	assert.NotNil(t, merge.DiffStats.Files)

	wantTime := time.Date(2024, 3, 5, 14, 2, 11, 0, time.FixedZone("", 3600))
	assert.True(t, merge.AuthorTime.Equal(wantTime), "author time %v", merge.AuthorTime)

	fix := l.Commits[1]
	assert.Equal(t, 1, fix.Sequence)
	assert.Equal(t, []string{"jane/parser"}, fix.BranchRefs)
	assert.Nil(t, fix.TagRefs)
	assert.Equal(t, "fix", fix.CommitType)
	assert.Equal(t, 13, fix.DiffStats.Insertions)
	assert.Equal(t, 3, fix.DiffStats.Deletions)
	assert.Equal(t, FileStat{Insertions: 13, Deletions: 3}, fix.DiffStats.Files["internal/git/parser.go"])
	assert.Equal(t, FileStat{}, fix.DiffStats.Files["docs/diagram.png"])
	assert.Len(t, fix.DiffStats.Files, 2)
	assert.True(t, fix.CommitTime.After(fix.AuthorTime))

	root := l.Commits[2]
	assert.Empty(t, root.ParentIDs)
	assert.Empty(t, root.BranchRefs)
	assert.Equal(t, "Initial commit", root.Message)
	assert.Equal(t, 4, root.DiffStats.Insertions)
}

func TestParseEmptyInput(t *testing.T) {
	l, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, l.Commits)
	assert.Empty(t, l.Issues)
}

func TestParseMalformedInput(t *testing.T) {
	input := `commit
Author: Nobody <nobody@example.com>

    lost commit

3	1	lost.go

commit abc123 def456
Author: Jane Doe <jane@example.com>
AuthorDate: yesterday-ish
CommitDate: Mon Mar 4 09:30:00 2024 +0100

    docs: explain things

2	0	README.md
not a numstat line
1	1	CHANGELOG.md
`
	l := ParseString(input)

	require.Len(t, l.Commits, 1)
	c := l.Commits[0]
	assert.Equal(t, "abc123", c.ID)
	assert.Equal(t, 0, c.Sequence)
	assert.True(t, c.AuthorTime.IsZero())
	assert.False(t, c.CommitTime.IsZero())
	assert.Equal(t, "docs", c.CommitType)
	assert.Equal(t, 3, c.DiffStats.Insertions)
	assert.Len(t, c.DiffStats.Files, 2)

	require.Len(t, l.Issues, 3)
	reasons := make([]string, 0, len(l.Issues))
	for _, issue := range l.Issues {
		assert.True(t, errors.Is(issue.Err(), ErrMalformedInput))
		reasons = append(reasons, issue.Reason)
	}
	assert.Equal(t, "commit header without hash", reasons[0])
	assert.Equal(t, 1, l.Issues[0].Line)
	assert.Equal(t, "unrecognized date", reasons[1])
	assert.Equal(t, "not a numstat line", l.Issues[2].Text)
}

func TestParseMediumFormat(t *testing.T) {
	input := "commit aaa bbb (feature)\nAuthor: Jane <jane@example.com>\nDate:   2024-03-04 09:00:00 +0100\n\n    chore: bump deps\n\n    Second paragraph.\n"
	l := ParseString(input)

	require.Len(t, l.Commits, 1)
	c := l.Commits[0]
	assert.Equal(t, "chore: bump deps\n\nSecond paragraph.", c.Message)
	assert.Equal(t, "chore", c.CommitType)
	assert.False(t, c.AuthorTime.IsZero())
	assert.Empty(t, l.Issues)
}

func TestParseFixture(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "fuller.log"))
	require.NoError(t, err)
	defer f.Close()

	l, err := Parse(f)
	require.NoError(t, err)
	assert.Empty(t, l.Issues)
	require.Len(t, l.Commits, 5)

	for i, c := range l.Commits {
		assert.Equal(t, i, c.Sequence)
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Author.Email)
		assert.False(t, c.AuthorTime.IsZero(), "commit %s", c.ID)
	}
	assert.Equal(t, []string{"HEAD"}, l.Commits[0].BranchRefs)
	assert.Equal(t, []string{"v0.2.0"}, l.Commits[1].TagRefs)
}
