package git

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// Match "12\t3\tpath" or "-\t-\tbinary.png"
	numstatRegex = regexp.MustCompile(`^(\d+|-)\t(\d+|-)\t(.*)$`)

	// Layouts git uses for AuthorDate/CommitDate depending on --date
	dateLayouts = []string{
		"Mon Jan 2 15:04:05 2006 -0700",
		"2006-01-02 15:04:05 -0700",
		time.RFC3339,
		time.RFC1123Z,
	}
)

// maxLineSize bounds a single log line; long generated messages exceed
// bufio's 64KB default.
const maxLineSize = 10 * 1024 * 1024

const headerPrefix = "commit "

type parseState int

const (
	stateHeader parseState = iota
	stateMessage
	stateNumstat
	stateSkip // commit header was unusable
)

// parser accumulates commits from the extended log format line by line
type parser struct {
	commits []CommitRecord
	issues  []Issue

	current *CommitRecord
	message []string
	state   parseState
	lineNum int
}

// Parse reads extended git log text (--format=fuller --parents --decorate
// --numstat) and returns the commits in the order they appear. Malformed
// lines are reported in Log.Issues; only read errors are returned.
func Parse(r io.Reader) (*Log, error) {
	p := &parser{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		p.lineNum++
		p.parseLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	p.flush()

	log.Debug().
		Int("commits", len(p.commits)).
		Int("issues", len(p.issues)).
		Msg("Parsed history log")

	return &Log{Commits: p.commits, Issues: p.issues}, nil
}

// ParseString parses an in-memory log
func ParseString(text string) *Log {
	l, err := Parse(strings.NewReader(text))
	if err != nil {
		// strings.Reader never fails; only an oversized line gets here
		return &Log{Issues: []Issue{{Reason: err.Error()}}}
	}
	return l
}

func (p *parser) parseLine(line string) {
	line = strings.TrimSuffix(line, "\r")

	if line == "commit" || strings.HasPrefix(line, headerPrefix) {
		p.flush()
		p.startCommit(line)
		return
	}

	switch p.state {
	case stateSkip:
		return
	case stateHeader:
		p.parseHeaderLine(line)
	case stateMessage:
		if numstatRegex.MatchString(line) {
			p.state = stateNumstat
			p.parseNumstat(line)
			return
		}
		p.message = append(p.message, trimIndent(line))
	case stateNumstat:
		if line == "" {
			return
		}
		p.parseNumstat(line)
	}
}

func (p *parser) startCommit(line string) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "commit"))

	var refs string
	if idx := strings.Index(rest, "("); idx >= 0 {
		refs = rest[idx+1:]
		rest = rest[:idx]
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		p.addIssue(line, "commit header without hash")
		p.current = nil
		p.state = stateSkip
		return
	}

	c := &CommitRecord{
		Sequence:  len(p.commits),
		ID:        fields[0],
		ParentIDs: fields[1:],
	}
	if refs != "" {
		c.BranchRefs, c.TagRefs = parseRefs(refs)
	}

	p.current = c
	p.message = p.message[:0]
	p.state = stateHeader
}

func (p *parser) parseHeaderLine(line string) {
	c := p.current

	label, value, found := strings.Cut(line, ":")
	if !found {
		// The blank separator ends the header even without a CommitDate
		// line (--format=medium).
		if line == "" {
			p.state = stateMessage
		}
		return
	}
	value = strings.TrimSpace(value)

	switch label {
	case "Author":
		c.Author = parseSignature(value)
	case "Commit":
		c.Committer = parseSignature(value)
	case "AuthorDate", "Date":
		c.AuthorTime = p.parseDate(line, value)
	case "CommitDate":
		c.CommitTime = p.parseDate(line, value)
		p.state = stateMessage
	}
}

func (p *parser) parseNumstat(line string) {
	matches := numstatRegex.FindStringSubmatch(line)
	if matches == nil || matches[3] == "" {
		p.addIssue(line, "numstat line is not an <insertions>\\t<deletions>\\t<path> triple")
		return
	}

	// "-" marks binary content
	insertions, _ := strconv.Atoi(matches[1])
	deletions, _ := strconv.Atoi(matches[2])
	p.current.DiffStats.Add(matches[3], insertions, deletions)
}

func (p *parser) parseDate(line, value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	p.addIssue(line, "unrecognized date")
	return time.Time{}
}

// flush finalizes the commit being built, if any
func (p *parser) flush() {
	if p.current == nil {
		return
	}

	c := p.current
	c.Message = strings.Trim(strings.Join(p.message, "\n"), "\n")
	c.Message = strings.TrimRight(c.Message, " \t\n")
	c.CommitType = CommitTypeLabel(c.Subject())
	if c.DiffStats.Files == nil {
		c.DiffStats.Files = make(map[string]FileStat)
	}

	p.commits = append(p.commits, *c)
	p.current = nil
	p.message = p.message[:0]
}

func (p *parser) addIssue(line, reason string) {
	p.issues = append(p.issues, Issue{Line: p.lineNum, Text: line, Reason: reason})
}

// parseSignature splits "Name <email>"
func parseSignature(value string) Signature {
	name, rest, found := strings.Cut(value, "<")
	if !found {
		return Signature{Name: strings.TrimSpace(value)}
	}
	email, _, _ := strings.Cut(rest, ">")
	return Signature{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
}

// trimIndent strips the four-space indentation git puts on message lines
func trimIndent(line string) string {
	for i := 0; i < 4 && strings.HasPrefix(line, " "); i++ {
		line = line[1:]
	}
	return line
}
