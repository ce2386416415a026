package git

import (
	"regexp"
	"strings"
)

// Match "feat:", "fix(parser):", "refactor!:" anywhere in the subject
var commitTypeRegex = regexp.MustCompile(`\w+(\([^)]*\))?!?:`)

var commitTypes = map[string]bool{
	"build":    true,
	"chore":    true,
	"ci":       true,
	"docs":     true,
	"feat":     true,
	"fix":      true,
	"pert":     true,
	"refactor": true,
	"revert":   true,
	"style":    true,
	"test":     true,
}

// CommitTypeLabel returns the conventional-commit label of a subject line,
// or "" when the first prefix-shaped match is not a known label.
func CommitTypeLabel(subject string) string {
	match := commitTypeRegex.FindString(subject)
	if match == "" {
		return ""
	}

	if idx := strings.IndexAny(match, "(!:"); idx >= 0 {
		match = match[:idx]
	}
	if !commitTypes[match] {
		return ""
	}
	return match
}
