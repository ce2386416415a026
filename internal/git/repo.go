package git

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// LogOptions narrows the history read from a repository
type LogOptions struct {
	Since    time.Time
	Until    time.Time
	MaxCount int
	Refs     []string // defaults to --all
}

func (o LogOptions) args() []string {
	var args []string
	if !o.Since.IsZero() {
		args = append(args, "--since="+o.Since.Format(time.RFC3339))
	}
	if !o.Until.IsZero() {
		args = append(args, "--until="+o.Until.Format(time.RFC3339))
	}
	if o.MaxCount > 0 {
		args = append(args, "--max-count="+strconv.Itoa(o.MaxCount))
	}
	if len(o.Refs) == 0 {
		args = append(args, "--all")
	} else {
		args = append(args, o.Refs...)
	}
	return args
}

// Repo reads history from a git working tree or bare repository
type Repo struct {
	Path string
}

// NewRepo creates a reader for the repository at path
func NewRepo(path string) *Repo {
	return &Repo{Path: path}
}

// CountCommits returns the number of commits ReadLog would visit
func (r *Repo) CountCommits(ctx context.Context, opts LogOptions) (int, error) {
	args := append([]string{"rev-list", "--count"}, opts.args()...)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Path

	output, err := cmd.Output()
	if err != nil {
		return -1, fmt.Errorf("git rev-list: %w", err)
	}

	count, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil {
		return -1, err
	}

	return count, nil
}

// ReadLog runs git log in the extended format and parses its output as it
// streams.
func (r *Repo) ReadLog(ctx context.Context, opts LogOptions) (*Log, error) {
	args := []string{
		"log",
		"--parents",
		"--decorate=short",
		"--format=fuller",
		"--date=default",
		"--numstat",
		"--date-order",
	}
	args = append(args, opts.args()...)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Path

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start git log: %w", err)
	}

	log.Debug().Str("repo", r.Path).Strs("args", args).Msg("Reading history")

	parsed, parseErr := Parse(stdout)
	if parseErr != nil {
		// keep git from blocking on a full pipe
		_, _ = io.Copy(io.Discard, stdout)
	}
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	if parseErr != nil {
		return nil, parseErr
	}

	return parsed, nil
}

// IsGitRepo checks if the path is a valid git repository
func IsGitRepo(path string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = path
	return cmd.Run() == nil
}
