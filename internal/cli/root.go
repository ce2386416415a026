// Package cli wires the gitstems commands: it loads configuration, reads
// history from a repository or a saved log, and prints or browses the
// resulting stems and squash maps.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/audi70r/gitstems/internal/config"
	"github.com/audi70r/gitstems/internal/git"
	"github.com/audi70r/gitstems/internal/pullrequest"
)

// options holds the persistent flags and the loaded configuration
type options struct {
	configPath   string
	logLevel     string
	repoPath     string
	logFile      string
	base         string
	pullRequests string
	output       string
	maxCommits   int
	since        string
	until        string

	cfg *config.Config
}

// NewRootCommand builds the gitstems command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "gitstems",
		Short: "Split git history into branch stems and squash maps",
		Long: `gitstems decomposes a commit graph into first-parent chains (stems) and
builds, for each base branch, a squash map that attaches to every base commit
the commits merged into it at that point.

History is read from a repository with git log, or from a saved log file
(plain, gzip or zstd) produced with:
  git log --all --parents --decorate=short --format=fuller --numstat`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default ./gitstems.toml or ~/.gitstems.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVarP(&opts.repoPath, "repo", "r", "", "Repository to read history from")
	flags.StringVarP(&opts.logFile, "log-file", "f", "", "Saved git log to read instead of a repository (- for stdin)")
	flags.StringVarP(&opts.base, "base", "b", "", "Base branch, or a comma separated list")
	flags.StringVar(&opts.pullRequests, "pull-requests", "", "JSON or YAML file with merged pull requests")
	flags.StringVarP(&opts.output, "output", "o", "", "Output format: json or yaml")
	flags.IntVar(&opts.maxCommits, "max-commits", 0, "Read at most this many commits")
	flags.StringVar(&opts.since, "since", "", "Only commits after this date (YYYY-MM-DD)")
	flags.StringVar(&opts.until, "until", "", "Only commits up to this date (YYYY-MM-DD)")

	rootCmd.AddCommand(
		newStemsCommand(opts),
		newCSMCommand(opts),
		newPageCommand(opts),
		newSummaryCommand(opts),
		newBrowseCommand(opts),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// init loads the config, applies flags on top and sets up logging
func (o *options) init(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("repo") {
		cfg.RepoPath = o.repoPath
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("base") {
		cfg.BaseBranch = o.base
	}
	if flags.Changed("pull-requests") {
		cfg.PullRequests = o.pullRequests
	}
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("max-commits") {
		cfg.MaxCommits = o.maxCommits
	}
	if flags.Changed("since") {
		cfg.Since = o.since
	}
	if flags.Changed("until") {
		cfg.Until = o.until
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	o.cfg = cfg

	setupLogging(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

func setupLogging(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
}

// readCommits loads history from the configured log file or repository
func (o *options) readCommits(ctx context.Context) ([]git.CommitRecord, error) {
	var (
		parsed *git.Log
		err    error
	)

	if o.cfg.LogFile != "" {
		parsed, err = o.readLogFile()
	} else {
		parsed, err = o.readRepo(ctx)
	}
	if err != nil {
		return nil, err
	}

	for _, issue := range parsed.Issues {
		log.Debug().Int("line", issue.Line).Str("reason", issue.Reason).Msg("Skipped malformed log content")
	}
	if len(parsed.Issues) > 0 {
		log.Warn().Int("issues", len(parsed.Issues)).Msg("Log contained malformed lines")
	}
	log.Info().Int("commits", len(parsed.Commits)).Msg("History loaded")

	return parsed.Commits, nil
}

func (o *options) readLogFile() (*git.Log, error) {
	rc, err := git.OpenLog(o.cfg.LogFile)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return git.Parse(rc)
}

func (o *options) readRepo(ctx context.Context) (*git.Log, error) {
	if !git.IsGitRepo(o.cfg.RepoPath) {
		return nil, fmt.Errorf("not a git repository: %s", o.cfg.RepoPath)
	}

	since, err := o.cfg.SinceTime()
	if err != nil {
		return nil, err
	}
	until, err := o.cfg.UntilTime()
	if err != nil {
		return nil, err
	}

	repo := git.NewRepo(o.cfg.RepoPath)
	logOpts := git.LogOptions{Since: since, Until: until, MaxCount: o.cfg.MaxCommits}

	if count, err := repo.CountCommits(ctx, logOpts); err == nil {
		log.Debug().Int("commits", count).Str("repo", o.cfg.RepoPath).Msg("Reading repository")
	}
	return repo.ReadLog(ctx, logOpts)
}

// readPullRequests loads the configured pull request file, if any
func (o *options) readPullRequests() ([]pullrequest.Summary, error) {
	if o.cfg.PullRequests == "" {
		return nil, nil
	}
	prs, err := pullrequest.Load(o.cfg.PullRequests)
	if err != nil {
		return nil, err
	}
	log.Info().Int("pull_requests", len(prs)).Msg("Pull requests loaded")
	return prs, nil
}
