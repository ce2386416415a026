package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/audi70r/gitstems/internal/analysis"
	"github.com/audi70r/gitstems/internal/stats"
)

func newSummaryCommand(opts *options) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print cluster statistics for each base branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			commits, err := opts.readCommits(cmd.Context())
			if err != nil {
				return err
			}
			prs, err := opts.readPullRequests()
			if err != nil {
				return err
			}

			results, err := analysis.RunAll(cmd.Context(), commits, opts.cfg.Bases(), prs)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(w)
				}
				agg := stats.NewAggregator(res.Base)
				for _, c := range res.Clusters() {
					agg.ProcessCluster(c)
				}
				printSummary(w, agg.Finalize(), top)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "t", 5, "Rows per ranking")
	return cmd
}

func printSummary(w io.Writer, s *stats.Summary, top int) {
	fmt.Fprintf(w, "Base branch: %s\n", s.Base)
	if s.LatestRelease != "" {
		fmt.Fprintf(w, "Latest release: %s\n", s.LatestRelease)
	}
	fmt.Fprintf(w, "Clusters: %d (%d with merged history)\n", s.Clusters, s.MergeClusters)
	fmt.Fprintf(w, "Commits: %d by %d authors, +%d -%d\n",
		s.TotalCommits, s.TotalAuthors, s.TotalAdditions, s.TotalDeletions)

	fmt.Fprintln(w, "\nCommit types:")
	for _, label := range s.GetCommitTypes() {
		name := label
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(w, "  %-10s %d\n", name, s.CommitTypes[label])
	}

	fmt.Fprintln(w, "\nTop authors:")
	for i, a := range s.GetLeaderboard("commits", false) {
		if i >= top {
			break
		}
		fmt.Fprintf(w, "  %-24s %5d commits %4d merges  +%d -%d\n", a.Name, a.Commits, a.Merges, a.Additions, a.Deletions)
	}

	fmt.Fprintln(w, "\nLargest clusters:")
	for _, c := range s.GetLargestClusters(top) {
		fmt.Fprintf(w, "  %-10.10s %4d commits %7d lines  %s\n", c.Base, c.Commits, c.Changes(), c.Subject)
	}

	fmt.Fprintln(w, "\nMost changed files:")
	for _, f := range s.GetTopFiles("changes", false, top) {
		fmt.Fprintf(w, "  %7d lines %4d touches  %s\n", f.TotalChanges, f.TouchCount, f.Path)
	}
}
