package cli

import (
	"github.com/spf13/cobra"

	"github.com/audi70r/gitstems/internal/analysis"
	"github.com/audi70r/gitstems/internal/cluster"
	"github.com/audi70r/gitstems/internal/graph"
)

type pageOutput struct {
	Base       string            `json:"base" yaml:"base"`
	PerPage    int               `json:"per_page" yaml:"per_page"`
	After      string            `json:"after,omitempty" yaml:"after,omitempty"`
	Clusters   []cluster.Cluster `json:"clusters" yaml:"clusters"`
	NextCursor string            `json:"next_cursor,omitempty" yaml:"next_cursor,omitempty"`
}

func newPageCommand(opts *options) *cobra.Command {
	var (
		perPage int
		after   string
	)

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Print one page of the first base branch's squash map",
		Long: `Print up to --per-page clusters following the cluster whose base commit
is --after. Pass the printed next_cursor as --after to continue.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("per-page") {
				perPage = opts.cfg.PerPage
			}

			commits, err := opts.readCommits(cmd.Context())
			if err != nil {
				return err
			}
			prs, err := opts.readPullRequests()
			if err != nil {
				return err
			}

			base := opts.cfg.Bases()[0]
			res, err := analysis.Run(commits, analysis.Options{Base: base, PullRequests: prs})
			if err != nil {
				return err
			}

			entries, err := res.Page(perPage, after)
			if err != nil {
				return err
			}

			out := pageOutput{
				Base:     base,
				PerPage:  perPage,
				After:    after,
				Clusters: cluster.FromEntries(entries),
			}
			if next := graph.NextCursor(entries); next != "" {
				if more, _ := res.Page(1, next); len(more) > 0 {
					out.NextCursor = next
				}
			}
			return writeOutput(cmd.OutOrStdout(), opts.cfg.Output, out)
		},
	}

	cmd.Flags().IntVarP(&perPage, "per-page", "n", 0, "Clusters per page (default from config)")
	cmd.Flags().StringVarP(&after, "after", "a", "", "Cursor: base commit id of the last cluster already seen")
	return cmd
}
