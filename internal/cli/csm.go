package cli

import (
	"github.com/spf13/cobra"

	"github.com/audi70r/gitstems/internal/analysis"
	"github.com/audi70r/gitstems/internal/cluster"
)

type tableOutput struct {
	Base     string            `json:"base" yaml:"base"`
	Clusters []cluster.Cluster `json:"clusters" yaml:"clusters"`
}

func newCSMCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "csm",
		Short: "Print the full squash map of each base branch as clusters",
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

			out := make([]tableOutput, 0, len(results))
			for _, res := range results {
				out = append(out, tableOutput{Base: res.Base, Clusters: res.Clusters()})
			}
			return writeOutput(cmd.OutOrStdout(), opts.cfg.Output, out)
		},
	}
}
