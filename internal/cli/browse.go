package cli

import (
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/audi70r/gitstems/internal/ui"
)

func newBrowseCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the squash maps in a terminal UI",
		Long: `Open an interactive browser over the clusters of each base branch.

Keys: n/p next/previous page, b next base branch, Tab switch focus,
d focus the commits of the selected cluster, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prs, err := opts.readPullRequests()
			if err != nil {
				return err
			}

			// the terminal belongs to the UI from here on
			log.Logger = log.Output(io.Discard)

			app := ui.NewApp(opts.cfg, opts.readCommits, prs)
			return app.Run(cmd.Context())
		},
	}
}
