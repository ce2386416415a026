package cli

import (
	"github.com/spf13/cobra"

	"github.com/audi70r/gitstems/internal/graph"
)

type stemOutput struct {
	ID      string   `json:"id" yaml:"id"`
	Commits []string `json:"commits" yaml:"commits"`
}

type decompositionOutput struct {
	Base  string       `json:"base" yaml:"base"`
	Stems []stemOutput `json:"stems" yaml:"stems"`
}

func newStemsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stems",
		Short: "Print the stem decomposition for each base branch",
		Long: `Decompose the history into stems: maximal first-parent chains, one per
branch tip, with merged side history claimed by the first stem to reach it.
Tips without a branch name get ids implicit-<n>, unique across all bases.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			commits, err := opts.readCommits(cmd.Context())
			if err != nil {
				return err
			}

			var out []decompositionOutput
			implicit := 0
			for _, base := range opts.cfg.Bases() {
				g := graph.New(commits)
				d := graph.Decompose(g, base, implicit)
				implicit = d.NextImplicit

				entry := decompositionOutput{Base: base}
				for _, s := range d.Stems() {
					ids := make([]string, 0, len(s.Nodes))
					for _, n := range s.Nodes {
						ids = append(ids, n.ID())
					}
					entry.Stems = append(entry.Stems, stemOutput{ID: s.ID, Commits: ids})
				}
				out = append(out, entry)
			}

			return writeOutput(cmd.OutOrStdout(), opts.cfg.Output, out)
		},
	}
}
