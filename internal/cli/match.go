package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pokepalette/internal/namematch"
)

func newMatchCmd() *cobra.Command {
	opts := namematch.DefaultOptions()
	var scores bool

	cmd := &cobra.Command{
		Use:   "match <name> <candidates>",
		Short: "Find close matches for a name",
		Long: `Find the closest matches for a possibly misspelt name among a comma-separated
list of candidates.

Up to --limit candidates scoring at least --cutoff are printed, best first,
joined by ", ". NO_MATCHES is printed when none qualify. With --scores the
matches are printed as a table with their similarity ratios.

Examples:
  pokepalette match pikachu "pichu, pikachu, raichu"
  pokepalette match -n 2 --cutoff 0.6 charzard "charmander, charmeleon, charizard"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Limit < 1 {
				return fmt.Errorf("limit must be at least 1, got %d", opts.Limit)
			}
			if opts.Cutoff < 0 || opts.Cutoff > 1 {
				return fmt.Errorf("cutoff must be in [0, 1], got %g", opts.Cutoff)
			}

			matches := namematch.Find(args[0], namematch.ParseCandidates(args[1]), opts)
			newLogger(cmd).Named("match").Debug("matched", "name", args[0], "matches", len(matches))

			if scores && len(matches) > 0 {
				table := NewTable("NAME", "SCORE")
				for _, m := range matches {
					table.AddRow(m.Name, strconv.FormatFloat(m.Score, 'f', 3, 64))
				}
				_, err := fmt.Fprint(cmd.OutOrStdout(), table.Render())
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), namematch.Line(matches))
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", namematch.DefaultLimit, "maximum number of matches")
	cmd.Flags().Float64Var(&opts.Cutoff, "cutoff", namematch.DefaultCutoff, "minimum similarity ratio (0-1)")
	cmd.Flags().BoolVar(&scores, "scores", false, "print a table of matches with their similarity scores")

	return cmd
}
