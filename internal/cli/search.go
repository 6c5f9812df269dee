package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pokepalette/internal/namematch"
	"github.com/jmylchreest/pokepalette/internal/pipeline"
	"github.com/jmylchreest/pokepalette/internal/roster"
	"github.com/jmylchreest/pokepalette/internal/search"
	httputil "github.com/jmylchreest/pokepalette/internal/util/http"
)

type searchOptions struct {
	pipeline  pipelineOptions
	match     namematch.Options
	roster    string
	spriteURL string
	format    string
}

func newSearchCmd() *cobra.Command {
	opts := &searchOptions{match: namematch.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Palette for a named creature, or close names when unknown",
		Long: `Look a creature name up in the roster and print the palette of its sprite.

Names are compared lowercased with their first hyphen read as a space, so
"Mr-Mime" and "mr mime" are the same entry. Output is one line:

  PALETTE: <15 hex colours>    the name is known and its sprite was clustered
  PALETTE: NO_PALETTE          the name is known but no palette was produced
  MATCHED: <names>             the name is unknown; close roster names follow
  NO_POKEMON: NO_POKEMON       the name is unknown and nothing is close

The roster is a PokeAPI resource list, read from a URL or a local file.
{id} and {name} in --sprite-url are replaced with the entry's id and name.

Examples:
  pokepalette search bulbasaur
  pokepalette search -f json "mr mime"
  pokepalette search --roster roster.json --sprite-url "https://img.example/{name}.png" pikachu`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], opts)
		},
	}

	fs := cmd.Flags()
	opts.pipeline.addFlags(fs)
	fs.StringVar(&opts.roster, "roster", roster.DefaultSource, "roster URL or file")
	fs.StringVar(&opts.spriteURL, "sprite-url", roster.DefaultSpriteURL, "sprite URL template")
	fs.StringVarP(&opts.format, "format", "f", formatLine, "output format (line, json)")
	fs.IntVarP(&opts.match.Limit, "limit", "n", namematch.DefaultLimit, "maximum number of suggested names")
	fs.Float64Var(&opts.match.Cutoff, "cutoff", namematch.DefaultCutoff, "minimum similarity ratio for suggestions (0-1)")

	return cmd
}

func runSearch(cmd *cobra.Command, name string, opts *searchOptions) error {
	if opts.format != formatLine && opts.format != formatJSON {
		return fmt.Errorf("unsupported format: %s (supported: line, json)", opts.format)
	}
	if opts.match.Limit < 1 {
		return fmt.Errorf("limit must be at least 1, got %d", opts.match.Limit)
	}
	if opts.match.Cutoff < 0 || opts.match.Cutoff > 1 {
		return fmt.Errorf("cutoff must be in [0, 1], got %g", opts.match.Cutoff)
	}

	cfg, err := opts.pipeline.config(cmd.Flags())
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	p, err := pipeline.New(cfg, logger.Named("pipeline"))
	if err != nil {
		return err
	}

	r, err := roster.Load(cmd.Context(), opts.roster, httputil.FetchOptions{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
	})
	if err != nil {
		return err
	}
	logger.Debug("roster loaded", "source", opts.roster, "entries", r.Len())

	out := search.New(r, opts.spriteURL, p, opts.match, logger.Named("search")).Search(cmd.Context(), name)

	if opts.format == formatJSON {
		data, err := out.JSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out.Line())
	return err
}
