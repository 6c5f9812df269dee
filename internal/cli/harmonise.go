package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/pokepalette/internal/colour"
	"github.com/jmylchreest/pokepalette/internal/pipeline"
)

func newHarmoniseCmd() *cobra.Command {
	opts := &paletteOptions{}

	cmd := &cobra.Command{
		Use:   "harmonise <hex>...",
		Short: "Derive complementary and monochromatic variants of given colours",
		Long: `Derive the complementary and monochromatic variant of each hex colour given,
skipping image extraction. Colours are used in the order given.

Examples:
  pokepalette harmonise "#C81E1E" 1EA03C 3c78dc

  pokepalette harmonise -f table --legacy-saturation "#C81E1E"`,
		Aliases: []string{"harmonize"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarmonise(cmd, args, opts)
		},
	}

	opts.pipeline.addHarmonyFlags(cmd.Flags())
	opts.output.addFlags(cmd.Flags())
	return cmd
}

func runHarmonise(cmd *cobra.Command, args []string, opts *paletteOptions) error {
	if err := opts.output.validate(); err != nil {
		return err
	}

	base := make([]colour.RGB, 0, len(args))
	for _, arg := range args {
		c, err := colour.ParseHex(arg)
		if err != nil {
			return err
		}
		base = append(base, c)
	}

	cfg, err := opts.pipeline.config(cmd.Flags())
	if err != nil {
		return err
	}
	newLogger(cmd).Debug("harmonising", "colours", len(base), "legacy_saturation", cfg.LegacySaturation)

	p := colour.Harmonise(base, cfg.HarmonyOptions())
	return writeResult(cmd.OutOrStdout(), pipeline.Result{Palette: p}, opts.output)
}
