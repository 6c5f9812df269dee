package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/pokepalette/internal/colour"
	"github.com/jmylchreest/pokepalette/internal/pipeline"
	"github.com/jmylchreest/pokepalette/internal/seed"
	httputil "github.com/jmylchreest/pokepalette/internal/util/http"
)

// Output formats for the palette command.
const (
	formatLine  = "line"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

const previewWidth = 9

// pipelineOptions holds the flags that configure a pipeline run.
type pipelineOptions struct {
	algorithm        string
	timeout          time.Duration
	userAgent        string
	seedMode         string
	seed             int64
	legacySaturation bool
}

// outputOptions holds the flags that control how a palette is printed.
type outputOptions struct {
	format  string
	preview bool
}

type paletteOptions struct {
	pipeline pipelineOptions
	output   outputOptions
}

func newPaletteCmd() *cobra.Command {
	opts := &paletteOptions{}

	cmd := &cobra.Command{
		Use:   "palette <url-or-path>",
		Short: "Generate a themed palette from a sprite image",
		Long: `Generate a 15-colour theme palette from a sprite image.

The output is one line: five base colours in ascending brightness, then their
complementary variants, then their monochromatic variants, as uppercase hex
joined by ", ". When the image cannot be fetched or decoded the line is ERROR;
when it has too few distinct colours to cluster the line is DEGENERATE.

Environment:
  POKEPALETTE_TIMEOUT            fetch timeout (e.g. 10s)
  POKEPALETTE_USER_AGENT         User-Agent header for downloads
  POKEPALETTE_ALGORITHM          clustering algorithm
  POKEPALETTE_LEGACY_SATURATION  true to cap saturation at 255

Flags take precedence over the environment.

Examples:
  # Palette for a remote sprite
  pokepalette palette https://img.pokemondb.net/sprites/home/normal/bulbasaur.png

  # Per-colour breakdown with RGB and HSL values
  pokepalette palette -f table sprite.png

  # Local file, YAML document, with swatches
  pokepalette palette -f yaml --preview sprite.png

  # Exact k-means instead of mini-batch
  pokepalette palette -a kmeans sprite.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(cmd, args[0], opts)
		},
	}

	opts.pipeline.addFlags(cmd.Flags())
	opts.output.addFlags(cmd.Flags())
	return cmd
}

func (o *outputOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.format, "format", "f", formatLine, "output format (line, json, yaml, table)")
	fs.BoolVar(&o.preview, "preview", false, "show colour swatches when writing to a terminal")
}

func (o *outputOptions) validate() error {
	switch o.format {
	case formatLine, formatJSON, formatYAML, formatTable:
		return nil
	}
	return fmt.Errorf("unsupported format: %s (supported: line, json, yaml, table)", o.format)
}

func (o *pipelineOptions) addFlags(fs *pflag.FlagSet) {
	o.addHarmonyFlags(fs)
	fs.StringVarP(&o.algorithm, "algorithm", "a", string(colour.AlgorithmMiniBatch), "clustering algorithm (minibatch, kmeans, dominant)")
	fs.DurationVar(&o.timeout, "timeout", httputil.DefaultTimeout, "image download timeout")
	fs.StringVar(&o.userAgent, "user-agent", httputil.DefaultUserAgent, "User-Agent header for image downloads")
	fs.StringVar(&o.seedMode, "seed-mode", string(seed.ModeFixed), "clustering seed mode (fixed, content, source, manual, random)")
	fs.Int64Var(&o.seed, "seed", colour.DefaultSeed, "clustering seed, implies --seed-mode manual")
}

func (o *pipelineOptions) addHarmonyFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.legacySaturation, "legacy-saturation", false, "cap monochromatic saturation at 255 instead of 1.0")
}

// config reads the environment and overlays the flags set on the command line.
func (o *pipelineOptions) config(fs *pflag.FlagSet) (pipeline.Config, error) {
	cfg, err := pipeline.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	if err := o.apply(fs, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// apply overlays the flags set on the command line onto cfg. Flags a command
// did not register are never Changed.
func (o *pipelineOptions) apply(fs *pflag.FlagSet, cfg *pipeline.Config) error {
	if fs.Changed("algorithm") {
		cfg.Extractor.Algorithm = colour.Algorithm(o.algorithm)
	}
	if fs.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if fs.Changed("user-agent") {
		cfg.UserAgent = o.userAgent
	}
	if fs.Changed("legacy-saturation") {
		cfg.LegacySaturation = o.legacySaturation
	}
	if fs.Changed("seed-mode") {
		mode, err := seed.ParseMode(o.seedMode)
		if err != nil {
			return err
		}
		cfg.Seed.Mode = mode
	}
	if fs.Changed("seed") {
		v := o.seed
		cfg.Seed.Value = &v
		if !fs.Changed("seed-mode") {
			cfg.Seed.Mode = seed.ModeManual
		}
	}
	return nil
}

func runPalette(cmd *cobra.Command, source string, opts *paletteOptions) error {
	if err := opts.output.validate(); err != nil {
		return err
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

	res := p.Run(cmd.Context(), source)
	if err := res.Err(); err != nil {
		logger.Debug("no palette produced", "source", source, "error", err)
	}

	return writeResult(cmd.OutOrStdout(), res, opts.output)
}

// writeResult prints the palette in the requested format. Failures always
// print the bare token line.
func writeResult(w io.Writer, res pipeline.Result, opts outputOptions) error {
	if !res.OK() {
		_, err := fmt.Fprintln(w, res.Line())
		return err
	}

	var out string
	switch opts.format {
	case formatJSON:
		data, err := res.Palette.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		out = string(data) + "\n"
	case formatYAML:
		data, err := res.Palette.ToYAML()
		if err != nil {
			return fmt.Errorf("failed to convert to YAML: %w", err)
		}
		out = string(data)
	case formatTable:
		out = paletteTable(res.Palette).Render()
	default:
		out = res.Line() + "\n"
	}

	if opts.preview && colour.SupportsANSIColours(w) {
		out += colour.FormatThemePreview(res.Palette, previewWidth)
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write palette: %w", err)
	}
	return nil
}

// paletteTable lists every palette colour with its group, RGB and HSL values.
func paletteTable(p *colour.ThemePalette) *Table {
	table := NewTable("GROUP", "#", "HEX", "RGB", "HSL")
	groups := []struct {
		name    string
		colours []colour.RGB
	}{
		{"base", p.Base},
		{"complementary", p.Complementary},
		{"monochromatic", p.Monochromatic},
	}
	for _, g := range groups {
		for i, c := range g.colours {
			hsl := colour.RGBToHSL(c)
			table.AddRow(g.name, strconv.Itoa(i+1), c.Hex(), c.String(),
				fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", hsl.H, hsl.S*100, hsl.L*100))
		}
	}
	return table
}
