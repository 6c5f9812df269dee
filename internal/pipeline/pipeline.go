// Package pipeline turns an image source into a themed colour palette.
package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/pokepalette/internal/colour"
	imageutil "github.com/jmylchreest/pokepalette/internal/image"
	"github.com/jmylchreest/pokepalette/internal/seed"
	httputil "github.com/jmylchreest/pokepalette/internal/util/http"
	"github.com/jmylchreest/pokepalette/internal/util/tempimage"
)

// Pipeline fetches an image, clusters its pixels, filters the clusters by
// brightness, and derives harmonic variants of the survivors.
// A Pipeline holds no per-run state and may be reused.
type Pipeline struct {
	config Config
	loader imageutil.Loader
	logger hclog.Logger
}

// New creates a Pipeline. A nil logger discards output.
func New(config Config, logger hclog.Logger) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	opts := tempimage.Options{
		Dir: config.TempDir,
		Fetch: httputil.FetchOptions{
			Timeout:   config.Timeout,
			UserAgent: config.UserAgent,
		},
	}

	return &Pipeline{
		config: config,
		loader: imageutil.NewSmartLoader(opts, logger.Named("fetch")),
		logger: logger,
	}, nil
}

// WithLoader replaces the image loader.
func (p *Pipeline) WithLoader(l imageutil.Loader) *Pipeline {
	p.loader = l
	return p
}

// Run produces a palette for the image at source, an HTTP(S) URL or a local path.
func (p *Pipeline) Run(ctx context.Context, source string) Result {
	p.logger.Debug("loading image", "source", source)
	img, err := p.loader.Load(ctx, source)
	if err != nil {
		p.logger.Debug("load failed", "error", err)
		return failure(FailureFetchOrDecode, err)
	}
	return p.RunImage(img, source)
}

// RunImage produces a palette for an already decoded image. source only
// feeds source-based seeding and may be empty otherwise.
func (p *Pipeline) RunImage(img image.Image, source string) Result {
	bounds := img.Bounds()
	p.logger.Debug("image decoded", "width", bounds.Dx(), "height", bounds.Dy())

	s, err := seed.Calculate(img, source, p.config.Seed)
	if err != nil {
		return failure(FailureFetchOrDecode, fmt.Errorf("failed to calculate seed: %w", err))
	}

	base, err := p.Cluster(imageutil.Pixels(img), s)
	if err != nil {
		p.logger.Debug("clustering failed", "error", err)
		return failure(FailureDegenerateClustering, err)
	}

	palette := colour.Harmonise(base, p.config.HarmonyOptions())
	p.logger.Debug("palette generated", "colours", palette.Len())
	return success(palette)
}

// Cluster reduces pixels to the retained base colours, darkest first.
func (p *Pipeline) Cluster(pixels []colour.RGB, seedValue int64) ([]colour.RGB, error) {
	cfg := p.config.Extractor
	cfg.Seed = seedValue

	extractor, err := colour.NewExtractor(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	logger := p.logger.Named("cluster")
	logger.Debug("clustering", "pixels", len(pixels), "k", cfg.ClusterCount, "algorithm", cfg.Algorithm, "seed", seedValue)

	centroids, err := extractor.Extract(pixels, cfg.ClusterCount)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	for _, c := range centroids {
		logger.Trace("centroid", "index", c.Index, "hex", c.RGB.Hex(), "brightness", c.Brightness, "size", c.Size)
	}

	return colour.FilterByBrightness(centroids, cfg.Window)
}
