package colour

import (
	"fmt"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// lloydMaxSamples keeps exact k-means tractable on large images.
const lloydMaxSamples = 12000

// LloydExtractor implements colour extraction using exact k-means.
// Initial centres are random, so results may differ between runs.
type LloydExtractor struct {
	maxSamples int
}

// NewLloydExtractor creates a new LloydExtractor.
func NewLloydExtractor() *LloydExtractor {
	return &LloydExtractor{maxSamples: lloydMaxSamples}
}

// Extract clusters pixels into k centroids.
func (e *LloydExtractor) Extract(pixels []RGB, k int) ([]Centroid, error) {
	if err := validateExtractInput(pixels, k); err != nil {
		return nil, err
	}
	if n := countDistinct(pixels, k); n < k {
		return nil, fmt.Errorf("%w: %d distinct colours, need %d", ErrDegenerateClustering, n, k)
	}

	step := max(len(pixels)/e.maxSamples, 1)
	dataset := make(clusters.Observations, 0, len(pixels)/step+1)
	for i := 0; i < len(pixels); i += step {
		p := pixels[i]
		dataset = append(dataset, clusters.Coordinates{float64(p.R), float64(p.G), float64(p.B)})
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("k-means partition failed: %w", err)
	}
	if len(cc) < k {
		return nil, fmt.Errorf("%w: k-means returned %d clusters, need %d", ErrDegenerateClustering, len(cc), k)
	}

	centres := make([]point3D, k)
	sizes := make([]int, k)
	for i, c := range cc[:k] {
		if len(c.Center) < 3 {
			return nil, fmt.Errorf("k-means returned a %d-dimensional centre", len(c.Center))
		}
		centres[i] = point3D{R: c.Center[0], G: c.Center[1], B: c.Center[2]}
		sizes[i] = len(c.Observations)
	}

	return buildCentroids(centres, sizes)
}
