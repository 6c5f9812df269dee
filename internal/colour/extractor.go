// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"errors"
	"fmt"
)

// ErrDegenerateClustering is returned when an image cannot be reduced to the
// requested number of distinct clusters, e.g. a near-solid-colour image.
var ErrDegenerateClustering = errors.New("degenerate clustering")

// Extractor defines the interface for colour clustering algorithms.
type Extractor interface {
	// Extract reduces a pixel population to exactly k centroids.
	Extract(pixels []RGB, k int) ([]Centroid, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmMiniBatch uses the built-in mini-batch k-means (default).
	AlgorithmMiniBatch Algorithm = "minibatch"

	// AlgorithmKMeans uses exact (Lloyd) k-means.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmDominant uses dominant-colour bucketing.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmMiniBatch,
		AlgorithmKMeans,
		AlgorithmDominant,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor based on the specified configuration.
func NewExtractor(config ExtractorConfig) (Extractor, error) {
	switch config.Algorithm {
	case AlgorithmMiniBatch:
		return NewMiniBatchExtractor(
			WithSeed(config.Seed),
			WithBatchSize(config.BatchSize),
			WithMaxIterations(config.MaxIterations),
		), nil
	case AlgorithmKMeans:
		return NewLloydExtractor(), nil
	case AlgorithmDominant:
		return NewDominantExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", config.Algorithm, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm     Algorithm
	ClusterCount  int
	Seed          int64
	BatchSize     int
	MaxIterations int
	Window        Window
}

// DefaultClusterCount is the number of clusters fitted per image.
const DefaultClusterCount = 8

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:     AlgorithmMiniBatch,
		ClusterCount:  DefaultClusterCount,
		Seed:          DefaultSeed,
		BatchSize:     DefaultBatchSize,
		MaxIterations: DefaultMaxIterations,
		Window:        DefaultWindow(),
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.ClusterCount < 1 {
		return fmt.Errorf("cluster count must be at least 1, got %d", c.ClusterCount)
	}
	if c.ClusterCount > 256 {
		return fmt.Errorf("cluster count too large: %d (maximum: 256)", c.ClusterCount)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", c.BatchSize)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.Window.SkipDark < 0 || c.Window.SkipBright < 0 {
		return fmt.Errorf("retention window cannot be negative: %+v", c.Window)
	}
	if c.Window.Retained(c.ClusterCount) < 1 {
		return fmt.Errorf("retention window %+v leaves no colours out of %d clusters", c.Window, c.ClusterCount)
	}
	return nil
}

func validateExtractInput(pixels []RGB, k int) error {
	if k < 1 {
		return fmt.Errorf("cluster count must be at least 1, got %d", k)
	}
	if len(pixels) == 0 {
		return fmt.Errorf("no pixels to cluster")
	}
	return nil
}

// buildCentroids rounds centres to 8-bit colours and rejects empty or
// coincident clusters.
func buildCentroids(centres []point3D, sizes []int) ([]Centroid, error) {
	out := make([]Centroid, len(centres))
	seen := make(map[RGB]int, len(centres))
	for i, c := range centres {
		if sizes[i] == 0 {
			return nil, fmt.Errorf("%w: cluster %d is empty", ErrDegenerateClustering, i)
		}
		rgb := c.rgb()
		if j, dup := seen[rgb]; dup {
			return nil, fmt.Errorf("%w: clusters %d and %d both round to %s", ErrDegenerateClustering, j, i, rgb.Hex())
		}
		seen[rgb] = i
		out[i] = Centroid{RGB: rgb, Brightness: Brightness(rgb), Index: i, Size: sizes[i]}
	}
	return out, nil
}
