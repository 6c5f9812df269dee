// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	// DefaultSeed seeds the mini-batch k-means RNG so a given image always
	// produces the same palette.
	DefaultSeed int64 = 383

	// DefaultBatchSize is the number of pixels drawn per mini-batch.
	DefaultBatchSize = 1000

	// DefaultMaxIterations caps the number of mini-batches.
	DefaultMaxIterations = 100

	// DefaultTolerance stops iteration once the mean centre movement of a
	// batch, in 8-bit channel units, falls below it.
	DefaultTolerance = 0.01
)

// MiniBatchExtractor implements colour extraction using mini-batch k-means.
// It trades some accuracy for throughput on large pixel populations.
type MiniBatchExtractor struct {
	seed          int64
	batchSize     int
	maxIterations int
	tolerance     float64
	initSize      int
}

// MiniBatchOption configures a MiniBatchExtractor.
type MiniBatchOption func(*MiniBatchExtractor)

// WithSeed sets the RNG seed.
func WithSeed(seed int64) MiniBatchOption {
	return func(e *MiniBatchExtractor) { e.seed = seed }
}

// WithBatchSize sets the mini-batch size.
func WithBatchSize(n int) MiniBatchOption {
	return func(e *MiniBatchExtractor) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithMaxIterations sets the iteration cap.
func WithMaxIterations(n int) MiniBatchOption {
	return func(e *MiniBatchExtractor) {
		if n > 0 {
			e.maxIterations = n
		}
	}
}

// NewMiniBatchExtractor creates a new MiniBatchExtractor with default settings.
func NewMiniBatchExtractor(opts ...MiniBatchOption) *MiniBatchExtractor {
	e := &MiniBatchExtractor{
		seed:          DefaultSeed,
		batchSize:     DefaultBatchSize,
		maxIterations: DefaultMaxIterations,
		tolerance:     DefaultTolerance,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.initSize = 3 * e.batchSize
	return e
}

// Extract clusters pixels into k centroids.
// Returns ErrDegenerateClustering when the population cannot support k
// distinct clusters.
func (e *MiniBatchExtractor) Extract(pixels []RGB, k int) ([]Centroid, error) {
	if err := validateExtractInput(pixels, k); err != nil {
		return nil, err
	}
	if n := countDistinct(pixels, k); n < k {
		return nil, fmt.Errorf("%w: %d distinct colours, need %d", ErrDegenerateClustering, n, k)
	}

	points := make([]point3D, len(pixels))
	for i, p := range pixels {
		points[i] = pointOf(p)
	}

	rng := rand.New(rand.NewSource(e.seed)) // #nosec G404 -- reproducible clustering, not security
	centroids := e.initialiseCentroids(rng, points, k)
	counts := make([]int, k)

	batch := make([]point3D, min(e.batchSize, len(points)))
	assigned := make([]int, len(batch))
	for iter := 0; iter < e.maxIterations; iter++ {
		for i := range batch {
			batch[i] = points[rng.Intn(len(points))]
		}
		for i, p := range batch {
			assigned[i] = nearestCentroid(p, centroids)
		}

		movement := 0.0
		for i, p := range batch {
			c := assigned[i]
			counts[c]++
			eta := 1.0 / float64(counts[c])
			prev := centroids[c]
			centroids[c] = point3D{
				R: (1-eta)*prev.R + eta*p.R,
				G: (1-eta)*prev.G + eta*p.G,
				B: (1-eta)*prev.B + eta*p.B,
			}
			movement += prev.distance(centroids[c])
		}

		if movement/float64(k) < e.tolerance {
			break
		}
	}

	sizes := make([]int, k)
	for _, p := range points {
		sizes[nearestCentroid(p, centroids)]++
	}

	return buildCentroids(centroids, sizes)
}

// initialiseCentroids seeds centres with k-means++ over a random sample of
// the population. If the sample runs out of distinct colours, the first
// unused distinct pixel of the full population is taken instead.
func (e *MiniBatchExtractor) initialiseCentroids(rng *rand.Rand, points []point3D, k int) []point3D {
	sample := points
	if len(points) > e.initSize {
		sample = make([]point3D, e.initSize)
		for i := range sample {
			sample[i] = points[rng.Intn(len(points))]
		}
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, sample[rng.Intn(len(sample))])

	distances := make([]float64, len(sample))
	for len(centroids) < k {
		total := 0.0
		for i, p := range sample {
			d := p.distance(centroids[len(centroids)-1])
			d *= d
			if len(centroids) == 1 || d < distances[i] {
				distances[i] = d
			}
			total += distances[i]
		}

		if total == 0 {
			centroids = append(centroids, firstUnused(points, centroids))
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := len(sample) - 1
		for i, d := range distances {
			cumulative += d
			if d > 0 && cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, sample[chosen])
	}

	return centroids
}

// firstUnused returns the first point not equal to any existing centre.
// The caller guarantees one exists.
func firstUnused(points, centroids []point3D) point3D {
	for _, p := range points {
		used := false
		for _, c := range centroids {
			if p == c {
				used = true
				break
			}
		}
		if !used {
			return p
		}
	}
	return centroids[len(centroids)-1]
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

func pointOf(c RGB) point3D {
	return point3D{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// rgb rounds the point to an 8-bit colour.
func (p point3D) rgb() RGB {
	return RGB{R: roundChannel(p.R), G: roundChannel(p.G), B: roundChannel(p.B)}
}

func roundChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// nearestCentroid finds the index of the nearest centroid to a point.
// Ties go to the lower index.
func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		dist := point.distance(centroid)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest
}

// countDistinct counts distinct colours, stopping once limit is reached.
func countDistinct(pixels []RGB, limit int) int {
	seen := make(map[RGB]struct{}, limit)
	for _, p := range pixels {
		seen[p] = struct{}{}
		if len(seen) >= limit {
			break
		}
	}
	return len(seen)
}
