package colour

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"maps"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
)

// DominantExtractor picks the k most dominant colours by weighted bucketing.
//
// The bucketing library may report fewer than k colours even when the image
// has enough distinct ones. Its centres are snapped to real pixel colours and
// any shortfall is filled farthest-first from the remaining pixel colours, so
// the extractor only fails when the image itself is degenerate.
type DominantExtractor struct{}

// NewDominantExtractor creates a new DominantExtractor.
func NewDominantExtractor() *DominantExtractor {
	return &DominantExtractor{}
}

// Extract returns k centroids seeded by the most dominant colours.
func (e *DominantExtractor) Extract(pixels []RGB, k int) ([]Centroid, error) {
	if err := validateExtractInput(pixels, k); err != nil {
		return nil, err
	}
	if n := countDistinct(pixels, k); n < k {
		return nil, fmt.Errorf("%w: %d distinct colours, need %d", ErrDegenerateClustering, n, k)
	}

	found := dominantcolor.FindWeight(pixelStrip(pixels), k)
	seeds := make([]point3D, 0, len(found))
	for _, c := range found {
		seeds = append(seeds, point3D{R: float64(c.RGBA.R), G: float64(c.RGBA.G), B: float64(c.RGBA.B)})
	}

	centres := completeCentres(seeds, histogram(pixels), k)

	sizes := make([]int, k)
	for _, p := range pixels {
		sizes[nearestCentroid(pointOf(p), centres)]++
	}
	return buildCentroids(centres, sizes)
}

// histogram returns the distinct colours of pixels, most frequent first.
// Equal counts order by colour value.
func histogram(pixels []RGB) []RGB {
	counts := make(map[RGB]int)
	for _, p := range pixels {
		counts[p]++
	}
	colours := slices.Collect(maps.Keys(counts))
	slices.SortFunc(colours, func(a, b RGB) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(colourKey(a), colourKey(b))
	})
	return colours
}

func colourKey(c RGB) int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// completeCentres snaps each seed to its nearest distinct colour, drops
// repeats, and tops the set up to k with the colour farthest from every
// centre chosen so far. distinct must hold at least k colours.
func completeCentres(seeds []point3D, distinct []RGB, k int) []point3D {
	chosen := make(map[RGB]bool, k)
	centres := make([]point3D, 0, k)
	add := func(c RGB) {
		chosen[c] = true
		centres = append(centres, pointOf(c))
	}

	for _, s := range seeds {
		if len(centres) == k {
			break
		}
		if c := nearestColour(s, distinct); !chosen[c] {
			add(c)
		}
	}

	for len(centres) < k {
		best, bestDist := -1, -1.0
		for i, c := range distinct {
			if chosen[c] {
				continue
			}
			d := math.MaxFloat64
			if len(centres) > 0 {
				d = pointOf(c).distance(centres[nearestCentroid(pointOf(c), centres)])
			}
			if d > bestDist {
				best, bestDist = i, d
			}
		}
		add(distinct[best])
	}
	return centres
}

func nearestColour(p point3D, colours []RGB) RGB {
	best, bestDist := colours[0], math.MaxFloat64
	for _, c := range colours {
		if d := p.distance(pointOf(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// pixelStrip lays a pixel population out as a near-square opaque image.
// The last row is padded by wrapping round to the first pixels.
func pixelStrip(pixels []RGB) image.Image {
	width := max(int(math.Ceil(math.Sqrt(float64(len(pixels))))), 1)
	height := (len(pixels) + width - 1) / width
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range width * height {
		p := pixels[i%len(pixels)]
		img.SetRGBA(i%width, i/width, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
	}
	return img
}
