package colour

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Window selects which brightness-sorted centroids are kept.
type Window struct {
	// SkipDark drops this many of the darkest centroids (outlines).
	SkipDark int
	// SkipBright drops this many of the brightest centroids (highlights).
	SkipBright int
}

// DefaultWindow keeps indices [2, 7) of eight brightness-sorted centroids:
// sprite artwork has near-black outlines and near-white eye highlights.
func DefaultWindow() Window {
	return Window{SkipDark: 2, SkipBright: 1}
}

// Retained returns how many of n centroids the window keeps.
func (w Window) Retained(n int) int {
	return max(n-w.SkipDark-w.SkipBright, 0)
}

// Brightness returns the mean channel value of rgb.
func Brightness(rgb RGB) float64 {
	return stat.Mean([]float64{float64(rgb.R), float64(rgb.G), float64(rgb.B)}, nil)
}

// SortByBrightness orders centroids from darkest to brightest. Equal
// brightness keeps extractor order.
func SortByBrightness(centroids []Centroid) {
	slices.SortStableFunc(centroids, func(a, b Centroid) int {
		switch {
		case a.Brightness < b.Brightness:
			return -1
		case a.Brightness > b.Brightness:
			return 1
		}
		return a.Index - b.Index
	})
}

// FilterByBrightness sorts a copy of centroids by brightness and returns the
// colours inside the window, darkest first.
func FilterByBrightness(centroids []Centroid, w Window) ([]RGB, error) {
	keep := w.Retained(len(centroids))
	if keep < 1 {
		return nil, fmt.Errorf("%w: %d centroids leave nothing after dropping %d dark and %d bright",
			ErrDegenerateClustering, len(centroids), w.SkipDark, w.SkipBright)
	}

	sorted := slices.Clone(centroids)
	SortByBrightness(sorted)

	out := make([]RGB, 0, keep)
	for _, c := range sorted[w.SkipDark : w.SkipDark+keep] {
		out = append(out, c.RGB)
	}
	return out, nil
}
