package colour

import (
	"errors"
	"testing"
)

func TestDominantReproducesFlatBlocks(t *testing.T) {
	for _, perBlock := range []int{100, 2500} {
		centroids, err := NewDominantExtractor().Extract(blockPixels(spriteColours, perBlock), 8)
		if err != nil {
			t.Fatalf("Extract(%d per block) error = %v", perBlock, err)
		}
		sameColourSet(t, centroidColours(centroids), spriteColours)
		for _, c := range centroids {
			if c.Size != perBlock {
				t.Errorf("centroid %s size = %d, want %d", c.RGB.Hex(), c.Size, perBlock)
			}
		}
	}
}

func TestDominantDegenerate(t *testing.T) {
	_, err := NewDominantExtractor().Extract(blockPixels([]RGB{{R: 255}, {B: 255}}, 100), 8)
	if !errors.Is(err, ErrDegenerateClustering) {
		t.Errorf("Extract() error = %v, want ErrDegenerateClustering", err)
	}
}

func TestCompleteCentresFillsShortfall(t *testing.T) {
	distinct := histogram(blockPixels(spriteColours, 10))

	tests := []struct {
		name  string
		seeds []point3D
	}{
		{"no seeds", nil},
		{"three seeds", []point3D{{R: 1, G: 1, B: 1}, {R: 199, G: 31, B: 29}, {R: 254, G: 250, B: 250}}},
		{"seeds snapping to one colour", []point3D{{R: 2}, {R: 3}, {G: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			centres := completeCentres(tt.seeds, distinct, 8)
			got := make([]RGB, len(centres))
			for i, c := range centres {
				got[i] = c.rgb()
			}
			sameColourSet(t, got, spriteColours)
		})
	}
}

func TestCompleteCentresKeepsSeedsFirst(t *testing.T) {
	distinct := histogram(blockPixels(spriteColours, 10))
	centres := completeCentres([]point3D{{R: 201, G: 29, B: 30}}, distinct, 3)

	if len(centres) != 3 {
		t.Fatalf("completeCentres() returned %d centres, want 3", len(centres))
	}
	if got := centres[0].rgb(); got != (RGB{R: 200, G: 30, B: 30}) {
		t.Errorf("first centre = %s, want the snapped seed #C81E1E", got.Hex())
	}
	if got := centres[1].rgb(); got != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("second centre = %s, want white, the colour farthest from red", got.Hex())
	}
}

func TestHistogramOrder(t *testing.T) {
	pixels := []RGB{{B: 1}, {R: 9}, {R: 9}, {G: 5}, {R: 9}, {G: 5}}
	got := histogram(pixels)
	want := []RGB{{R: 9}, {G: 5}, {B: 1}}
	if len(got) != len(want) {
		t.Fatalf("histogram() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("histogram()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
