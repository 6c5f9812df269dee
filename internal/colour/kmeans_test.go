package colour

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

// spriteColours are eight flat colours with distinct brightness.
var spriteColours = []RGB{
	{R: 255, G: 255, B: 255}, // highlight
	{R: 40, G: 60, B: 200},
	{R: 0, G: 0, B: 0}, // outline
	{R: 220, G: 200, B: 40},
	{R: 200, G: 30, B: 30},
	{R: 40, G: 20, B: 20},
	{R: 120, G: 200, B: 220},
	{R: 30, G: 160, B: 60},
}

// blockPixels returns each colour repeated n times, shuffled with a fixed seed.
func blockPixels(colours []RGB, n int) []RGB {
	pixels := make([]RGB, 0, len(colours)*n)
	for _, c := range colours {
		for range n {
			pixels = append(pixels, c)
		}
	}
	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(len(pixels), func(i, j int) { pixels[i], pixels[j] = pixels[j], pixels[i] })
	return pixels
}

func centroidColours(centroids []Centroid) []RGB {
	out := make([]RGB, len(centroids))
	for i, c := range centroids {
		out[i] = c.RGB
	}
	return out
}

func sameColourSet(t *testing.T, got, want []RGB) {
	t.Helper()
	key := func(c RGB) int { return int(c.R)<<16 | int(c.G)<<8 | int(c.B) }
	less := func(a, b RGB) int { return key(a) - key(b) }
	g, w := slices.Clone(got), slices.Clone(want)
	slices.SortFunc(g, less)
	slices.SortFunc(w, less)
	if !slices.Equal(g, w) {
		t.Errorf("centroids = %v, want %v", g, w)
	}
}

func TestMiniBatchReproducesFlatBlocks(t *testing.T) {
	tests := []struct {
		name     string
		perBlock int
	}{
		{name: "population below init sample", perBlock: 100},
		{name: "population above init sample", perBlock: 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			centroids, err := NewMiniBatchExtractor().Extract(blockPixels(spriteColours, tt.perBlock), 8)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if len(centroids) != 8 {
				t.Fatalf("Extract() returned %d centroids, want 8", len(centroids))
			}
			sameColourSet(t, centroidColours(centroids), spriteColours)
			for _, c := range centroids {
				if c.Size != tt.perBlock {
					t.Errorf("centroid %s size = %d, want %d", c.RGB.Hex(), c.Size, tt.perBlock)
				}
			}
		})
	}
}

func TestMiniBatchDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pixels := make([]RGB, 5000)
	for i := range pixels {
		pixels[i] = RGB{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
	}

	first, err := NewMiniBatchExtractor().Extract(pixels, 8)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := NewMiniBatchExtractor().Extract(pixels, 8)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !slices.Equal(first, second) {
		t.Errorf("same seed produced different centroids:\n%v\n%v", first, second)
	}
}

func TestMiniBatchDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		pixels []RGB
	}{
		{name: "two colours", pixels: blockPixels([]RGB{{R: 255}, {B: 255}}, 5000)},
		{name: "solid", pixels: blockPixels([]RGB{{R: 10, G: 20, B: 30}}, 100)},
		{name: "seven colours", pixels: blockPixels(spriteColours[:7], 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMiniBatchExtractor().Extract(tt.pixels, 8)
			if !errors.Is(err, ErrDegenerateClustering) {
				t.Errorf("Extract() error = %v, want ErrDegenerateClustering", err)
			}
		})
	}
}

func TestMiniBatchInvalidInput(t *testing.T) {
	if _, err := NewMiniBatchExtractor().Extract(nil, 8); err == nil {
		t.Error("Extract(nil) expected error")
	}
	if _, err := NewMiniBatchExtractor().Extract(spriteColours, 0); err == nil {
		t.Error("Extract(k=0) expected error")
	}
}

func TestMiniBatchOptions(t *testing.T) {
	e := NewMiniBatchExtractor(WithSeed(1), WithBatchSize(10), WithMaxIterations(5), WithBatchSize(-1))
	if e.seed != 1 || e.batchSize != 10 || e.maxIterations != 5 || e.initSize != 30 {
		t.Errorf("options not applied: %+v", e)
	}
}

func TestCountDistinct(t *testing.T) {
	pixels := blockPixels(spriteColours, 3)
	if got := countDistinct(pixels, 100); got != 8 {
		t.Errorf("countDistinct() = %d, want 8", got)
	}
	if got := countDistinct(pixels, 4); got != 4 {
		t.Errorf("countDistinct(limit 4) = %d, want 4", got)
	}
}

func TestBuildCentroidsRejectsEmptyAndDuplicate(t *testing.T) {
	centres := []point3D{{R: 1}, {R: 200}}
	if _, err := buildCentroids(centres, []int{3, 0}); !errors.Is(err, ErrDegenerateClustering) {
		t.Errorf("empty cluster: error = %v", err)
	}

	dup := []point3D{{R: 10.2}, {R: 9.8}}
	if _, err := buildCentroids(dup, []int{1, 1}); !errors.Is(err, ErrDegenerateClustering) {
		t.Errorf("duplicate rounding: error = %v", err)
	}

	got, err := buildCentroids([]point3D{{R: 10.4, G: 20.6, B: 30}}, []int{5})
	if err != nil {
		t.Fatalf("buildCentroids() error = %v", err)
	}
	want := Centroid{RGB: RGB{R: 10, G: 21, B: 30}, Brightness: 61.0 / 3.0, Index: 0, Size: 5}
	if got[0] != want {
		t.Errorf("buildCentroids() = %+v, want %+v", got[0], want)
	}
}

func TestLloydFlatBlocks(t *testing.T) {
	centroids, err := NewLloydExtractor().Extract(blockPixels(spriteColours, 100), 8)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(centroids) != 8 {
		t.Fatalf("Extract() returned %d centroids, want 8", len(centroids))
	}
	total := 0
	for _, c := range centroids {
		if c.Size < 1 {
			t.Errorf("centroid %s is empty", c.RGB.Hex())
		}
		total += c.Size
	}
	if total != 800 {
		t.Errorf("cluster sizes sum to %d, want 800", total)
	}
}

func TestLloydDegenerate(t *testing.T) {
	_, err := NewLloydExtractor().Extract(blockPixels([]RGB{{R: 255}, {B: 255}}, 100), 8)
	if !errors.Is(err, ErrDegenerateClustering) {
		t.Errorf("Extract() error = %v, want ErrDegenerateClustering", err)
	}
}

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		alg     Algorithm
		wantErr bool
	}{
		{AlgorithmMiniBatch, false},
		{AlgorithmKMeans, false},
		{AlgorithmDominant, false},
		{Algorithm("mediancut"), true},
	}
	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			cfg := DefaultExtractorConfig()
			cfg.Algorithm = tt.alg
			e, err := NewExtractor(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExtractor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && e == nil {
				t.Error("NewExtractor() returned nil extractor")
			}
		})
	}
}

func TestExtractorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ExtractorConfig)
		wantErr bool
	}{
		{name: "default", mutate: func(*ExtractorConfig) {}},
		{name: "bad algorithm", mutate: func(c *ExtractorConfig) { c.Algorithm = "nope" }, wantErr: true},
		{name: "zero clusters", mutate: func(c *ExtractorConfig) { c.ClusterCount = 0 }, wantErr: true},
		{name: "too many clusters", mutate: func(c *ExtractorConfig) { c.ClusterCount = 257 }, wantErr: true},
		{name: "zero batch", mutate: func(c *ExtractorConfig) { c.BatchSize = 0 }, wantErr: true},
		{name: "zero iterations", mutate: func(c *ExtractorConfig) { c.MaxIterations = 0 }, wantErr: true},
		{name: "window too wide", mutate: func(c *ExtractorConfig) { c.Window = Window{SkipDark: 4, SkipBright: 4} }, wantErr: true},
		{name: "negative window", mutate: func(c *ExtractorConfig) { c.Window.SkipDark = -1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultExtractorConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
