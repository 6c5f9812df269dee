// Package image provides utilities for loading and processing images.
package image

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/pokepalette/internal/colour"
	"github.com/jmylchreest/pokepalette/internal/util/tempimage"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path or URL.
	Load(ctx context.Context, path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, BMP.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	return img, nil
}

// URLLoader downloads an image into a temp file, decodes it, and removes the
// file again on every path.
type URLLoader struct {
	opts       tempimage.Options
	fileLoader *FileLoader
	logger     hclog.Logger
}

// NewURLLoader creates a new URLLoader.
func NewURLLoader(opts tempimage.Options, logger hclog.Logger) *URLLoader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &URLLoader{
		opts:       opts,
		fileLoader: NewFileLoader(),
		logger:     logger,
	}
}

// Load fetches and decodes an image from an HTTP(S) URL.
func (l *URLLoader) Load(ctx context.Context, url string) (image.Image, error) {
	l.logger.Debug("fetching image", "url", url)
	f, err := tempimage.Download(ctx, url, l.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	defer func() {
		if err := f.Remove(); err != nil {
			l.logger.Warn("failed to remove temp image", "path", f.Path, "error", err)
		}
	}()

	l.logger.Debug("image spooled", "path", f.Path)
	return l.fileLoader.Load(ctx, f.Path)
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	urlLoader  *URLLoader
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(opts tempimage.Options, logger hclog.Logger) *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		urlLoader:  NewURLLoader(opts, logger),
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if IsURL(path) {
		return l.urlLoader.Load(ctx, path)
	}
	return l.fileLoader.Load(ctx, path)
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Pixels flattens img into a pixel population, row by row, dropping alpha.
func Pixels(img image.Image) []colour.RGB {
	bounds := img.Bounds()
	pixels := make([]colour.RGB, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixels = append(pixels, colour.ToRGB(img.At(x, y)))
		}
	}
	return pixels
}
