// Package seed provides deterministic seed selection for palette clustering.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/jmylchreest/pokepalette/internal/colour"
)

// Mode determines how the clustering seed is chosen.
type Mode string

const (
	// ModeFixed uses colour.DefaultSeed (default, same palette on every run).
	ModeFixed Mode = "fixed"
	// ModeContent generates seed from image content hash (deterministic by content).
	ModeContent Mode = "content"
	// ModeSource generates seed from the image URL or absolute path.
	ModeSource Mode = "source"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
	// ModeRandom uses a non-deterministic seed (varies each run).
	ModeRandom Mode = "random"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode   // Seed mode
	Value *int64 // Seed value (only used when Mode is ModeManual)
}

// Calculate determines the seed value based on the seed mode.
// img is required for ModeContent, source for ModeSource.
func Calculate(img image.Image, source string, config Config) (int64, error) {
	switch config.Mode {
	case ModeFixed, "":
		return colour.DefaultSeed, nil
	case ModeContent:
		if img == nil {
			return 0, fmt.Errorf("image is required for content-based seed mode")
		}
		return CalculateContentSeed(img)
	case ModeSource:
		if source == "" {
			return 0, fmt.Errorf("image source is required for source-based seed mode")
		}
		return CalculateSourceSeed(source), nil
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *config.Value, nil
	case ModeRandom:
		return GenerateRandomSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// CalculateContentSeed generates a deterministic seed from image content.
// Identical pixels give identical seeds regardless of where the image came from.
func CalculateContentSeed(img image.Image) (int64, error) {
	if img == nil {
		return 0, fmt.Errorf("image cannot be nil")
	}

	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are safe to convert
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions are safe to convert
	hasher.Write(dimBytes)

	// A grid sample is enough to tell images apart.
	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixelBytes := make([]byte, 3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c := colour.ToRGB(img.At(x, y))
			pixelBytes[0], pixelBytes[1], pixelBytes[2] = c.R, c.G, c.B
			hasher.Write(pixelBytes)
		}
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])), nil // #nosec G115 -- hash conversion is safe
}

// CalculateSourceSeed generates a deterministic seed from an image URL or
// file path. File paths are made absolute first.
func CalculateSourceSeed(source string) int64 {
	key := source
	if !isURL(source) {
		if abs, err := filepath.Abs(source); err == nil {
			key = abs
		}
	}
	hash := sha256.Sum256([]byte(key))
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}

// GenerateRandomSeed generates a non-deterministic random seed.
func GenerateRandomSeed() int64 {
	// #nosec G404 -- Random seed generation is intentionally non-deterministic
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeFixed, ModeContent, ModeSource, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: fixed, content, source, manual, random)", s)
}
