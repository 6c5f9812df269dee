// Package tempimage downloads remote images into scoped temporary files.
package tempimage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/pokepalette/internal/util/http"
)

// Options configures a download.
type Options struct {
	// Dir is the directory the temp file is created in.
	// If empty, os.TempDir is used.
	Dir string

	// Fetch configures the HTTP request.
	Fetch httputil.FetchOptions
}

// File is a downloaded image on disk. Call Remove when done.
type File struct {
	Path string
}

// Remove deletes the file. It is safe to call more than once.
func (f *File) Remove() error {
	if f == nil || f.Path == "" {
		return nil
	}
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	}
	return err
}

// extension derives a file extension from a URL.
// Query parameters are ignored. Defaults to .img when none is found.
func extension(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx != -1 {
		url = url[:idx]
	}
	ext := filepath.Ext(url)
	if ext == "" || len(ext) > 5 || strings.ContainsRune(ext, '/') {
		return ".img"
	}
	return strings.ToLower(ext)
}

// Download fetches url and writes it to a new temp file.
// No file is left behind when an error is returned.
func Download(ctx context.Context, url string, opts Options) (*File, error) {
	data, err := httputil.Fetch(ctx, url, opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	return Write(data, opts.Dir, extension(url))
}

// Write stores data in a new temp file with the given extension.
func Write(data []byte, dir, ext string) (*File, error) {
	tmp, err := os.CreateTemp(dir, "pokepalette-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	f := &File{Path: tmp.Name()}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		f.Remove()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		f.Remove()
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}
	return f, nil
}
