package pipeline

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/pokepalette/internal/colour"
)

// ErrFetchOrDecode covers every way of failing to obtain a decoded image:
// bad URL, network error, timeout, non-200 response, corrupt image data.
var ErrFetchOrDecode = errors.New("failed to fetch or decode image")

// FailureKind identifies why a run produced no palette.
type FailureKind int

const (
	// FailureFetchOrDecode means no image could be obtained.
	FailureFetchOrDecode FailureKind = iota + 1
	// FailureDegenerateClustering means the image has too few distinct
	// colours for the configured cluster count.
	FailureDegenerateClustering
)

// Tokens printed in place of a palette.
const (
	TokenFetchOrDecode = "ERROR"
	TokenDegenerate    = "DEGENERATE"
)

// String returns the kind name.
func (k FailureKind) String() string {
	switch k {
	case FailureFetchOrDecode:
		return "fetch-or-decode"
	case FailureDegenerateClustering:
		return "degenerate-clustering"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Token returns the single-line token printed for the kind.
func (k FailureKind) Token() string {
	if k == FailureDegenerateClustering {
		return TokenDegenerate
	}
	return TokenFetchOrDecode
}

// Failure describes a failed run.
type Failure struct {
	Kind FailureKind
	Err  error
}

// Error implements error.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

// Unwrap exposes the kind sentinel and the cause to errors.Is.
func (f *Failure) Unwrap() []error {
	switch f.Kind {
	case FailureFetchOrDecode:
		return []error{ErrFetchOrDecode, f.Err}
	case FailureDegenerateClustering:
		return []error{colour.ErrDegenerateClustering, f.Err}
	}
	return []error{f.Err}
}

// Result is either a palette or a failure, never both.
type Result struct {
	Palette *colour.ThemePalette
	Failure *Failure
}

// OK reports whether the run produced a palette.
func (r Result) OK() bool {
	return r.Failure == nil && r.Palette != nil
}

// Err returns the failure as an error, or nil on success.
func (r Result) Err() error {
	if r.Failure == nil {
		return nil
	}
	return r.Failure
}

// Line renders the result as one output line: the hex sequence joined by
// ", ", or the failure token.
func (r Result) Line() string {
	if r.Failure != nil {
		return r.Failure.Kind.Token()
	}
	if r.Palette == nil {
		return TokenFetchOrDecode
	}
	return r.Palette.String()
}

func success(p *colour.ThemePalette) Result {
	return Result{Palette: p}
}

func failure(kind FailureKind, err error) Result {
	return Result{Failure: &Failure{Kind: kind, Err: err}}
}
