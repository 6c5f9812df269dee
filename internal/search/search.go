// Package search resolves a creature name to a sprite palette, suggesting
// close names when the roster has no exact entry.
package search

import (
	"context"
	"encoding/json"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/pokepalette/internal/namematch"
	"github.com/jmylchreest/pokepalette/internal/pipeline"
	"github.com/jmylchreest/pokepalette/internal/roster"
)

// Flag classifies a search outcome.
type Flag string

const (
	// FlagPalette means the name was found; Data is the palette line or NoPalette.
	FlagPalette Flag = "PALETTE"
	// FlagMatched means the name was not found; Data lists close names.
	FlagMatched Flag = "MATCHED"
	// FlagNoPokemon means the name was not found and nothing is close.
	FlagNoPokemon Flag = "NO_POKEMON"
)

// NoPalette is the PALETTE data when the sprite produced no palette.
const NoPalette = "NO_PALETTE"

// Runner produces a palette for an image source.
type Runner interface {
	Run(ctx context.Context, source string) pipeline.Result
}

// Outcome is the result of one search.
type Outcome struct {
	Flag Flag   `json:"flag"`
	Data string `json:"data"`

	// Result is the pipeline result for an exact hit.
	Result *pipeline.Result `json:"-"`
	// Matches holds the scored suggestions for a miss.
	Matches []namematch.Match `json:"-"`
}

// Line renders the outcome as "FLAG: data".
func (o Outcome) Line() string {
	return string(o.Flag) + ": " + o.Data
}

// JSON renders the outcome as {"flag": ..., "data": ...}.
func (o Outcome) JSON() ([]byte, error) {
	return json.Marshal(o)
}

// Searcher looks names up in a roster and runs the palette pipeline on hits.
type Searcher struct {
	roster    *roster.Roster
	spriteURL string
	runner    Runner
	match     namematch.Options
	logger    hclog.Logger
}

// New creates a Searcher. An empty spriteURL uses roster.DefaultSpriteURL and
// a nil logger discards output.
func New(r *roster.Roster, spriteURL string, runner Runner, match namematch.Options, logger hclog.Logger) *Searcher {
	if spriteURL == "" {
		spriteURL = roster.DefaultSpriteURL
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Searcher{
		roster:    r,
		spriteURL: spriteURL,
		runner:    runner,
		match:     match,
		logger:    logger,
	}
}

// Search returns the palette of name's sprite on an exact roster hit and
// close roster names otherwise.
func (s *Searcher) Search(ctx context.Context, name string) Outcome {
	normalised := roster.Normalise(name)

	if id, ok := s.roster.Lookup(normalised); ok {
		url := roster.SpriteURL(s.spriteURL, roster.Entry{Name: normalised, ID: id})
		s.logger.Debug("roster hit", "name", normalised, "id", id, "sprite", url)

		res := s.runner.Run(ctx, url)
		out := Outcome{Flag: FlagPalette, Data: NoPalette, Result: &res}
		if res.OK() {
			out.Data = res.Line()
		} else {
			s.logger.Debug("sprite produced no palette", "error", res.Err())
		}
		return out
	}

	matches := namematch.Find(normalised, s.roster.Names(), s.match)
	s.logger.Debug("roster miss", "name", normalised, "matches", len(matches))
	if len(matches) == 0 {
		return Outcome{Flag: FlagNoPokemon, Data: string(FlagNoPokemon)}
	}
	return Outcome{Flag: FlagMatched, Data: namematch.Line(matches), Matches: matches}
}
