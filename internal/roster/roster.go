// Package roster loads the list of known creature names and their sprite ids.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/jmylchreest/pokepalette/internal/security"
	httputil "github.com/jmylchreest/pokepalette/internal/util/http"
)

const (
	// DefaultSource is the PokeAPI listing of every creature.
	DefaultSource = "https://pokeapi.co/api/v2/pokemon?limit=100000"

	// DefaultSpriteURL is the sprite location template. {id} and {name} are
	// substituted.
	DefaultSpriteURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/{id}.png"
)

// Entry is one named creature.
type Entry struct {
	Name string
	ID   int
}

// Roster maps normalised names to sprite ids. Names keep listing order.
type Roster struct {
	entries []Entry
	byName  map[string]int
}

// listing is the PokeAPI resource list document.
type listing struct {
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

// Normalise lowercases a name, turns its first hyphen into a space and trims it,
// so "Mr-Mime" and "mr mime" look up the same entry.
func Normalise(name string) string {
	return strings.TrimSpace(strings.Replace(strings.ToLower(name), "-", " ", 1))
}

// New builds a roster from entries. Later duplicates of a name are ignored.
func New(entries []Entry) *Roster {
	r := &Roster{byName: make(map[string]int, len(entries))}
	for _, e := range entries {
		name := Normalise(e.Name)
		if name == "" {
			continue
		}
		if _, dup := r.byName[name]; dup {
			continue
		}
		r.byName[name] = e.ID
		r.entries = append(r.entries, Entry{Name: name, ID: e.ID})
	}
	return r
}

// Parse reads a PokeAPI resource list. Each id is taken from the trailing
// path segment of the entry URL, falling back to the 1-based position.
func Parse(data []byte) (*Roster, error) {
	var doc listing
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	if len(doc.Results) == 0 {
		return nil, fmt.Errorf("roster has no entries")
	}

	entries := make([]Entry, 0, len(doc.Results))
	for i, res := range doc.Results {
		id, err := strconv.Atoi(path.Base(strings.TrimSuffix(res.URL, "/")))
		if err != nil || id < 1 {
			id = i + 1
		}
		entries = append(entries, Entry{Name: res.Name, ID: id})
	}
	return New(entries), nil
}

// Load reads a roster from an HTTP(S) URL or a local file.
func Load(ctx context.Context, source string, opts httputil.FetchOptions) (*Roster, error) {
	var (
		data []byte
		err  error
	)
	if security.ValidateHTTPURL(source) == nil {
		data, err = httputil.Fetch(ctx, source, opts)
	} else {
		data, err = os.ReadFile(source) // #nosec G304 -- user-specified roster file
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load roster from %s: %w", source, err)
	}
	return Parse(data)
}

// Lookup returns the sprite id for name.
func (r *Roster) Lookup(name string) (int, bool) {
	id, ok := r.byName[Normalise(name)]
	return id, ok
}

// Names returns the normalised names in listing order.
func (r *Roster) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of entries.
func (r *Roster) Len() int {
	return len(r.entries)
}

// SpriteURL fills a sprite URL template for the entry with the given id.
func SpriteURL(template string, e Entry) string {
	return strings.NewReplacer(
		"{id}", strconv.Itoa(e.ID),
		"{name}", strings.ReplaceAll(e.Name, " ", "-"),
	).Replace(template)
}
