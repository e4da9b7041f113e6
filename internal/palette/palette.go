// Package palette loads the declarative palette source and derives the
// per-variant colour sets from it.
package palette

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/synthwave84/themegen/internal/colour"
)

// Palette is the parsed palette source document. Base colours are shared by
// every variant; Syntax holds the classic token colours; Variants holds sparse
// per-variant override sets keyed by flat role name (e.g. "syntax.comment").
type Palette struct {
	Base     BaseColours
	Syntax   map[string]colour.Colour
	Terminal map[string]colour.Colour
	Players  []colour.Colour
	Variants map[string]Overrides
}

// BaseColours groups the shared structural colours.
type BaseColours struct {
	Background map[string]colour.Colour
	Foreground map[string]colour.Colour
	Border     map[string]colour.Colour
}

// Overrides is a sparse flat-role → colour map for one variant.
type Overrides map[string]colour.Colour

// Roles is a fully flattened role → colour map for one variant, keyed
// "background.deep", "syntax.keyword", "terminal.ansi.black" and so on.
type Roles map[string]colour.Colour

// Lookup returns the colour for a flat role name.
func (r Roles) Lookup(role string) (colour.Colour, bool) {
	c, ok := r[role]
	return c, ok
}

// Names returns all role names in sorted order.
func (r Roles) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rawPalette mirrors the palette.json schema before colour parsing.
type rawPalette struct {
	Base struct {
		Background map[string]string `json:"background"`
		Foreground map[string]string `json:"foreground"`
		Border     map[string]string `json:"border"`
	} `json:"base"`
	Syntax   map[string]string            `json:"syntax"`
	Terminal map[string]string            `json:"terminal"`
	Players  []string                     `json:"players"`
	Variants map[string]map[string]string `json:"variants"`
}

// Load parses a palette source document. Keys beginning with "$" are comments
// and are dropped. Any malformed colour literal fails the load, naming the key
// that carried it.
func Load(data []byte) (*Palette, error) {
	var raw rawPalette
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse palette source: %w", err)
	}

	p := &Palette{
		Variants: make(map[string]Overrides),
	}

	var err error
	if p.Base.Background, err = parseGroup("base.background", raw.Base.Background); err != nil {
		return nil, err
	}
	if p.Base.Foreground, err = parseGroup("base.foreground", raw.Base.Foreground); err != nil {
		return nil, err
	}
	if p.Base.Border, err = parseGroup("base.border", raw.Base.Border); err != nil {
		return nil, err
	}
	if p.Syntax, err = parseGroup("syntax", raw.Syntax); err != nil {
		return nil, err
	}
	if p.Terminal, err = parseGroup("terminal", raw.Terminal); err != nil {
		return nil, err
	}

	p.Players = make([]colour.Colour, 0, len(raw.Players))
	for i, s := range raw.Players {
		c, err := colour.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("players[%d]: %w", i, err)
		}
		p.Players = append(p.Players, c)
	}

	for name, overrides := range raw.Variants {
		if strings.HasPrefix(name, "$") {
			continue
		}
		group, err := parseGroup("variants."+name, overrides)
		if err != nil {
			return nil, err
		}
		p.Variants[name] = Overrides(group)
	}

	return p, nil
}

// LoadFile reads and parses a palette source document from disk.
func LoadFile(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette source: %w", err)
	}
	p, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func parseGroup(section string, in map[string]string) (map[string]colour.Colour, error) {
	out := make(map[string]colour.Colour, len(in))
	for key, val := range in {
		if strings.HasPrefix(key, "$") {
			continue
		}
		c, err := colour.Parse(val)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", section, key, err)
		}
		out[key] = c
	}
	return out, nil
}

// Resolve flattens the palette for one variant: base roles first, then the
// variant's overrides merged on top. The classic variant has no overrides.
func (p *Palette) Resolve(variant string) (Roles, error) {
	if _, ok := SpecFor(variant); !ok {
		return nil, fmt.Errorf("unknown variant %q", variant)
	}

	roles := make(Roles)
	for key, c := range p.Base.Background {
		roles["background."+key] = c
	}
	for key, c := range p.Base.Foreground {
		roles["foreground."+key] = c
	}
	for key, c := range p.Base.Border {
		roles["border."+key] = c
	}
	for key, c := range p.Syntax {
		roles["syntax."+key] = c
	}
	for key, c := range p.Terminal {
		roles["terminal."+key] = c
	}

	for role, c := range p.Variants[variant] {
		roles[role] = c
	}

	return roles, nil
}
