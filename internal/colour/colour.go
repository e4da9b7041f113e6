// Package colour provides the colour model for theme generation: hex parsing,
// WCAG luminance and contrast, and perceptual lightness adjustment.
package colour

import (
	"fmt"
	"strings"
)

// Colour is an immutable 24-bit sRGB value with an optional 8-bit alpha suffix.
type Colour struct {
	R, G, B  uint8
	Alpha    uint8
	HasAlpha bool
}

// ParseError is returned when a colour literal cannot be parsed.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid colour %q: %s", e.Input, e.Reason)
}

// Parse parses a hex colour literal of the form "#rrggbb" or "#rrggbbaa".
// Parsing is case-insensitive; Hex always re-emits lowercase.
func Parse(s string) (Colour, error) {
	if !strings.HasPrefix(s, "#") {
		return Colour{}, &ParseError{Input: s, Reason: "missing '#' prefix"}
	}
	h := s[1:]
	if len(h) != 6 && len(h) != 8 {
		return Colour{}, &ParseError{Input: s, Reason: fmt.Sprintf("expected 6 or 8 hex digits, got %d", len(h))}
	}

	var bytes [4]uint8
	for i := 0; i < len(h)/2; i++ {
		hi, ok1 := hexDigit(h[2*i])
		lo, ok2 := hexDigit(h[2*i+1])
		if !ok1 || !ok2 {
			return Colour{}, &ParseError{Input: s, Reason: "non-hex character"}
		}
		bytes[i] = hi<<4 | lo
	}

	c := Colour{R: bytes[0], G: bytes[1], B: bytes[2]}
	if len(h) == 8 {
		c.Alpha = bytes[3]
		c.HasAlpha = true
	}
	return c, nil
}

// MustParse parses a hex colour literal and panics on failure.
// Intended for static colour tables and tests.
func MustParse(s string) Colour {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// Hex returns the colour as a lowercase hex string ("#rrggbb" or "#rrggbbaa").
// Parse(c.Hex()) is the identity for any valid colour.
func (c Colour) Hex() string {
	if c.HasAlpha {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.Alpha)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the hex form.
func (c Colour) String() string {
	return c.Hex()
}

// WithAlpha returns a copy of the colour with the given alpha byte attached.
// The RGB channels are unchanged.
func (c Colour) WithAlpha(a uint8) Colour {
	c.Alpha = a
	c.HasAlpha = true
	return c
}

// WithoutAlpha returns a copy of the colour with any alpha suffix removed.
func (c Colour) WithoutAlpha() Colour {
	c.Alpha = 0
	c.HasAlpha = false
	return c
}
