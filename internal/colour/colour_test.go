package colour

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Colour
	}{
		{
			name:  "opaque lowercase",
			input: "#241b2f",
			want:  Colour{R: 0x24, G: 0x1b, B: 0x2f},
		},
		{
			name:  "opaque uppercase",
			input: "#FEDE5D",
			want:  Colour{R: 0xfe, G: 0xde, B: 0x5d},
		},
		{
			name:  "with alpha suffix",
			input: "#ff7edb40",
			want:  Colour{R: 0xff, G: 0x7e, B: 0xdb, Alpha: 0x40, HasAlpha: true},
		},
		{
			name:  "white",
			input: "#ffffff",
			want:  Colour{R: 255, G: 255, B: 255},
		},
		{
			name:  "black",
			input: "#000000",
			want:  Colour{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing hash", input: "241b2f"},
		{name: "too short", input: "#fff"},
		{name: "too long", input: "#241b2f001"},
		{name: "seven digits", input: "#241b2f0"},
		{name: "non-hex characters", input: "#24zb2f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got nil", tt.input)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("Parse(%q) error type = %T, want *ParseError", tt.input, err)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	inputs := []string{
		"#000000", "#ffffff", "#241b2f", "#fede5d", "#ff7edb",
		"#ff7edb40", "#00000000", "#ffffffff", "#36f9f6b0",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			c, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", in, err)
			}
			if got := c.Hex(); got != in {
				t.Errorf("Parse(%q).Hex() = %q, want %q", in, got, in)
			}
			back, err := Parse(c.Hex())
			if err != nil {
				t.Fatalf("re-Parse(%q) returned error: %v", c.Hex(), err)
			}
			if back != c {
				t.Errorf("round-trip changed colour: %+v != %+v", back, c)
			}
		})
	}
}

func TestWithAlpha(t *testing.T) {
	c := MustParse("#ff7edb")
	got := c.WithAlpha(0x40)

	if got.Hex() != "#ff7edb40" {
		t.Errorf("WithAlpha(0x40).Hex() = %q, want %q", got.Hex(), "#ff7edb40")
	}
	if got.R != c.R || got.G != c.G || got.B != c.B {
		t.Errorf("WithAlpha changed RGB channels: %+v", got)
	}
	// Replacing an existing alpha.
	if h := got.WithAlpha(0xb0).Hex(); h != "#ff7edbb0" {
		t.Errorf("WithAlpha(0xb0).Hex() = %q, want %q", h, "#ff7edbb0")
	}
	if h := got.WithoutAlpha().Hex(); h != "#ff7edb" {
		t.Errorf("WithoutAlpha().Hex() = %q, want %q", h, "#ff7edb")
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		name   string
		colour string
		want   float64
	}{
		{name: "black", colour: "#000000", want: 0.0},
		{name: "white", colour: "#ffffff", want: 1.0},
		{name: "red", colour: "#ff0000", want: 0.2126},
		{name: "green", colour: "#00ff00", want: 0.7152},
		{name: "blue", colour: "#0000ff", want: 0.0722},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParse(tt.colour).Luminance()
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("Luminance(%s) = %f, want %f", tt.colour, got, tt.want)
			}
		})
	}
}

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
		tol  float64
	}{
		{name: "black vs white", a: "#000000", b: "#ffffff", want: 21.0, tol: 0.01},
		{name: "same colour", a: "#fede5d", b: "#fede5d", want: 1.0, tol: 1e-9},
		{name: "theme background vs foreground", a: "#241b2f", b: "#ffffff", want: 16.5, tol: 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustParse(tt.a)
			b := MustParse(tt.b)
			got := ContrastRatio(a, b)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("ContrastRatio(%s, %s) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
			// Symmetry.
			if rev := ContrastRatio(b, a); rev != got {
				t.Errorf("ContrastRatio not symmetric: %f != %f", got, rev)
			}
		})
	}
}

func TestContrastRatioBounds(t *testing.T) {
	colours := []string{"#000000", "#ffffff", "#241b2f", "#fede5d", "#36f9f6", "#ff7edb"}
	for _, a := range colours {
		for _, b := range colours {
			r := ContrastRatio(MustParse(a), MustParse(b))
			if r < 1.0 || r > 21.0 {
				t.Errorf("ContrastRatio(%s, %s) = %f, outside [1, 21]", a, b, r)
			}
		}
	}
}

func TestShiftLightness(t *testing.T) {
	tests := []struct {
		name   string
		colour string
		delta  float64
	}{
		{name: "lighten keyword yellow", colour: "#fede5d", delta: 6},
		{name: "darken keyword yellow", colour: "#fede5d", delta: -8},
		{name: "lighten background", colour: "#241b2f", delta: 10},
		{name: "darken pink", colour: "#ff7edb", delta: -15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MustParse(tt.colour)
			got := c.ShiftLightness(tt.delta)

			lumBefore := c.Luminance()
			lumAfter := got.Luminance()
			if tt.delta > 0 && lumAfter <= lumBefore {
				t.Errorf("ShiftLightness(%+f) did not lighten: %f -> %f", tt.delta, lumBefore, lumAfter)
			}
			if tt.delta < 0 && lumAfter >= lumBefore {
				t.Errorf("ShiftLightness(%+f) did not darken: %f -> %f", tt.delta, lumBefore, lumAfter)
			}
		})
	}
}

func TestShiftLightnessIdentity(t *testing.T) {
	c := MustParse("#fede5d")
	if got := c.ShiftLightness(0); got != c {
		t.Errorf("ShiftLightness(0) = %v, want %v", got, c)
	}
}

func TestShiftLightnessClamps(t *testing.T) {
	// Pushing far past the ends of the scale must stay in gamut and saturate.
	white := MustParse("#808080").ShiftLightness(200)
	if white.Luminance() < 0.95 {
		t.Errorf("ShiftLightness(+200) luminance = %f, want ~1", white.Luminance())
	}
	black := MustParse("#808080").ShiftLightness(-200)
	if black.Luminance() > 0.05 {
		t.Errorf("ShiftLightness(-200) luminance = %f, want ~0", black.Luminance())
	}
}

func TestShiftLightnessPreservesAlpha(t *testing.T) {
	c := MustParse("#ff7edb40")
	got := c.ShiftLightness(5)
	if !got.HasAlpha || got.Alpha != 0x40 {
		t.Errorf("ShiftLightness dropped alpha suffix: %v", got)
	}
}

func TestShiftLightnessDeterministic(t *testing.T) {
	c := MustParse("#36f9f6")
	first := c.ShiftLightness(6)
	second := c.ShiftLightness(6)
	if first != second {
		t.Errorf("ShiftLightness not deterministic: %v != %v", first, second)
	}
}
