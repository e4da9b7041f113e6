package palette

import (
	"errors"
	"testing"

	"github.com/synthwave84/themegen/internal/colour"
)

func TestDeriveClassicIsIdentity(t *testing.T) {
	p := mustLoad(t)

	derived, err := Derive(p, "classic")
	if err != nil {
		t.Fatalf("Derive(classic) returned error: %v", err)
	}
	resolved, err := p.Resolve("classic")
	if err != nil {
		t.Fatalf("Resolve(classic) returned error: %v", err)
	}

	for role, want := range resolved {
		if got := derived[role]; got != want {
			t.Errorf("classic derivation changed %s: %s != %s", role, got.Hex(), want.Hex())
		}
	}
}

func TestDeriveMeetsContrastFloor(t *testing.T) {
	p := mustLoad(t)

	for _, spec := range Specs {
		if spec.LightnessShift == 0 {
			continue
		}
		t.Run(spec.Name, func(t *testing.T) {
			roles, err := Derive(p, spec.Name)
			if err != nil {
				t.Fatalf("Derive(%s) returned error: %v", spec.Name, err)
			}
			ref, ok := roles.Lookup(spec.ReferenceRole)
			if !ok {
				t.Fatalf("reference role %s missing", spec.ReferenceRole)
			}

			for token := range p.Syntax {
				role := "syntax." + token
				if _, overridden := p.Variants[spec.Name][role]; overridden {
					continue
				}
				ratio := colour.ContrastRatio(roles[role], ref)
				if ratio < spec.MinContrast {
					t.Errorf("%s: contrast %.2f below floor %.2f", role, ratio, spec.MinContrast)
				}
			}
		})
	}
}

func TestDeriveOverridesWinVerbatim(t *testing.T) {
	p := mustLoad(t)

	roles, err := Derive(p, "soft")
	if err != nil {
		t.Fatalf("Derive(soft) returned error: %v", err)
	}
	if got := roles["syntax.comment"].Hex(); got != "#9aa0c9" {
		t.Errorf("soft syntax.comment = %s, want override #9aa0c9", got)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	p := mustLoad(t)

	first, err := Derive(p, "high_contrast")
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}
	second, err := Derive(p, "high_contrast")
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("role counts differ: %d != %d", len(first), len(second))
	}
	for role, c := range first {
		if second[role] != c {
			t.Errorf("role %s differs between runs: %s != %s", role, c.Hex(), second[role].Hex())
		}
	}
}

func TestDeriveColourRepairsUpward(t *testing.T) {
	// A muted colour on a dark background: the raw shift alone cannot meet
	// 7:1, so the repair loop has to keep lightening.
	base := colour.MustParse("#848bbd")
	ref := colour.MustParse("#241b2f")
	spec, _ := SpecFor("high_contrast")

	got, err := deriveColour(base, ref, spec, "syntax.comment")
	if err != nil {
		t.Fatalf("deriveColour returned error: %v", err)
	}
	if ratio := colour.ContrastRatio(got, ref); ratio < 7.0 {
		t.Errorf("repaired contrast %.2f below 7.0", ratio)
	}
}

func TestDeriveColourUnattainable(t *testing.T) {
	// Against mid grey no lightness can reach 4.5:1 in either direction.
	base := colour.MustParse("#fede5d")
	ref := colour.MustParse("#808080")
	spec, _ := SpecFor("soft")

	_, err := deriveColour(base, ref, spec, "syntax.keyword")
	if err == nil {
		t.Fatal("expected ContrastError, got nil")
	}
	var cerr *ContrastError
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *ContrastError", err)
	}
	if cerr.Role != "syntax.keyword" {
		t.Errorf("error role = %s, want syntax.keyword", cerr.Role)
	}
	if cerr.Required != 4.5 {
		t.Errorf("error required = %f, want 4.5", cerr.Required)
	}
	if cerr.Achieved >= cerr.Required {
		t.Errorf("achieved %.2f not below required %.2f", cerr.Achieved, cerr.Required)
	}
}

func TestReport(t *testing.T) {
	p := mustLoad(t)

	rows, err := Report(p)
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}

	// Two non-classic variants per syntax token.
	if want := len(p.Syntax) * 2; len(rows) != want {
		t.Fatalf("row count = %d, want %d", len(rows), want)
	}

	byKey := make(map[string]ReportRow)
	for _, row := range rows {
		byKey[row.Token+"/"+row.Variant] = row
	}

	// The soft comment override is reported as the manual colour.
	row, ok := byKey["comment/soft"]
	if !ok {
		t.Fatal("missing comment/soft row")
	}
	if row.Manual.Hex() != "#9aa0c9" {
		t.Errorf("comment/soft manual = %s, want #9aa0c9", row.Manual.Hex())
	}

	for key, row := range byKey {
		if row.DerivedRatio < 4.5 {
			t.Errorf("%s: derived ratio %.2f below 4.5", key, row.DerivedRatio)
		}
	}
}
