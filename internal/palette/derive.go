package palette

import (
	"fmt"
	"sort"

	"github.com/synthwave84/themegen/internal/colour"
)

// Contrast repair bound: at most maxRepairSteps additional shifts of
// repairStep L* units beyond the variant's own lightness shift.
const (
	repairStep     = 1.0
	maxRepairSteps = 100
)

// ContrastError is returned when a derived colour cannot reach the variant's
// contrast floor within the repair bound.
type ContrastError struct {
	Role     string
	Variant  string
	Achieved float64
	Required float64
}

func (e *ContrastError) Error() string {
	return fmt.Sprintf("contrast unattainable for %s in variant %s: best %.2f:1, required %.2f:1",
		e.Role, e.Variant, e.Achieved, e.Required)
}

// Derive produces the resolved role set for one variant. Syntax roles not
// present in the variant's override set are shifted by the variant's L* delta
// and then contrast-repaired against the reference role; overrides are used
// verbatim. Structural roles (background, foreground, border, terminal) pass
// through unshifted.
func Derive(p *Palette, variant string) (Roles, error) {
	spec, ok := SpecFor(variant)
	if !ok {
		return nil, fmt.Errorf("unknown variant %q", variant)
	}

	roles, err := p.Resolve(variant)
	if err != nil {
		return nil, err
	}
	if spec.LightnessShift == 0 {
		return roles, nil
	}

	ref, ok := roles.Lookup(spec.ReferenceRole)
	if !ok {
		return nil, fmt.Errorf("variant %s: reference role %q not in palette", variant, spec.ReferenceRole)
	}

	overrides := p.Variants[variant]
	for _, token := range sortedKeys(p.Syntax) {
		role := "syntax." + token
		if _, overridden := overrides[role]; overridden {
			continue
		}
		derived, err := deriveColour(p.Syntax[token], ref, spec, role)
		if err != nil {
			return nil, err
		}
		roles[role] = derived
	}

	return roles, nil
}

// deriveColour applies the two-phase transform: shift first for visual
// coherence, then walk the lightness toward the contrasting side of the
// reference in bounded steps until the floor is met.
func deriveColour(base, ref colour.Colour, spec Spec, role string) (colour.Colour, error) {
	shift := spec.LightnessShift
	candidate := base.ShiftLightness(shift)
	if colour.ContrastRatio(candidate, ref) >= spec.MinContrast {
		return candidate, nil
	}

	// Lighten against a dark reference, darken against a light one.
	step := repairStep
	if ref.Luminance() >= 0.5 {
		step = -repairStep
	}

	for i := 0; i < maxRepairSteps; i++ {
		shift += step
		candidate = base.ShiftLightness(shift)
		if colour.ContrastRatio(candidate, ref) >= spec.MinContrast {
			return candidate, nil
		}
	}

	return colour.Colour{}, &ContrastError{
		Role:     role,
		Variant:  spec.Name,
		Achieved: colour.ContrastRatio(candidate, ref),
		Required: spec.MinContrast,
	}
}

// ReportRow compares the palette's manual override for one token against the
// colour derivation would compute, with both contrast ratios against the
// variant's reference background.
type ReportRow struct {
	Token        string
	Variant      string
	Manual       colour.Colour
	Derived      colour.Colour
	ManualRatio  float64
	DerivedRatio float64
}

// Matches reports whether the manual and derived colours agree.
func (r ReportRow) Matches() bool {
	return r.Manual == r.Derived
}

// Report computes a manual-vs-derived comparison for every syntax token in
// every non-classic variant, in token-then-variant order.
func Report(p *Palette) ([]ReportRow, error) {
	var rows []ReportRow
	for _, token := range sortedKeys(p.Syntax) {
		for _, spec := range Specs {
			if spec.LightnessShift == 0 {
				continue
			}

			roles, err := p.Resolve(spec.Name)
			if err != nil {
				return nil, err
			}
			ref, ok := roles.Lookup(spec.ReferenceRole)
			if !ok {
				return nil, fmt.Errorf("variant %s: reference role %q not in palette", spec.Name, spec.ReferenceRole)
			}

			role := "syntax." + token
			derived, err := deriveColour(p.Syntax[token], ref, spec, role)
			if err != nil {
				return nil, err
			}

			manual := p.Syntax[token]
			if c, ok := p.Variants[spec.Name][role]; ok {
				manual = c
			}

			rows = append(rows, ReportRow{
				Token:        token,
				Variant:      spec.Name,
				Manual:       manual,
				Derived:      derived,
				ManualRatio:  colour.ContrastRatio(manual, ref),
				DerivedRatio: colour.ContrastRatio(derived, ref),
			})
		}
	}
	return rows, nil
}

func sortedKeys(m map[string]colour.Colour) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
