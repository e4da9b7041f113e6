package theme

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/synthwave84/themegen/internal/colour"
	"github.com/synthwave84/themegen/internal/palette"
)

// Severity classifies a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category names the validation pass that produced a finding.
type Category string

const (
	CategoryStructural  Category = "structural"
	CategoryColour      Category = "colour"
	CategoryContrast    Category = "contrast"
	CategoryPlayers     Category = "players"
	CategoryConsistency Category = "consistency"
	CategoryCoverage    Category = "coverage"
)

// Finding is one validation result. Findings are collected exhaustively; a
// run passes if it produced no error-severity findings.
type Finding struct {
	Severity Severity
	Category Category
	Message  string
	Subject  string
}

func (f Finding) String() string {
	if f.Subject != "" {
		return fmt.Sprintf("[%s] %s: %s", f.Category, f.Subject, f.Message)
	}
	return fmt.Sprintf("[%s] %s", f.Category, f.Message)
}

// HasErrors reports whether any finding is error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate runs every validation pass over a rendered theme document and
// returns all findings. It never stops at the first problem.
func Validate(doc *Object) []Finding {
	var findings []Finding
	findings = append(findings, validateStructure(doc)...)
	findings = append(findings, validateColours(doc)...)
	findings = append(findings, validateContrast(doc)...)
	findings = append(findings, validatePlayers(doc)...)
	findings = append(findings, validateConsistency(doc)...)
	return findings
}

// validateStructure checks required sections and hunts for placeholders that
// survived rendering.
func validateStructure(doc *Object) []Finding {
	var findings []Finding

	for _, key := range []string{"$schema", "themes"} {
		if _, ok := doc.Get(key); !ok {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Category: CategoryStructural,
				Message:  "missing required key",
				Subject:  key,
			})
		}
	}

	for i, entry := range doc.GetArray("themes") {
		obj, ok := entry.(*Object)
		if !ok {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Category: CategoryStructural,
				Message:  "theme entry is not an object",
				Subject:  fmt.Sprintf("themes[%d]", i),
			})
			continue
		}
		for _, key := range []string{"name", "appearance", "style"} {
			if _, ok := obj.Get(key); !ok {
				findings = append(findings, Finding{
					Severity: SeverityError,
					Category: CategoryStructural,
					Message:  "missing required key",
					Subject:  fmt.Sprintf("themes[%d].%s", i, key),
				})
			}
		}
	}

	walkStrings(doc, "", func(path, s string) {
		if strings.Contains(s, "{{") {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Category: CategoryStructural,
				Message:  fmt.Sprintf("unexpanded placeholder %q", s),
				Subject:  path,
			})
		}
	})

	return findings
}

var hexColourRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$`)

// validateColours checks that every #-prefixed string is well-formed hex.
func validateColours(doc *Object) []Finding {
	var findings []Finding
	walkStrings(doc, "", func(path, s string) {
		if strings.HasPrefix(s, "#") && !hexColourRe.MatchString(s) {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Category: CategoryColour,
				Message:  fmt.Sprintf("invalid colour literal %q", s),
				Subject:  path,
			})
		}
	})
	return findings
}

// Muted tokens get the WCAG large-text floor instead of the variant floor.
var mutedTokens = map[string]bool{
	"comment":     true,
	"comment.doc": true,
	"hint":        true,
	"predictive":  true,
}

const mutedFloor = 3.0

// validateContrast checks the documented foreground/background pairings of
// each variant: primary text against the editor background, and every syntax
// token colour against the editor background. Theme entries are matched to
// variant specs by position.
func validateContrast(doc *Object) []Finding {
	var findings []Finding

	for i, entry := range doc.GetArray("themes") {
		obj, ok := entry.(*Object)
		if !ok {
			continue
		}
		style := obj.GetObject("style")
		if style == nil {
			continue
		}
		name, _ := obj.GetString("name")

		floor := 4.5
		if i < len(palette.Specs) {
			floor = palette.Specs[i].MinContrast
		}

		bg, ok := styleColour(style, "editor.background", "background")
		if !ok {
			continue
		}

		if fg, ok := styleColour(style, "editor.foreground", "foreground"); ok {
			ratio := colour.ContrastRatio(fg, bg)
			if ratio < floor {
				findings = append(findings, Finding{
					Severity: SeverityError,
					Category: CategoryContrast,
					Message:  fmt.Sprintf("text contrast %.1f:1 below %.1f:1", ratio, floor),
					Subject:  name,
				})
			}
		}

		syntax := style.GetObject("syntax")
		if syntax == nil {
			continue
		}
		for _, token := range syntax.Keys() {
			tokenEntry := syntax.GetObject(token)
			if tokenEntry == nil {
				continue
			}
			hex, ok := tokenEntry.GetString("color")
			if !ok {
				continue
			}
			c, err := colour.Parse(hex)
			if err != nil {
				// Reported by the colour pass.
				continue
			}

			required := floor
			if mutedTokens[token] {
				required = mutedFloor
			}
			ratio := colour.ContrastRatio(c, bg)
			if ratio < required {
				findings = append(findings, Finding{
					Severity: SeverityError,
					Category: CategoryContrast,
					Message:  fmt.Sprintf("contrast %.1f:1 below %.1f:1 against editor background", ratio, required),
					Subject:  fmt.Sprintf("%s/%s", name, token),
				})
			}
		}
	}

	return findings
}

// validatePlayers requires at least eight collaboration colours per variant.
func validatePlayers(doc *Object) []Finding {
	var findings []Finding
	for _, entry := range doc.GetArray("themes") {
		obj, ok := entry.(*Object)
		if !ok {
			continue
		}
		style := obj.GetObject("style")
		if style == nil {
			continue
		}
		name, _ := obj.GetString("name")
		if n := len(style.GetArray("players")); n < 8 {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Category: CategoryPlayers,
				Message:  fmt.Sprintf("only %d player colours, need at least 8", n),
				Subject:  name,
			})
		}
	}
	return findings
}

// validateConsistency requires every variant to expose the same style keys as
// the first one.
func validateConsistency(doc *Object) []Finding {
	themes := doc.GetArray("themes")
	if len(themes) < 2 {
		return nil
	}

	first, ok := themes[0].(*Object)
	if !ok {
		return nil
	}
	baseStyle := first.GetObject("style")
	if baseStyle == nil {
		return nil
	}
	baseKeys := make(map[string]bool, baseStyle.Len())
	for _, key := range baseStyle.Keys() {
		baseKeys[key] = true
	}

	var findings []Finding
	for _, entry := range themes[1:] {
		obj, ok := entry.(*Object)
		if !ok {
			continue
		}
		style := obj.GetObject("style")
		if style == nil {
			continue
		}
		name, _ := obj.GetString("name")

		seen := make(map[string]bool, style.Len())
		for _, key := range style.Keys() {
			seen[key] = true
			if !baseKeys[key] {
				findings = append(findings, Finding{
					Severity: SeverityError,
					Category: CategoryConsistency,
					Message:  "style key not present in first variant",
					Subject:  fmt.Sprintf("%s/%s", name, key),
				})
			}
		}
		for _, key := range baseStyle.SortedKeys() {
			if !seen[key] {
				findings = append(findings, Finding{
					Severity: SeverityError,
					Category: CategoryConsistency,
					Message:  "style key missing",
					Subject:  fmt.Sprintf("%s/%s", name, key),
				})
			}
		}
	}
	return findings
}

// styleColour fetches the first of the given style keys that parses as a
// colour, ignoring any alpha suffix.
func styleColour(style *Object, keys ...string) (colour.Colour, bool) {
	for _, key := range keys {
		if hex, ok := style.GetString(key); ok {
			if c, err := colour.Parse(hex); err == nil {
				return c.WithoutAlpha(), true
			}
		}
	}
	return colour.Colour{}, false
}

// walkStrings visits every string value in the document with its path.
func walkStrings(v Value, path string, visit func(path, s string)) {
	switch t := v.(type) {
	case *Object:
		for _, key := range t.Keys() {
			inner, _ := t.Get(key)
			walkStrings(inner, joinPath(path, key), visit)
		}
	case []Value:
		for i, inner := range t {
			walkStrings(inner, fmt.Sprintf("%s[%d]", path, i), visit)
		}
	case string:
		visit(path, t)
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
