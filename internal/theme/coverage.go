package theme

import (
	"fmt"
	"sort"
)

// CoreTokens is the set of syntax tokens the Zed highlighter consumes for
// every language. Treated as an external reference list; tokens beyond it are
// language-specific extensions.
var CoreTokens = []string{
	"attribute", "boolean", "comment", "comment.doc", "constant",
	"constructor", "embedded", "emphasis", "emphasis.strong", "enum",
	"function", "hint", "keyword", "label", "link_text", "link_uri",
	"number", "operator", "predictive", "preproc", "property",
	"punctuation", "string", "tag", "text.literal", "title", "type",
	"variable", "variant",
}

// Coverage compares the tokens a theme maps against the core reference list.
type Coverage struct {
	Covered []string // core tokens the theme maps
	Missing []string // core tokens with no mapping
	Extra   []string // mapped tokens outside the core list
}

// Complete reports whether every core token is covered.
func (c Coverage) Complete() bool {
	return len(c.Missing) == 0
}

// Findings converts the coverage result into validation findings: missing
// core tokens are errors, extra tokens a single warning.
func (c Coverage) Findings() []Finding {
	var findings []Finding
	for _, token := range c.Missing {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Category: CategoryCoverage,
			Message:  "core token has no mapping",
			Subject:  token,
		})
	}
	if len(c.Extra) > 0 {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Category: CategoryCoverage,
			Message:  fmt.Sprintf("%d language-specific tokens beyond the core list", len(c.Extra)),
		})
	}
	return findings
}

// CoverageFor computes coverage for a mapped token set.
func CoverageFor(tokens []string) Coverage {
	mapped := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		mapped[tok] = true
	}
	core := make(map[string]bool, len(CoreTokens))

	var cov Coverage
	for _, tok := range CoreTokens {
		core[tok] = true
		if mapped[tok] {
			cov.Covered = append(cov.Covered, tok)
		} else {
			cov.Missing = append(cov.Missing, tok)
		}
	}
	for tok := range mapped {
		if !core[tok] {
			cov.Extra = append(cov.Extra, tok)
		}
	}

	sort.Strings(cov.Covered)
	sort.Strings(cov.Missing)
	sort.Strings(cov.Extra)
	return cov
}

// DocumentCoverage computes coverage from a rendered theme document, reading
// the token set of its first variant.
func DocumentCoverage(doc *Object) (Coverage, error) {
	themes := doc.GetArray("themes")
	if len(themes) == 0 {
		return Coverage{}, fmt.Errorf("document has no themes")
	}
	first, ok := themes[0].(*Object)
	if !ok {
		return Coverage{}, fmt.Errorf("themes[0] is not an object")
	}
	style := first.GetObject("style")
	if style == nil {
		return Coverage{}, fmt.Errorf("themes[0] has no style")
	}
	syntax := style.GetObject("syntax")
	if syntax == nil {
		return Coverage{}, fmt.Errorf("themes[0] has no syntax table")
	}
	return CoverageFor(syntax.Keys()), nil
}
