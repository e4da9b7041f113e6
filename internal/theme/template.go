package theme

import (
	"fmt"
	"os"
	"strings"
)

// Template is the parsed structural skeleton of the theme: UI and terminal
// sections with {{role}} placeholders, the token→role and token→style tables,
// and per-variant metadata. It is a read-only input to rendering.
type Template struct {
	Schema string
	Name   string
	Author string

	// Variants maps variant key to its display metadata.
	Variants map[string]VariantConfig

	// UI and Terminal keep the template's declared key order.
	UI       *Object
	Terminal *Object

	// TokenRoles maps syntax token → palette role; TokenStyles maps syntax
	// token → font style name.
	TokenRoles  map[string]string
	TokenStyles map[string]string

	// Special holds ordered token → placeholder-template entries that bypass
	// the role tables (e.g. alpha-suffixed doc comments).
	Special []SpecialEntry
}

// VariantConfig is the per-variant display metadata from the template.
type VariantConfig struct {
	Name            string
	LineNumberAlpha string
}

// SpecialEntry is one syntax_special entry, in template declaration order.
type SpecialEntry struct {
	Token    string
	Template string
}

// LoadTemplate parses a template source document.
func LoadTemplate(data []byte) (*Template, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template source: %w", err)
	}
	return templateFromDocument(doc)
}

// LoadTemplateFile reads and parses a template source document from disk.
func LoadTemplateFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template source: %w", err)
	}
	t, err := LoadTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func templateFromDocument(doc *Object) (*Template, error) {
	t := &Template{
		Variants:    make(map[string]VariantConfig),
		TokenRoles:  make(map[string]string),
		TokenStyles: make(map[string]string),
	}

	var ok bool
	if t.Schema, ok = doc.GetString("$schema"); !ok {
		return nil, fmt.Errorf("template missing $schema")
	}
	if t.Name, ok = doc.GetString("name"); !ok {
		return nil, fmt.Errorf("template missing name")
	}
	if t.Author, ok = doc.GetString("author"); !ok {
		return nil, fmt.Errorf("template missing author")
	}

	variants := doc.GetObject("variants")
	if variants == nil {
		return nil, fmt.Errorf("template missing variants section")
	}
	for _, key := range variants.Keys() {
		if strings.HasPrefix(key, "$") {
			continue
		}
		cfg := variants.GetObject(key)
		if cfg == nil {
			return nil, fmt.Errorf("variants.%s is not an object", key)
		}
		name, ok := cfg.GetString("name")
		if !ok {
			return nil, fmt.Errorf("variants.%s missing name", key)
		}
		alpha, ok := cfg.GetString("line_number_alpha")
		if !ok {
			return nil, fmt.Errorf("variants.%s missing line_number_alpha", key)
		}
		t.Variants[key] = VariantConfig{Name: name, LineNumberAlpha: alpha}
	}

	if t.UI = doc.GetObject("ui"); t.UI == nil {
		return nil, fmt.Errorf("template missing ui section")
	}
	if t.Terminal = doc.GetObject("terminal"); t.Terminal == nil {
		return nil, fmt.Errorf("template missing terminal section")
	}

	colors := doc.GetObject("syntax_colors")
	if colors == nil {
		return nil, fmt.Errorf("template missing syntax_colors section")
	}
	for _, role := range colors.Keys() {
		if strings.HasPrefix(role, "$") {
			continue
		}
		for _, tok := range tokenList(colors, role) {
			t.TokenRoles[tok] = role
		}
	}

	styles := doc.GetObject("syntax_styles")
	if styles == nil {
		return nil, fmt.Errorf("template missing syntax_styles section")
	}
	for _, style := range styles.Keys() {
		if strings.HasPrefix(style, "$") {
			continue
		}
		for _, tok := range tokenList(styles, style) {
			t.TokenStyles[tok] = style
		}
	}

	// syntax_special is optional.
	if special := doc.GetObject("syntax_special"); special != nil {
		for _, token := range special.Keys() {
			if strings.HasPrefix(token, "$") {
				continue
			}
			tmpl, _ := special.GetString(token)
			t.Special = append(t.Special, SpecialEntry{Token: token, Template: tmpl})
		}
	}

	return t, nil
}

// tokenList reads the string array stored under key, dropping non-strings.
func tokenList(o *Object, key string) []string {
	var tokens []string
	for _, v := range o.GetArray(key) {
		if s, ok := v.(string); ok {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// Tokens returns every syntax token the template maps, via either the colour
// or the style table, without duplicates.
func (t *Template) Tokens() []string {
	seen := make(map[string]bool)
	var tokens []string
	add := func(tok string) {
		if !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	for tok := range t.TokenRoles {
		add(tok)
	}
	for tok := range t.TokenStyles {
		add(tok)
	}
	for _, e := range t.Special {
		add(e.Token)
	}
	return tokens
}
