package theme

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"github.com/synthwave84/themegen/internal/colour"
	"github.com/synthwave84/themegen/internal/palette"
)

var placeholderRe = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// UnresolvedRoleError is returned when a template placeholder or table entry
// names a role absent from the resolved palette. This indicates an
// inconsistency in the source documents, never a recoverable condition.
type UnresolvedRoleError struct {
	Role  string
	Where string
}

func (e *UnresolvedRoleError) Error() string {
	return fmt.Sprintf("unresolved role %q referenced by %s", e.Role, e.Where)
}

// RenderTheme derives every variant of the palette and renders the full theme
// document: header, then one theme entry per variant in declaration order.
// Identical inputs produce identical documents.
func RenderTheme(tmpl *Template, p *palette.Palette) (*Object, error) {
	root := NewObject()
	root.Set("$schema", tmpl.Schema)
	root.Set("name", tmpl.Name)
	root.Set("author", tmpl.Author)

	themes := make([]Value, 0, len(palette.Specs))
	for _, spec := range palette.Specs {
		roles, err := palette.Derive(p, spec.Name)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", spec.Name, err)
		}
		entry, err := RenderVariant(tmpl, p, roles, spec.Name)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", spec.Name, err)
		}
		themes = append(themes, entry)
	}
	root.Set("themes", themes)

	return root, nil
}

// RenderVariant renders one variant from its resolved role set.
func RenderVariant(tmpl *Template, p *palette.Palette, roles palette.Roles, variant string) (*Object, error) {
	cfg, ok := tmpl.Variants[variant]
	if !ok {
		return nil, fmt.Errorf("template has no metadata for variant %q", variant)
	}

	style := NewObject()

	// Fixed structural keys, in schema order.
	fixed := []struct{ key, role string }{
		{"background", "background.deep"},
		{"foreground", "foreground.primary"},
		{"accent", "syntax.type"},
		{"border", "border.default"},
		{"border.focused", "border.focused"},
		{"elevated_surface.background", "background.surface"},
		{"surface.background", "background.surface"},
		{"element.background", "background.surface"},
		{"element.hover", "background.elevated"},
		{"element.active", "background.active"},
		{"element.selected", "background.active"},
		{"text", "foreground.primary"},
		{"editor.background", "background.surface"},
		{"editor.active_line.background", "background.elevated"},
	}
	for _, f := range fixed {
		c, ok := roles.Lookup(f.role)
		if !ok {
			return nil, &UnresolvedRoleError{Role: f.role, Where: "style." + f.key}
		}
		style.Set(f.key, c.Hex())
	}

	lineNumber, ok := roles.Lookup("foreground.primary")
	if !ok {
		return nil, &UnresolvedRoleError{Role: "foreground.primary", Where: "style.editor.line_number"}
	}
	style.Set("editor.line_number", lineNumber.Hex()+cfg.LineNumberAlpha)

	// UI section: placeholder substitution, template key order. A ui key that
	// repeats a fixed key replaces its value in place.
	for _, key := range tmpl.UI.Keys() {
		raw, _ := tmpl.UI.Get(key)
		resolved, err := resolveValue(raw, roles, "ui."+key)
		if err != nil {
			return nil, err
		}
		style.Set(key, resolved)
	}

	// Terminal section, prefixed.
	for _, key := range tmpl.Terminal.Keys() {
		raw, _ := tmpl.Terminal.Get(key)
		resolved, err := resolveValue(raw, roles, "terminal."+key)
		if err != nil {
			return nil, err
		}
		style.Set("terminal."+key, resolved)
	}

	style.Set("players", renderPlayers(p))

	syntax, err := renderSyntax(tmpl, roles)
	if err != nil {
		return nil, err
	}
	style.Set("syntax", syntax)

	entry := NewObject()
	entry.Set("name", cfg.Name)
	entry.Set("appearance", "dark")
	entry.Set("style", style)
	return entry, nil
}

// resolveValue substitutes {{role}} placeholders in a template value,
// recursing through objects and arrays. Non-string scalars pass through.
func resolveValue(v Value, roles palette.Roles, where string) (Value, error) {
	switch t := v.(type) {
	case string:
		return resolveString(t, roles, where)
	case *Object:
		out := NewObject()
		for _, key := range t.Keys() {
			inner, _ := t.Get(key)
			resolved, err := resolveValue(inner, roles, where+"."+key)
			if err != nil {
				return nil, err
			}
			out.Set(key, resolved)
		}
		return out, nil
	case []Value:
		out := make([]Value, len(t))
		for i, inner := range t {
			resolved, err := resolveValue(inner, roles, fmt.Sprintf("%s[%d]", where, i))
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

func resolveString(s string, roles palette.Roles, where string) (string, error) {
	var missing *UnresolvedRoleError
	out := placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		role := placeholderRe.FindStringSubmatch(m)[1]
		c, ok := roles.Lookup(role)
		if !ok {
			if missing == nil {
				missing = &UnresolvedRoleError{Role: role, Where: where}
			}
			return m
		}
		return c.Hex()
	})
	if missing != nil {
		return "", missing
	}
	return out, nil
}

// renderPlayers emits the collaboration cursor colours: cursor and background
// use the player colour, selection the same colour at 25% opacity.
func renderPlayers(p *palette.Palette) []Value {
	players := make([]Value, 0, len(p.Players))
	for _, c := range p.Players {
		entry := NewObject()
		entry.Set("cursor", c.Hex())
		entry.Set("background", c.Hex())
		entry.Set("selection", c.WithAlpha(0x40).Hex())
		players = append(players, entry)
	}
	return players
}

// renderSyntax builds the token → highlight map: colour from the token→role
// table, font style and weight from the token→style table, tokens in sorted
// order, then the special entries resolved and merged on top.
func renderSyntax(tmpl *Template, roles palette.Roles) (*Object, error) {
	tokenSet := make(map[string]bool)
	for tok := range tmpl.TokenRoles {
		tokenSet[tok] = true
	}
	for tok := range tmpl.TokenStyles {
		tokenSet[tok] = true
	}
	tokens := make([]string, 0, len(tokenSet))
	for tok := range tokenSet {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	syntax := NewObject()
	for _, token := range tokens {
		c, err := tokenColour(tmpl, roles, token)
		if err != nil {
			return nil, err
		}

		entry := NewObject()
		entry.Set("color", c.Hex())

		style := tmpl.TokenStyles[token]
		if style == "" {
			entry.Set("font_style", nil)
		} else {
			entry.Set("font_style", style)
		}
		if style == "bold" {
			entry.Set("font_weight", json.Number("700"))
		} else {
			entry.Set("font_weight", nil)
		}

		syntax.Set(token, entry)
	}

	for _, special := range tmpl.Special {
		resolved, err := resolveString(special.Template, roles, "syntax_special."+special.Token)
		if err != nil {
			return nil, err
		}
		entry := NewObject()
		entry.Set("color", resolved)
		syntax.Set(special.Token, entry)
	}

	return syntax, nil
}

func tokenColour(tmpl *Template, roles palette.Roles, token string) (colour.Colour, error) {
	role, ok := tmpl.TokenRoles[token]
	if !ok {
		// Styled-only tokens fall back to the type colour.
		role = "type"
	}

	lookup := "syntax." + role
	if role == "foreground" {
		lookup = "foreground.primary"
	}

	c, ok := roles.Lookup(lookup)
	if !ok {
		return colour.Colour{}, &UnresolvedRoleError{Role: lookup, Where: "syntax." + token}
	}
	return c, nil
}
