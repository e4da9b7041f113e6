package palette

// Spec is a variant transform declaration: a signed CIE L* shift applied to
// every syntax colour, and the WCAG contrast floor enforced against the
// reference role after shifting.
type Spec struct {
	Name           string
	LightnessShift float64
	MinContrast    float64
	ReferenceRole  string
}

// Specs lists the variants in generation order. Classic is the identity
// transform; its floor is only enforced at validation time.
var Specs = []Spec{
	{Name: "classic", LightnessShift: 0, MinContrast: 4.5, ReferenceRole: "background.surface"},
	{Name: "soft", LightnessShift: 6, MinContrast: 4.5, ReferenceRole: "background.surface"},
	{Name: "high_contrast", LightnessShift: -8, MinContrast: 7.0, ReferenceRole: "background.surface"},
}

// Names returns the variant names in generation order.
func Names() []string {
	names := make([]string, len(Specs))
	for i, s := range Specs {
		names[i] = s.Name
	}
	return names
}

// SpecFor returns the spec for a named variant.
func SpecFor(name string) (Spec, bool) {
	for _, s := range Specs {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}
