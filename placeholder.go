package placeholders

type Placeholder struct {
	Token      Span       // covers the braces, e.g. "{ids*}"
	Ident      Ident      // position or name
	Quantifier Quantifier // ExactlyOne when no operator follows the body
}

type Placeholders []Placeholder

// Names returns the distinct named identifiers in order of first appearance.
func (ps Placeholders) Names() (names []string) {
	seen := make(map[string]struct{}, len(ps))
	names = make([]string, 0, len(ps))
	for _, p := range ps {
		if !p.Ident.IsNamed() {
			continue
		}
		if _, ok := seen[p.Ident.Name]; ok {
			continue
		}
		seen[p.Ident.Name] = struct{}{}
		names = append(names, p.Ident.Name)
	}
	return names
}

// HighestPosition returns the largest positional index, or 0 when there is none.
func (ps Placeholders) HighestPosition() (max uint16) {
	for _, p := range ps {
		if p.Ident.Position > max {
			max = p.Ident.Position
		}
	}
	return max
}

// Quantified returns the placeholders that carry a Kleene quantifier.
func (ps Placeholders) Quantified() (qs Placeholders) {
	qs = make(Placeholders, 0)
	for _, p := range ps {
		if p.Quantifier == ExactlyOne {
			continue
		}
		qs = append(qs, p)
	}
	return qs
}
