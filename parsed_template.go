package placeholders

import (
	"slices"
)

var _ ParsedQuery = (*ParsedTemplate)(nil)

// ParsedTemplate is the result of ParseQuery. Placeholders are ordered by the
// start of their token span.
type ParsedTemplate struct {
	query        string
	placeholders Placeholders
}

func NewParsedTemplate(query string, placeholders Placeholders) ParsedTemplate {
	if placeholders == nil {
		placeholders = make(Placeholders, 0)
	}
	return ParsedTemplate{
		query:        query,
		placeholders: placeholders,
	}
}

func (pt ParsedTemplate) Query() string {
	return pt.query
}

// Placeholders returns a copy of the placeholders; writes to it do not change pt.
func (pt ParsedTemplate) Placeholders() Placeholders {
	return slices.Clone(pt.placeholders)
}

// Text returns the source of p, braces included.
func (pt ParsedTemplate) Text(p Placeholder) string {
	return p.Token.Slice(pt.query)
}

// ParseQuery finds {…} placeholders OUTSIDE of '…', "…" and `…` literals in a
// single pass and returns them in order of appearance.
//
// Placeholder forms:
//
//	{}      next implicit position (count of placeholders so far, plus one)
//	{2}     explicit 1-based position
//	{name}  named
//	{ids*}  any form followed by ?, * or +
//
// The first error aborts the parse; it is always a *ParseError.
func ParseQuery(query string) (pt ParsedTemplate, err error) {
	var idx int

	state := newParseState(query)

	for state.i < state.n {
		idx = nextSpecial(state.src, state.i)
		if idx < 0 {
			break
		}
		state.i = idx

		switch state.src[state.i] {
		case '{':
			err = state.consumePlaceholder()
		default:
			err = state.consumeLiteral()
		}
		if err != nil {
			goto end
		}
	}

	pt = NewParsedTemplate(state.src, state.placeholders)
end:
	return pt, err
}
