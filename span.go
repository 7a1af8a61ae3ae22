package placeholders

// Span is a half-open byte range [Start, End) within a template.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Slice returns the part of text covered by the span.
func (s Span) Slice(text string) string {
	return text[s.Start:s.End]
}
