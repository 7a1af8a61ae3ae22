package placeholders

type ParsedQuery interface {
	Query() string
	Placeholders() Placeholders
}
