package placeholders

// Quantifier is the optional Kleene operator trailing a placeholder body. It
// tells a binder how many values the placeholder expands to.
type Quantifier string

const (
	ExactlyOne Quantifier = ""
	ZeroOrOne  Quantifier = "?"
	ZeroOrMany Quantifier = "*"
	OneOrMany  Quantifier = "+"
)

// EmptyOk reports whether the placeholder may expand to no values at all.
func (q Quantifier) EmptyOk() bool {
	return q == ZeroOrOne || q == ZeroOrMany
}

// Repeats reports whether the placeholder may expand to more than one value.
func (q Quantifier) Repeats() bool {
	return q == ZeroOrMany || q == OneOrMany
}

func (q Quantifier) String() (s string) {
	switch q {
	case ExactlyOne:
		s = "exactly-one"
	case ZeroOrOne:
		s = "zero-or-one"
	case ZeroOrMany:
		s = "zero-or-many"
	case OneOrMany:
		s = "one-or-many"
	default:
		s = string(q)
	}
	return s
}

func (q Quantifier) MarshalText() ([]byte, error) {
	return []byte(q), nil
}

func (q *Quantifier) UnmarshalText(b []byte) (err error) {
	*q, err = ParseQuantifier(string(b))
	return err
}

// ParseQuantifier accepts the operator form ("", "?", "*", "+") as well as the
// names returned by String.
func ParseQuantifier(s string) (q Quantifier, err error) {
	switch s {
	case "", "exactly-one":
		q = ExactlyOne
	case "?", "zero-or-one":
		q = ZeroOrOne
	case "*", "zero-or-many":
		q = ZeroOrMany
	case "+", "one-or-many":
		q = OneOrMany
	default:
		err = NewErr(ErrInvalidQuantifier, "quantifier", s)
	}
	return q, err
}

// quantifierFor maps a quantifier byte; ok is false for any other byte.
func quantifierFor(b byte) (q Quantifier, ok bool) {
	switch b {
	case '?':
		q, ok = ZeroOrOne, true
	case '*':
		q, ok = ZeroOrMany, true
	case '+':
		q, ok = OneOrMany, true
	}
	return q, ok
}
