package placeholders

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// specialChars are the bytes the driver stops at: a placeholder opener or a
// literal delimiter.
const specialChars = "{'\"`"

type parseState struct {
	src          string
	n            int
	i            int
	placeholders Placeholders
}

func newParseState(query string) parseState {
	return parseState{
		src:          query,
		n:            len(query),
		i:            0,
		placeholders: make(Placeholders, 0),
	}
}

// nextSpecial returns the smallest index >= from holding one of specialChars,
// or -1 when none remain.
func nextSpecial(text string, from int) (idx int) {
	if from >= len(text) {
		idx = -1
		goto end
	}
	idx = strings.IndexAny(text[from:], specialChars)
	if idx < 0 {
		goto end
	}
	idx += from
end:
	return idx
}

// consumeLiteral skips the quoted region opened at s.i. A delimiter preceded
// by a backslash is escaped and does not close the literal.
func (s *parseState) consumeLiteral() (err error) {
	var idx int

	start := s.i
	delim := s.src[start]
	s.i++
	for s.i < s.n {
		idx = strings.IndexByte(s.src[s.i:], delim)
		if idx < 0 {
			break
		}
		s.i += idx
		if s.src[s.i-1] == '\\' {
			s.i++
			continue
		}
		s.i++
		goto end
	}
	s.i = s.n
	err = newParseError(ErrUnterminatedLiteral, start, "unpaired delimiter: '%c'", delim)
end:
	return err
}

// consumePlaceholder parses the placeholder opened by the '{' at s.i and
// appends it to s.placeholders.
func (s *parseState) consumePlaceholder() (err error) {
	var ident Ident
	var quant Quantifier
	var r rune
	var ok bool

	start := s.i // Points to '{'
	s.i++
	s.skipSpace()
	if s.i >= s.n {
		err = newParseError(ErrUnterminatedPlaceholder, start, "unpaired delimiter: '{'")
		goto end
	}

	r, _ = utf8At(s.src, s.i)
	switch {
	case r == '}':
		ident, err = s.implicitPosition(start)
	case isQuantifierByte(s.src[s.i]):
		ident, err = s.implicitPosition(start)
	case isDigit(s.src[s.i]):
		ident, err = s.readPositional()
	case isLetterOrUnderscore(r):
		ident = s.readNamed()
	default:
		err = newParseError(ErrUnexpectedCharacter, s.i, "unexpected character: '%c'", r)
	}
	if err != nil {
		goto end
	}

	if s.i < s.n {
		quant, ok = quantifierFor(s.src[s.i])
		if ok {
			s.i++
		}
	}

	s.skipSpace()
	if s.i >= s.n {
		err = newParseError(ErrUnterminatedPlaceholder, start, "unpaired delimiter: '{'")
		goto end
	}
	if s.src[s.i] != '}' {
		r, _ = utf8At(s.src, s.i)
		err = newParseError(ErrUnexpectedCharacter, s.i, "unexpected character: '%c'", r)
		goto end
	}
	s.i++

	s.placeholders = append(s.placeholders, Placeholder{
		Token:      Span{Start: start, End: s.i},
		Ident:      ident,
		Quantifier: quant,
	})
end:
	return err
}

// implicitPosition numbers a placeholder with an empty body. It counts every
// placeholder parsed so far, explicit ones included, plus this one.
func (s *parseState) implicitPosition(start int) (id Ident, err error) {
	n := len(s.placeholders) + 1
	if n > MaxPosition {
		err = newParseError(ErrPlaceholderLimitExceeded, start, "placeholder limit exceeded")
		goto end
	}
	id = Positional(uint16(n))
end:
	return id, err
}

func (s *parseState) readPositional() (id Ident, err error) {
	var n uint64

	start := s.i
	readDigits(s.src, &s.i)
	n, err = strconv.ParseUint(s.src[start:s.i], 10, 16)
	switch {
	case errors.Is(err, strconv.ErrRange):
		err = newParseError(ErrPlaceholderLimitExceeded, start, "placeholder limit exceeded: %s", s.src[start:s.i])
	case err != nil:
		err = newParseError(ErrMalformedNumber, start, "malformed number: %s", s.src[start:s.i])
	case n == 0:
		err = newParseError(ErrMalformedNumber, start, "positional index must be at least 1")
	default:
		id = Positional(uint16(n))
	}
	return id, err
}

func (s *parseState) readNamed() Ident {
	start := s.i
	readIdent(s.src, &s.i)
	return Named(s.src[start:s.i])
}

func (s *parseState) skipSpace() {
	for s.i < s.n {
		r, w := utf8At(s.src, s.i)
		if !unicode.IsSpace(r) {
			break
		}
		s.i += w
	}
}

func isValidName(s string) (is bool) {
	var i int
	if s == "" {
		goto end
	}
	if !readIdent(s, &i) {
		goto end
	}
	is = i == len(s)
end:
	return is
}

func readIdent(s string, i *int) (ok bool) {
	var r rune
	var w int

	if *i >= len(s) {
		goto end
	}

	r, w = utf8At(s, *i)
	if !isLetterOrUnderscore(r) {
		goto end
	}

	*i += w
	for *i < len(s) {
		r, w = utf8At(s, *i)
		if !isLetterDigitOrUnderscore(r) {
			break
		}
		*i += w
	}

	ok = true

end:
	return ok
}

func readDigits(s string, i *int) (ok bool) {
	start := *i

	for *i < len(s) && isDigit(s[*i]) {
		*i++
	}
	ok = *i > start

	return ok
}

// utf8At returns the rune at byte offset i and its width.
func utf8At(s string, i int) (r rune, w int) {
	b := s[i]
	if b < utf8.RuneSelf {
		r, w = rune(b), 1
		goto end
	}
	r, w = utf8.DecodeRuneInString(s[i:])
end:
	return r, w
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isQuantifierByte(b byte) (is bool) {
	_, is = quantifierFor(b)
	return is
}

func isLetterOrUnderscore(r rune) (is bool) {
	if r == '_' {
		is = true
		goto end
	}
	if unicode.IsLetter(r) {
		is = true
		goto end
	}
end:
	return is
}

func isLetterDigitOrUnderscore(r rune) (is bool) {
	if r == '_' {
		is = true
		goto end
	}
	if unicode.IsLetter(r) {
		is = true
		goto end
	}
	if unicode.IsDigit(r) {
		is = true
		goto end
	}
end:
	return is
}
