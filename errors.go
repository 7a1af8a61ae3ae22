// Package placeholders/errors defines the error values returned while parsing
// query templates. Every parse failure is reported as a *ParseError whose Kind
// is one of the sentinels below, so callers can match with errors.Is.
package placeholders

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

// Sentinel errors for template parsing.
var (
	// ErrUnterminatedLiteral indicates a quote with no matching unescaped closing quote.
	ErrUnterminatedLiteral = errors.New("unterminated literal")

	// ErrUnterminatedPlaceholder indicates a '{' with no closing '}'.
	ErrUnterminatedPlaceholder = errors.New("unterminated placeholder")

	// ErrUnexpectedCharacter indicates a byte that cannot appear where it was found
	// inside a placeholder.
	ErrUnexpectedCharacter = errors.New("unexpected character")

	// ErrPlaceholderLimitExceeded indicates a positional index above MaxPosition.
	ErrPlaceholderLimitExceeded = errors.New("placeholder limit exceeded")

	// ErrMalformedNumber indicates a digit run that is not a valid positional index.
	ErrMalformedNumber = errors.New("malformed number")

	ErrInvalidQuantifier = errors.New("invalid quantifier")

	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidTemplate wraps a *ParseError with the location of the template
	// that failed, e.g. a file path.
	ErrInvalidTemplate = errors.New("invalid template")
)

// ParseError reports the first failure found in a template. Offset is a byte
// offset into the template.
type ParseError struct {
	Offset int
	Reason string
	Kind   error
}

func newParseError(kind error, offset int, format string, args ...any) *ParseError {
	return &ParseError{
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
		Kind:   kind,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Reason, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// PositionIn returns the line and column of the error within query.
func (e *ParseError) PositionIn(query string) Position {
	return PositionOf(query, e.Offset)
}

// NewErr wraps sentinel with the error values found in args as causes. The
// remaining args are read as key/value pairs and attached as error details,
// e.g. NewErr(ErrInvalidTemplate, "path", path, err).
func NewErr(sentinel error, args ...any) error {
	var err error
	var causes []error
	var kv []any

	for i := 0; i < len(args); i++ {
		if e, ok := args[i].(error); ok {
			causes = append(causes, e)
			continue
		}
		if i+1 >= len(args) {
			break
		}
		kv = append(kv, args[i], args[i+1])
		i++
	}

	err = sentinel
	if len(causes) > 0 {
		err = fmt.Errorf("%w: %w", sentinel, CombineErrs(causes))
	}
	return errors.WithDetails(err, kv...)
}

// CombineErrs returns nil for no errors, the error itself for one, and a
// combined error otherwise.
func CombineErrs(errs []error) error {
	return multierr.Combine(errs...)
}
