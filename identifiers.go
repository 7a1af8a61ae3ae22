package placeholders

import (
	"strconv"
)

// Ident identifies the value a placeholder stands for: either a 1-based
// position or a name. Exactly one of Position and Name is set.
type Ident struct {
	Position uint16
	Name     string
}

func Positional(n uint16) Ident {
	return Ident{Position: n}
}

func Named(name string) Ident {
	return Ident{Name: name}
}

func (id Ident) IsNamed() bool {
	return id.Name != ""
}

func (id Ident) IsPositional() bool {
	return id.Name == "" && id.Position > 0
}

// String returns the identifier as written in a placeholder body.
func (id Ident) String() string {
	if id.IsNamed() {
		return id.Name
	}
	return strconv.Itoa(int(id.Position))
}

func (id Ident) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Ident) UnmarshalText(b []byte) (err error) {
	var n uint64
	s := string(b)

	if s == "" {
		err = NewErr(ErrInvalidIdentifier, "ident", s)
		goto end
	}
	if isDigit(s[0]) {
		n, err = strconv.ParseUint(s, 10, 16)
		if err != nil || n == 0 {
			err = NewErr(ErrInvalidIdentifier, "ident", s)
			goto end
		}
		*id = Positional(uint16(n))
		goto end
	}
	if !isValidName(s) {
		err = NewErr(ErrInvalidIdentifier, "ident", s)
		goto end
	}
	*id = Named(s)
end:
	return err
}
