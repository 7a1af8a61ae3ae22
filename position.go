package placeholders

import (
	"fmt"
	"strings"

	"github.com/apparentlymart/go-textseg/v13/textseg"
)

// Position is a 1-based line and column within a template. Columns count
// grapheme clusters, not bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionOf converts a byte offset in text to a Position. Offsets past the
// end of text are clamped to it.
func PositionOf(text string, offset int) (pos Position) {
	var lineStart int
	var cols int
	var err error

	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}

	pos.Line = strings.Count(text[:offset], "\n") + 1
	lineStart = strings.LastIndexByte(text[:offset], '\n') + 1

	cols, err = textseg.TokenCount([]byte(text[lineStart:offset]), textseg.ScanGraphemeClusters)
	if err != nil {
		// Invalid UTF-8 ends the segmentation early; fall back to bytes.
		cols = offset - lineStart
	}
	pos.Column = cols + 1

	return pos
}
