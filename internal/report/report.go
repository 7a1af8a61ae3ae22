// Package report turns loaded templates into printable reports.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/vbeffa/placeholders"
	"github.com/vbeffa/placeholders/internal/config"
	"github.com/vbeffa/placeholders/internal/templatefs"
)

type FileReport struct {
	Path         string              `json:"path" yaml:"path"`
	Placeholders []PlaceholderReport `json:"placeholders" yaml:"placeholders"`
	Error        *ErrorReport        `json:"error,omitempty" yaml:"error,omitempty"`
}

type PlaceholderReport struct {
	Text       string                  `json:"text" yaml:"text"`
	Start      int                     `json:"start" yaml:"start"`
	End        int                     `json:"end" yaml:"end"`
	Line       int                     `json:"line" yaml:"line"`
	Column     int                     `json:"column" yaml:"column"`
	Ident      placeholders.Ident      `json:"ident" yaml:"ident"`
	Named      bool                    `json:"named" yaml:"named"`
	Quantifier placeholders.Quantifier `json:"quantifier,omitempty" yaml:"quantifier,omitempty"`
}

type ErrorReport struct {
	Offset *int   `json:"offset,omitempty" yaml:"offset,omitempty"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
	Reason string `json:"reason" yaml:"reason"`
}

func (r FileReport) Failed() bool {
	return r.Error != nil
}

// FromTemplate builds the report of a parsed template. path labels the
// report; it may be empty for inline templates.
func FromTemplate(path string, pt placeholders.ParsedTemplate) FileReport {
	rep := FileReport{
		Path:         path,
		Placeholders: make([]PlaceholderReport, 0, len(pt.Placeholders())),
	}
	for _, p := range pt.Placeholders() {
		pos := placeholders.PositionOf(pt.Query(), p.Token.Start)
		rep.Placeholders = append(rep.Placeholders, PlaceholderReport{
			Text:       pt.Text(p),
			Start:      p.Token.Start,
			End:        p.Token.End,
			Line:       pos.Line,
			Column:     pos.Column,
			Ident:      p.Ident,
			Named:      p.Ident.IsNamed(),
			Quantifier: p.Quantifier,
		})
	}
	return rep
}

// FromError builds the report of a template that failed to load. source is
// the template text, used to place a *placeholders.ParseError.
func FromError(path, source string, err error) FileReport {
	rep := FileReport{
		Path:         path,
		Placeholders: make([]PlaceholderReport, 0),
	}

	var perr *placeholders.ParseError
	if errors.As(err, &perr) {
		pos := perr.PositionIn(source)
		offset := perr.Offset
		rep.Error = &ErrorReport{
			Offset: &offset,
			Line:   pos.Line,
			Column: pos.Column,
			Reason: perr.Reason,
		}
		return rep
	}

	rep.Error = &ErrorReport{Reason: err.Error()}
	return rep
}

func Build(results []templatefs.Result) []FileReport {
	reports := make([]FileReport, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			reports = append(reports, FromError(res.Path, res.Source, res.Err))
			continue
		}
		reports = append(reports, FromTemplate(res.Path, res.Template))
	}
	return reports
}

// Render writes reports to w in the given format (see config.Format*).
func Render(w io.Writer, format string, reports []FileReport) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return errors.Errorf("encoding json report: %w", err)
		}
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return errors.Errorf("encoding yaml report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return errors.Errorf("encoding yaml report: %w", err)
		}
	case config.FormatText:
		for _, rep := range reports {
			if err := renderText(w, rep); err != nil {
				return errors.Errorf("writing text report: %w", err)
			}
		}
	default:
		return errors.Errorf("unknown format %q", format)
	}
	return nil
}

func renderText(w io.Writer, rep FileReport) error {
	label := rep.Path
	if label == "" {
		label = "<query>"
	}

	if rep.Error != nil {
		return RenderDiagnostic(w, rep)
	}

	if _, err := fmt.Fprintf(w, "%s: %d placeholder(s)\n", label, len(rep.Placeholders)); err != nil {
		return err
	}
	for _, p := range rep.Placeholders {
		kind := "positional"
		if p.Named {
			kind = "named"
		}
		if _, err := fmt.Fprintf(w, "  %d:%d\t%s\t%s %s\t%s\n", p.Line, p.Column, p.Text, kind, p.Ident, p.Quantifier); err != nil {
			return err
		}
	}
	return nil
}

// RenderDiagnostic writes a failed report as a single "path:line:col: reason"
// line, the form editors and CI logs understand.
func RenderDiagnostic(w io.Writer, rep FileReport) (err error) {
	label := rep.Path
	if label == "" {
		label = "<query>"
	}

	if rep.Error == nil {
		return nil
	}
	if rep.Error.Line == 0 {
		_, err = fmt.Fprintf(w, "%s: %s\n", label, rep.Error.Reason)
		return err
	}
	_, err = fmt.Fprintf(w, "%s:%d:%d: %s\n", label, rep.Error.Line, rep.Error.Column, rep.Error.Reason)
	return err
}
