// Package templatefs finds query template files with doublestar globs and
// parses them through a shared placeholders.Cache.
package templatefs

import (
	"context"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/vbeffa/placeholders"
)

type Finder struct {
	Fs       afero.Fs
	Patterns []string
	Exclude  []string
}

// Find returns the sorted, de-duplicated paths matched by f.Patterns that no
// f.Exclude pattern matches. Paths are slash-separated and relative to the
// root of f.Fs.
func (f Finder) Find(ctx context.Context) ([]string, error) {
	fsys := afero.NewIOFS(f.Fs)
	seen := make(map[string]struct{})
	paths := make([]string, 0)

	for _, pattern := range f.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid pattern %q", pattern)
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			zerolog.Ctx(ctx).Warn().Str("pattern", pattern).Msg("pattern matched no templates")
		}

		for _, match := range matches {
			excluded, err := f.excluded(match)
			if err != nil {
				return nil, err
			}
			if excluded {
				zerolog.Ctx(ctx).Debug().Str("path", match).Msg("excluded template")
				continue
			}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			paths = append(paths, match)
		}
	}

	sort.Strings(paths)
	zerolog.Ctx(ctx).Debug().Int("count", len(paths)).Msg("found templates")

	return paths, nil
}

func (f Finder) excluded(path string) (bool, error) {
	for _, pattern := range f.Exclude {
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, errors.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Result is the outcome of loading one template. Err is set when the file
// could not be read or parsed; parse failures match placeholders.ErrInvalidTemplate.
type Result struct {
	Path     string
	Source   string
	Template placeholders.ParsedTemplate
	Err      error
}

func Load(ctx context.Context, fs afero.Fs, cache *placeholders.Cache, path string) Result {
	res := Result{Path: path}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		res.Err = errors.Errorf("reading template %s: %w", path, err)
		return res
	}
	res.Source = string(data)

	res.Template, err = cache.Parse(res.Source)
	if err != nil {
		res.Err = placeholders.NewErr(placeholders.ErrInvalidTemplate, "path", path, err)
		return res
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("placeholders", len(res.Template.Placeholders())).
		Msg("parsed template")

	return res
}

// LoadAll loads every path in order. The returned error combines the errors of
// all failed results.
func LoadAll(ctx context.Context, fs afero.Fs, cache *placeholders.Cache, paths []string) ([]Result, error) {
	var errs error

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, errors.Errorf("loading templates: %w", err)
		}
		res := Load(ctx, fs, cache, path)
		if res.Err != nil {
			errs = multierr.Append(errs, res.Err)
		}
		results = append(results, res)
	}

	return results, errs
}
