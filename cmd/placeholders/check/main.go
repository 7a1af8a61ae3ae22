package check

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/vbeffa/placeholders"
	"github.com/vbeffa/placeholders/internal/config"
	"github.com/vbeffa/placeholders/internal/report"
	"github.com/vbeffa/placeholders/internal/templatefs"
)

type Handler struct {
	opts    *config.Options
	exclude []string
}

func NewCheckCommand(opts *config.Options) *cobra.Command {
	me := &Handler{opts: opts}

	cmd := &cobra.Command{
		Use:   "check [path-or-glob...]",
		Short: "check that query templates parse",
		Long: "Parses every matched template and prints one path:line:col: reason line\n" +
			"per failure. Exits non-zero when any template fails.",
	}

	cmd.Flags().StringSliceVar(&me.exclude, "exclude", nil, "glob of paths to skip, added to the config excludes")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), cmd.OutOrStdout(), args)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, out io.Writer, args []string) error {
	cfg, err := me.opts.Load()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Patterns = args
	}
	cfg.Exclude = append(cfg.Exclude, me.exclude...)
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("invalid flags: %w", err)
	}

	fs := me.opts.Root()
	finder := templatefs.Finder{Fs: fs, Patterns: cfg.Patterns, Exclude: cfg.Exclude}
	paths, err := finder.Find(ctx)
	if err != nil {
		return errors.Errorf("finding templates: %w", err)
	}

	failed := 0
	results, loadErr := templatefs.LoadAll(ctx, fs, placeholders.NewCache(cfg.CacheSize), paths)
	for _, rep := range report.Build(results) {
		if !rep.Failed() {
			continue
		}
		failed++
		if err := report.RenderDiagnostic(out, rep); err != nil {
			return errors.Errorf("writing diagnostics: %w", err)
		}
	}

	zerolog.Ctx(ctx).Info().
		Int("checked", len(results)).
		Int("failed", failed).
		Msg("checked templates")

	if loadErr != nil && failed == 0 {
		return errors.Errorf("checking templates: %w", loadErr)
	}
	if loadErr != nil {
		return errors.Errorf("%d of %d template(s) failed", failed, len(results))
	}

	return nil
}
