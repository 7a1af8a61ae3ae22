package inspect

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
	format  string
	query   string
	exclude []string
}

func NewInspectCommand(opts *config.Options) *cobra.Command {
	me := &Handler{opts: opts}

	cmd := &cobra.Command{
		Use:   "inspect [path-or-glob...]",
		Short: "list the placeholders of query templates",
		Long: "Lists every placeholder found in the matched templates with its position,\n" +
			"identifier and quantifier. Without arguments the config file patterns are used.",
	}

	cmd.Flags().StringVar(&me.format, "format", "", "output format: text, json or yaml (default from config)")
	cmd.Flags().StringVarP(&me.query, "query", "q", "", "inspect this template instead of files")
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
	if me.format != "" {
		cfg.Format = me.format
	}
	if len(args) > 0 {
		cfg.Patterns = args
	}
	cfg.Exclude = append(cfg.Exclude, me.exclude...)
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("invalid flags: %w", err)
	}

	if me.query != "" {
		return me.inspectQuery(out, cfg.Format)
	}

	fs := me.opts.Root()
	finder := templatefs.Finder{Fs: fs, Patterns: cfg.Patterns, Exclude: cfg.Exclude}
	paths, err := finder.Find(ctx)
	if err != nil {
		return errors.Errorf("finding templates: %w", err)
	}

	results, loadErr := templatefs.LoadAll(ctx, fs, placeholders.NewCache(cfg.CacheSize), paths)
	if err := report.Render(out, cfg.Format, report.Build(results)); err != nil {
		return err
	}
	if loadErr != nil {
		zerolog.Ctx(ctx).Debug().Err(loadErr).Msg("some templates failed")
		return errors.Errorf("inspecting templates: %w", loadErr)
	}

	return nil
}

func (me *Handler) inspectQuery(out io.Writer, format string) error {
	pt, err := placeholders.ParseQuery(me.query)
	if err != nil {
		if rerr := report.Render(out, format, []report.FileReport{report.FromError("", me.query, err)}); rerr != nil {
			return rerr
		}
		return errors.Errorf("parsing query: %w", err)
	}
	return report.Render(out, format, []report.FileReport{report.FromTemplate("", pt)})
}
