package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/vbeffa/placeholders/cmd/placeholders/check"
	"github.com/vbeffa/placeholders/cmd/placeholders/inspect"
	"github.com/vbeffa/placeholders/internal/config"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	rootCmd := newRootCommand()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}

func newRootCommand() *cobra.Command {
	opts := &config.Options{}

	rootCmd := &cobra.Command{
		Use:           "placeholders",
		Short:         "Find and check {…} placeholders in SQL query templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	rootCmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.Dir, "dir", ".", "directory template paths are relative to")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultPath, "config file, relative to --dir")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if opts.Debug {
			level = zerolog.DebugLevel
		}

		logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(level).
			With().
			Timestamp().
			Str("command", cmd.Name()).
			Logger()

		cmd.SetContext(logger.WithContext(cmd.Context()))

		zerolog.Ctx(cmd.Context()).Debug().Str("dir", opts.Dir).Str("config", opts.ConfigPath).Msg("starting")

		return nil
	}

	rootCmd.AddCommand(inspect.NewInspectCommand(opts))
	rootCmd.AddCommand(check.NewCheckCommand(opts))

	return rootCmd
}
