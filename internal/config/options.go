package config

import (
	"path/filepath"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// Options are the flags shared by every subcommand.
type Options struct {
	Dir        string
	ConfigPath string
	Debug      bool

	// Fs is the filesystem the command works on; nil means the OS filesystem.
	Fs afero.Fs
}

// Root returns the filesystem rooted at o.Dir. Template paths are relative to it.
func (o Options) Root() afero.Fs {
	fs := o.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if o.Dir == "" || o.Dir == "." {
		return fs
	}
	return afero.NewBasePathFs(fs, o.Dir)
}

// Load reads the config file. A relative ConfigPath is resolved against Dir.
func (o Options) Load() (Config, error) {
	fs := o.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	path := o.ConfigPath
	if path == "" {
		path = DefaultPath
	}
	if !filepath.IsAbs(path) && o.Dir != "" {
		path = filepath.Join(o.Dir, path)
	}

	cfg, err := Load(fs, path)
	if err != nil {
		return Config{}, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
