// Package config loads pyzip.toml settings for the command line tool.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/seiflotfy/pyzip"
	"github.com/seiflotfy/pyzip/minify"
)

// File is a pyzip.toml configuration.
type File struct {
	Codec  Codec  `toml:"codec"`
	Minify Minify `toml:"minify"`
}

// Codec configures the encoder.
type Codec struct {
	Threshold        int  `toml:"threshold"`
	URLSafe          bool `toml:"url-safe"`
	CompressionLevel int  `toml:"compression-level"`
	MaxDecodedSize   int  `toml:"max-decoded-size"`
}

// Minify configures the external minifier.
type Minify struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	minify.Options
}

// Default returns the settings used when no file is given.
func Default() *File {
	return &File{
		Codec: Codec{
			Threshold:        pyzip.DefaultThreshold,
			URLSafe:          true,
			CompressionLevel: -1, // zlib default
			MaxDecodedSize:   pyzip.DefaultMaxDecodedSize,
		},
		Minify: Minify{
			Path:    minify.DefaultPath,
			Options: minify.DefaultOptions(),
		},
	}
}

// Load parses a TOML file on top of Default, so omitted keys keep their
// defaults.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML data; name is only used in error messages.
func Parse(data []byte, name string) (*File, error) {
	f := Default()
	md, err := toml.Decode(string(data), f)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse error in %s: unknown key %q", name, undecoded[0].String())
	}
	return f, nil
}

// Options converts the codec settings, and the minifier when enabled, into
// codec options. A nil logger keeps both quiet.
func (f *File) Options(logger *zap.SugaredLogger) []pyzip.Option {
	opts := []pyzip.Option{
		pyzip.WithThreshold(f.Codec.Threshold),
		pyzip.WithURLSafe(f.Codec.URLSafe),
		pyzip.WithCompressionLevel(f.Codec.CompressionLevel),
		pyzip.WithMaxDecodedSize(f.Codec.MaxDecodedSize),
	}
	if logger != nil {
		opts = append(opts, pyzip.WithLogger(logger))
	}
	if m := f.Minifier(); m != nil {
		if logger != nil {
			m.SetLogger(logger)
		}
		opts = append(opts, pyzip.WithMinifier(m))
	}
	return opts
}

// Minifier returns the configured minifier, or nil when disabled.
func (f *File) Minifier() *minify.Exec {
	if !f.Minify.Enabled {
		return nil
	}
	return &minify.Exec{Path: f.Minify.Path, Options: f.Minify.Options}
}
