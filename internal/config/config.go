// Package config resolves the settings of a completion export run from
// defaults, an optional YAML file, the build environment and flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atinylittleshell/rgr/internal/completion"
	"github.com/atinylittleshell/rgr/internal/filesystem"
	"github.com/samber/lo"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// EnvOutDir is set by the invoking build system.
	EnvOutDir     = "OUT_DIR"
	EnvLogLevel   = "RGR_LOG_LEVEL"
	EnvConfigFile = "RGR_COMPLETIONS_CONFIG"

	DefaultStamp = "rgr-stamp"
)

var ErrOutDirUnset = errors.New("output directory is not set: define " + EnvOutDir + " or pass -out")

// LookupEnv has the signature of os.LookupEnv.
type LookupEnv func(key string) (string, bool)

type Config struct {
	OutDir       string
	Dialects     []completion.Dialect
	Descriptions bool
	Stamp        string
	ManPages     bool
	Verify       bool
	LogLevel     zapcore.Level
}

// fileConfig mirrors the YAML file. Pointers tell "unset" apart from the
// zero value so the file only overrides what it mentions.
type fileConfig struct {
	Dialects     []string `yaml:"dialects"`
	Descriptions *bool    `yaml:"descriptions"`
	Stamp        *string  `yaml:"stamp"`
	ManPages     *bool    `yaml:"man_pages"`
	Verify       *bool    `yaml:"verify"`
	LogLevel     string   `yaml:"log_level"`
}

// DefaultConfig returns a Config with default values. OutDir is left empty
// on purpose; it must come from the environment or a flag.
func DefaultConfig() *Config {
	return &Config{
		Dialects:     append([]completion.Dialect(nil), completion.AllDialects...),
		Descriptions: true,
		Stamp:        DefaultStamp,
		Verify:       true,
		LogLevel:     zapcore.InfoLevel,
	}
}

// LoadFile merges the YAML file at path into c.
func (c *Config) LoadFile(fs filesystem.FileSystem, path string) error {
	data, err := fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(fc.Dialects) > 0 {
		if err := c.SetDialects(fc.Dialects); err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
	}
	if fc.LogLevel != "" {
		if err := c.SetLogLevel(fc.LogLevel); err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
	}
	c.Descriptions = lo.FromPtrOr(fc.Descriptions, c.Descriptions)
	c.Stamp = lo.FromPtrOr(fc.Stamp, c.Stamp)
	c.ManPages = lo.FromPtrOr(fc.ManPages, c.ManPages)
	c.Verify = lo.FromPtrOr(fc.Verify, c.Verify)

	return nil
}

// ApplyEnv reads the output directory and log level from the environment.
func (c *Config) ApplyEnv(lookup LookupEnv) error {
	if dir, ok := lookup(EnvOutDir); ok && strings.TrimSpace(dir) != "" {
		c.OutDir = dir
	}
	if level, ok := lookup(EnvLogLevel); ok && level != "" {
		if err := c.SetLogLevel(level); err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	return nil
}

// SetDialects replaces the dialect list. An empty list is rejected.
func (c *Config) SetDialects(names []string) error {
	dialects, err := completion.ParseDialects(names)
	if err != nil {
		return err
	}
	if len(dialects) == 0 {
		return errors.New("no shell dialects selected")
	}
	c.Dialects = dialects
	return nil
}

func (c *Config) SetLogLevel(name string) error {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return err
	}
	c.LogLevel = level
	return nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutDir) == "" {
		return ErrOutDirUnset
	}
	if len(c.Dialects) == 0 {
		return errors.New("no shell dialects selected")
	}
	if strings.ContainsAny(c.Stamp, `/\`) {
		return fmt.Errorf("stamp file name %q must not contain a path separator", c.Stamp)
	}
	return nil
}

// ExportOptions converts the config into exporter options.
func (c *Config) ExportOptions() completion.Options {
	return completion.Options{
		OutDir:   c.OutDir,
		Dialects: c.Dialects,
		Stamp:    c.Stamp,
		Verify:   c.Verify,
	}
}
