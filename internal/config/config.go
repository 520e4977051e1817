// Package config loads xen settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"nickandperla.net/xen/internal/eval"
)

// DefaultPath is the file looked up in the working directory when no path
// is given on the command line.
const DefaultPath = "xen.yaml"

// DefaultPrompt is shown by the interactive prompt.
const DefaultPrompt = "xen> "

// Config holds runtime and CLI settings.
type Config struct {
	// DB is the SQLite database path. Empty means no persistence.
	DB string `yaml:"db"`
	// PersistMode is ON_DEMAND, ALWAYS or NEVER.
	PersistMode string `yaml:"persist_mode"`
	// LoadPath lists directories searched by load.
	LoadPath []string `yaml:"load_path"`
	// MaxDepth bounds nested reductions; 0 disables the bound.
	MaxDepth    int    `yaml:"max_depth"`
	HistoryFile string `yaml:"history_file"`
	NoStdlib    bool   `yaml:"no_stdlib"`
	Prompt      string `yaml:"prompt"`

	// Path is the file the settings were read from, if any.
	Path string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{
		PersistMode: eval.PersistOnDemand.String(),
		MaxDepth:    eval.DefaultMaxDepth,
		Prompt:      DefaultPrompt,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".xen_history")
	}
	return cfg
}

// Load reads path over the defaults. Keys that are absent keep their default
// values; unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath

	base := filepath.Dir(absPath)
	for i, dir := range cfg.LoadPath {
		cfg.LoadPath[i] = resolve(base, dir)
	}
	if cfg.DB != "" && cfg.DB != ":memory:" {
		cfg.DB = resolve(base, cfg.DB)
	}
	cfg.HistoryFile = expandHome(cfg.HistoryFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOptional is like Load but returns the defaults when path does not
// exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, ok := eval.ParsePersistMode(c.PersistMode); !ok {
		return fmt.Errorf("config: invalid persist_mode %q (expected ON_DEMAND, ALWAYS or NEVER)", c.PersistMode)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("config: max_depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// Mode returns the parsed persist mode.
func (c *Config) Mode() eval.PersistMode {
	mode, _ := eval.ParsePersistMode(c.PersistMode)
	return mode
}

// resolve makes a relative path relative to the config file's directory.
func resolve(base, p string) string {
	p = expandHome(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
