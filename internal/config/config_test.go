package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"nickandperla.net/xen/internal/eval"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xen.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxDepth != eval.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d", cfg.MaxDepth)
	}
	if cfg.Prompt != DefaultPrompt {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.Mode() != eval.PersistOnDemand {
		t.Errorf("Mode = %s", cfg.Mode())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
db: state.db
persist_mode: always
load_path:
  - lib
  - /abs/lib
max_depth: 500
no_stdlib: true
prompt: "> "
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dir := filepath.Dir(path)
	if cfg.DB != filepath.Join(dir, "state.db") {
		t.Errorf("DB = %q", cfg.DB)
	}
	if cfg.Mode() != eval.PersistAlways {
		t.Errorf("Mode = %s", cfg.Mode())
	}
	want := []string{filepath.Join(dir, "lib"), "/abs/lib"}
	if !reflect.DeepEqual(cfg.LoadPath, want) {
		t.Errorf("LoadPath = %v, want %v", cfg.LoadPath, want)
	}
	if cfg.MaxDepth != 500 || !cfg.NoStdlib || cfg.Prompt != "> " {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "no_stdlib: true\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDepth != eval.DefaultMaxDepth || cfg.Prompt != DefaultPrompt {
		t.Errorf("expected defaults to survive, got %+v", cfg)
	}

	empty, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if empty.MaxDepth != eval.DefaultMaxDepth {
		t.Errorf("empty file: MaxDepth = %d", empty.MaxDepth)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "colour: blue\n", "field colour not found"},
		{"bad mode", "persist_mode: sometimes\n", "invalid persist_mode"},
		{"negative depth", "max_depth: -1\n", "max_depth must not be negative"},
		{"bad yaml", "load_path: [\n", "config: parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := Load(missing); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load missing: expected ErrNotExist, got %v", err)
	}
	cfg, err := LoadOptional(missing)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("expected defaults, got Path %q", cfg.Path)
	}
}
