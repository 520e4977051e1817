package xen

import (
	"fmt"
	"io"
	"log/slog"

	"nickandperla.net/xen/internal/config"
	"nickandperla.net/xen/internal/eval"
	"nickandperla.net/xen/internal/store"
	"nickandperla.net/xen/internal/value"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithStore sets a custom store.
func WithStore(s Store) Option {
	return func(r *Runtime) {
		r.store = s
	}
}

// WithSQLiteStore configures SQLite persistence at the given path. A store
// that cannot be opened is reported by Runtime.Err.
func WithSQLiteStore(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("open store %s: %w", path, err))
			return
		}
		r.store = s
	}
}

// WithMemoryStore configures an in-memory store (for testing).
func WithMemoryStore() Option {
	return func(r *Runtime) {
		r.store = store.NewMemory()
	}
}

// WithOutput sets the io.Writer used by print and load diagnostics.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// WithLoadPath adds directories searched by load.
func WithLoadPath(dirs ...string) Option {
	return func(r *Runtime) {
		r.loadPath = append(r.loadPath, dirs...)
	}
}

// WithMaxDepth bounds nested reductions. Zero disables the bound.
func WithMaxDepth(n int) Option {
	return func(r *Runtime) {
		r.maxDepth = n
	}
}

// WithPrelude sets a custom prelude source to be loaded on startup.
// If not set, the embedded standard library is used.
func WithPrelude(source string) Option {
	return func(r *Runtime) {
		r.prelude = source
	}
}

// WithNoStdlib disables loading the standard library prelude.
func WithNoStdlib() Option {
	return func(r *Runtime) {
		r.noStdlib = true
	}
}

// WithPersistMode sets the persistence mode.
func WithPersistMode(mode PersistMode) Option {
	return func(r *Runtime) {
		r.persistMode = mode
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = l
	}
}

// WithConfig applies file settings. Options given after it override them.
func WithConfig(cfg *config.Config) Option {
	return func(r *Runtime) {
		if cfg == nil {
			return
		}
		switch cfg.DB {
		case "":
		case ":memory:":
			WithMemoryStore()(r)
		default:
			WithSQLiteStore(cfg.DB)(r)
		}
		r.loadPath = append(r.loadPath, cfg.LoadPath...)
		r.maxDepth = cfg.MaxDepth
		r.noStdlib = cfg.NoStdlib
		r.persistMode = cfg.Mode()
	}
}

// Store interface for custom stores.
type Store = eval.Store

// Value is a xen runtime value.
type Value = value.Value

// PersistMode controls when definitions are persisted.
type PersistMode = eval.PersistMode

// Persist mode constants.
const (
	PersistOnDemand = eval.PersistOnDemand
	PersistAlways   = eval.PersistAlways
	PersistNever    = eval.PersistNever
)

// ParsePersistMode parses a string into a PersistMode.
func ParsePersistMode(s string) (PersistMode, bool) {
	return eval.ParsePersistMode(s)
}
