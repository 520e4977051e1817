// Command xen is the xen interpreter CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/term"

	"nickandperla.net/xen/internal/config"
	"nickandperla.net/xen/pkg/xen"
)

const version = "0.1.4"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// pathFlags collects a repeatable flag.
type pathFlags []string

func (p *pathFlags) String() string {
	return fmt.Sprint([]string(*p))
}

func (p *pathFlags) Set(value string) error {
	*p = append(*p, value)
	return nil
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		evalStr     = fs.String("e", "", "Evaluate xen expression")
		configPath  = fs.String("config", "", "Config file (default ./"+config.DefaultPath+" if present)")
		dbPath      = fs.String("db", "", "SQLite database path")
		persistMode = fs.String("persist-mode", "", "Persistence mode: on_demand, always, or never")
		compile     = fs.Bool("compile", false, "Compile mode: load files, persisting every definition, then exit")
		noStdlib    = fs.Bool("no-stdlib", false, "Disable standard library prelude")
		maxDepth    = fs.Int("max-depth", 0, "Maximum nesting of reductions (0 keeps the configured value)")
		verbose     = fs.Bool("v", false, "Log debug tracing to stderr")
		watch       = fs.Bool("watch", false, "Reload the given files whenever they change")
		loadPath    pathFlags
	)
	fs.Var(&loadPath, "I", "Add a directory to the load path (repeatable)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Flags override the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "db":
			cfg.DB = *dbPath
		case "persist-mode":
			cfg.PersistMode = *persistMode
		case "no-stdlib":
			cfg.NoStdlib = *noStdlib
		case "max-depth":
			cfg.MaxDepth = *maxDepth
		}
	})
	if *compile {
		// Compile mode: automatically persist all definitions
		cfg.PersistMode = xen.PersistAlways.String()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	opts := []xen.Option{
		xen.WithConfig(cfg),
		xen.WithLoadPath(loadPath...),
		xen.WithOutput(stdout),
	}
	if *verbose {
		opts = append(opts, xen.WithLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	runtime := xen.New(opts...)
	defer runtime.Close()
	if err := runtime.Err(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	files := fs.Args()

	// Step 1: Load each file in order, printing failures
	for _, file := range files {
		if err := runtime.LoadFile(file); err != nil {
			fmt.Fprintf(stdout, "Error: %v\n", err)
		}
	}

	// Step 2: Run -e expression if provided
	if *evalStr != "" {
		result, err := runtime.Eval(*evalStr)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, result)
	}

	switch {
	case *watch:
		if len(files) == 0 {
			fmt.Fprintln(stderr, "Error: -watch needs at least one file")
			return 2
		}
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		defer signal.Stop(stop)
		if err := watchFiles(runtime, files, stdout, stop, nil); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}

	case len(files) > 0 || *evalStr != "" || *compile:
		// Nothing more to do

	case !term.IsTerminal(int(stdin.Fd())):
		// Piped input
		input, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
			return 1
		}
		if err := runtime.LoadString("<stdin>", string(input)); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}

	default:
		runREPL(runtime, cfg, stdout)
	}
	return 0
}

// loadConfig reads the given config file, or the default one if it exists.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOptional(config.DefaultPath)
}
