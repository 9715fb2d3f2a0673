// Package main is the entry point for evmatch.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dshills/evmatch/internal/app"
	"github.com/dshills/evmatch/internal/backend"
	"github.com/dshills/evmatch/internal/config"
	"github.com/dshills/evmatch/internal/input/eventmap"
	"github.com/dshills/evmatch/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type flags struct {
	configPath  string
	configSet   bool
	eventmaps   stringList
	scripts     stringList
	noDefaults  bool
	check       bool
	list        bool
	export      string
	printConfig bool
	logLevel    string
	showVersion bool
	showHelp    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	cfg, err := config.Load(f.configPath, !f.configSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}

	if f.export != "" {
		if err := eventmap.Default().SaveFile(f.export); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if f.printConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	// The terminal owns stdout and stderr during a session, so logs only go
	// to a file there.
	var out io.Writer = os.Stderr
	if cfg.Log.File != "" {
		file, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer file.Close()
		out = file
	}
	var logger *slog.Logger
	if f.check || f.list || cfg.Log.File != "" {
		logger = logging.Setup(cfg.Log.Level, cfg.Log.Format, out)
	} else {
		logger = logging.Discard()
		slog.SetDefault(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, app.Options{
		Config:     cfg,
		Eventmaps:  f.eventmaps,
		Scripts:    f.scripts,
		UserDir:    userDir(f),
		NoDefaults: f.noDefaults,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Close()

	if f.list {
		if err := application.WriteBindings(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	if f.check {
		fmt.Println(application.Summary())
		return 0
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// userDir is the eventmaps directory next to the default config file. It is
// only scanned when no config file was named explicitly.
func userDir(f flags) string {
	if f.configSet {
		return ""
	}
	p := config.DefaultPath()
	if p == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(p), "eventmaps")
}

func parseFlags() flags {
	var f flags

	defaultConfig := config.GetEnvOrDefault("EVMATCH_CONFIG", config.DefaultPath())
	flag.StringVar(&f.configPath, "config", defaultConfig, "Path to configuration file")
	flag.StringVar(&f.configPath, "c", defaultConfig, "Path to configuration file (shorthand)")
	flag.Var(&f.eventmaps, "eventmap", "Eventmap file or directory (repeatable)")
	flag.Var(&f.eventmaps, "e", "Eventmap file or directory (shorthand)")
	flag.Var(&f.scripts, "script", "Lua eventmap script (repeatable)")
	flag.Var(&f.scripts, "s", "Lua eventmap script (shorthand)")
	flag.BoolVar(&f.noDefaults, "no-defaults", false, "Do not load the built-in eventmap")
	flag.BoolVar(&f.check, "check", false, "Load every eventmap, report the result and exit")
	flag.BoolVar(&f.list, "list", false, "Load every eventmap, list the bindings by category and exit")
	flag.StringVar(&f.export, "export-defaults", "", "Write the built-in eventmap to a .toml, .yaml or .json file and exit")
	flag.BoolVar(&f.printConfig, "print-config", false, "Print the effective configuration and exit")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&f.showVersion, "version", false, "Show version information")
	flag.BoolVar(&f.showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&f.showHelp, "help", false, "Show help message")
	flag.BoolVar(&f.showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "evmatch - match terminal input events against eventmaps\n\n")
		fmt.Fprintf(os.Stderr, "Usage: evmatch [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  EVMATCH_CONFIG              Configuration file\n")
		fmt.Fprintf(os.Stderr, "  %s\n", strings.Join(config.EnvNames(), ", "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  evmatch                          Run with the built-in eventmap\n")
		fmt.Fprintf(os.Stderr, "  evmatch -e ./maps -s mouse.lua   Add eventmaps and a script\n")
		fmt.Fprintf(os.Stderr, "  evmatch -check -e ./maps         Validate eventmaps\n")
		fmt.Fprintf(os.Stderr, "  evmatch -export-defaults my.toml Start a custom eventmap\n")
	}

	flag.Parse()

	if f.showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if f.showVersion {
		fmt.Printf("evmatch %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if f.logLevel != "" {
		if _, ok := logging.ParseLevel(f.logLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.logLevel)
			os.Exit(1)
		}
	}

	flag.Visit(func(fl *flag.Flag) {
		if fl.Name == "config" || fl.Name == "c" {
			f.configSet = true
		}
	})
	if _, ok := os.LookupEnv("EVMATCH_CONFIG"); ok {
		f.configSet = true
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %s\n", strings.Join(flag.Args(), " "))
		os.Exit(2)
	}

	return f
}
