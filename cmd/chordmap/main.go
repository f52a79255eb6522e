// Package main is the entry point for chordmap.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/chordmap/internal/app"
	"github.com/dshills/chordmap/internal/backend/tea"
	"github.com/dshills/chordmap/internal/backend/terminal"
	"github.com/dshills/chordmap/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the command line flags.
type options struct {
	configPath string
	logLevel   string
	logFile    string
	ui         string
	watch      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	settings, err := loadSettings(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: chordmap needs an interactive terminal")
		return 1
	}

	logger, closeLog, err := newLogger(settings.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	application, err := app.New(app.Options{Settings: settings, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Quit is safe from any goroutine; the host returns once it is done.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		select {
		case <-signals:
			application.Quit()
		case <-application.Done():
		}
	}()

	ctx := context.Background()
	switch settings.UI {
	case config.UITea:
		err = tea.Run(ctx, application)
	default:
		var host *terminal.Terminal
		host, err = terminal.New(application)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
			return 1
		}
		err = host.Run(ctx)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadSettings reads the settings file, then applies the environment and
// the command line over it.
func loadSettings(opts options) (config.Settings, error) {
	path := opts.configPath
	if path == "" {
		path = defaultConfigPath()
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return settings, err
	}
	settings.ApplyEnv(os.LookupEnv)

	if opts.logLevel != "" {
		settings.Log.Level = opts.logLevel
	}
	if opts.logFile != "" {
		settings.Log.File = opts.logFile
	}
	if opts.ui != "" {
		settings.UI = opts.ui
	}
	if opts.watch {
		settings.Watch = true
	}
	return settings, settings.Validate()
}

// defaultConfigPath returns chordmap/config.toml under the user's config
// directory, or "" when there is none.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chordmap", "config.toml")
}

// newLogger logs to the configured file. Without one logs are discarded,
// since the screen belongs to the UI.
func newLogger(s config.LogSettings) (*app.Logger, func(), error) {
	cfg := app.DefaultLoggerConfig()
	cfg.Level = app.ParseLogLevel(s.Level)
	cfg.Output = io.Discard
	closeFn := func() {}
	if s.File != "" {
		f, err := app.OpenLogFile(s.File)
		if err != nil {
			return nil, nil, err
		}
		cfg.Output = f
		closeFn = func() { _ = f.Close() }
	}
	return app.NewLogger(cfg), closeFn, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to settings file (TOML or YAML)")
	flag.StringVar(&opts.configPath, "c", "", "Path to settings file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&opts.ui, "ui", "", "Host UI (terminal, tea)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload keymaps and scripts when they change")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "chordmap - modal key chord dispatcher\n\n")
		fmt.Fprintf(os.Stderr, "Usage: chordmap [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %sLOG_LEVEL, %sUI, %sKEYMAPS, ... override the settings file\n",
			config.EnvPrefix, config.EnvPrefix, config.EnvPrefix)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  chordmap                         Default bindings\n")
		fmt.Fprintf(os.Stderr, "  chordmap -c chordmap.toml -watch Reload keymaps on change\n")
		fmt.Fprintf(os.Stderr, "  chordmap -ui tea                 Run under Bubble Tea\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("chordmap %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", flag.Args())
		os.Exit(2)
	}
	return opts
}
