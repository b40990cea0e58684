package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/history"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/logging"
	"github.com/sant0-9/quill/internal/tui"
)

// Swapped in tests.
var (
	newProvider      = llm.NewProvider
	newLocalProvider = llm.NewLocalProvider
)

type globalFlags struct {
	configPath string
	verbose    bool
}

// loadConfig reads the config file, falling back to defaults when there is
// none. found reports whether a file existed.
func (g *globalFlags) loadConfig() (cfg *config.Config, found bool, err error) {
	if g.configPath != "" {
		cfg, err = config.LoadFrom(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, false, fmt.Errorf("config: %w", err)
	}

	found = cfg != nil
	if !found {
		cfg = config.DefaultConfig()
		if g.configPath != "" {
			cfg.SetPath(g.configPath)
		}
	}
	cfg.ApplyEnv()
	return cfg, found, nil
}

// env holds what the provider-backed commands share.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []io.Closer
}

// setup loads and validates the config and builds a logger writing to
// stderr. Callers must Close the env.
func (g *globalFlags) setup(stderr io.Writer) (*env, error) {
	cfg, _, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Info-level progress is noise on a terminal; keep it for log files.
	logCfg := cfg.Log
	if logCfg.File == "" && (logCfg.Level == "" || strings.EqualFold(logCfg.Level, "info")) {
		logCfg.Level = "warn"
	}
	logger, closer, err := logging.New(logCfg, stderr, g.verbose)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, closers: []io.Closer{closer}}, nil
}

func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// openHistory returns nil when history is disabled in the config.
func (e *env) openHistory() (*history.Store, error) {
	if e.cfg.History.Disabled {
		return nil, nil
	}
	path, err := e.cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	kv, err := history.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	e.closers = append(e.closers, kv)
	return history.NewStore(kv, e.cfg.History.Capacity, history.WithLogger(e.logger)), nil
}

func runTUI(g *globalFlags) error {
	cfg, found, err := g.loadConfig()
	if err != nil {
		return err
	}

	needsSetup := !found && os.Getenv("QUILL_PROVIDER") == ""
	var cfgErr error
	if !needsSetup {
		cfgErr = cfg.Validate()
	}

	// The TUI owns the terminal, so logs only go to a file.
	logCfg := cfg.Log
	if _, err := logging.ParseLevel(logCfg.Level); err != nil {
		logCfg.Level = ""
	}
	logger, closer, err := logging.New(logCfg, nil, g.verbose)
	if err != nil {
		return err
	}
	if cfgErr != nil {
		logger.Warn("invalid config", "error", cfgErr)
	}
	e := &env{cfg: cfg, logger: logger, closers: []io.Closer{closer}}
	defer e.Close()

	store, err := e.openHistory()
	if err != nil {
		logger.Warn("history unavailable", "error", err)
		store = nil
	}

	return tui.Run(tui.Options{
		Config:     cfg,
		NeedsSetup: needsSetup,
		ConfigErr:  cfgErr,
		History:    store,
		Logger:     logger,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readInput reads the named file, or stdin when the name is "-" or absent.
func readInput(stdin io.Reader, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
