// Command focusone is a goal-tracking dashboard with a timeline view. Run it
// without arguments for the terminal dashboard; subcommands script the
// same goal store.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/stefanpenner/focusone/pkg/config"
	"github.com/stefanpenner/focusone/pkg/goal"
	"github.com/stefanpenner/focusone/pkg/logging"
	"github.com/stefanpenner/focusone/pkg/store"
)

func main() {
	a := &app{today: goal.Today}
	os.Exit(a.execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// app is the state shared by every command: resolved config, logger and the
// opened goal store.
type app struct {
	configFile string
	today      func() goal.Date

	cfg     *config.Config
	log     *slog.Logger
	store   *store.GoalStore
	closers []io.Closer
}

// execute runs the command line and returns the process exit code.
func (a *app) execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setup loads config and opens the store. The dashboard owns the terminal,
// so it logs to a file; commands log to stderr.
func (a *app) setup(ctx context.Context, flags flagLookup, dashboard bool, stderr io.Writer) error {
	cfg, err := config.Load(a.configFile, flags.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	logOut := stderr
	if dashboard && cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, f)
		logOut = f
	}
	a.log = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logOut})

	backend, err := store.OpenBackend(cfg.Backend, cfg.DataDir)
	if err != nil {
		return err
	}
	s, err := store.Open(backend, store.Options{Logger: a.log, Today: a.today})
	if err != nil {
		backend.Close()
		return err
	}
	a.store = s
	a.closers = append(a.closers, s)
	a.log.DebugContext(ctx, "store opened", "backend", cfg.Backend, "data_dir", cfg.DataDir, "goals", s.Len())
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
	a.closers = nil
}

// persisted reports the store's last write error, if any. The store keeps
// working in memory when a write fails; a command must still exit non-zero.
func (a *app) persisted() error {
	if err := a.store.LastPersistError(); err != nil {
		return fmt.Errorf("saving goals: %w", err)
	}
	return nil
}
