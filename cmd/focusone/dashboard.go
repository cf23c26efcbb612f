package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefanpenner/focusone/pkg/tui"
)

func (a *app) runDashboard(ctx context.Context) error {
	m := tui.NewModel(a.store, tui.Options{
		Preset: a.cfg.Preset(),
		Layout: a.cfg.LayoutConfig(),
		Today:  a.today,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	cleanup, err := tui.StartWatcher(ctx, a.store, p)
	if err != nil {
		a.log.Warn("file watcher failed", "error", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}
