package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefanpenner/focusone/pkg/store"
)

// StartWatcher forwards store events to the program and, for file-backed
// stores, watches storage for writes made by other processes. The returned
// func stops both.
func StartWatcher(ctx context.Context, s *store.GoalStore, program *tea.Program) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)

	// Mutations made from Update notify on the event loop goroutine, where a
	// blocking Send would never be received.
	unsubscribe := s.Subscribe(func(ev store.Event) {
		go program.Send(StoreChangedMsg{Event: ev})
	})

	if err := s.Watch(ctx); err != nil && !errors.Is(err, store.ErrNotWatchable) {
		unsubscribe()
		cancel()
		return nil, err
	}

	cleanup := func() {
		unsubscribe()
		cancel()
	}
	return cleanup, nil
}
