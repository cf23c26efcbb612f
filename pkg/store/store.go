package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/stefanpenner/focusone/pkg/goal"
	"github.com/stefanpenner/focusone/pkg/transfer"
)

// GoalStore is the single source of truth for goals. Every mutation
// persists the whole collection to the backend and notifies subscribers.
//
// Persistence is best effort: a failed write is logged and remembered, and
// the in-memory collection stays authoritative for the session.
type GoalStore struct {
	backend Backend
	opts    Options
	log     *slog.Logger

	mu          sync.Mutex
	goals       []goal.Goal
	lastErr     error
	lastWritten []byte
	subs        map[int]func(Event)
	nextSub     int
}

// Open returns a store over backend and loads the collection from it.
func Open(backend Backend, opts Options) (*GoalStore, error) {
	if backend == nil {
		return nil, errors.New("store: nil backend")
	}
	opts = opts.withDefaults()
	s := &GoalStore{
		backend: backend,
		opts:    opts,
		log:     opts.Logger.With("component", "store"),
		subs:    map[int]func(Event){},
	}
	s.Load()
	return s, nil
}

// Close closes the backend.
func (s *GoalStore) Close() error {
	return s.backend.Close()
}

// Backend returns the backend the store persists to.
func (s *GoalStore) Backend() Backend { return s.backend }

// Load reads the collection from the backend, replacing memory. Absent or
// unreadable data yields the built-in sample set.
func (s *GoalStore) Load() []goal.Goal {
	goals, raw := s.read()
	s.mu.Lock()
	s.goals = goals
	s.lastWritten = raw
	s.mu.Unlock()
	return goal.CloneAll(goals)
}

func (s *GoalStore) read() ([]goal.Goal, []byte) {
	data, err := s.backend.Read(Key)
	if errors.Is(err, ErrNotFound) {
		s.log.Debug("no stored goals, using samples")
		return goal.Samples(), nil
	}
	if err != nil {
		s.log.Warn("reading goals failed, using samples", "error", err)
		return goal.Samples(), nil
	}
	goals, err := transfer.Import(data, s.opts.Today())
	if err != nil {
		s.log.Warn("stored goals are corrupt, using samples", "error", err)
		return goal.Samples(), data
	}
	return dedupe(goals), data
}

// All returns a copy of the collection in insertion order.
func (s *GoalStore) All() []goal.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return goal.CloneAll(s.goals)
}

// Len returns the number of goals.
func (s *GoalStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.goals)
}

// Get returns the goal with id.
func (s *GoalStore) Get(id string) (goal.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.goals[i].Clone(), true
	}
	return goal.Goal{}, false
}

// Create stores draft under a fresh id and returns the stored record. Any
// id on the draft is ignored.
func (s *GoalStore) Create(draft goal.Goal) goal.Goal {
	g := draft.Clone()
	g.ID = goal.NewID()
	g = goal.Normalize(g, s.opts.Today())

	s.mu.Lock()
	s.goals = append(s.goals, g)
	err := s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventChanged, PersistErr: err})
	return g.Clone()
}

// Update replaces the goal with g.ID. It reports false, without persisting
// or notifying, when no such goal exists.
func (s *GoalStore) Update(g goal.Goal) bool {
	return s.Patch(g.ID, func(cur *goal.Goal) {
		*cur = g.Clone()
	})
}

// Patch applies fn to a copy of the goal with id and stores the result. The
// id cannot be changed. It reports false when no such goal exists.
func (s *GoalStore) Patch(id string, fn func(*goal.Goal)) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	g := s.goals[i].Clone()
	fn(&g)
	g.ID = id
	s.goals[i] = goal.Normalize(g, s.opts.Today())
	err := s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventChanged, PersistErr: err})
	return true
}

// Delete removes the goal with id. It reports false when no such goal
// exists.
func (s *GoalStore) Delete(id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.goals = append(s.goals[:i:i], s.goals[i+1:]...)
	err := s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventChanged, PersistErr: err})
	return true
}

// ReplaceAll swaps in a new collection, sanitizing every record on its own.
// A repeated id is replaced with a fresh one so ids stay unique.
func (s *GoalStore) ReplaceAll(goals []goal.Goal) {
	today := s.opts.Today()
	next := make([]goal.Goal, len(goals))
	for i, g := range goals {
		next[i] = goal.Normalize(g, today)
	}
	next = dedupe(next)

	s.mu.Lock()
	s.goals = next
	err := s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: EventChanged, PersistErr: err})
}

// LastPersistError returns the error from the most recent write, or nil if
// it succeeded.
func (s *GoalStore) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Subscribe registers fn to run after every change. fn is called outside
// the store lock and may call back into the store. The returned func
// removes the subscription.
func (s *GoalStore) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Reload re-reads the backend and notifies subscribers with EventReloaded
// when the stored bytes differ from what this store last wrote or read. The
// read and swap happen under the lock, so a concurrent mutation is either
// part of the bytes read or applied after the swap.
func (s *GoalStore) Reload() bool {
	s.mu.Lock()
	goals, ok := s.reloadLocked()
	s.mu.Unlock()
	if !ok {
		return false
	}

	s.log.Info("reloaded goals from backend", "count", len(goals))
	s.notify(Event{Kind: EventReloaded})
	return true
}

func (s *GoalStore) reloadLocked() ([]goal.Goal, bool) {
	data, err := s.backend.Read(Key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("reload failed", "error", err)
		}
		return nil, false
	}
	if bytes.Equal(data, s.lastWritten) {
		return nil, false
	}
	goals, err := transfer.Import(data, s.opts.Today())
	if err != nil {
		s.log.Warn("ignoring corrupt external change", "error", err)
		return nil, false
	}
	s.goals = dedupe(goals)
	s.lastWritten = data
	return s.goals, true
}

func (s *GoalStore) persistLocked() error {
	data, err := json.Marshal(s.goals)
	if err == nil {
		err = s.backend.Write(Key, data)
	}
	if err != nil {
		err = fmt.Errorf("persisting goals: %w", err)
		s.log.Error("persist failed, keeping changes in memory", "error", err)
		s.lastErr = err
		return err
	}
	s.lastErr = nil
	s.lastWritten = data
	return nil
}

func (s *GoalStore) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (s *GoalStore) indexOf(id string) int {
	for i, g := range s.goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func dedupe(goals []goal.Goal) []goal.Goal {
	seen := make(map[string]bool, len(goals))
	for i := range goals {
		if seen[goals[i].ID] {
			goals[i].ID = goal.NewID()
		}
		seen[goals[i].ID] = true
	}
	return goals
}
