package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/focusone/pkg/goal"
)

var today = goal.MustParseDate("2025-06-15")

func testOptions() Options {
	return Options{Today: func() goal.Date { return today }, Debounce: 20 * time.Millisecond}
}

func setupTestStore(t *testing.T) (*GoalStore, *MemoryBackend) {
	t.Helper()
	b := NewMemoryBackend()
	s, err := Open(b, testOptions())
	require.NoError(t, err)
	return s, b
}

func draft(title string) goal.Goal {
	g := goal.NewDefault(today)
	g.Title = title
	return g
}

// failingBackend accepts reads but rejects every write.
type failingBackend struct {
	*MemoryBackend
}

func (b *failingBackend) Write(string, []byte) error {
	return errors.New("quota exceeded")
}

func TestOpenWithoutDataUsesSamples(t *testing.T) {
	s, _ := setupTestStore(t)
	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "g1", all[0].ID)
	assert.Equal(t, "g2", all[1].ID)
}

func TestOpenCorruptDataUsesSamples(t *testing.T) {
	for name, data := range map[string]string{
		"invalid json": "{not json",
		"object":       `{"id":"x"}`,
		"number":       `42`,
	} {
		t.Run(name, func(t *testing.T) {
			b := NewMemoryBackend()
			require.NoError(t, b.Write(Key, []byte(data)))
			s, err := Open(b, testOptions())
			require.NoError(t, err)
			assert.Equal(t, goal.Samples(), s.All())
		})
	}
}

func TestOpenSanitizesStoredRecords(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Write(Key, []byte(`[{"title":"X"},{"id":"k","startDate":"2025-05-10","endDate":"2025-05-01"},7]`)))
	s, err := Open(b, testOptions())
	require.NoError(t, err)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, today, all[0].StartDate)
	assert.Equal(t, goal.CategoryProject, all[0].Category)
	assert.Equal(t, "2025-05-01", all[1].StartDate.String())
}

func TestCreate(t *testing.T) {
	s, b := setupTestStore(t)

	d := draft("Run")
	d.ID = "ignored"
	g := s.Create(d)
	assert.NotEqual(t, "ignored", g.ID)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, 3, s.Len())

	got, ok := s.Get(g.ID)
	require.True(t, ok)
	assert.Equal(t, g, got)

	// persisted as a JSON array under the single key
	data, err := b.Read(Key)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title":"Run"`)
	assert.NoError(t, s.LastPersistError())
}

func TestCreateSurvivesReopen(t *testing.T) {
	s, b := setupTestStore(t)
	g := s.Create(draft("Persist me"))

	again, err := Open(b, testOptions())
	require.NoError(t, err)
	got, ok := again.Get(g.ID)
	require.True(t, ok)
	assert.Equal(t, "Persist me", got.Title)
}

func TestUpdate(t *testing.T) {
	s, _ := setupTestStore(t)
	g := s.Create(draft("Old"))

	g.Title = "New"
	g.StartDate, g.EndDate = g.EndDate, g.StartDate
	assert.True(t, s.Update(g))

	got, _ := s.Get(g.ID)
	assert.Equal(t, "New", got.Title)
	assert.False(t, got.EndDate.Before(got.StartDate))
}

func TestUpdateUnknownIsNoop(t *testing.T) {
	s, b := setupTestStore(t)
	var events int
	s.Subscribe(func(Event) { events++ })

	assert.False(t, s.Update(goal.Goal{ID: "missing", Title: "x"}))
	assert.False(t, s.Patch("missing", func(g *goal.Goal) { g.Title = "x" }))
	assert.False(t, s.Delete("missing"))

	assert.Zero(t, events)
	_, err := b.Read(Key)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, s.All(), 2)
}

func TestPatchKeepsID(t *testing.T) {
	s, _ := setupTestStore(t)
	ok := s.Patch("g1", func(g *goal.Goal) {
		g.ID = "hijack"
		g.Status = goal.StatusDone
	})
	require.True(t, ok)
	got, ok := s.Get("g1")
	require.True(t, ok)
	assert.Equal(t, goal.StatusDone, got.Status)
	_, ok = s.Get("hijack")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	s, _ := setupTestStore(t)
	assert.True(t, s.Delete("g1"))
	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, "g2", all[0].ID)
}

func TestReplaceAll(t *testing.T) {
	s, _ := setupTestStore(t)
	s.ReplaceAll([]goal.Goal{
		{ID: "a", Title: "A"},
		{ID: "a", Title: "dup"},
		{Title: "no id", Milestone: &goal.Milestone{Type: goal.MilestoneWindow, WindowStart: goal.MustParseDate("2025-05-10"), WindowEnd: goal.MustParseDate("2025-05-01")}},
	})
	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.NotEqual(t, "a", all[1].ID)
	assert.NotEmpty(t, all[2].ID)
	require.NotNil(t, all[2].Milestone)
	assert.Equal(t, "2025-05-01", all[2].Milestone.WindowStart.String())

	s.ReplaceAll(nil)
	assert.Empty(t, s.All())
}

func TestAllReturnsCopy(t *testing.T) {
	s, _ := setupTestStore(t)
	all := s.All()
	all[0].Title = "mutated"
	got, _ := s.Get(all[0].ID)
	assert.Equal(t, "Define Life Vision", got.Title)
}

func TestPersistFailureIsSwallowed(t *testing.T) {
	s, err := Open(&failingBackend{NewMemoryBackend()}, testOptions())
	require.NoError(t, err)

	var got []Event
	s.Subscribe(func(ev Event) { got = append(got, ev) })

	g := s.Create(draft("Kept in memory"))
	_, ok := s.Get(g.ID)
	assert.True(t, ok)
	assert.ErrorContains(t, s.LastPersistError(), "quota exceeded")
	require.Len(t, got, 1)
	assert.Error(t, got[0].PersistErr)
}

func TestSubscribe(t *testing.T) {
	s, _ := setupTestStore(t)
	var kinds []EventKind
	unsubscribe := s.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		// callbacks run outside the lock
		_ = s.Len()
	})

	s.Create(draft("a"))
	s.Delete("g1")
	unsubscribe()
	unsubscribe()
	s.Delete("g2")

	assert.Equal(t, []EventKind{EventChanged, EventChanged}, kinds)
	assert.Equal(t, "changed", EventChanged.String())
}

func TestReload(t *testing.T) {
	s, b := setupTestStore(t)
	s.Create(draft("mine"))

	// our own write is not a reload
	assert.False(t, s.Reload())

	var kinds []EventKind
	s.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	require.NoError(t, b.Write(Key, []byte(`[{"id":"ext","title":"External"}]`)))
	assert.True(t, s.Reload())
	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, "External", all[0].Title)
	assert.Equal(t, []EventKind{EventReloaded}, kinds)

	require.NoError(t, b.Write(Key, []byte(`garbage`)))
	assert.False(t, s.Reload())
	assert.Len(t, s.All(), 1)
}

// pausingBackend holds the next Read after the bytes are fetched until
// release is closed.
type pausingBackend struct {
	*MemoryBackend
	reading chan struct{}
	release chan struct{}
}

func (b *pausingBackend) Read(key string) ([]byte, error) {
	data, err := b.MemoryBackend.Read(key)
	if b.reading != nil {
		close(b.reading)
		b.reading = nil
		<-b.release
	}
	return data, err
}

func TestReloadDoesNotDropConcurrentCreate(t *testing.T) {
	b := &pausingBackend{MemoryBackend: NewMemoryBackend()}
	s, err := Open(b, testOptions())
	require.NoError(t, err)
	require.NoError(t, b.MemoryBackend.Write(Key, []byte(`[{"id":"ext","title":"External"}]`)))

	b.reading = make(chan struct{})
	b.release = make(chan struct{})
	reading := b.reading

	reloaded := make(chan bool)
	go func() { reloaded <- s.Reload() }()
	<-reading

	created := make(chan goal.Goal)
	go func() { created <- s.Create(draft("concurrent")) }()
	var g goal.Goal
	select {
	case g = <-created:
	case <-time.After(50 * time.Millisecond):
	}
	close(b.release)

	assert.True(t, <-reloaded)
	if g.ID == "" {
		g = <-created
	}

	_, ok := s.Get(g.ID)
	assert.True(t, ok, "create made during a reload survives it")
	_, ok = s.Get("ext")
	assert.True(t, ok)
	assert.False(t, s.Reload(), "state matches storage afterwards")
}

func TestDiskvBackend(t *testing.T) {
	dir := t.TempDir()
	b, err := NewDiskvBackend(dir)
	require.NoError(t, err)

	_, err = b.Read(Key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Write(Key, []byte(`[]`)))
	got, err := b.Read(Key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	_, err = os.Stat(filepath.Join(dir, Key))
	assert.NoError(t, err)
	assert.True(t, b.Match(filepath.Join(dir, Key)))
	assert.False(t, b.Match(filepath.Join(dir, "other")))
	assert.NoError(t, b.Close())
}

func TestSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "focusone.db")
	b, err := OpenSQLiteBackend(path)
	require.NoError(t, err)
	defer b.Close()

	_, err = b.Read(Key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Write(Key, []byte(`[1]`)))
	require.NoError(t, b.Write(Key, []byte(`[2]`)))
	got, err := b.Read(Key)
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))

	assert.True(t, b.Match(path+"-wal"))
	assert.Equal(t, filepath.Dir(path), b.WatchDir())
}

func TestStoreRoundTripOnBackends(t *testing.T) {
	for _, kind := range []string{KindDiskv, KindSQLite} {
		t.Run(kind, func(t *testing.T) {
			dir := t.TempDir()
			b, err := OpenBackend(kind, dir)
			require.NoError(t, err)
			s, err := Open(b, testOptions())
			require.NoError(t, err)

			g := s.Create(draft("durable"))
			g.Milestone = &goal.Milestone{Type: goal.MilestonePoint, Label: "demo", Date: today}
			require.True(t, s.Update(g))
			require.NoError(t, s.Close())

			b, err = OpenBackend(kind, dir)
			require.NoError(t, err)
			again, err := Open(b, testOptions())
			require.NoError(t, err)
			defer again.Close()

			got, ok := again.Get(g.ID)
			require.True(t, ok)
			stored, _ := s.Get(g.ID)
			assert.Equal(t, stored, got)
		})
	}
}

func TestOpenBackendUnknown(t *testing.T) {
	_, err := OpenBackend("s3", t.TempDir())
	assert.ErrorContains(t, err, "unknown backend")

	b, err := OpenBackend(KindMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)
}

func TestWatchNotWatchable(t *testing.T) {
	s, _ := setupTestStore(t)
	assert.ErrorIs(t, s.Watch(context.Background()), ErrNotWatchable)
}

func TestWatchPicksUpExternalWrites(t *testing.T) {
	dir := t.TempDir()
	b, err := NewDiskvBackend(dir)
	require.NoError(t, err)
	s, err := Open(b, testOptions())
	require.NoError(t, err)

	var mu sync.Mutex
	var reloads int
	s.Subscribe(func(ev Event) {
		if ev.Kind == EventReloaded {
			mu.Lock()
			reloads++
			mu.Unlock()
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Watch(ctx))

	// another process writes the file
	other, err := NewDiskvBackend(dir)
	require.NoError(t, err)
	require.NoError(t, other.Write(Key, []byte(`[{"id":"ext","title":"From elsewhere"}]`)))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return reloads == 1
	}, 2*time.Second, 10*time.Millisecond)

	got, ok := s.Get("ext")
	require.True(t, ok)
	assert.Equal(t, "From elsewhere", got.Title)
}
