package tui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/stefanpenner/focusone/pkg/filter"
	"github.com/stefanpenner/focusone/pkg/goal"
	"github.com/stefanpenner/focusone/pkg/store"
	"github.com/stefanpenner/focusone/pkg/timeline"
)

// StoreChangedMsg is sent when the goal store changes, through this model,
// another process or a file edit.
type StoreChangedMsg struct {
	Event store.Event
}

// EditorFinishedMsg is sent when $EDITOR returns.
type EditorFinishedMsg struct {
	GoalID string
	Path   string
	Err    error
}

// inputKind is what the single-line input is collecting.
type inputKind int

const (
	inputNone inputKind = iota
	inputAdd
	inputRename
	inputDates
	inputMilestone
)

// Options configures a Model. Zero fields take defaults.
type Options struct {
	Preset timeline.Preset
	Layout timeline.Config
	Group  filter.GroupMode
	Today  func() goal.Date
}

// Model is the Bubble Tea model for the goal dashboard.
type Model struct {
	store  *store.GoalStore
	keys   KeyMap
	width  int
	height int
	today  func() goal.Date

	preset    timeline.Preset
	layoutCfg timeline.Config
	groupMode filter.GroupMode
	spec      filter.Spec
	collapsed map[string]bool

	goals        []goal.Goal // visible after filtering
	layout       timeline.Layout
	visibleItems []ListItem
	cursor       int
	focusedPane  int // 0 = list, 1 = notes
	notesScroll  int

	// Modal state
	showHelpModal     bool
	showDeleteConfirm bool
	deleteTarget      string

	// Single-line input (add, rename, dates, milestone)
	inputMode   inputKind
	textInput   textinput.Model
	inputTarget string

	// Inline notes editing
	isEditing  bool
	noteEditor textarea.Model
	editGoalID string

	isSearching bool

	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create) and its output, keyed by
	// width and source.
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
	rendered        *lru.Cache[string, string]
}

const renderCacheSize = 64

// NewModel creates a new TUI model over s.
func NewModel(s *store.GoalStore, opts Options) Model {
	ti := textinput.New()
	ti.CharLimit = 120

	if opts.Today == nil {
		opts.Today = goal.Today
	}
	if opts.Preset == "" {
		opts.Preset = timeline.PresetFit
	}
	if opts.Layout.Mode == "" {
		opts.Layout.Mode = timeline.ModeLanes
	}
	if opts.Layout.Density == "" {
		opts.Layout.Density = timeline.DensityBalanced
	}

	m := Model{
		store:     s,
		keys:      DefaultKeyMap(),
		today:     opts.Today,
		preset:    opts.Preset,
		layoutCfg: opts.Layout,
		groupMode: filter.ParseGroupMode(string(opts.Group)),
		collapsed: make(map[string]bool),
		textInput: ti,
	}
	m.rendered, _ = lru.New[string, string](renderCacheSize)
	m.rebuild()
	m.cursor = max(0, nearestGoal(m.visibleItems, 0))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.getGlamourRenderer(m.notesWidth())
		if m.isEditing {
			m.noteEditor.SetWidth(m.notesWidth())
			m.noteEditor.SetHeight(max(3, m.bodyHeight()-2))
		}
		m.rebuild()
		return m, tea.ClearScreen

	case StoreChangedMsg:
		m.rebuild()
		if msg.Event.PersistErr != nil {
			m.setStatus("Save failed: " + msg.Event.PersistErr.Error())
		} else if msg.Event.Kind == store.EventReloaded {
			m.setStatus("Reloaded from storage")
		}
		return m, nil

	case EditorFinishedMsg:
		m.finishExternalEdit(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.inputMode != inputNone {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	if m.isEditing {
		var cmd tea.Cmd
		m.noteEditor, cmd = m.noteEditor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != inputNone {
		return m.handleInput(msg)
	}

	if m.isEditing {
		return m.handleEditMode(msg)
	}

	if m.isSearching {
		return m.handleSearchInput(msg)
	}

	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	if m.showDeleteConfirm {
		switch msg.String() {
		case "y", "Y":
			if m.store.Delete(m.deleteTarget) {
				m.setStatus("Deleted goal")
			}
			m.rebuild()
			m.showDeleteConfirm = false
		case "n", "N", "esc":
			m.showDeleteConfirm = false
		}
		return m, nil
	}

	// Esc clears an active search filter.
	if m.spec.Query != "" && msg.Type == tea.KeyEsc {
		m.spec.Query = ""
		m.rebuild()
		return m, nil
	}

	g, hasGoal := m.selectedGoal()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.focusedPane == 1 {
			if m.notesScroll > 0 {
				m.notesScroll--
			}
		} else if m.cursor > 0 {
			m.cursor--
			m.notesScroll = 0
		}

	case key.Matches(msg, m.keys.Down):
		if m.focusedPane == 1 {
			m.notesScroll++
		} else if m.cursor < len(m.visibleItems)-1 {
			m.cursor++
			m.notesScroll = 0
		}

	case key.Matches(msg, m.keys.Enter):
		if m.cursor < len(m.visibleItems) {
			sec := m.visibleItems[m.cursor].SectionKey
			m.collapsed[sec] = !m.collapsed[sec]
			m.rebuild()
			if i := indexOfID(m.visibleItems, sec); i >= 0 && m.collapsed[sec] {
				m.cursor = i
			}
		}

	case key.Matches(msg, m.keys.Tab):
		m.focusedPane = (m.focusedPane + 1) % 2

	case key.Matches(msg, m.keys.Space):
		if hasGoal {
			m.patch(g.ID, func(g *goal.Goal) { g.Status = goal.NextStatus(g.Status) })
			m.setStatus(g.DisplayTitle() + " → " + goal.NextStatus(g.Status).Label())
		}

	case key.Matches(msg, m.keys.Category):
		if hasGoal {
			next := cycle(goal.Categories, g.Category, 1)
			m.patch(g.ID, func(g *goal.Goal) { g.Category = next })
			m.setStatus(g.DisplayTitle() + " → " + next.Label())
		}

	case key.Matches(msg, m.keys.PriorityUp), key.Matches(msg, m.keys.PriorityDown):
		if hasGoal {
			delta := 1
			if key.Matches(msg, m.keys.PriorityDown) {
				delta = -1
			}
			next := step(goal.Priorities, g.Priority, delta)
			m.patch(g.ID, func(g *goal.Goal) { g.Priority = next })
			m.setStatus("Priority: " + next.Label())
		}

	case key.Matches(msg, m.keys.InlineEdit):
		if hasGoal {
			m.enterEditMode(g)
			return m, textarea.Blink
		}

	case key.Matches(msg, m.keys.ExternalEdit):
		if hasGoal {
			return m, m.openEditor(g)
		}

	case key.Matches(msg, m.keys.Add):
		return m, m.startInput(inputAdd, "", "", "goal title")

	case key.Matches(msg, m.keys.Rename):
		if hasGoal {
			return m, m.startInput(inputRename, g.ID, g.Title, "new title")
		}

	case key.Matches(msg, m.keys.Dates):
		if hasGoal {
			return m, m.startInput(inputDates, g.ID, g.StartDate.String()+" "+g.EndDate.String(), "YYYY-MM-DD YYYY-MM-DD")
		}

	case key.Matches(msg, m.keys.Milestone):
		if hasGoal {
			return m, m.startInput(inputMilestone, g.ID, FormatMilestone(g.Milestone), "point DATE label | window START END label | none")
		}

	case key.Matches(msg, m.keys.Delete):
		if hasGoal {
			m.deleteTarget = g.ID
			m.showDeleteConfirm = true
		}

	case key.Matches(msg, m.keys.Preset):
		m.preset = m.preset.Next()
		m.relayout()
		m.setStatus("Range: " + m.preset.Label())

	case key.Matches(msg, m.keys.Density):
		m.layoutCfg.Density = m.layoutCfg.Density.Next()
		m.relayout()
		m.setStatus("Density: " + string(m.layoutCfg.Density))

	case key.Matches(msg, m.keys.Mode):
		m.layoutCfg.Mode = m.layoutCfg.Mode.Toggle()
		m.relayout()
		m.setStatus("Rows: " + string(m.layoutCfg.Mode))

	case key.Matches(msg, m.keys.Group):
		m.groupMode = m.groupMode.Next()
		m.rebuild()
		m.setStatus("Grouped by " + string(m.groupMode))

	case key.Matches(msg, m.keys.FilterCategory):
		n := int(msg.String()[0] - '1')
		if n >= 0 && n < len(goal.Categories) {
			c := goal.Categories[n]
			m.spec.Categories = filter.Toggle(m.spec.Categories, c, goal.Categories)
			m.rebuild()
		}

	case key.Matches(msg, m.keys.HideDone):
		m.spec.Statuses = filter.Toggle(m.spec.Statuses, goal.StatusDone, goal.Statuses)
		m.rebuild()

	case key.Matches(msg, m.keys.ResetFilters):
		m.spec.Reset()
		m.rebuild()
		m.setStatus("Filters cleared")

	case key.Matches(msg, m.keys.Reload):
		m.store.Load()
		m.rebuild()
		m.setStatus("Reloaded")

	case key.Matches(msg, m.keys.Search):
		m.isSearching = true
		m.spec.Query = ""
		m.rebuild()

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = !m.showHelpModal
	}

	return m, nil
}

func (m *Model) startInput(kind inputKind, target, value, placeholder string) tea.Cmd {
	m.inputMode = kind
	m.inputTarget = target
	m.textInput.Reset()
	m.textInput.SetValue(value)
	m.textInput.Placeholder = placeholder
	m.textInput.Focus()
	return textinput.Blink
}

// handleInput handles key messages for the single-line input. Enter commits;
// a validation failure keeps the input open so it can be corrected.
func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = inputNone
		return m, nil
	case tea.KeyEnter:
		if err := m.commitInput(strings.TrimSpace(m.textInput.Value())); err != nil {
			m.setStatus(errorText(err))
			return m, nil
		}
		m.inputMode = inputNone
		return m, nil
	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
}

func (m *Model) commitInput(value string) error {
	switch m.inputMode {
	case inputAdd:
		draft := goal.NewDefault(m.today())
		draft.Title = value
		if err := goal.Validate(draft); err != nil {
			return err
		}
		created := m.store.Create(draft)
		m.rebuild()
		m.selectID(created.ID)
		m.setStatus("Created: " + created.Title)

	case inputRename:
		g, ok := m.store.Get(m.inputTarget)
		if !ok {
			return nil
		}
		g.Title = value
		if err := goal.Validate(g); err != nil {
			return err
		}
		m.store.Update(g)
		m.rebuild()
		m.setStatus("Renamed to: " + value)

	case inputDates:
		g, ok := m.store.Get(m.inputTarget)
		if !ok {
			return nil
		}
		start, end, err := ParseDateRange(value)
		if err != nil {
			return err
		}
		g.StartDate, g.EndDate = start, end
		if err := goal.Validate(g); err != nil {
			return err
		}
		m.store.Update(g)
		m.rebuild()
		m.setStatus("Dates: " + start.String() + " → " + end.String())

	case inputMilestone:
		g, ok := m.store.Get(m.inputTarget)
		if !ok {
			return nil
		}
		ms, err := ParseMilestone(value)
		if err != nil {
			return err
		}
		if ms != nil && g.Milestone != nil {
			ms.ID = g.Milestone.ID
		}
		g.Milestone = ms
		m.store.Update(g)
		m.rebuild()
		if ms == nil {
			m.setStatus("Milestone removed")
		} else {
			m.setStatus("Milestone: " + ms.Label)
		}
	}
	return nil
}

// handleEditMode handles key messages while inline editing notes.
func (m Model) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.saveInlineEdit()
		m.isEditing = false
		m.noteEditor.Blur()
		m.setStatus("Saved")
		return m, nil

	case tea.KeyCtrlS:
		m.saveInlineEdit()
		m.setStatus("Saved")
		return m, nil

	case tea.KeyCtrlC:
		m.isEditing = false
		m.noteEditor.Blur()
		m.setStatus("Edit cancelled")
		return m, nil

	default:
		var cmd tea.Cmd
		m.noteEditor, cmd = m.noteEditor.Update(msg)
		return m, cmd
	}
}

// handleSearchInput handles key messages while typing in the search bar.
// The query filters live.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isSearching = false
		m.spec.Query = ""
		m.rebuild()
		return m, nil

	case tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		// Keep the filter but stop typing.
		m.isSearching = false
		return m, nil

	case tea.KeyBackspace:
		if len(m.spec.Query) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.spec.Query)
			m.spec.Query = m.spec.Query[:len(m.spec.Query)-size]
		}
		m.rebuild()
		return m, nil

	case tea.KeySpace:
		m.spec.Query += " "
		m.rebuild()
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.spec.Query += string(msg.Runes)
			m.rebuild()
		}
		return m, nil
	}
}

// enterEditMode sets up the textarea for inline editing of a goal's notes.
func (m *Model) enterEditMode(g goal.Goal) {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.SetValue(g.Notes)
	ta.SetWidth(max(20, m.notesWidth()))
	ta.SetHeight(max(3, m.bodyHeight()-2))
	ta.Focus()

	m.isEditing = true
	m.noteEditor = ta
	m.editGoalID = g.ID
	m.focusedPane = 1
}

func (m *Model) saveInlineEdit() {
	notes := m.noteEditor.Value()
	if !m.store.Patch(m.editGoalID, func(g *goal.Goal) { g.Notes = notes }) {
		m.setStatus("Save error: goal no longer exists")
	}
	m.rebuild()
}

// openEditor writes the goal's notes to a temporary markdown file and hands
// it to $EDITOR. The file is read back by finishExternalEdit.
func (m *Model) openEditor(g goal.Goal) tea.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	f, err := os.CreateTemp("", "focusone-*.md")
	if err != nil {
		m.setStatus(errorText(err))
		return nil
	}
	_, err = f.WriteString(g.Notes)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		m.setStatus(errorText(err))
		return nil
	}

	id, path := g.ID, f.Name()
	c := exec.Command(editor, path)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return EditorFinishedMsg{GoalID: id, Path: path, Err: err}
	})
}

func (m *Model) finishExternalEdit(msg EditorFinishedMsg) {
	defer os.Remove(msg.Path)
	if msg.Err != nil {
		m.setStatus("Editor failed: " + msg.Err.Error())
		return
	}
	data, err := os.ReadFile(msg.Path)
	if err != nil {
		m.setStatus(errorText(err))
		return
	}
	notes := string(data)
	m.store.Patch(msg.GoalID, func(g *goal.Goal) { g.Notes = notes })
	m.rebuild()
	m.setStatus("Saved notes")
}

// patch mutates a goal through the store and refreshes the view.
func (m *Model) patch(id string, fn func(*goal.Goal)) {
	m.store.Patch(id, fn)
	m.rebuild()
}

// rebuild recomputes the visible set, list and layout, keeping the cursor
// on the same item when it is still visible.
func (m *Model) rebuild() {
	var curID string
	if m.cursor >= 0 && m.cursor < len(m.visibleItems) {
		curID = m.visibleItems[m.cursor].ID
	}

	m.goals = filter.Visible(m.store.All(), m.spec)
	m.visibleItems = BuildListItems(m.goals, m.groupMode, m.collapsed)
	m.relayout()

	if i := indexOfID(m.visibleItems, curID); i >= 0 {
		m.cursor = i
	}
	if m.cursor >= len(m.visibleItems) {
		m.cursor = len(m.visibleItems) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) relayout() {
	cfg := m.layoutCfg
	if m.width > 0 {
		cfg.WidthPx = WidthPx(TrackCols(cfg.Mode, m.width))
	}
	m.layout = timeline.Compute(m.goals, m.preset, cfg, m.today())
}

func (m *Model) selectID(id string) {
	if i := indexOfID(m.visibleItems, id); i >= 0 {
		m.cursor = i
	}
}

// selectedGoal returns the goal under the cursor. Section headers select
// nothing.
func (m Model) selectedGoal() (goal.Goal, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visibleItems) {
		return goal.Goal{}, false
	}
	item := m.visibleItems[m.cursor]
	if item.IsSectionHeader {
		return goal.Goal{}, false
	}
	return item.Goal, true
}

// getGlamourRenderer returns a cached glamour renderer, creating one if needed
// or if the width changed.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}

// ParseDateRange parses "START END" as two dates. A single date is used
// for both ends.
func ParseDateRange(s string) (goal.Date, goal.Date, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return goal.Date{}, goal.Date{}, errors.New("expected START END")
	}
	start, err := goal.ParseDate(fields[0])
	if err != nil {
		return goal.Date{}, goal.Date{}, err
	}
	end := start
	if len(fields) == 2 {
		if end, err = goal.ParseDate(fields[1]); err != nil {
			return goal.Date{}, goal.Date{}, err
		}
	}
	return start, end, nil
}

// ParseMilestone parses the milestone input syntax:
//
//	point DATE [label]
//	window START END [label]
//	none
//
// An empty string also clears the milestone.
func ParseMilestone(s string) (*goal.Milestone, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || strings.EqualFold(fields[0], "none") {
		return nil, nil
	}
	var ms goal.Milestone
	var rest []string
	switch strings.ToLower(fields[0]) {
	case "point":
		if len(fields) < 2 {
			return nil, errors.New("point needs a date")
		}
		d, err := goal.ParseDate(fields[1])
		if err != nil {
			return nil, err
		}
		ms = goal.Milestone{Type: goal.MilestonePoint, Date: d, Label: "Milestone"}
		rest = fields[2:]
	case "window":
		if len(fields) < 3 {
			return nil, errors.New("window needs a start and end date")
		}
		start, end, err := ParseDateRange(fields[1] + " " + fields[2])
		if err != nil {
			return nil, err
		}
		ms = goal.Milestone{Type: goal.MilestoneWindow, WindowStart: start, WindowEnd: end, Label: "Milestone window"}
		rest = fields[3:]
	default:
		return nil, fmt.Errorf("unknown milestone type %q", fields[0])
	}
	if len(rest) > 0 {
		ms.Label = strings.Join(rest, " ")
	}
	if errs := goal.ValidateMilestone(ms); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &ms, nil
}

// FormatMilestone renders m in the syntax ParseMilestone accepts.
func FormatMilestone(m *goal.Milestone) string {
	if m == nil {
		return "none"
	}
	if m.Type == goal.MilestoneWindow {
		return fmt.Sprintf("window %s %s %s", m.WindowStart, m.WindowEnd, m.Label)
	}
	return fmt.Sprintf("point %s %s", m.Date, m.Label)
}

// cycle returns the element delta steps after cur, wrapping around.
func cycle[T comparable](all []T, cur T, delta int) T {
	for i, v := range all {
		if v == cur {
			return all[((i+delta)%len(all)+len(all))%len(all)]
		}
	}
	return all[0]
}

// step is cycle without wrapping.
func step[T comparable](all []T, cur T, delta int) T {
	for i, v := range all {
		if v == cur {
			return all[max(0, min(len(all)-1, i+delta))]
		}
	}
	return all[0]
}
