package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stefanpenner/focusone/pkg/filter"
	"github.com/stefanpenner/focusone/pkg/goal"
	"github.com/stefanpenner/focusone/pkg/store"
	"github.com/stefanpenner/focusone/pkg/summary"
	"github.com/stefanpenner/focusone/pkg/timeline"
)

const minWidth = 40
const minHeight = 10

// chromeLines counts the header, control line, three separators and footer.
const chromeLines = 6

// View implements tea.Model.
func (m Model) View() string {
	w, h := m.size()

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}
	if m.showDeleteConfirm {
		return placeOverlay(m.renderDeleteModal(), w, h)
	}

	var b strings.Builder
	sepLine := strings.Repeat("─", w) + "\n"

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(m.renderControls(w))
	b.WriteString("\n")
	b.WriteString(sepLine)

	if m.searchActive() {
		b.WriteString(m.renderSearchBar(w))
		b.WriteString("\n")
	}

	b.WriteString(m.renderTimeline(w))
	b.WriteString("\n")
	b.WriteString(sepLine)

	contentHeight := m.bodyHeight()
	leftWidth, rightWidth := m.panelWidths()
	leftPanel := m.renderListPanel(leftWidth, contentHeight)
	rightPanel := m.renderNotesPanel(rightWidth, contentHeight)

	sepColor := ColorDim
	if m.focusedPane == 1 || m.isEditing {
		sepColor = ColorAccent
	}
	sep := lipgloss.NewStyle().Foreground(sepColor).Render("│")
	for i := 0; i < contentHeight; i++ {
		b.WriteString(getLine(leftPanel, i, leftWidth))
		b.WriteString(sep)
		b.WriteString(getLine(rightPanel, i, rightWidth))
		b.WriteString("\n")
	}

	b.WriteString(sepLine)
	b.WriteString(m.renderFooter(w))

	return b.String()
}

func (m Model) size() (int, int) {
	return max(minWidth, m.width), max(minHeight, m.height)
}

func (m Model) searchActive() bool {
	return m.isSearching || m.spec.Query != ""
}

func (m Model) panelWidths() (int, int) {
	w, _ := m.size()
	left := max(24, w/3)
	return left, max(20, w-left-1)
}

func (m Model) notesWidth() int {
	_, right := m.panelWidths()
	return max(20, right-2)
}

// timelineMaxRows bounds the flat view so the list keeps some room.
func (m Model) timelineMaxRows() int {
	if m.layout.Mode != timeline.ModeFlat {
		return 0
	}
	_, h := m.size()
	return max(3, (h-chromeLines)/3)
}

func (m Model) renderTimeline(w int) string {
	var selected string
	if g, ok := m.selectedGoal(); ok {
		selected = g.ID
	}
	return RenderTimeline(m.layout, RenderOptions{
		Width:    w,
		Color:    true,
		Selected: selected,
		MaxRows:  m.timelineMaxRows(),
	})
}

func (m Model) bodyHeight() int {
	w, h := m.size()
	used := chromeLines + strings.Count(m.renderTimeline(w), "\n") + 1
	if m.searchActive() {
		used++
	}
	return max(3, h-used)
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("FocusOne")

	var kpis []string
	for _, k := range summary.Compute(m.goals).KPIs() {
		kpis = append(kpis, KPILabelStyle.Render(k.Label+" ")+KPIValueStyle.Render(fmt.Sprint(k.Value)))
	}
	stats := strings.Join(kpis, "  ")

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = lipgloss.NewStyle().Foreground(ColorAccent).Render(m.statusMsg) + "  "
	} else if err := m.store.LastPersistError(); err != nil {
		status = ErrorStyle.Render("not saved: "+err.Error()) + "  "
	}

	gap := max(1, width-lipgloss.Width(title)-lipgloss.Width(stats)-lipgloss.Width(status))
	return title + strings.Repeat(" ", gap) + status + stats
}

// renderControls shows the range presets as tabs, then density, row mode
// and the category filter chips.
func (m Model) renderControls(width int) string {
	var tabs []string
	for _, p := range timeline.Presets {
		if p == m.preset {
			tabs = append(tabs, ActiveTabStyle.Render(p.Label()))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(p.Label()))
		}
	}
	left := strings.Join(tabs, "")

	var chips []string
	for i, c := range goal.Categories {
		label := fmt.Sprintf("%d %s", i+1, c.Label())
		if filter.IsActive(m.spec.Categories, c, goal.Categories) {
			chips = append(chips, categoryStyle(c).Render(label))
		} else {
			chips = append(chips, lipgloss.NewStyle().Foreground(ColorDim).Strikethrough(true).Render(label))
		}
	}
	if !filter.IsActive(m.spec.Statuses, goal.StatusDone, goal.Statuses) {
		chips = append(chips, FooterStyle.Render("done hidden"))
	}
	right := FooterStyle.Render(fmt.Sprintf("%s · %s  ", m.layout.Density, m.layout.Mode)) + strings.Join(chips, " ")

	if lipgloss.Width(left)+lipgloss.Width(right)+1 > width {
		return left
	}
	return left + strings.Repeat(" ", width-lipgloss.Width(left)-lipgloss.Width(right)) + right
}

func (m Model) renderSearchBar(width int) string {
	prefix := SearchBarStyle.Render(" / ")
	query := SearchBarStyle.Render(m.spec.Query)
	cursor := ""
	if m.isSearching {
		cursor = SearchBarStyle.Render("█")
	}

	countStr := ""
	if m.spec.Query != "" {
		countStr = SearchCountStyle.Render(fmt.Sprintf(" %d matches", len(m.goals)))
	}

	left := prefix + query + cursor
	padWidth := max(1, width-lipgloss.Width(left)-lipgloss.Width(countStr))
	return left + strings.Repeat(" ", padWidth) + countStr
}

func (m Model) renderListPanel(width, height int) string {
	var lines []string

	// Reserve last line for the storage location
	listHeight := max(1, height-1)

	if len(m.visibleItems) == 0 {
		if m.spec.IsZero() {
			lines = append(lines, FooterStyle.Render("No goals yet. Press 'a' to add one."))
		} else {
			lines = append(lines, FooterStyle.Render("No goals match. Press 'x' to clear filters."))
		}
	}

	// Scrolling window
	startIdx := 0
	endIdx := len(m.visibleItems)
	if len(m.visibleItems) > listHeight {
		startIdx = max(0, m.cursor-listHeight/2)
		endIdx = startIdx + listHeight
		if endIdx > len(m.visibleItems) {
			endIdx = len(m.visibleItems)
			startIdx = max(0, endIdx-listHeight)
		}
	}

	for i := startIdx; i < endIdx; i++ {
		item := m.visibleItems[i]
		isSelected := i == m.cursor

		if item.IsSectionHeader {
			lines = append(lines, m.renderSectionHeader(item, isSelected, width))
			continue
		}

		if m.inputMode == inputRename && item.ID == m.inputTarget {
			prompt := InputPromptStyle.Render("✎ ")
			lines = append(lines, ItemIndent+prompt+m.textInput.View())
			continue
		}

		lines = append(lines, m.renderListItem(item, isSelected, width))
	}

	if m.inputMode == inputAdd {
		prompt := InputPromptStyle.Render("> ")
		lines = append(lines, ItemIndent+prompt+m.textInput.View())
	}

	for len(lines) < listHeight {
		lines = append(lines, "")
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(ColorDim).Render(storageLocation(m.store)))

	return strings.Join(lines, "\n")
}

func (m Model) renderSectionHeader(item ListItem, isSelected bool, width int) string {
	icon := IconExpanded
	if item.IsCollapsed {
		icon = IconCollapsed
	}
	style := SectionHeaderStyle
	if isSelected {
		style = style.Background(ColorSelection)
	}
	label := style.Render(fmt.Sprintf("%s %s ", icon, item.Name)) + MutedStyle.Render(fmt.Sprintf("%d ", item.Count))
	if remaining := width - lipgloss.Width(label); remaining > 0 {
		label += lipgloss.NewStyle().Foreground(ColorDim).Render(strings.Repeat("─", remaining))
	}
	return label
}

func (m Model) renderListItem(item ListItem, isSelected bool, width int) string {
	g := item.Goal
	icon, iconStyle := statusIcon(g.Status)
	dot := categoryStyle(g.Category).Render("●")

	name := truncate(item.Name, max(4, width-14))
	rowStyle := ItemStyle
	if isSelected {
		rowStyle = SelectedStyle
	}
	if m.spec.Query != "" {
		name = highlightMatch(name, m.spec.Query, SearchCharStyle, rowStyle)
	} else {
		name = rowStyle.Render(name)
	}

	var flag string
	if g.IsOverdue(m.today()) {
		flag = " " + OverdueStyle.Render(IconOverdue)
	}
	due := MutedStyle.Render(g.EndDate.Format("Jan 2"))

	line := ItemIndent + iconStyle.Render(icon) + " " + dot + " " + name + flag
	if pad := width - lipgloss.Width(line) - lipgloss.Width(due) - 1; pad > 0 {
		line += rowStyle.Render(strings.Repeat(" ", pad))
	}
	line += " " + due

	if isSelected {
		line = SelectedStyle.Render(line)
	}
	return line
}

func (m Model) renderNotesPanel(width, height int) string {
	g, ok := m.selectedGoal()
	if !ok {
		return m.renderSummaryPanel(width, height)
	}

	header := m.renderGoalHeader(g)

	if m.isEditing {
		headerRendered := strings.TrimRight(m.renderMarkdown(header), "\n ")
		lines := strings.Split(headerRendered, "\n")
		lines = append(lines, strings.Split(m.noteEditor.View(), "\n")...)
		return strings.Join(clip(lines, height), "\n")
	}

	var md strings.Builder
	md.WriteString(header)
	if g.Notes != "" {
		md.WriteString(g.Notes)
		if !strings.HasSuffix(g.Notes, "\n") {
			md.WriteString("\n")
		}
	} else {
		md.WriteString("_No notes. Press e to write some._\n")
	}

	rendered := strings.TrimRight(m.renderMarkdown(md.String()), "\n ")
	lines := strings.Split(rendered, "\n")

	scroll := max(0, min(m.notesScroll, len(lines)-1))
	return strings.Join(clip(lines[scroll:], height), "\n")
}

// renderSummaryPanel is shown while a section header is selected: the
// category and priority histograms of the visible goals.
func (m Model) renderSummaryPanel(width, height int) string {
	var lines []string
	barWidth := max(5, width-24)
	section := func(title string, h summary.Histogram) {
		lines = append(lines, ModalTitleStyle.Render(" "+title), "")
		for _, bkt := range h.Buckets {
			n := int(bkt.Ratio(h.Peak) * float64(barWidth))
			bar := lipgloss.NewStyle().Foreground(lipgloss.Color(bkt.Color)).Render(strings.Repeat("█", n))
			lines = append(lines, fmt.Sprintf(" %-10s %3d %s", bkt.Label, bkt.Count, bar))
		}
		lines = append(lines, "")
	}
	section("By category", summary.ByCategory(m.goals))
	section("By priority", summary.ByPriority(m.goals))
	return strings.Join(clip(lines, height), "\n")
}

func (m Model) renderMarkdown(md string) string {
	if m.glamourRenderer == nil || m.rendered == nil {
		return md
	}
	key := fmt.Sprintf("%d\x00%s", m.glamourWidth, md)
	if out, ok := m.rendered.Get(key); ok {
		return out
	}
	out, err := m.glamourRenderer.Render(md)
	if err != nil {
		return md
	}
	m.rendered.Add(key, out)
	return out
}

// renderGoalHeader builds the markdown header (title, metadata, dates) for a goal.
func (m Model) renderGoalHeader(g goal.Goal) string {
	var md strings.Builder

	md.WriteString("# " + g.DisplayTitle() + "\n\n")

	meta := []string{
		"**Category:** " + g.Category.Label(),
		"**Priority:** " + g.Priority.Label(),
		"**Status:** " + g.Status.Label(),
	}
	md.WriteString(strings.Join(meta, " | ") + "\n\n")

	days := g.StartDate.DaysUntil(g.EndDate) + 1
	md.WriteString(fmt.Sprintf("**Dates:** %s → %s (%d days)", g.StartDate, g.EndDate, days))
	if g.IsOverdue(m.today()) {
		md.WriteString(" **overdue**")
	}
	md.WriteString("\n\n")

	if ms := g.Milestone; ms != nil {
		if ms.Type == goal.MilestoneWindow {
			md.WriteString(fmt.Sprintf("- **%s:** %s → %s\n\n", ms.Label, ms.WindowStart, ms.WindowEnd))
		} else {
			md.WriteString(fmt.Sprintf("- **%s:** %s\n\n", ms.Label, ms.Date))
		}
	}

	return md.String()
}

func (m Model) renderFooter(width int) string {
	switch m.inputMode {
	case inputDates:
		return InputPromptStyle.Render("Dates › ") + m.textInput.View()
	case inputMilestone:
		return InputPromptStyle.Render("Milestone › ") + m.textInput.View()
	}

	help := m.keys.ShortHelp()
	if m.inputMode != inputNone {
		help = "enter confirm  esc cancel"
	} else if m.isEditing {
		help = "esc save & exit  ctrl+s save  ctrl+c cancel"
	} else if m.isSearching {
		help = "type to search  enter/↓ keep filter  esc clear"
	} else if m.spec.Query != "" {
		help = "esc clear search  ↑↓ nav"
	} else if m.focusedPane == 1 {
		help = "↑↓ scroll notes  tab list  e edit  E $EDITOR  ? help"
	}
	return FooterStyle.Render(truncate(help, width))
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorKey).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorText)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderDeleteModal() string {
	var b strings.Builder

	title := m.deleteTarget
	if g, ok := m.store.Get(m.deleteTarget); ok {
		title = g.DisplayTitle()
	}

	b.WriteString(ModalTitleStyle.Render("Delete Goal"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Delete '%s'?\n\n", title))
	b.WriteString(lipgloss.NewStyle().Foreground(ColorOK).Render("[y]") + " Yes  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorDanger).Render("[n]") + " No")

	return ModalStyle.Render(b.String())
}

// storageLocation describes where goals are persisted, as a clickable path
// for file-backed stores.
func storageLocation(s *store.GoalStore) string {
	if w, ok := s.Backend().(store.Watchable); ok {
		return fileHyperlink(w.WatchDir())
	}
	return "in-memory (not saved)"
}

// highlightMatch splits name into before/match/after and styles the match portion
// with charStyle, and the rest with rowStyle. The match is case-insensitive.
func highlightMatch(name, query string, charStyle, rowStyle lipgloss.Style) string {
	q := strings.TrimSpace(query)
	lower := strings.ToLower(name)
	idx := strings.Index(lower, strings.ToLower(q))
	// Lowercasing can change byte lengths; fall back to no highlight then.
	if idx < 0 || q == "" || len(lower) != len(name) {
		return rowStyle.Render(name)
	}
	before := name[:idx]
	match := name[idx : idx+len(q)]
	after := name[idx+len(q):]

	var result string
	if before != "" {
		result += rowStyle.Render(before)
	}
	result += charStyle.Render(match)
	if after != "" {
		result += rowStyle.Render(after)
	}
	return result
}

// fileHyperlink wraps a file path in an OSC 8 terminal hyperlink so it's clickable.
func fileHyperlink(path string) string {
	url := "file://" + path
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, path)
}

// Helper functions

// clip truncates or pads lines to exactly n entries.
func clip(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := max(0, (height-len(modalLines))/2)
	leftPadding := max(0, (width-lipgloss.Width(modalLines[0]))/2)

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
