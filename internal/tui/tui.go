// Package tui is the interactive agenda view: a tabbed list of todos and
// events with a detail pane.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amonks/agenda/agenda"
	internalstrings "github.com/amonks/agenda/internal/strings"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PersistFunc durably records an action before the view applies it.
type PersistFunc func(agenda.Action) error

type tabKind int

const (
	tabTodos tabKind = iota
	tabEvents
)

type focusPane int

const (
	focusList focusPane = iota
	focusDetail
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type model struct {
	state       *agenda.State
	persist     PersistFunc
	now         func() time.Time
	readOnly    bool
	width       int
	height      int
	activeTab   tabKind
	focus       focusPane
	showHelp    bool
	todoList    list.Model
	eventList   list.Model
	detail      viewport.Model
	status      string
	statusLevel statusLevel
}

// Options configures Run.
type Options struct {
	// Persist records status changes. When nil the view is read-only.
	Persist PersistFunc
	// Now is the clock used for deadline distances. Defaults to time.Now.
	Now func() time.Time
}

// Run shows the interactive view until the user quits or ctx is done.
func Run(ctx context.Context, state *agenda.State, opts Options) error {
	if state == nil {
		return errors.New("agenda state is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(state, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func newModel(state *agenda.State, opts Options) model {
	todoList := newList("Todos", todoItemDelegate{})
	eventList := newList("Events", eventItemDelegate{})

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := model{
		state:     state,
		persist:   opts.Persist,
		now:       now,
		readOnly:  opts.Persist == nil,
		activeTab: tabTodos,
		focus:     focusList,
		todoList:  todoList,
		eventList: eventList,
		detail:    viewport.New(0, 0),
	}
	m.reload("")
	return m
}

func newList(title string, delegate list.ItemDelegate) list.Model {
	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	return l
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case actionPersistedMsg:
		return m.handleActionPersisted(msg), nil
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading agenda..."
	}
	if m.showHelp {
		modal := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2).Render(helpContent())
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}

	contentHeight := max(m.height-3, 1)
	leftWidth, rightWidth := splitWidths(m.width)

	listContent := m.todoList.View()
	if m.activeTab == tabEvents {
		listContent = m.eventList.View()
	}

	listPane := renderPane(listContent, leftWidth, contentHeight, m.focus == focusList)
	detailPane := renderPane(m.detail.View(), rightWidth, contentHeight, m.focus == focusDetail)
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	return strings.Join([]string{m.renderTabs(), m.renderHelpLine(), content, m.renderStatusLine()}, "\n")
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.showHelp {
		switch key {
		case "?", "esc":
			m.showHelp = false
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "tab", "]":
		return m.activateTab(m.otherTab()), nil
	case "shift+tab", "backtab", "[":
		return m.activateTab(m.otherTab()), nil
	case "1":
		return m.activateTab(tabTodos), nil
	case "2":
		return m.activateTab(tabEvents), nil
	case "enter":
		m.focus = focusDetail
		return m, nil
	case "esc":
		m.focus = focusList
		return m, nil
	case "s":
		if m.activeTab == tabTodos {
			return m.cycleStatus()
		}
		return m, nil
	}

	if m.focus == focusDetail {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	switch key {
	case "up", "k":
		return m.moveSelection(-1), nil
	case "down", "j":
		return m.moveSelection(1), nil
	case "home", "g":
		return m.moveSelection(-len(m.activeList().Items())), nil
	case "end", "G":
		return m.moveSelection(len(m.activeList().Items())), nil
	}
	return m, nil
}

// cycleStatus advances the selected todo to its next status. The action is
// persisted first and only applied to the state once that succeeds.
func (m model) cycleStatus() (tea.Model, tea.Cmd) {
	t, ok := m.selectedTodo()
	if !ok {
		m.setStatus("No todo selected", statusError)
		return m, nil
	}
	if m.readOnly {
		m.setStatus("Read-only view: status changes are disabled", statusError)
		return m, nil
	}
	action := agenda.SetTodoStatus(t.ID, t.Status.Next())
	persist := m.persist
	return m, func() tea.Msg {
		return actionPersistedMsg{action: action, err: persist(action)}
	}
}

func (m model) handleActionPersisted(msg actionPersistedMsg) model {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", msg.err), statusError)
		return m
	}
	m.state.ApplyAction(msg.action)
	m.reload(msg.action.TodoID)
	m.setStatus(fmt.Sprintf("%s is now %s", msg.action.TodoID, msg.action.Status), statusInfo)
	return m
}

// reload rebuilds both lists from the state, keeping selection on keepID
// when it is still present.
func (m *model) reload(keepID string) {
	if keepID == "" {
		if t, ok := m.selectedTodo(); ok {
			keepID = t.ID
		}
	}

	todos := m.state.Todos()
	todoItems := make([]list.Item, 0, len(todos))
	selected := 0
	for i, t := range todos {
		todoItems = append(todoItems, todoItem{todo: t})
		if t.ID == keepID {
			selected = i
		}
	}
	m.todoList.SetItems(todoItems)
	if len(todoItems) > 0 {
		m.todoList.Select(selected)
	}

	eventID := ""
	if e, ok := m.selectedEvent(); ok {
		eventID = e.ID
	}
	events := m.state.Events()
	eventItems := make([]list.Item, 0, len(events))
	selected = 0
	for i, e := range events {
		eventItems = append(eventItems, eventItem{event: e})
		if e.ID == eventID {
			selected = i
		}
	}
	m.eventList.SetItems(eventItems)
	if len(eventItems) > 0 {
		m.eventList.Select(selected)
	}

	m.refreshDetail()
}

func (m *model) refreshDetail() {
	width := m.detail.Width
	now := m.now()
	var content string
	if m.activeTab == tabEvents {
		e, _ := m.selectedEvent()
		content = renderEventDetail(m.state, e, width, now)
	} else {
		t, _ := m.selectedTodo()
		content = renderTodoDetail(m.state, t, width, now)
	}
	m.detail.SetContent(content)
	m.detail.GotoTop()
}

func (m model) otherTab() tabKind {
	if m.activeTab == tabTodos {
		return tabEvents
	}
	return tabTodos
}

func (m model) activateTab(target tabKind) model {
	if target == m.activeTab {
		return m
	}
	m.activeTab = target
	m.focus = focusList
	m.refreshDetail()
	return m
}

func (m model) activeList() *list.Model {
	if m.activeTab == tabEvents {
		return &m.eventList
	}
	return &m.todoList
}

func (m model) moveSelection(delta int) model {
	l := m.activeList()
	count := len(l.Items())
	if count == 0 {
		return m
	}
	next := min(max(l.Index()+delta, 0), count-1)
	if next == l.Index() {
		return m
	}
	l.Select(next)
	if m.activeTab == tabEvents {
		m.eventList = *l
	} else {
		m.todoList = *l
	}
	m.refreshDetail()
	return m
}

func (m model) selectedTodo() (agenda.Todo, bool) {
	item, ok := m.todoList.SelectedItem().(todoItem)
	if !ok {
		return agenda.Todo{}, false
	}
	return item.todo, true
}

func (m model) selectedEvent() (agenda.Event, bool) {
	item, ok := m.eventList.SelectedItem().(eventItem)
	if !ok {
		return agenda.Event{}, false
	}
	return item.event, true
}

func (m *model) resize() {
	contentHeight := max(m.height-3, 1)
	leftWidth, rightWidth := splitWidths(m.width)
	innerHeight := max(contentHeight-2, 1)
	m.todoList.SetSize(max(leftWidth-4, 1), innerHeight)
	m.eventList.SetSize(max(leftWidth-4, 1), innerHeight)
	m.detail.Width = max(rightWidth-4, 1)
	m.detail.Height = innerHeight
	m.refreshDetail()
}

func splitWidths(width int) (int, int) {
	left := width / 2
	if left < 30 {
		left = 30
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}

func (m model) renderTabs() string {
	labels := []string{
		fmt.Sprintf("[1] Todos (%d)", len(m.todoList.Items())),
		fmt.Sprintf("[2] Events (%d)", len(m.eventList.Items())),
	}
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := tabInactiveStyle
		if tabKind(i) == m.activeTab {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	helpHint := valueMuted.Render("Press ? for help")
	spacer := strings.Repeat(" ", max(m.width-lipgloss.Width(content)-lipgloss.Width(helpHint), 1))
	return tabBarStyle.Width(m.width).Render(content + spacer + helpHint)
}

func renderPane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	return style.Width(max(width, 0)).Height(max(height, 0)).Render(content)
}

func (m model) renderStatusLine() string {
	if internalstrings.IsBlank(m.status) {
		return ""
	}
	style := valueMuted
	switch m.statusLevel {
	case statusError:
		style = statusErrorStyle
	case statusInfo:
		style = statusSuccessStyle
	}
	return style.Render(m.status)
}

func (m model) renderHelpLine() string {
	return helpBarStyle.Width(m.width).Render(truncateText(m.helpSummary(), m.width))
}

func (m model) helpSummary() string {
	if m.focus == focusDetail {
		return "Keys: up/down/pgup/pgdown scroll | esc back | ? help | q quit"
	}
	if m.activeTab == tabTodos && !m.readOnly {
		return "Keys: up/down move | enter detail | s cycle status | tab switch tabs | ? help | q quit"
	}
	return "Keys: up/down move | enter detail | tab switch tabs | ? help | q quit"
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func helpContent() string {
	sections := []string{
		labelStyle.Render("Global"),
		"q or ctrl+c: quit",
		"[ or ] / 1 or 2 / tab: switch tabs",
		"?: toggle help",
		"",
		labelStyle.Render("Navigation"),
		"up/down or j/k: move selection",
		"g/G: first/last item",
		"enter: focus detail pane",
		"esc: return to list",
		"",
		labelStyle.Render("Todos"),
		"s: cycle status (ready, in-progress, blocked, complete)",
		"",
		labelStyle.Render("Help"),
		"press ? or esc to close",
	}
	return strings.Join(sections, "\n")
}

type actionPersistedMsg struct {
	action agenda.Action
	err    error
}
