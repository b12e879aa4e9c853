package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/amonks/agenda/agenda"
	"github.com/amonks/agenda/internal/ui"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type todoItem struct {
	todo agenda.Todo
}

func (item todoItem) FilterValue() string {
	return item.todo.Title
}

type todoItemDelegate struct{}

func (d todoItemDelegate) Height() int                             { return 1 }
func (d todoItemDelegate) Spacing() int                            { return 0 }
func (d todoItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d todoItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(todoItem)
	if !ok {
		return
	}

	line := formatTodoItem(item.todo, m.Width())
	style := itemNormalStyle
	if index == m.Index() {
		style = itemSelectedStyle
	} else if item.todo.Status.IsResolved() {
		style = valueMuted
	}
	fmt.Fprint(w, style.Render(line))
}

func formatTodoItem(t agenda.Todo, width int) string {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("[%s] %s  %s", t.Status.Glyph(), t.ID, title)
	return truncateText(line, width)
}

// renderTodoDetail lists every field of the todo along with the todos it
// blocks, the todos blocking it, and the events it caused.
func renderTodoDetail(state *agenda.State, t agenda.Todo, width int, now time.Time) string {
	if t.ID == "" {
		return valueMuted.Render("No todo selected")
	}

	estimate := "-"
	if t.Estimate != nil {
		estimate = t.Estimate.String()
	}

	lines := []string{
		labelStyle.Render(ui.ReflowParagraphs(t.Title, max(width, 1))),
		"",
		field("ID", t.ID),
		field("Status", fmt.Sprintf("%s %s", t.Status.Glyph(), t.Status)),
		field("Estimate", estimate),
		field("Deadline", ui.FormatDeadline(t.Deadline, now)),
	}

	var blocks []string
	for _, id := range t.DependentIDs {
		blocks = append(blocks, describeTodo(state, id))
	}
	lines = append(lines, section("Blocks", blocks)...)

	var blockedBy []string
	for _, blocker := range state.BlockersOf(t.ID) {
		blockedBy = append(blockedBy, describeTodo(state, blocker.ID))
	}
	lines = append(lines, section("Blocked by", blockedBy)...)

	var events []string
	for _, event := range state.EventsCausedBy(t.ID) {
		events = append(events, fmt.Sprintf("%s  %s  %s", event.ID, ui.FormatWhen(event.Start), event.Title))
	}
	lines = append(lines, section("Events", events)...)

	return lipgloss.NewStyle().Width(max(width, 1)).Render(strings.Join(lines, "\n"))
}

func describeTodo(state *agenda.State, id string) string {
	t, ok := state.ResolveTodo(id)
	if !ok {
		return fmt.Sprintf("%s  (missing)", id)
	}
	return fmt.Sprintf("[%s] %s  %s", t.Status.Glyph(), t.ID, t.Title)
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func section(label string, entries []string) []string {
	if len(entries) == 0 {
		return nil
	}
	lines := []string{"", labelStyle.Render(label)}
	for _, entry := range entries {
		lines = append(lines, "  "+entry)
	}
	return lines
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "…")
}
