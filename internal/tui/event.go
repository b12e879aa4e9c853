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
)

type eventItem struct {
	event agenda.Event
}

func (item eventItem) FilterValue() string {
	return item.event.Title
}

type eventItemDelegate struct{}

func (d eventItemDelegate) Height() int                             { return 1 }
func (d eventItemDelegate) Spacing() int                            { return 0 }
func (d eventItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d eventItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(eventItem)
	if !ok {
		return
	}

	style := itemNormalStyle
	if index == m.Index() {
		style = itemSelectedStyle
	}
	fmt.Fprint(w, style.Render(formatEventItem(item.event, m.Width())))
}

func formatEventItem(e agenda.Event, width int) string {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%s  %s  %s", ui.FormatWhen(e.Start), e.ID, title)
	return truncateText(line, width)
}

func renderEventDetail(state *agenda.State, e agenda.Event, width int, _ time.Time) string {
	if e.ID == "" {
		return valueMuted.Render("No event selected")
	}

	end := "-"
	if finish, ok := e.End(); ok {
		end = ui.FormatWhen(&finish)
	}

	lines := []string{
		labelStyle.Render(ui.ReflowParagraphs(e.Title, max(width, 1))),
		"",
		field("ID", e.ID),
		field("Start", ui.FormatWhen(e.Start)),
		field("Duration", ui.FormatDuration(e.Duration)),
		field("End", end),
	}

	var causes []string
	for _, cause := range e.Causes {
		causes = append(causes, describeCause(state, cause))
	}
	lines = append(lines, section("Causes", causes)...)

	return lipgloss.NewStyle().Width(max(width, 1)).Render(strings.Join(lines, "\n"))
}

func describeCause(state *agenda.State, cause agenda.Cause) string {
	if cause.Kind != agenda.CauseTodo {
		return fmt.Sprintf("%s  (unknown cause)", cause.Kind)
	}
	return describeTodo(state, cause.TodoID)
}
