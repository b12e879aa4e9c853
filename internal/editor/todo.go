package editor

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/agenda/agenda"
	internalstrings "github.com/amonks/agenda/internal/strings"
	"github.com/amonks/agenda/internal/validation"
)

// TodoData represents the data used to render the TOML template.
type TodoData struct {
	// IsUpdate is true when editing an existing todo.
	IsUpdate bool
	// ID is the todo ID (only for updates).
	ID string
	// Title is the todo title.
	Title string
	// Status is the todo status (only for updates).
	Status string
	// Estimate is the estimate in ParseEstimate syntax, empty when unset.
	Estimate string
	// Deadline is the deadline in ParseTime syntax, empty when unset.
	Deadline string
	// Dependents lists the IDs of todos this one blocks.
	Dependents []string
}

// DefaultCreateData returns TodoData with default values for creating a new todo.
func DefaultCreateData() TodoData {
	return TodoData{}
}

// DataFromTodo creates TodoData from an existing todo for editing.
func DataFromTodo(t agenda.Todo) TodoData {
	data := TodoData{
		IsUpdate:   true,
		ID:         t.ID,
		Title:      t.Title,
		Status:     string(t.Status),
		Deadline:   agenda.FormatTime(t.Deadline),
		Dependents: slices.Clone(t.DependentIDs),
	}
	if t.Estimate != nil {
		data.Estimate = t.Estimate.String()
	}
	return data
}

var todoTemplate = template.Must(template.New("todo").Funcs(template.FuncMap{
	"statuses": statusList,
	"quote":    quoteTOML,
}).Parse(`title = {{ quote .Title }}
estimate = {{ quote .Estimate }} # e.g. "30m" or "30m-1h30m"; empty clears
deadline = {{ quote .Deadline }} # RFC 3339, "YYYY-MM-DD HH:MM", or "YYYY-MM-DD"; empty clears
{{- if .IsUpdate }}
status = {{ quote .Status }} # {{ statuses }}
{{- end }}
---
# Todos blocked by this one, one ID per line.
{{ range .Dependents }}{{ . }}
{{ end }}`))

// quoteTOML renders value as a TOML basic string.
func quoteTOML(value string) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]string{"v": value}); err != nil {
		return "", fmt.Errorf("quote %q: %w", value, err)
	}
	quoted, ok := strings.CutPrefix(strings.TrimSuffix(buf.String(), "\n"), "v = ")
	if !ok {
		return "", fmt.Errorf("quote %q: unexpected encoding %q", value, buf.String())
	}
	return quoted, nil
}

// RenderTodoTOML renders the todo data as a TOML string for editing.
func RenderTodoTOML(data TodoData) (string, error) {
	var buf bytes.Buffer
	if err := todoTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTodo represents the parsed result from the TOML editor output.
type ParsedTodo struct {
	Title    string  `toml:"title"`
	Status   *string `toml:"status"`
	Estimate string  `toml:"estimate"`
	Deadline string  `toml:"deadline"`

	// Dependents holds the body lines: dependent todo IDs or prefixes.
	Dependents []string `toml:"-"`

	estimate *agenda.Estimate
	deadline *time.Time
}

// ParseTodoTOML parses the TOML content from the editor. Times without a
// zone are read in loc.
func ParseTodoTOML(content string, loc *time.Location) (*ParsedTodo, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTodo
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Dependents = parseDependents(body)

	if err := agenda.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}
	if parsed.Status != nil {
		status, err := agenda.ParseStatus(*parsed.Status)
		if err != nil {
			return nil, err
		}
		normalized := string(status)
		parsed.Status = &normalized
	}

	estimate, err := agenda.ParseEstimate(parsed.Estimate)
	if err != nil {
		return nil, err
	}
	parsed.estimate = estimate

	deadline, err := agenda.ParseTime(parsed.Deadline, loc)
	if err != nil {
		return nil, err
	}
	parsed.deadline = deadline

	return &parsed, nil
}

func parseDependents(body string) []string {
	var ids []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if internalstrings.IsBlank(line) || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, strings.Fields(line)[0])
	}
	return ids
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

func createTodoTempFile() (*os.File, error) {
	return os.CreateTemp("", "agenda-todo-*.txt")
}

func statusList() string {
	return validation.FormatValidValues(agenda.ValidStatuses())
}

// EditTodo opens the editor for a todo and returns the parsed result.
// For create: pass nil for existing.
// For update: pass the existing todo.
func EditTodo(existing *agenda.Todo) (*ParsedTodo, error) {
	var data TodoData
	if existing == nil {
		data = DefaultCreateData()
	} else {
		data = DataFromTodo(*existing)
	}
	return EditTodoWithData(data)
}

// EditTodoWithData opens the editor with pre-populated data and returns the parsed result.
func EditTodoWithData(data TodoData) (*ParsedTodo, error) {
	content, err := RenderTodoTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTodoTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTodoTOML(string(edited), time.Local)
}

// CreateActions converts a ParsedTodo into the actions that create it under
// id. Dependents must already be resolved to full IDs.
func (p *ParsedTodo) CreateActions(id string) []agenda.Action {
	fields := agenda.Todo{
		Title:    p.Title,
		Estimate: p.estimate,
		Deadline: p.deadline,
	}
	if p.Status != nil {
		fields.Status = agenda.Status(*p.Status)
	}

	actions := []agenda.Action{agenda.CreateTodo(id, fields)}
	for _, dependent := range dedupe(p.Dependents) {
		actions = append(actions, agenda.AddTodoDependent(id, dependent))
	}
	return actions
}

// UpdateActions returns the minimal set of actions that turn existing into
// the parsed todo. Dependents must already be resolved to full IDs.
func (p *ParsedTodo) UpdateActions(existing agenda.Todo) []agenda.Action {
	id := existing.ID
	var actions []agenda.Action

	if p.Title != existing.Title {
		actions = append(actions, agenda.SetTodoTitle(id, p.Title))
	}
	if p.Status != nil && agenda.Status(*p.Status) != existing.Status {
		actions = append(actions, agenda.SetTodoStatus(id, agenda.Status(*p.Status)))
	}
	if !sameEstimate(p.estimate, existing.Estimate) {
		actions = append(actions, agenda.SetTodoEstimate(id, p.estimate))
	}
	if !sameTime(p.deadline, existing.Deadline) {
		actions = append(actions, agenda.SetTodoDeadline(id, p.deadline))
	}

	wanted := dedupe(p.Dependents)
	for _, dependent := range dedupe(existing.DependentIDs) {
		if !slices.Contains(wanted, dependent) {
			actions = append(actions, agenda.RemoveTodoDependent(id, dependent))
		}
	}
	for _, dependent := range wanted {
		if !slices.Contains(existing.DependentIDs, dependent) {
			actions = append(actions, agenda.AddTodoDependent(id, dependent))
		}
	}

	return actions
}

func dedupe(ids []string) []string {
	var out []string
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func sameEstimate(a, b *agenda.Estimate) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
