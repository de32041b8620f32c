// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"taskctl/internal/service"
	"taskctl/internal/session"
	"taskctl/internal/view"
)

const (
	// NoDueDate is shown for tasks without a due date.
	NoDueDate = "No due date"

	// NoDescription is shown for tasks without a description.
	NoDescription = "No description provided."

	// Separator is the separator line for detail sections.
	Separator = "------------"

	taskLineFormat = "%4s  %-11s  %-8s  %-11s  %s\n"
)

// Format selects how records are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return FormatText, fmt.Errorf("invalid format: %s (want text, json, yaml)", s)
}

// StatusLabel is the badge text for a status.
func StatusLabel(s service.Status) string {
	switch s {
	case service.StatusTodo:
		return "To Do"
	case service.StatusInProgress:
		return "In Progress"
	case service.StatusDone:
		return "Done"
	case service.StatusUnset:
		return "Unknown"
	}
	return s.String()
}

// PriorityLabel is the badge text for a priority.
func PriorityLabel(p service.Priority) string {
	switch p {
	case service.PriorityHigh:
		return "High"
	case service.PriorityMedium:
		return "Medium"
	case service.PriorityLow:
		return "Low"
	case service.PriorityUnset:
		return "Unknown"
	}
	return p.String()
}

// DueLabel is the display text for a due date.
func DueLabel(d service.Date) string {
	if !d.Valid {
		return NoDueDate
	}
	return d.Day()
}

// FormatTaskHeader writes the column header for task lines.
func FormatTaskHeader(w io.Writer) {
	fmt.Fprintf(w, taskLineFormat, "ID", "STATUS", "PRIORITY", "DUE", "TITLE")
}

// FormatTask formats one task line.
// Format: "{ID:>4}  {STATUS:<11}  {PRIORITY:<8}  {DUE:<11}  {TITLE}\n"
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, taskLineFormat,
		string(task.ID),
		StatusLabel(task.Status),
		PriorityLabel(task.Priority),
		DueLabel(task.DueDate),
		normalizeTitle(task.Title),
	)
}

// FormatTaskDetail formats every field of a task.
func FormatTaskDetail(w io.Writer, task service.Task) {
	desc := NoDescription
	if task.HasDescription() {
		desc = task.Description
	}
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, normalizeTitle(task.Title))
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "ID:          %s\n", task.ID)
	fmt.Fprintf(w, "Status:      %s\n", StatusLabel(task.Status))
	fmt.Fprintf(w, "Priority:    %s\n", PriorityLabel(task.Priority))
	fmt.Fprintf(w, "Due:         %s\n", DueLabel(task.DueDate))
	if task.CreatedAt != nil {
		fmt.Fprintf(w, "Created:     %s\n", task.CreatedAt.Format(service.WireLayout))
	}
	if task.UpdatedAt != nil {
		fmt.Fprintf(w, "Updated:     %s\n", task.UpdatedAt.Format(service.WireLayout))
	}
	fmt.Fprintln(w, "Description:")
	for _, line := range strings.Split(desc, "\n") {
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(line, "\r"))
	}
}

// Profile is everything the profile command shows.
type Profile struct {
	Session *session.Session
	Token   *session.TokenInfo
	Counts  view.Counts
	Now     time.Time
}

// FormatProfile formats identity, token expiry and task counts.
func FormatProfile(w io.Writer, p Profile) {
	email := p.Session.Email
	if email == "" {
		email = "-"
	}
	roles := "-"
	if len(p.Session.Roles) > 0 {
		roles = strings.Join(p.Session.Roles, ", ")
	}

	fmt.Fprintf(w, "Username:  %s\n", p.Session.Username)
	fmt.Fprintf(w, "Email:     %s\n", email)
	fmt.Fprintf(w, "Roles:     %s\n", roles)
	switch {
	case p.Token == nil || p.Token.ExpiresAt.IsZero():
		fmt.Fprintln(w, "Token:     expiry unknown")
	case p.Token.Expired(p.Now):
		fmt.Fprintf(w, "Token:     expired %s\n", p.Token.ExpiresAt.UTC().Format(time.RFC3339))
	default:
		fmt.Fprintf(w, "Token:     expires %s\n", p.Token.ExpiresAt.UTC().Format(time.RFC3339))
	}
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "Total:       %d\n", p.Counts.Total)
	fmt.Fprintf(w, "To Do:       %d\n", p.Counts.Todo)
	fmt.Fprintf(w, "In Progress: %d\n", p.Counts.InProgress)
	fmt.Fprintf(w, "Done:        %d\n", p.Counts.Done)
}

// TaskRecord is the machine-readable form of a task.
type TaskRecord struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Status      string `json:"status" yaml:"status"`
	Priority    string `json:"priority" yaml:"priority"`
	DueDate     string `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
}

// Record converts a task to its machine-readable form.
func Record(t service.Task) TaskRecord {
	return TaskRecord{
		ID:          string(t.ID),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		Priority:    t.Priority.String(),
		DueDate:     t.DueDate.Day(),
	}
}

// Records converts tasks to their machine-readable form.
func Records(tasks []service.Task) []TaskRecord {
	out := make([]TaskRecord, len(tasks))
	for i, t := range tasks {
		out[i] = Record(t)
	}
	return out
}

// Encode writes v as indented JSON or YAML.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		return fmt.Errorf("text format has no encoder")
	}
	return fmt.Errorf("invalid format: %s", f)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
