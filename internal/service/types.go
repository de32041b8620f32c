// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the workflow state of a task.
type Status uint8

const (
	// StatusUnset is the zero value; the server sent no status.
	StatusUnset Status = iota
	StatusTodo
	StatusInProgress
	StatusDone
)

// Statuses lists the known statuses in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "TODO"
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusDone:
		return "DONE"
	case StatusUnset:
		return ""
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// ParseStatus parses a status name.
// Matching is case-insensitive and treats '-' and ' ' as '_'.
func ParseStatus(s string) (Status, error) {
	name := normalizeEnum(s)
	if name == "TO_DO" {
		name = "TODO"
	}
	for _, st := range Statuses {
		if st.String() == name {
			return st, nil
		}
	}
	return StatusUnset, fmt.Errorf("invalid status: %s", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s == StatusUnset {
		return nil, fmt.Errorf("status is unset")
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Priority is the importance of a task.
type Priority uint8

const (
	// PriorityUnset is the zero value; the server sent no priority.
	PriorityUnset Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// String returns the wire name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	case PriorityUnset:
		return ""
	}
	return fmt.Sprintf("Priority(%d)", uint8(p))
}

// Rank orders priorities for sorting: HIGH first, unset last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	case PriorityUnset:
		return 4
	}
	return 5
}

// ParsePriority parses a priority name, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch normalizeEnum(s) {
	case "LOW":
		return PriorityLow, nil
	case "MEDIUM":
		return PriorityMedium, nil
	case "HIGH":
		return PriorityHigh, nil
	}
	return PriorityUnset, fmt.Errorf("invalid priority: %s", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	if p == PriorityUnset {
		return nil, fmt.Errorf("priority is unset")
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	v, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func normalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}

// ID is an opaque server-assigned identifier.
// The server sends numbers; strings are accepted too.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id: %s", data)
	}
	*id = ID(n.String())
	return nil
}

// Task represents a single task record.
type Task struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     Date       `json:"dueDate"`
	CreatedAt   *time.Time `json:"-"`
	UpdatedAt   *time.Time `json:"-"`
}

// UnmarshalJSON decodes a task, tolerating null enum fields and the
// server's zone-less timestamps.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          ID      `json:"id"`
		Title       string  `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		Priority    *string `json:"priority"`
		DueDate     Date    `json:"dueDate"`
		CreatedAt   Date    `json:"createdAt"`
		UpdatedAt   Date    `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Task{
		ID:      raw.ID,
		Title:   raw.Title,
		DueDate: raw.DueDate,
	}
	if raw.Description != nil {
		out.Description = *raw.Description
	}
	if raw.Status != nil {
		s, err := ParseStatus(*raw.Status)
		if err != nil {
			return err
		}
		out.Status = s
	}
	if raw.Priority != nil {
		p, err := ParsePriority(*raw.Priority)
		if err != nil {
			return err
		}
		out.Priority = p
	}
	if raw.CreatedAt.Valid {
		ts := raw.CreatedAt.Time
		out.CreatedAt = &ts
	}
	if raw.UpdatedAt.Valid {
		ts := raw.UpdatedAt.Time
		out.UpdatedAt = &ts
	}
	*t = out
	return nil
}

// HasDescription reports whether the task has a non-blank description.
func (t Task) HasDescription() bool {
	return strings.TrimSpace(t.Description) != ""
}

// TaskInput holds the user-editable fields sent on create and update.
type TaskInput struct {
	Title       string   `json:"title" validate:"notblank,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Status      Status   `json:"status" validate:"required"`
	Priority    Priority `json:"priority" validate:"required"`
	DueDate     Date     `json:"dueDate"`
}

// NewTaskInput returns an input with the form defaults (TODO, MEDIUM).
func NewTaskInput(title string) TaskInput {
	return TaskInput{
		Title:    title,
		Status:   StatusTodo,
		Priority: PriorityMedium,
	}
}

// InputFrom copies the editable fields of an existing task.
func InputFrom(t Task) TaskInput {
	in := TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
	}
	if in.Status == StatusUnset {
		in.Status = StatusTodo
	}
	if in.Priority == PriorityUnset {
		in.Priority = PriorityMedium
	}
	return in
}

// Credentials is the signin request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUpRequest is the signup request body.
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the signin response body.
type AuthResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	Type        string   `json:"type"`
	ID          ID       `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
}

// BearerType returns the token type, defaulting to "Bearer".
func (r AuthResponse) BearerType() string {
	switch {
	case r.TokenType != "":
		return r.TokenType
	case r.Type != "":
		return r.Type
	}
	return "Bearer"
}

// MessageResponse is the generic {message} response body.
type MessageResponse struct {
	Message string `json:"message"`
}
