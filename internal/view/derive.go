// Package view derives the ordered, filtered task list a command renders.
package view

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskctl/internal/service"
)

// Filter selects tasks by status.
type Filter uint8

const (
	FilterAll Filter = iota
	FilterTodo
	FilterInProgress
	FilterDone
)

// ParseFilter parses a filter selector. "all" and "" select everything;
// status names are matched like service.ParseStatus.
func ParseFilter(s string) (Filter, error) {
	if t := strings.TrimSpace(s); t == "" || strings.EqualFold(t, "all") {
		return FilterAll, nil
	}
	st, err := service.ParseStatus(s)
	if err != nil {
		return FilterAll, fmt.Errorf("invalid filter: %s (want all, todo, in_progress, done)", s)
	}
	switch st {
	case service.StatusTodo:
		return FilterTodo, nil
	case service.StatusInProgress:
		return FilterInProgress, nil
	case service.StatusDone:
		return FilterDone, nil
	}
	return FilterAll, fmt.Errorf("invalid filter: %s", s)
}

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterTodo:
		return "todo"
	case FilterInProgress:
		return "in_progress"
	case FilterDone:
		return "done"
	}
	return fmt.Sprintf("Filter(%d)", uint8(f))
}

// Match reports whether a task with status s passes the filter.
func (f Filter) Match(s service.Status) bool {
	switch f {
	case FilterAll:
		return true
	case FilterTodo:
		return s == service.StatusTodo
	case FilterInProgress:
		return s == service.StatusInProgress
	case FilterDone:
		return s == service.StatusDone
	}
	return false
}

// SortKey selects the display ordering.
type SortKey uint8

const (
	SortDueDate SortKey = iota
	SortPriority
	SortTitle
)

// ParseSortKey parses a sort key name, case-insensitively.
// The empty string selects SortDueDate.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "duedate", "due_date", "due-date", "due":
		return SortDueDate, nil
	case "priority":
		return SortPriority, nil
	case "title":
		return SortTitle, nil
	}
	return SortDueDate, fmt.Errorf("invalid sort key: %s (want dueDate, priority, title)", s)
}

func (k SortKey) String() string {
	switch k {
	case SortDueDate:
		return "dueDate"
	case SortPriority:
		return "priority"
	case SortTitle:
		return "title"
	}
	return fmt.Sprintf("SortKey(%d)", uint8(k))
}

// Params are the inputs of the derivation besides the task list.
type Params struct {
	Filter Filter
	Search string
	Sort   SortKey
}

// Derive returns the tasks passing the filter and search, stably sorted
// by the sort key. The input slice is not modified.
func Derive(tasks []service.Task, p Params) []service.Task {
	term := strings.ToLower(p.Search)

	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if !p.Filter.Match(t.Status) {
			continue
		}
		if term != "" && !containsFold(t.Title, term) && !containsFold(t.Description, term) {
			continue
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, comparator(p.Sort))
	return out
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

func comparator(k SortKey) func(a, b service.Task) int {
	switch k {
	case SortPriority:
		return func(a, b service.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		}
	case SortTitle:
		// Collators keep internal buffers; one per derivation.
		c := collate.New(language.Und)
		return func(a, b service.Task) int {
			return c.CompareString(a.Title, b.Title)
		}
	case SortDueDate:
		return compareDueDate
	}
	return func(a, b service.Task) int { return 0 }
}

// compareDueDate orders absent due dates after present ones and present
// dates chronologically.
func compareDueDate(a, b service.Task) int {
	switch {
	case !a.DueDate.Valid && !b.DueDate.Valid:
		return 0
	case !a.DueDate.Valid:
		return 1
	case !b.DueDate.Valid:
		return -1
	}
	return a.DueDate.Time.Compare(b.DueDate.Time)
}

// Counts holds per-status task totals.
type Counts struct {
	Total      int
	Todo       int
	InProgress int
	Done       int
}

// Stats counts tasks by status.
func Stats(tasks []service.Task) Counts {
	var c Counts
	c.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case service.StatusTodo:
			c.Todo++
		case service.StatusInProgress:
			c.InProgress++
		case service.StatusDone:
			c.Done++
		case service.StatusUnset:
		}
	}
	return c
}
