// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"

	"taskctl/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	all    []service.Task // extra tasks visible only to ListAllTasks
	nextID int
	calls  []string

	// Auth behaviour
	AuthResponse  service.AuthResponse
	SignUpMessage string

	// Error injection for testing
	SignInErr error
	SignUpErr error
	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	StatusErr error
	DeleteErr error
}

// NewFakeService creates a new empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID:        1,
		SignUpMessage: "User registered successfully!",
	}
}

// AddTask stores a task owned by the current user. An empty ID is assigned.
func (f *FakeService) AddTask(task service.Task) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task.ID == "" {
		task.ID = service.ID(strconv.Itoa(f.nextID))
	}
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task
}

// AddOtherTask stores a task owned by someone else.
func (f *FakeService) AddOtherTask(task service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.all = append(f.all, task)
}

// Task returns the stored task with id.
func (f *FakeService) Task(id service.ID) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Calls returns the names of the methods invoked so far.
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeService) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

// SignIn implements service.Service.
func (f *FakeService) SignIn(ctx context.Context, creds service.Credentials) (service.AuthResponse, error) {
	f.record("SignIn")
	if f.SignInErr != nil {
		return service.AuthResponse{}, f.SignInErr
	}
	resp := f.AuthResponse
	if resp.Username == "" {
		resp.Username = creds.Username
	}
	return resp, nil
}

// SignUp implements service.Service.
func (f *FakeService) SignUp(ctx context.Context, req service.SignUpRequest) (string, error) {
	f.record("SignUp")
	if f.SignUpErr != nil {
		return "", f.SignUpErr
	}
	return f.SignUpMessage, nil
}

// ListMyTasks implements service.Service.
func (f *FakeService) ListMyTasks(ctx context.Context) ([]service.Task, error) {
	f.record("ListMyTasks")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// ListAllTasks implements service.Service.
func (f *FakeService) ListAllTasks(ctx context.Context) ([]service.Task, error) {
	f.record("ListAllTasks")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, 0, len(f.tasks)+len(f.all))
	out = append(out, f.tasks...)
	out = append(out, f.all...)
	return out, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id service.ID) (service.Task, error) {
	f.record("GetTask")
	if f.GetErr != nil {
		return service.Task{}, f.GetErr
	}
	task, ok := f.Task(id)
	if !ok {
		return service.Task{}, notFound()
	}
	return task, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	return f.AddTask(service.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	}), nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id service.ID, in service.TaskInput) (service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Title = in.Title
			f.tasks[i].Description = in.Description
			f.tasks[i].Status = in.Status
			f.tasks[i].Priority = in.Priority
			f.tasks[i].DueDate = in.DueDate
			return f.tasks[i], nil
		}
	}
	return service.Task{}, notFound()
}

// UpdateTaskStatus implements service.Service.
func (f *FakeService) UpdateTaskStatus(ctx context.Context, id service.ID, status service.Status) error {
	f.record("UpdateTaskStatus")
	if f.StatusErr != nil {
		return f.StatusErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Status = status
			return nil
		}
	}
	return notFound()
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id service.ID) error {
	f.record("DeleteTask")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return notFound()
}

func notFound() error {
	return service.NewAPIError(404, "Task not found")
}
