package service

import "context"

// Service defines the interface for task backend operations.
// All API calls go through this interface; commands never speak HTTP
// directly.
type Service interface {
	// SignIn exchanges credentials for an access token and identity.
	SignIn(ctx context.Context, creds Credentials) (AuthResponse, error)

	// SignUp registers a new account and returns the server's message.
	SignUp(ctx context.Context, req SignUpRequest) (string, error)

	// ListMyTasks returns the tasks owned by the current user in API order.
	ListMyTasks(ctx context.Context) ([]Task, error)

	// ListAllTasks returns every task visible to the current user.
	ListAllTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, id ID) (Task, error)

	// CreateTask creates a task and returns it as stored by the server.
	CreateTask(ctx context.Context, in TaskInput) (Task, error)

	// UpdateTask replaces the editable fields of a task.
	UpdateTask(ctx context.Context, id ID, in TaskInput) (Task, error)

	// UpdateTaskStatus changes only the status of a task.
	UpdateTaskStatus(ctx context.Context, id ID, status Status) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id ID) error
}
