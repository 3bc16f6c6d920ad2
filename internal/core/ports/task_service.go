package ports

import (
	"context"
	"time"

	"github.com/officedesk/office-console/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task.
type CreateTaskInput struct {
	ProjectID   string
	ModuleID    string
	Title       string
	Description string
	Type        string
	Status      string
	Priority    string
	DueDate     *time.Time
	AssigneeIDs []string
}

// UpdateTaskInput carries a partial task update. Nil fields are untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
	AssigneeIDs []string
}

// ListTasksInput carries caller-supplied list parameters; access scoping is
// derived from the AccessScope, not from here.
type ListTasksInput struct {
	ProjectID  string
	ModuleID   string
	Status     string
	Priority   string
	AssigneeID string
	Search     string
	Page       int
	Limit      int
}

// TaskList is a page of tasks.
type TaskList struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, scope domain.AccessScope, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.Task, error)
	List(ctx context.Context, scope domain.AccessScope, in ListTasksInput) (*TaskList, error)
	Update(ctx context.Context, scope domain.AccessScope, id string, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, scope domain.AccessScope, id string) error
	Activities(ctx context.Context, scope domain.AccessScope, id string) ([]*domain.Activity, error)
}
