package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// ListTasksFilter carries all query parameters for listing tasks.
type ListTasksFilter struct {
	Scope      domain.ScopePredicate
	ProjectID  string
	ProjectIDs []string // client-derived project set when ProjectID is empty
	ModuleID   string
	Status     string
	Priority   string
	AssigneeID string
	Search     string // optional: partial match on title
	Page       int
	Limit      int
}

// TaskRepository defines persistence operations for tasks and their
// activity trail.
type TaskRepository interface {
	// Create inserts the task and its CREATED activity atomically.
	Create(ctx context.Context, t *domain.Task, created domain.Activity) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	// ListByModule returns a project's tasks for one module sorted by title;
	// moduleID == "" selects tasks with no module. Used by the report
	// aggregator.
	ListByModule(ctx context.Context, projectID, moduleID string) ([]*domain.Task, error)
	// Update persists the task and appends the given activity entries in the
	// same transaction. If the update fails no entry is written.
	Update(ctx context.Context, t *domain.Task, entries []domain.Activity) error
	Delete(ctx context.Context, id string) error
	// ListActivities returns a task's audit trail, newest first.
	ListActivities(ctx context.Context, taskID string) ([]*domain.Activity, error)
	CountByAssignee(ctx context.Context, userID string) (int64, error)
}
