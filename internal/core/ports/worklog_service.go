package ports

import (
	"context"
	"time"

	"github.com/officedesk/office-console/internal/core/domain"
)

// CreateWorkLogInput carries the data for logging time against a task.
type CreateWorkLogInput struct {
	TaskID    string
	StartTime time.Time
	EndTime   time.Time
	Note      string
}

// WorkLogService defines use-case operations for work logs.
type WorkLogService interface {
	Create(ctx context.Context, scope domain.AccessScope, in CreateWorkLogInput) (*domain.WorkLog, error)
	ListByTask(ctx context.Context, scope domain.AccessScope, taskID string) ([]*domain.WorkLog, error)
	// Delete removes a work log; only the logging user may delete it.
	Delete(ctx context.Context, scope domain.AccessScope, id string) error
}
