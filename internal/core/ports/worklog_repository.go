package ports

import (
	"context"
	"time"

	"github.com/officedesk/office-console/internal/core/domain"
)

// WorkLogRepository defines persistence operations for work logs.
type WorkLogRepository interface {
	Create(ctx context.Context, w *domain.WorkLog) (*domain.WorkLog, error)
	FindByID(ctx context.Context, id string) (*domain.WorkLog, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.WorkLog, error)
	// ListForRange returns the work logs of the given tasks whose start time
	// falls inside [from, to]; a nil bound is open.
	ListForRange(ctx context.Context, taskIDs []string, from, to *time.Time) ([]*domain.WorkLog, error)
	Delete(ctx context.Context, id string) error
}
