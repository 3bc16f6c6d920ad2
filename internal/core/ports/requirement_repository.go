package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// ListRequirementsFilter carries query parameters for listing requirements.
type ListRequirementsFilter struct {
	Scope    domain.ScopePredicate
	Type     string
	Status   string
	ParentID string
	Page     int
	Limit    int
}

// RequirementRepository defines persistence operations for requirements and
// their activity trail.
type RequirementRepository interface {
	// Create inserts the requirement and its CREATED activity atomically.
	Create(ctx context.Context, r *domain.Requirement, created domain.Activity) (*domain.Requirement, error)
	FindByID(ctx context.Context, id string) (*domain.Requirement, error)
	List(ctx context.Context, filter ListRequirementsFilter) ([]*domain.Requirement, int64, error)
	// Update persists the requirement and appends activity entries in the
	// same transaction.
	Update(ctx context.Context, r *domain.Requirement, entries []domain.Activity) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, parentID string) (int64, error)
	ListActivities(ctx context.Context, requirementID string) ([]*domain.Activity, error)
}
