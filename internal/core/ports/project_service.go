package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// CreateProjectInput carries project creation fields.
type CreateProjectInput struct {
	Name        string
	Description string
	ClientID    string
	Status      string
	Multiplier  *float64
	MemberIDs   []string
}

// UpdateProjectInput carries a partial project update.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *string
	Multiplier  *float64
	MemberIDs   []string
}

// ListProjectsInput carries caller-supplied list parameters.
type ListProjectsInput struct {
	Status   string
	ClientID string
	Search   string
	Page     int
	Limit    int
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	Create(ctx context.Context, scope domain.AccessScope, in CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.Project, error)
	List(ctx context.Context, scope domain.AccessScope, in ListProjectsInput) ([]*domain.Project, int64, error)
	Update(ctx context.Context, scope domain.AccessScope, id string, in UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, scope domain.AccessScope, id string) error
}
