package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// ModuleInput carries module create/update fields.
type ModuleInput struct {
	ProjectID   string
	Name        string
	Description string
	Multiplier  *float64
}

// ListModulesInput carries caller-supplied list parameters.
type ListModulesInput struct {
	ProjectID string
	Search    string
	Page      int
	Limit     int
}

// ModuleService defines use-case operations for modules.
type ModuleService interface {
	Create(ctx context.Context, scope domain.AccessScope, in ModuleInput) (*domain.Module, error)
	Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.Module, error)
	List(ctx context.Context, scope domain.AccessScope, in ListModulesInput) ([]*domain.Module, int64, error)
	Update(ctx context.Context, scope domain.AccessScope, id string, in ModuleInput) (*domain.Module, error)
	Delete(ctx context.Context, scope domain.AccessScope, id string) error
}
