package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// ListModulesFilter carries query parameters for listing modules.
// When ProjectID is empty and the caller is client-scoped, the service
// resolves ProjectIDs from the caller's client first.
type ListModulesFilter struct {
	ProjectID  string
	ProjectIDs []string // optional: restrict to this project set
	Search     string
	Page       int
	Limit      int
}

// ModuleRepository defines persistence operations for modules.
type ModuleRepository interface {
	Create(ctx context.Context, m *domain.Module) (*domain.Module, error)
	FindByID(ctx context.Context, id string) (*domain.Module, error)
	List(ctx context.Context, filter ListModulesFilter) ([]*domain.Module, int64, error)
	// ListByProject returns all modules of a project sorted by name; used by
	// the report aggregator.
	ListByProject(ctx context.Context, projectID string) ([]*domain.Module, error)
	Update(ctx context.Context, m *domain.Module) error
	Delete(ctx context.Context, id string) error
}
