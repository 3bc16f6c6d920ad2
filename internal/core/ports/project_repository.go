package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// ListProjectsFilter carries all query parameters for listing projects.
// Scope is always populated by the service layer from the caller's
// AccessScope; repositories apply it verbatim.
type ListProjectsFilter struct {
	Scope    domain.ScopePredicate
	Status   string // optional: filter by project status
	ClientID string // optional explicit filter, conjunctive with Scope
	Search   string // optional: partial match on name
	Page     int    // 1-based
	Limit    int
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)
	// ListIDsByClient resolves all project ids under a client; used to derive
	// module/task scoping for client-bound callers.
	ListIDsByClient(ctx context.Context, clientID string) ([]string, error)
	// ListAll returns every project matching the scope, sorted by name, with
	// no pagination; id optionally narrows to one project. Used by the
	// report aggregator, which scopes identically to the plain list.
	ListAll(ctx context.Context, scope domain.ScopePredicate, id string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	CountByClient(ctx context.Context, clientID string) (int64, error)
}
