package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// ClientInput carries client create/update fields.
type ClientInput struct {
	Name       string
	Multiplier *float64
}

// ClientService defines use-case operations for clients. All operations are
// admin-only except Get, which client-scoped callers may use on their own
// tenant.
type ClientService interface {
	Create(ctx context.Context, scope domain.AccessScope, in ClientInput) (*domain.Client, error)
	Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.Client, error)
	List(ctx context.Context, scope domain.AccessScope, filter ListClientsFilter) ([]*domain.Client, int64, error)
	Update(ctx context.Context, scope domain.AccessScope, id string, in ClientInput) (*domain.Client, error)
	// Delete fails with ErrClientHasDependents while users or projects
	// still reference the client.
	Delete(ctx context.Context, scope domain.AccessScope, id string) error
}
