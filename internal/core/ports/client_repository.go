package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// ListClientsFilter carries query parameters for listing clients.
type ListClientsFilter struct {
	Search string // optional: partial match on name
	Page   int    // 1-based
	Limit  int    // max rows per page (capped by service)
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, filter ListClientsFilter) ([]*domain.Client, int64, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}
