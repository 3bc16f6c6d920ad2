package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// ListUsersFilter carries query parameters for listing users.
type ListUsersFilter struct {
	Scope  domain.ScopePredicate
	Role   string
	Search string // optional: partial match on name or email
	Page   int
	Limit  int
}

// UserRepository defines persistence operations for users. Stored role
// values are canonicalised on decode (legacy "client" reads as client_user).
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
	// NamesByIDs resolves display names for activity entries; unknown ids
	// are omitted.
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
	CountByClient(ctx context.Context, clientID string) (int64, error)
}
