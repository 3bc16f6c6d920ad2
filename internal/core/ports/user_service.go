package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// CreateUserInput carries user creation fields.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	ClientID string
}

// UpdateUserInput carries a partial user update.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *string
	ClientID *string
}

// ListUsersInput carries caller-supplied list parameters.
type ListUsersInput struct {
	Role   string
	Search string
	Page   int
	Limit  int
}

// UserService defines use-case operations for users. Scope rules: admin
// manages everyone; client_admin manages client-role users of its own
// tenant only; everyone else is read-only within their scope.
type UserService interface {
	Create(ctx context.Context, scope domain.AccessScope, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.User, error)
	List(ctx context.Context, scope domain.AccessScope, in ListUsersInput) ([]*domain.User, int64, error)
	Update(ctx context.Context, scope domain.AccessScope, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, scope domain.AccessScope, id string) error
}
