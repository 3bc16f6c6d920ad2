package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// AuthService handles registration and login. Registration of non-admin
// roles is scope-checked by the user service; this port only covers the
// credential flow.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role, clientID string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
