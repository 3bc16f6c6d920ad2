package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

type UserService struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, tasks ports.TaskRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, tasks: tasks, logger: logger}
}

func (s *UserService) Create(ctx context.Context, scope domain.AccessScope, in ports.CreateUserInput) (*domain.User, error) {
	role, ok := domain.CanonicalRole(in.Role)
	if !ok {
		return nil, domain.Validationf("unknown role %q", in.Role)
	}
	if err := scope.CanManageUser(role, in.ClientID); err != nil {
		return nil, err
	}
	if in.Email == "" || in.Password == "" {
		return nil, domain.Validationf("email and password are required")
	}
	if role.IsClientScoped() && in.ClientID == "" {
		return nil, domain.Validationf("client role requires a client")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		ClientID:     in.ClientID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pred := scope.UserScope(); pred.ClientID != "" && user.ClientID != pred.ClientID {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, scope domain.AccessScope, in ports.ListUsersInput) ([]*domain.User, int64, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	return s.users.List(ctx, ports.ListUsersFilter{
		Scope:  scope.UserScope(),
		Role:   in.Role,
		Search: in.Search,
		Page:   page,
		Limit:  limit,
	})
}

// Update re-fetches the target and re-checks tenant ownership at mutation
// time; a stale or forged id from another tenant fails with ErrForbidden.
func (s *UserService) Update(ctx context.Context, scope domain.AccessScope, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.CanManageUser(user.Role, user.ClientID); err != nil {
		return nil, err
	}
	if err := scope.EnsureSameClient(user.ClientID); err != nil {
		return nil, err
	}

	if in.Role != nil {
		role, ok := domain.CanonicalRole(*in.Role)
		if !ok {
			return nil, domain.Validationf("unknown role %q", *in.Role)
		}
		target := user.ClientID
		if in.ClientID != nil {
			target = *in.ClientID
		}
		// Role or tenant escalation is checked against the new values too.
		if err := scope.CanManageUser(role, target); err != nil {
			return nil, err
		}
		user.Role = role
	}
	if in.ClientID != nil {
		if err := scope.EnsureSameClient(*in.ClientID); err != nil {
			return nil, err
		}
		user.ClientID = *in.ClientID
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete refuses while the user still has assigned tasks.
func (s *UserService) Delete(ctx context.Context, scope domain.AccessScope, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := scope.CanManageUser(user.Role, user.ClientID); err != nil {
		return err
	}
	if err := scope.EnsureSameClient(user.ClientID); err != nil {
		return err
	}

	assigned, err := s.tasks.CountByAssignee(ctx, id)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return domain.ErrUserHasAssignedTasks
	}

	return s.users.Delete(ctx, id)
}

var _ ports.UserService = (*UserService)(nil)
