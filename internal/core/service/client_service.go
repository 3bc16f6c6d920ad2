package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

type ClientService struct {
	clients  ports.ClientRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, projects ports.ProjectRepository, users ports.UserRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, projects: projects, users: users, logger: logger}
}

func (s *ClientService) Create(ctx context.Context, scope domain.AccessScope, in ports.ClientInput) (*domain.Client, error) {
	if scope.Role() != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.Validationf("name is required")
	}

	now := time.Now().UTC()
	client, err := s.clients.Create(ctx, &domain.Client{
		Name:       in.Name,
		Multiplier: in.Multiplier,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", client.ID).Str("name", client.Name).Msg("client created")
	return client, nil
}

// Get allows admin and staff any client; client-scoped callers only their
// own tenant.
func (s *ClientService) Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scope.Role().IsClientScoped() && client.ID != scope.ClientID() {
		return nil, domain.ErrForbidden
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, scope domain.AccessScope, filter ports.ListClientsFilter) ([]*domain.Client, int64, error) {
	if scope.Role().IsClientScoped() {
		client, err := s.clients.FindByID(ctx, scope.ClientID())
		if err != nil {
			return nil, 0, err
		}
		return []*domain.Client{client}, 1, nil
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.clients.List(ctx, filter)
}

func (s *ClientService) Update(ctx context.Context, scope domain.AccessScope, id string, in ports.ClientInput) (*domain.Client, error) {
	if scope.Role() != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		client.Name = in.Name
	}
	if in.Multiplier != nil {
		client.Multiplier = in.Multiplier
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete refuses while users or projects still belong to the client.
func (s *ClientService) Delete(ctx context.Context, scope domain.AccessScope, id string) error {
	if scope.Role() != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return err
	}

	userCount, err := s.users.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	projectCount, err := s.projects.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	if userCount > 0 || projectCount > 0 {
		return domain.ErrClientHasDependents
	}

	return s.clients.Delete(ctx, id)
}

var _ ports.ClientService = (*ClientService)(nil)
