package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

type ProjectService struct {
	projects ports.ProjectRepository
	clients  ports.ClientRepository
	logger   zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, clients ports.ClientRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, clients: clients, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, scope domain.AccessScope, in ports.CreateProjectInput) (*domain.Project, error) {
	if scope.Role().IsClientScoped() {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.Validationf("name is required")
	}

	status := domain.ProjectStatus(in.Status)
	if in.Status == "" {
		status = domain.ProjectOngoing
	}
	if !status.IsValid() {
		return nil, domain.ErrInvalidProjectStatus
	}

	// ClientID is optional; internal projects have none.
	if in.ClientID != "" {
		if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	project, err := s.projects.Create(ctx, &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		ClientID:    in.ClientID,
		Status:      status,
		Multiplier:  in.Multiplier,
		CreatedBy:   scope.UserID(),
		MemberIDs:   in.MemberIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", project.ID).Str("name", project.Name).Msg("project created")
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureProjectScoped(scope, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, scope domain.AccessScope, in ports.ListProjectsInput) ([]*domain.Project, int64, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	return s.projects.List(ctx, ports.ListProjectsFilter{
		Scope:    scope.ProjectScope(),
		Status:   in.Status,
		ClientID: in.ClientID,
		Search:   in.Search,
		Page:     page,
		Limit:    limit,
	})
}

func (s *ProjectService) Update(ctx context.Context, scope domain.AccessScope, id string, in ports.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureProjectScoped(scope, project); err != nil {
		return nil, err
	}
	if scope.Role().IsClientScoped() {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Status != nil {
		status := domain.ProjectStatus(*in.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidProjectStatus
		}
		project.Status = status
	}
	if in.Multiplier != nil {
		project.Multiplier = in.Multiplier
	}
	if in.MemberIDs != nil {
		project.MemberIDs = in.MemberIDs
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, scope domain.AccessScope, id string) error {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if scope.Role() != domain.RoleAdmin && project.CreatedBy != scope.UserID() {
		return domain.ErrForbidden
	}
	return s.projects.Delete(ctx, id)
}

// ensureProjectScoped mirrors the repository list predicate for single-row
// fetches: the row exists, now check the caller may see it.
func ensureProjectScoped(scope domain.AccessScope, project *domain.Project) error {
	pred := scope.ProjectScope()
	if pred.ClientID != "" && project.ClientID != pred.ClientID {
		return domain.ErrForbidden
	}
	if pred.ParticipantID != "" && project.CreatedBy != pred.ParticipantID && !project.HasMember(pred.ParticipantID) {
		return domain.ErrForbidden
	}
	return nil
}

var _ ports.ProjectService = (*ProjectService)(nil)
