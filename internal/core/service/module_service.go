package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

type ModuleService struct {
	modules  ports.ModuleRepository
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewModuleService(modules ports.ModuleRepository, projects ports.ProjectRepository, logger zerolog.Logger) *ModuleService {
	return &ModuleService{modules: modules, projects: projects, logger: logger}
}

func (s *ModuleService) Create(ctx context.Context, scope domain.AccessScope, in ports.ModuleInput) (*domain.Module, error) {
	if scope.Role().IsClientScoped() {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.Validationf("name is required")
	}

	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := ensureProjectScoped(scope, project); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	module, err := s.modules.Create(ctx, &domain.Module{
		ProjectID:   in.ProjectID,
		Name:        in.Name,
		Description: in.Description,
		Multiplier:  in.Multiplier,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("module_id", module.ID).Str("project_id", in.ProjectID).Msg("module created")
	return module, nil
}

func (s *ModuleService) Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.Module, error) {
	module, err := s.modules.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureModuleVisible(ctx, scope, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ModuleService) List(ctx context.Context, scope domain.AccessScope, in ports.ListModulesInput) ([]*domain.Module, int64, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	filter := ports.ListModulesFilter{
		ProjectID: in.ProjectID,
		Search:    in.Search,
		Page:      page,
		Limit:     limit,
	}

	// Client-bound callers see only modules of their tenant's projects. With
	// an explicit project the project's tenant is checked directly, otherwise
	// the caller's whole project set is derived first.
	if scope.ClientID() != "" {
		if in.ProjectID != "" {
			project, err := s.projects.FindByID(ctx, in.ProjectID)
			if err != nil {
				return nil, 0, err
			}
			if project.ClientID != scope.ClientID() {
				return nil, 0, domain.ErrForbidden
			}
		} else {
			ids, err := s.projects.ListIDsByClient(ctx, scope.ClientID())
			if err != nil {
				return nil, 0, err
			}
			filter.ProjectIDs = ids
		}
	}

	return s.modules.List(ctx, filter)
}

func (s *ModuleService) Update(ctx context.Context, scope domain.AccessScope, id string, in ports.ModuleInput) (*domain.Module, error) {
	if scope.Role().IsClientScoped() {
		return nil, domain.ErrForbidden
	}
	module, err := s.modules.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureModuleVisible(ctx, scope, module); err != nil {
		return nil, err
	}

	if in.Name != "" {
		module.Name = in.Name
	}
	if in.Description != "" {
		module.Description = in.Description
	}
	if in.Multiplier != nil {
		module.Multiplier = in.Multiplier
	}
	module.UpdatedAt = time.Now().UTC()

	if err := s.modules.Update(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ModuleService) Delete(ctx context.Context, scope domain.AccessScope, id string) error {
	if scope.Role().IsClientScoped() {
		return domain.ErrForbidden
	}
	module, err := s.modules.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureModuleVisible(ctx, scope, module); err != nil {
		return err
	}
	return s.modules.Delete(ctx, id)
}

func (s *ModuleService) ensureModuleVisible(ctx context.Context, scope domain.AccessScope, module *domain.Module) error {
	project, err := s.projects.FindByID(ctx, module.ProjectID)
	if err != nil {
		return err
	}
	return ensureProjectScoped(scope, project)
}

var _ ports.ModuleService = (*ModuleService)(nil)
