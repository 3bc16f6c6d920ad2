package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

type RequirementService struct {
	requirements ports.RequirementRepository
	clients      ports.ClientRepository
	logger       zerolog.Logger
}

func NewRequirementService(requirements ports.RequirementRepository, clients ports.ClientRepository, logger zerolog.Logger) *RequirementService {
	return &RequirementService{requirements: requirements, clients: clients, logger: logger}
}

// Create validates the type rules (a change request must reference its
// parent) and inserts the requirement with its CREATED activity. Staff is
// read-only on requirements.
func (s *RequirementService) Create(ctx context.Context, scope domain.AccessScope, in ports.CreateRequirementInput) (*domain.Requirement, error) {
	if scope.Role() == domain.RoleStaff {
		return nil, domain.ErrForbidden
	}
	if in.Title == "" {
		return nil, domain.Validationf("title is required")
	}

	reqType := domain.RequirementType(in.Type)
	if !reqType.IsValid() {
		return nil, domain.ErrInvalidRequirementType
	}
	if reqType == domain.RequirementChangeRequest && in.ParentID == "" {
		return nil, domain.ErrChangeRequestNeedsParent
	}
	if in.ParentID != "" {
		parent, err := s.requirements.FindByID(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		if err := scope.EnsureSameClient(parent.ClientID); err != nil {
			return nil, err
		}
	}

	clientID := in.ClientID
	if scope.Role().IsClientScoped() {
		clientID = scope.ClientID()
	}
	if clientID != "" {
		if _, err := s.clients.FindByID(ctx, clientID); err != nil {
			return nil, err
		}
	}

	priority := domain.TaskPriority(in.Priority)
	if in.Priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, domain.ErrInvalidTaskPriority
	}

	now := time.Now().UTC()
	requirement := &domain.Requirement{
		ClientID:    clientID,
		ParentID:    in.ParentID,
		Title:       in.Title,
		Description: in.Description,
		Type:        reqType,
		Status:      domain.RequirementOpen,
		Priority:    priority,
		CreatedBy:   scope.UserID(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.requirements.Create(ctx, requirement, domain.NewCreatedActivity("", scope.UserID(), now))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create requirement")
		return nil, err
	}

	s.logger.Info().Str("requirement_id", created.ID).Str("type", string(created.Type)).Msg("requirement created")
	return created, nil
}

func (s *RequirementService) Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.Requirement, error) {
	requirement, err := s.requirements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pred := scope.RequirementScope(); pred.ClientID != "" && requirement.ClientID != pred.ClientID {
		return nil, domain.ErrForbidden
	}
	return requirement, nil
}

func (s *RequirementService) List(ctx context.Context, scope domain.AccessScope, in ports.ListRequirementsInput) ([]*domain.Requirement, int64, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	return s.requirements.List(ctx, ports.ListRequirementsFilter{
		Scope:    scope.RequirementScope(),
		Type:     in.Type,
		Status:   in.Status,
		ParentID: in.ParentID,
		Page:     page,
		Limit:    limit,
	})
}

// Update diffs the patch before applying it and persists requirement and
// activity entries together. The tenant re-check runs against the freshly
// fetched row, not the caller's claim of it.
func (s *RequirementService) Update(ctx context.Context, scope domain.AccessScope, id string, in ports.UpdateRequirementInput) (*domain.Requirement, error) {
	if scope.Role() == domain.RoleStaff {
		return nil, domain.ErrForbidden
	}
	requirement, err := s.requirements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.EnsureSameClient(requirement.ClientID); err != nil {
		return nil, err
	}

	patch := domain.RequirementPatch{
		Title:       in.Title,
		Description: in.Description,
	}
	if in.Status != nil {
		status := domain.RequirementStatus(*in.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidRequirementStatus
		}
		patch.Status = &status
	}
	if in.Priority != nil {
		priority := domain.TaskPriority(*in.Priority)
		if !priority.IsValid() {
			return nil, domain.ErrInvalidTaskPriority
		}
		patch.Priority = &priority
	}

	now := time.Now().UTC()
	entries := domain.DiffRequirement(requirement, patch, scope.UserID(), now)

	if patch.Title != nil {
		requirement.Title = *patch.Title
	}
	if patch.Description != nil {
		requirement.Description = *patch.Description
	}
	if patch.Status != nil {
		requirement.Status = *patch.Status
	}
	if patch.Priority != nil {
		requirement.Priority = *patch.Priority
	}
	requirement.UpdatedAt = now

	if err := s.requirements.Update(ctx, requirement, entries); err != nil {
		return nil, err
	}
	return requirement, nil
}

// Delete refuses while child requirements reference this one.
func (s *RequirementService) Delete(ctx context.Context, scope domain.AccessScope, id string) error {
	if scope.Role() == domain.RoleStaff {
		return domain.ErrForbidden
	}
	requirement, err := s.requirements.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := scope.EnsureSameClient(requirement.ClientID); err != nil {
		return err
	}

	children, err := s.requirements.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return domain.ErrRequirementHasChildren
	}

	return s.requirements.Delete(ctx, id)
}

func (s *RequirementService) Activities(ctx context.Context, scope domain.AccessScope, id string) ([]*domain.Activity, error) {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return nil, err
	}
	return s.requirements.ListActivities(ctx, id)
}

var _ ports.RequirementService = (*RequirementService)(nil)
