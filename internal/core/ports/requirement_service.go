package ports

import (
	"context"

	"github.com/officedesk/office-console/internal/core/domain"
)

// CreateRequirementInput carries requirement creation fields.
type CreateRequirementInput struct {
	ClientID    string
	ParentID    string
	Title       string
	Description string
	Type        string
	Priority    string
}

// UpdateRequirementInput carries a partial requirement update.
type UpdateRequirementInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
}

// ListRequirementsInput carries caller-supplied list parameters.
type ListRequirementsInput struct {
	Type     string
	Status   string
	ParentID string
	Page     int
	Limit    int
}

// RequirementService defines use-case operations for requirements.
type RequirementService interface {
	Create(ctx context.Context, scope domain.AccessScope, in CreateRequirementInput) (*domain.Requirement, error)
	Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.Requirement, error)
	List(ctx context.Context, scope domain.AccessScope, in ListRequirementsInput) ([]*domain.Requirement, int64, error)
	Update(ctx context.Context, scope domain.AccessScope, id string, in UpdateRequirementInput) (*domain.Requirement, error)
	// Delete fails with ErrRequirementHasChildren while child requirements
	// exist.
	Delete(ctx context.Context, scope domain.AccessScope, id string) error
	Activities(ctx context.Context, scope domain.AccessScope, id string) ([]*domain.Activity, error)
}
