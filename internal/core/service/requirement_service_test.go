package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

func newRequirementFixture(t *testing.T) (*RequirementService, *stubRequirementRepo, *stubClientRepo) {
	t.Helper()
	requirements := newStubRequirementRepo()
	clients := newStubClientRepo()
	return NewRequirementService(requirements, clients, zerolog.Nop()), requirements, clients
}

func TestRequirementService_Create_Defaults(t *testing.T) {
	svc, requirements, clients := newRequirementFixture(t)
	scope := domain.NewAccessScope(domain.RoleClientUser, "u-1", "c1")

	clients.add(&domain.Client{ID: "c1", Name: "Acme"})

	created, err := svc.Create(context.Background(), scope, ports.CreateRequirementInput{
		Title: "Login page",
		Type:  "feature",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != domain.RequirementOpen {
		t.Fatalf("new requirements open, got %s", created.Status)
	}
	if created.Priority != domain.PriorityMedium {
		t.Fatalf("expected default priority medium, got %s", created.Priority)
	}
	// Client callers are pinned to their own tenant regardless of input.
	if created.ClientID != "c1" {
		t.Fatalf("expected tenant c1, got %s", created.ClientID)
	}

	entries, _ := requirements.ListActivities(context.Background(), created.ID)
	if len(entries) != 1 || entries[0].Type != domain.ActivityCreated {
		t.Fatalf("expected one CREATED activity, got %+v", entries)
	}
}

func TestRequirementService_Create_ChangeRequestNeedsParent(t *testing.T) {
	svc, requirements, clients := newRequirementFixture(t)
	scope := domain.NewAccessScope(domain.RoleClientUser, "u-1", "c1")
	ctx := context.Background()

	clients.add(&domain.Client{ID: "c1", Name: "Acme"})

	_, err := svc.Create(ctx, scope, ports.CreateRequirementInput{Title: "Change", Type: "change_request"})
	if !errors.Is(err, domain.ErrChangeRequestNeedsParent) {
		t.Fatalf("expected ErrChangeRequestNeedsParent, got %v", err)
	}

	requirements.Create(ctx, &domain.Requirement{ID: "r1", ClientID: "c1", Title: "Base", Type: domain.RequirementFeature}, domain.Activity{})
	created, err := svc.Create(ctx, scope, ports.CreateRequirementInput{
		Title:    "Change",
		Type:     "change_request",
		ParentID: "r1",
	})
	if err != nil {
		t.Fatalf("create with parent failed: %v", err)
	}
	if created.ParentID != "r1" {
		t.Fatalf("parent not linked: %+v", created)
	}
}

func TestRequirementService_Create_ParentMustShareTenant(t *testing.T) {
	svc, requirements, clients := newRequirementFixture(t)
	scope := domain.NewAccessScope(domain.RoleClientUser, "u-1", "c1")
	ctx := context.Background()

	clients.add(&domain.Client{ID: "c1", Name: "Acme"})
	requirements.Create(ctx, &domain.Requirement{ID: "r1", ClientID: "c2", Title: "Base", Type: domain.RequirementFeature}, domain.Activity{})

	_, err := svc.Create(ctx, scope, ports.CreateRequirementInput{
		Title:    "Change",
		Type:     "change_request",
		ParentID: "r1",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("cross-tenant parent must be forbidden, got %v", err)
	}
}

func TestRequirementService_StaffIsReadOnly(t *testing.T) {
	svc, requirements, _ := newRequirementFixture(t)
	staff := domain.NewAccessScope(domain.RoleStaff, "u-staff", "")
	ctx := context.Background()

	requirements.Create(ctx, &domain.Requirement{ID: "r1", Title: "Base", Type: domain.RequirementFeature}, domain.Activity{})

	if _, err := svc.Create(ctx, staff, ports.CreateRequirementInput{Title: "X", Type: "feature"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("staff create must be forbidden, got %v", err)
	}
	if _, err := svc.Update(ctx, staff, "r1", ports.UpdateRequirementInput{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("staff update must be forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, staff, "r1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("staff delete must be forbidden, got %v", err)
	}
	// Reading stays open.
	if _, err := svc.Get(ctx, staff, "r1"); err != nil {
		t.Fatalf("staff read failed: %v", err)
	}
}

func TestRequirementService_Update_RecordsDiff(t *testing.T) {
	svc, requirements, _ := newRequirementFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	ctx := context.Background()

	requirements.Create(ctx, &domain.Requirement{
		ID: "r1", Title: "Base", Type: domain.RequirementFeature,
		Status: domain.RequirementOpen, Priority: domain.PriorityMedium,
	}, domain.Activity{})

	status := "in_progress"
	updated, err := svc.Update(ctx, scope, "r1", ports.UpdateRequirementInput{Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.RequirementInProgress {
		t.Fatalf("status not applied: %s", updated.Status)
	}

	entries, _ := requirements.ListActivities(ctx, "r1")
	// Seeded entry plus the status change, newest first.
	if len(entries) != 2 || entries[0].Field != "status" || entries[0].NewValue != "in_progress" {
		t.Fatalf("expected a status field_change on top, got %+v", entries)
	}
}

func TestRequirementService_Delete_RefusesWithChildren(t *testing.T) {
	svc, requirements, _ := newRequirementFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	ctx := context.Background()

	requirements.Create(ctx, &domain.Requirement{ID: "r1", Title: "Base", Type: domain.RequirementFeature}, domain.Activity{})
	requirements.Create(ctx, &domain.Requirement{ID: "r2", ParentID: "r1", Title: "Change", Type: domain.RequirementChangeRequest}, domain.Activity{})

	if err := svc.Delete(ctx, scope, "r1"); !errors.Is(err, domain.ErrRequirementHasChildren) {
		t.Fatalf("expected ErrRequirementHasChildren, got %v", err)
	}

	if err := svc.Delete(ctx, scope, "r2"); err != nil {
		t.Fatalf("leaf delete failed: %v", err)
	}
	if err := svc.Delete(ctx, scope, "r1"); err != nil {
		t.Fatalf("delete after removing the child failed: %v", err)
	}
}
