package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

func newClientFixture(t *testing.T) (*ClientService, *stubClientRepo, *stubProjectRepo, *stubUserRepo) {
	t.Helper()
	clients := newStubClientRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	return NewClientService(clients, projects, users, zerolog.Nop()), clients, projects, users
}

func TestClientService_Create_AdminOnly(t *testing.T) {
	svc, _, _, _ := newClientFixture(t)
	ctx := context.Background()

	staff := domain.NewAccessScope(domain.RoleStaff, "u-staff", "")
	if _, err := svc.Create(ctx, staff, ports.ClientInput{Name: "Acme"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("staff must not create clients, got %v", err)
	}

	admin := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	created, err := svc.Create(ctx, admin, ports.ClientInput{Name: "Acme", Multiplier: mulPtr(1.5)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Multiplier == nil || *created.Multiplier != 1.5 {
		t.Fatalf("multiplier not stored: %+v", created)
	}
}

func TestClientService_Create_DuplicateName(t *testing.T) {
	svc, _, _, _ := newClientFixture(t)
	admin := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	ctx := context.Background()

	if _, err := svc.Create(ctx, admin, ports.ClientInput{Name: "Acme"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(ctx, admin, ports.ClientInput{Name: "Acme"}); !errors.Is(err, domain.ErrDuplicateClientName) {
		t.Fatalf("expected ErrDuplicateClientName, got %v", err)
	}
}

func TestClientService_Get_TenantPinned(t *testing.T) {
	svc, clients, _, _ := newClientFixture(t)
	ctx := context.Background()

	clients.add(&domain.Client{ID: "c1", Name: "Acme"})
	clients.add(&domain.Client{ID: "c2", Name: "Globex"})

	scope := domain.NewAccessScope(domain.RoleClientUser, "u-1", "c1")
	if _, err := svc.Get(ctx, scope, "c1"); err != nil {
		t.Fatalf("own tenant read failed: %v", err)
	}
	if _, err := svc.Get(ctx, scope, "c2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign tenant read must be forbidden, got %v", err)
	}
}

func TestClientService_List_ClientSeesOnlyItself(t *testing.T) {
	svc, clients, _, _ := newClientFixture(t)

	clients.add(&domain.Client{ID: "c1", Name: "Acme"})
	clients.add(&domain.Client{ID: "c2", Name: "Globex"})

	scope := domain.NewAccessScope(domain.RoleClientAdmin, "u-1", "c1")
	items, total, err := svc.List(context.Background(), scope, ports.ListClientsFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != "c1" {
		t.Fatalf("client listing must collapse to the own tenant: %+v", items)
	}
}

func TestClientService_Delete_RefusesWithDependents(t *testing.T) {
	svc, clients, projects, users := newClientFixture(t)
	admin := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	ctx := context.Background()

	clients.add(&domain.Client{ID: "c1", Name: "Acme"})
	projects.add(&domain.Project{ID: "p1", ClientID: "c1"})

	if err := svc.Delete(ctx, admin, "c1"); !errors.Is(err, domain.ErrClientHasDependents) {
		t.Fatalf("project dependents must block the delete, got %v", err)
	}

	projects.Delete(ctx, "p1")
	users.add(&domain.User{ID: "u-1", Email: "a@example.com", ClientID: "c1"})
	if err := svc.Delete(ctx, admin, "c1"); !errors.Is(err, domain.ErrClientHasDependents) {
		t.Fatalf("user dependents must block the delete, got %v", err)
	}

	users.Delete(ctx, "u-1")
	if err := svc.Delete(ctx, admin, "c1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := clients.FindByID(ctx, "c1"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("client should be gone, got %v", err)
	}
}
