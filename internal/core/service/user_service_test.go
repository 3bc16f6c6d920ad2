package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

func newUserFixture(t *testing.T) (*UserService, *stubUserRepo, *stubTaskRepo) {
	t.Helper()
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	return NewUserService(users, tasks, zerolog.Nop()), users, tasks
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")

	created, err := svc.Create(context.Background(), scope, ports.CreateUserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secretsecret",
		Role:     "staff",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.PasswordHash == "secretsecret" {
		t.Fatalf("password must never be stored in clear")
	}

	stored, _ := users.FindByID(context.Background(), created.ID)
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secretsecret")) != nil {
		t.Fatalf("stored hash does not verify the original password")
	}
}

func TestUserService_Create_LegacyRoleCanonicalised(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")

	created, err := svc.Create(context.Background(), scope, ports.CreateUserInput{
		Email:    "bob@example.com",
		Password: "secretsecret",
		Role:     "client",
		ClientID: "c1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Role != domain.RoleClientUser {
		t.Fatalf("legacy role must canonicalise to client_user, got %s", created.Role)
	}
}

func TestUserService_Create_ClientRoleRequiresClient(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")

	_, err := svc.Create(context.Background(), scope, ports.CreateUserInput{
		Email:    "bob@example.com",
		Password: "secretsecret",
		Role:     "client_user",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("client role without a client must fail validation, got %v", err)
	}
}

func TestUserService_Create_ClientAdminBounds(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	scope := domain.NewAccessScope(domain.RoleClientAdmin, "u-ca", "c1")
	ctx := context.Background()

	// Own tenant, client role: allowed.
	if _, err := svc.Create(ctx, scope, ports.CreateUserInput{
		Email: "a@example.com", Password: "secretsecret", Role: "client_user", ClientID: "c1",
	}); err != nil {
		t.Fatalf("client_admin must manage own tenant client users: %v", err)
	}

	// Staff role: escalation.
	if _, err := svc.Create(ctx, scope, ports.CreateUserInput{
		Email: "b@example.com", Password: "secretsecret", Role: "staff",
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("client_admin must not create staff, got %v", err)
	}

	// Other tenant: forbidden.
	if _, err := svc.Create(ctx, scope, ports.CreateUserInput{
		Email: "c@example.com", Password: "secretsecret", Role: "client_user", ClientID: "c2",
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("client_admin must not reach other tenants, got %v", err)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")

	users.add(&domain.User{ID: "u-1", Email: "alice@example.com"})

	_, err := svc.Create(context.Background(), scope, ports.CreateUserInput{
		Email: "alice@example.com", Password: "secretsecret", Role: "staff",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_EscalationCheckedAgainstNewValues(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	scope := domain.NewAccessScope(domain.RoleClientAdmin, "u-ca", "c1")
	ctx := context.Background()

	users.add(&domain.User{ID: "u-1", Email: "a@example.com", Role: domain.RoleClientUser, ClientID: "c1"})

	role := "staff"
	if _, err := svc.Update(ctx, scope, "u-1", ports.UpdateUserInput{Role: &role}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("promotion to staff must be rejected, got %v", err)
	}

	role = "client_admin"
	updated, err := svc.Update(ctx, scope, "u-1", ports.UpdateUserInput{Role: &role})
	if err != nil {
		t.Fatalf("in-tenant promotion failed: %v", err)
	}
	if updated.Role != domain.RoleClientAdmin {
		t.Fatalf("expected client_admin, got %s", updated.Role)
	}
}

func TestUserService_Update_CrossTenantMoveForbidden(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	scope := domain.NewAccessScope(domain.RoleClientAdmin, "u-ca", "c1")

	users.add(&domain.User{ID: "u-1", Email: "a@example.com", Role: domain.RoleClientUser, ClientID: "c1"})

	other := "c2"
	if _, err := svc.Update(context.Background(), scope, "u-1", ports.UpdateUserInput{ClientID: &other}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("moving a user out of the tenant must be forbidden, got %v", err)
	}
}

func TestUserService_Delete_BlockedByAssignedTasks(t *testing.T) {
	svc, users, tasks := newUserFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	ctx := context.Background()

	users.add(&domain.User{ID: "u-1", Email: "a@example.com", Role: domain.RoleStaff})
	tasks.add(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task", AssigneeIDs: []string{"u-1"}})

	if err := svc.Delete(ctx, scope, "u-1"); !errors.Is(err, domain.ErrUserHasAssignedTasks) {
		t.Fatalf("expected ErrUserHasAssignedTasks, got %v", err)
	}

	// Unassign, then the delete goes through.
	tasks.byID["t1"].AssigneeIDs = nil
	if err := svc.Delete(ctx, scope, "u-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := users.FindByID(ctx, "u-1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
}

func TestUserService_List_ClientScopePinned(t *testing.T) {
	svc, users, _ := newUserFixture(t)

	users.add(&domain.User{ID: "u-1", Email: "a@example.com", Role: domain.RoleClientUser, ClientID: "c1"})
	users.add(&domain.User{ID: "u-2", Email: "b@example.com", Role: domain.RoleClientUser, ClientID: "c2"})

	scope := domain.NewAccessScope(domain.RoleClientAdmin, "u-ca", "c1")
	items, total, err := svc.List(context.Background(), scope, ports.ListUsersInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != "u-1" {
		t.Fatalf("client listing must be tenant-pinned: %+v", items)
	}
}
