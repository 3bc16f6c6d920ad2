package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func newTaskFixture(t *testing.T) (*TaskService, *stubTaskRepo, *stubProjectRepo, *stubUserRepo) {
	t.Helper()
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	svc := NewTaskService(tasks, projects, users, zerolog.Nop())
	return svc, tasks, projects, users
}

func TestTaskService_Create_Defaults(t *testing.T) {
	svc, tasks, projects, _ := newTaskFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")

	projects.add(&domain.Project{ID: "p1", Name: "Website", Status: domain.ProjectOngoing})

	created, err := svc.Create(context.Background(), scope, ports.CreateTaskInput{
		ProjectID: "p1",
		Title:     "Build header",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != domain.TaskTodo {
		t.Fatalf("expected default status todo, got %s", created.Status)
	}
	if created.Priority != domain.PriorityMedium {
		t.Fatalf("expected default priority medium, got %s", created.Priority)
	}
	if created.CreatedBy != "u-admin" {
		t.Fatalf("expected creator from scope, got %s", created.CreatedBy)
	}

	entries, _ := tasks.ListActivities(context.Background(), created.ID)
	if len(entries) != 1 || entries[0].Type != domain.ActivityCreated {
		t.Fatalf("expected exactly one CREATED activity, got %+v", entries)
	}
}

func TestTaskService_Create_RequiresTitle(t *testing.T) {
	svc, _, projects, _ := newTaskFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	projects.add(&domain.Project{ID: "p1"})

	_, err := svc.Create(context.Background(), scope, ports.CreateTaskInput{ProjectID: "p1"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTaskService_Create_AssigneeMustBeMember(t *testing.T) {
	svc, _, projects, _ := newTaskFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")

	projects.add(&domain.Project{ID: "p1", MemberIDs: []string{"u-member"}})

	_, err := svc.Create(context.Background(), scope, ports.CreateTaskInput{
		ProjectID:   "p1",
		Title:       "Task",
		AssigneeIDs: []string{"u-outsider"},
	})
	if !errors.Is(err, domain.ErrAssigneeNotMember) {
		t.Fatalf("expected ErrAssigneeNotMember, got %v", err)
	}
}

func TestTaskService_Create_DoneStampsCompletedAt(t *testing.T) {
	svc, _, projects, _ := newTaskFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	projects.add(&domain.Project{ID: "p1"})

	created, err := svc.Create(context.Background(), scope, ports.CreateTaskInput{
		ProjectID: "p1",
		Title:     "Task",
		Status:    "done",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.CompletedAt == nil {
		t.Fatalf("creating in done status must stamp CompletedAt")
	}
}

func TestTaskService_Update_StatusTransitions(t *testing.T) {
	svc, tasks, projects, _ := newTaskFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	ctx := context.Background()

	projects.add(&domain.Project{ID: "p1"})
	tasks.add(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task", Status: domain.TaskTodo, Priority: domain.PriorityMedium})

	updated, err := svc.Update(ctx, scope, "t1", ports.UpdateTaskInput{Status: strPtr("done")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.TaskDone || updated.CompletedAt == nil {
		t.Fatalf("entering done must set status and CompletedAt: %+v", updated)
	}

	updated, err = svc.Update(ctx, scope, "t1", ports.UpdateTaskInput{Status: strPtr("in_progress")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.TaskInProgress || updated.CompletedAt != nil {
		t.Fatalf("leaving done must clear CompletedAt: %+v", updated)
	}

	entries, _ := tasks.ListActivities(ctx, "t1")
	// Two transitions, one field_change each.
	if len(entries) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(entries))
	}
	// Newest first: in_progress transition on top.
	if entries[0].OldValue != "done" || entries[0].NewValue != "in_progress" {
		t.Fatalf("unexpected newest activity: %+v", entries[0])
	}
	if entries[1].OldValue != "todo" || entries[1].NewValue != "done" {
		t.Fatalf("unexpected oldest activity: %+v", entries[1])
	}
}

func TestTaskService_Update_NoOpWritesNoActivity(t *testing.T) {
	svc, tasks, projects, _ := newTaskFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	ctx := context.Background()

	projects.add(&domain.Project{ID: "p1"})
	tasks.add(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task", Status: domain.TaskTodo, Priority: domain.PriorityMedium})

	_, err := svc.Update(ctx, scope, "t1", ports.UpdateTaskInput{
		Title:  strPtr("Task"),
		Status: strPtr("todo"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	entries, _ := tasks.ListActivities(ctx, "t1")
	if len(entries) != 0 {
		t.Fatalf("a no-op patch must write no activity, got %d", len(entries))
	}
}

func TestTaskService_Update_AssigneeDiffResolvesNames(t *testing.T) {
	svc, tasks, projects, users := newTaskFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	ctx := context.Background()

	users.add(&domain.User{ID: "u-a", Name: "Alice"})
	users.add(&domain.User{ID: "u-b", Name: "Bob"})
	users.add(&domain.User{ID: "u-c", Name: "Carol"})
	projects.add(&domain.Project{ID: "p1", MemberIDs: []string{"u-a", "u-b", "u-c"}})
	tasks.add(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task", AssigneeIDs: []string{"u-a", "u-b"}})

	_, err := svc.Update(ctx, scope, "t1", ports.UpdateTaskInput{AssigneeIDs: []string{"u-b", "u-c"}})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	entries, _ := tasks.ListActivities(ctx, "t1")
	if len(entries) != 2 {
		t.Fatalf("expected assigned + unassigned, got %d", len(entries))
	}

	var assigned, unassigned *domain.Activity
	for _, e := range entries {
		switch e.Type {
		case domain.ActivityAssigned:
			assigned = e
		case domain.ActivityUnassigned:
			unassigned = e
		}
	}
	if assigned == nil || assigned.NewValue != "Carol" {
		t.Fatalf("expected assigned Carol, got %+v", assigned)
	}
	if unassigned == nil || unassigned.OldValue != "Alice" {
		t.Fatalf("expected unassigned Alice, got %+v", unassigned)
	}
}

func TestTaskService_Update_FailedWriteRecordsNothing(t *testing.T) {
	svc, tasks, projects, _ := newTaskFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	ctx := context.Background()

	projects.add(&domain.Project{ID: "p1"})
	tasks.add(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task", Status: domain.TaskTodo})
	tasks.updateErr = errors.New("write failed")

	_, err := svc.Update(ctx, scope, "t1", ports.UpdateTaskInput{Status: strPtr("done")})
	if err == nil {
		t.Fatalf("expected update error")
	}

	entries, _ := tasks.ListActivities(ctx, "t1")
	if len(entries) != 0 {
		t.Fatalf("a failed update must record no activity, got %d", len(entries))
	}
}

func TestTaskService_Delete_CreatorOrAdminOnly(t *testing.T) {
	svc, tasks, projects, _ := newTaskFixture(t)
	ctx := context.Background()

	projects.add(&domain.Project{ID: "p1", MemberIDs: []string{"u-staff", "u-other"}})
	tasks.add(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task", CreatedBy: "u-other"})

	staff := domain.NewAccessScope(domain.RoleStaff, "u-staff", "")
	if err := svc.Delete(ctx, staff, "t1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-creator staff must not delete, got %v", err)
	}

	admin := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	if err := svc.Delete(ctx, admin, "t1"); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}

func TestTaskService_Get_ClientScopeCrossTenant(t *testing.T) {
	svc, tasks, projects, _ := newTaskFixture(t)
	ctx := context.Background()

	projects.add(&domain.Project{ID: "p1", ClientID: "c1"})
	tasks.add(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task"})

	other := domain.NewAccessScope(domain.RoleClientUser, "u-1", "c2")
	if _, err := svc.Get(ctx, other, "t1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("cross-tenant read must be forbidden, got %v", err)
	}

	same := domain.NewAccessScope(domain.RoleClientUser, "u-1", "c1")
	if _, err := svc.Get(ctx, same, "t1"); err != nil {
		t.Fatalf("same-tenant read failed: %v", err)
	}
}

func TestTaskService_List_ClientScopeResolvesProjects(t *testing.T) {
	svc, tasks, projects, _ := newTaskFixture(t)
	ctx := context.Background()

	projects.add(&domain.Project{ID: "p1", ClientID: "c1"})
	projects.add(&domain.Project{ID: "p2", ClientID: "c2"})
	tasks.add(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Mine"})
	tasks.add(&domain.Task{ID: "t2", ProjectID: "p2", Title: "Theirs"})

	scope := domain.NewAccessScope(domain.RoleClientUser, "u-1", "c1")
	list, err := svc.List(ctx, scope, ports.ListTasksInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].ID != "t1" {
		t.Fatalf("client must only see own tenant's tasks, got %+v", list.Items)
	}

	// Explicit cross-tenant project is rejected outright.
	if _, err := svc.List(ctx, scope, ports.ListTasksInput{ProjectID: "p2"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("cross-tenant project filter must be forbidden, got %v", err)
	}
}

func TestTaskService_Update_DueDate(t *testing.T) {
	svc, tasks, projects, _ := newTaskFixture(t)
	scope := domain.NewAccessScope(domain.RoleAdmin, "u-admin", "")
	ctx := context.Background()

	projects.add(&domain.Project{ID: "p1"})
	tasks.add(&domain.Task{ID: "t1", ProjectID: "p1", Title: "Task"})

	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, scope, "t1", ports.UpdateTaskInput{DueDate: &due})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Fatalf("due date not applied: %+v", updated.DueDate)
	}

	entries, _ := tasks.ListActivities(ctx, "t1")
	if len(entries) != 1 || entries[0].Field != "due_date" || entries[0].NewValue != "2026-05-01" {
		t.Fatalf("expected due_date field_change, got %+v", entries)
	}
}
