package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

const maxPageLimit = 100

type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users, logger: logger}
}

// Create validates the input against the owning project and inserts the task
// together with its CREATED activity.
func (s *TaskService) Create(ctx context.Context, scope domain.AccessScope, in ports.CreateTaskInput) (*domain.Task, error) {
	if in.Title == "" {
		return nil, domain.Validationf("title is required")
	}

	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProjectVisible(scope, project); err != nil {
		return nil, err
	}

	// Assignees must be project members at assignment time.
	for _, id := range in.AssigneeIDs {
		if !project.HasMember(id) {
			return nil, domain.ErrAssigneeNotMember
		}
	}

	status := domain.TaskStatus(in.Status)
	if in.Status == "" {
		status = domain.TaskTodo
	}
	if !status.IsValid() {
		return nil, domain.ErrInvalidTaskStatus
	}
	priority := domain.TaskPriority(in.Priority)
	if in.Priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, domain.ErrInvalidTaskPriority
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ProjectID:   in.ProjectID,
		ModuleID:    in.ModuleID,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Priority:    priority,
		DueDate:     in.DueDate,
		CreatedBy:   scope.UserID(),
		AssigneeIDs: in.AssigneeIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.ApplyStatus(status, now)

	created, err := s.tasks.Create(ctx, task, domain.NewCreatedActivity("", scope.UserID(), now))
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", in.ProjectID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("project_id", created.ProjectID).Msg("task created")
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, scope domain.AccessScope, id string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTaskVisible(ctx, scope, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, scope domain.AccessScope, in ports.ListTasksInput) (*ports.TaskList, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	filter := ports.ListTasksFilter{
		Scope:      scope.TaskScope(),
		ProjectID:  in.ProjectID,
		ModuleID:   in.ModuleID,
		Status:     in.Status,
		Priority:   in.Priority,
		AssigneeID: in.AssigneeID,
		Search:     in.Search,
		Page:       page,
		Limit:      limit,
	}

	// Tasks carry no client id of their own; a tenant restriction resolves
	// through the owning project. With an explicit project the project's
	// tenant is checked directly, otherwise the caller's whole project set
	// is derived first.
	if filter.Scope.ClientID != "" {
		if in.ProjectID != "" {
			project, err := s.projects.FindByID(ctx, in.ProjectID)
			if err != nil {
				return nil, err
			}
			if project.ClientID != filter.Scope.ClientID {
				return nil, domain.ErrForbidden
			}
		} else {
			ids, err := s.projects.ListIDsByClient(ctx, filter.Scope.ClientID)
			if err != nil {
				return nil, err
			}
			filter.ProjectIDs = ids
		}
		filter.Scope.ClientID = ""
	}

	items, total, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.TaskList{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Update diffs the patch against the pre-mutation task, applies it, and
// persists the task and its activity entries in one transaction. A patch
// that changes nothing writes no activity.
func (s *TaskService) Update(ctx context.Context, scope domain.AccessScope, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTaskVisible(ctx, scope, task); err != nil {
		return nil, err
	}

	patch, err := s.buildPatch(ctx, task, in)
	if err != nil {
		return nil, err
	}

	names, err := s.assigneeNames(ctx, task.AssigneeIDs, patch.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entries := domain.DiffTask(task, patch, scope.UserID(), now, func(userID string) string {
		if name, ok := names[userID]; ok {
			return name
		}
		return userID
	})

	applyTaskPatch(task, patch, now)
	task.UpdatedAt = now

	if err := s.tasks.Update(ctx, task, entries); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().Str("task_id", id).Int("activities", len(entries)).Msg("task updated")
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, scope domain.AccessScope, id string) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureTaskVisible(ctx, scope, task); err != nil {
		return err
	}
	if scope.Role() != domain.RoleAdmin && task.CreatedBy != scope.UserID() {
		return domain.ErrForbidden
	}
	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) Activities(ctx context.Context, scope domain.AccessScope, id string) ([]*domain.Activity, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTaskVisible(ctx, scope, task); err != nil {
		return nil, err
	}
	return s.tasks.ListActivities(ctx, id)
}

// buildPatch validates the raw input and resolves it into a typed patch.
// Assignee changes are checked against the project member set.
func (s *TaskService) buildPatch(ctx context.Context, task *domain.Task, in ports.UpdateTaskInput) (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		AssigneeIDs: in.AssigneeIDs,
	}

	if in.Status != nil {
		status := domain.TaskStatus(*in.Status)
		if !status.IsValid() {
			return domain.TaskPatch{}, domain.ErrInvalidTaskStatus
		}
		patch.Status = &status
	}
	if in.Priority != nil {
		priority := domain.TaskPriority(*in.Priority)
		if !priority.IsValid() {
			return domain.TaskPatch{}, domain.ErrInvalidTaskPriority
		}
		patch.Priority = &priority
	}

	if in.AssigneeIDs != nil {
		project, err := s.projects.FindByID(ctx, task.ProjectID)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		for _, id := range in.AssigneeIDs {
			if !project.HasMember(id) {
				return domain.TaskPatch{}, domain.ErrAssigneeNotMember
			}
		}
	}

	return patch, nil
}

// assigneeNames resolves display names for every id that can appear in an
// assignment activity entry.
func (s *TaskService) assigneeNames(ctx context.Context, prev, next []string) (map[string]string, error) {
	if next == nil {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(prev)+len(next))
	var ids []string
	for _, id := range append(append([]string{}, prev...), next...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return s.users.NamesByIDs(ctx, ids)
}

func applyTaskPatch(task *domain.Task, patch domain.TaskPatch, now time.Time) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.AssigneeIDs != nil {
		task.AssigneeIDs = patch.AssigneeIDs
	}
	if patch.Status != nil {
		task.ApplyStatus(*patch.Status, now)
	}
}

// ensureTaskVisible enforces the caller's task scope against a fetched row:
// client-bound callers must own the task's project tenant, staff must have
// created the task or be assigned to it (or own the project).
func (s *TaskService) ensureTaskVisible(ctx context.Context, scope domain.AccessScope, task *domain.Task) error {
	pred := scope.TaskScope()
	if pred.ClientID != "" {
		project, err := s.projects.FindByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}
		if project.ClientID != pred.ClientID {
			return domain.ErrForbidden
		}
	}
	if pred.ParticipantID != "" {
		if task.CreatedBy == pred.ParticipantID || task.HasAssignee(pred.ParticipantID) {
			return nil
		}
		project, err := s.projects.FindByID(ctx, task.ProjectID)
		if err != nil {
			return err
		}
		if project.CreatedBy != pred.ParticipantID && !project.HasMember(pred.ParticipantID) {
			return domain.ErrForbidden
		}
	}
	return nil
}

func (s *TaskService) ensureProjectVisible(scope domain.AccessScope, project *domain.Project) error {
	pred := scope.ProjectScope()
	if pred.ClientID != "" && project.ClientID != pred.ClientID {
		return domain.ErrForbidden
	}
	if pred.ParticipantID != "" && project.CreatedBy != pred.ParticipantID && !project.HasMember(pred.ParticipantID) {
		return domain.ErrForbidden
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
