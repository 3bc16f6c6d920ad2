package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

type WorkLogService struct {
	workLogs ports.WorkLogRepository
	tasks    *TaskService
	modules  ports.ModuleRepository
	projects ports.ProjectRepository
	clients  ports.ClientRepository
	logger   zerolog.Logger
}

func NewWorkLogService(
	workLogs ports.WorkLogRepository,
	tasks *TaskService,
	modules ports.ModuleRepository,
	projects ports.ProjectRepository,
	clients ports.ClientRepository,
	logger zerolog.Logger,
) *WorkLogService {
	return &WorkLogService{
		workLogs: workLogs,
		tasks:    tasks,
		modules:  modules,
		projects: projects,
		clients:  clients,
		logger:   logger,
	}
}

// Create validates the time span, resolves the multiplier chain for the
// task, and inserts the work log with both raw and adjusted durations.
func (s *WorkLogService) Create(ctx context.Context, scope domain.AccessScope, in ports.CreateWorkLogInput) (*domain.WorkLog, error) {
	task, err := s.tasks.Get(ctx, scope, in.TaskID)
	if err != nil {
		return nil, err
	}

	multiplier, err := s.multiplierFor(ctx, task)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dur, err := domain.ComputeDuration(in.StartTime, in.EndTime, now, multiplier)
	if err != nil {
		return nil, err
	}

	log := &domain.WorkLog{
		TaskID:      in.TaskID,
		UserID:      scope.UserID(),
		StartTime:   in.StartTime.UTC(),
		EndTime:     in.EndTime.UTC(),
		DurationMin: dur.RawMin,
		AdjustedMin: dur.AdjustedMin,
		Note:        in.Note,
		CreatedAt:   now,
	}

	created, err := s.workLogs.Create(ctx, log)
	if err != nil {
		s.logger.Error().Err(err).Str("task_id", in.TaskID).Msg("failed to create work log")
		return nil, err
	}

	s.logger.Info().
		Str("work_log_id", created.ID).
		Str("task_id", in.TaskID).
		Float64("duration_min", created.DurationMin).
		Msg("work log created")
	return created, nil
}

func (s *WorkLogService) ListByTask(ctx context.Context, scope domain.AccessScope, taskID string) ([]*domain.WorkLog, error) {
	if _, err := s.tasks.Get(ctx, scope, taskID); err != nil {
		return nil, err
	}
	return s.workLogs.ListByTask(ctx, taskID)
}

// Delete removes a work log. Work logs are immutable; only the logging user
// may delete their own entry.
func (s *WorkLogService) Delete(ctx context.Context, scope domain.AccessScope, id string) error {
	log, err := s.workLogs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if log.UserID != scope.UserID() {
		return domain.ErrNotWorkLogOwner
	}
	return s.workLogs.Delete(ctx, id)
}

// multiplierFor resolves the module → project → client multiplier chain for
// a task.
func (s *WorkLogService) multiplierFor(ctx context.Context, task *domain.Task) (float64, error) {
	var moduleMul *float64
	if task.ModuleID != "" {
		module, err := s.modules.FindByID(ctx, task.ModuleID)
		if err != nil {
			return 0, err
		}
		moduleMul = module.Multiplier
	}

	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		return 0, err
	}

	var clientMul *float64
	if project.ClientID != "" {
		client, err := s.clients.FindByID(ctx, project.ClientID)
		if err != nil {
			return 0, err
		}
		clientMul = client.Multiplier
	}

	return domain.EffectiveMultiplier(moduleMul, project.Multiplier, clientMul), nil
}
