package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

// NoModuleName labels the bucket that collects a project's module-less
// tasks in report trees and exports.
const NoModuleName = "No Module"

// ReportCache abstracts the rollup-tree cache (Redis). A cache failure is
// never fatal; the aggregator recomputes.
type ReportCache interface {
	GetTree(ctx context.Context, key string) ([]ports.ProjectRollup, bool)
	SetTree(ctx context.Context, key string, tree []ports.ProjectRollup)
}

type ReportService struct {
	projects ports.ProjectRepository
	modules  ports.ModuleRepository
	tasks    ports.TaskRepository
	workLogs ports.WorkLogRepository
	exporter *Exporter
	cache    ReportCache
	logger   zerolog.Logger
}

func NewReportService(
	projects ports.ProjectRepository,
	modules ports.ModuleRepository,
	tasks ports.TaskRepository,
	workLogs ports.WorkLogRepository,
	cache ReportCache,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		projects: projects,
		modules:  modules,
		tasks:    tasks,
		workLogs: workLogs,
		exporter: NewExporter(),
		cache:    cache,
		logger:   logger,
	}
}

// ProjectRollups returns the top level of the report tree without children.
// Totals are identical to what FullTree reports for the same request.
func (s *ReportService) ProjectRollups(ctx context.Context, scope domain.AccessScope, req ports.ReportRequest) ([]ports.ProjectRollup, error) {
	tree, err := s.buildTree(ctx, scope, req)
	if err != nil {
		return nil, err
	}
	out := make([]ports.ProjectRollup, len(tree))
	for i, p := range tree {
		p.Modules = nil
		out[i] = p
	}
	return out, nil
}

// ModuleRollups returns one project's module level without task children.
func (s *ReportService) ModuleRollups(ctx context.Context, scope domain.AccessScope, projectID string, req ports.ReportRequest) ([]ports.ModuleRollup, error) {
	project, err := s.visibleProject(ctx, scope, projectID)
	if err != nil {
		return nil, err
	}
	modules, err := s.buildModuleRollups(ctx, project.ID, req)
	if err != nil {
		return nil, err
	}
	for i := range modules {
		modules[i].Tasks = nil
	}
	return modules, nil
}

// TaskRollups returns the task leaves of one project/module pair.
// moduleID == "" selects the project's module-less tasks.
func (s *ReportService) TaskRollups(ctx context.Context, scope domain.AccessScope, projectID, moduleID string, req ports.ReportRequest) ([]ports.TaskRollup, error) {
	if _, err := s.visibleProject(ctx, scope, projectID); err != nil {
		return nil, err
	}
	return s.buildTaskRollups(ctx, projectID, moduleID, req)
}

// FullTree computes all three levels eagerly. Results are served from the
// cache when an identical request was aggregated recently.
func (s *ReportService) FullTree(ctx context.Context, scope domain.AccessScope, req ports.ReportRequest) ([]ports.ProjectRollup, error) {
	key := cacheKey(scope, req)
	if s.cache != nil {
		if tree, ok := s.cache.GetTree(ctx, key); ok {
			return tree, nil
		}
	}

	tree, err := s.buildTree(ctx, scope, req)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetTree(ctx, key, tree)
	}
	return tree, nil
}

// Export serialises the full tree to an xlsx workbook.
func (s *ReportService) Export(ctx context.Context, scope domain.AccessScope, req ports.ReportRequest) ([]byte, error) {
	tree, err := s.FullTree(ctx, scope, req)
	if err != nil {
		return nil, err
	}
	artifact, err := s.exporter.BuildWorkbook(tree, req)
	if err != nil {
		s.logger.Error().Err(err).Msg("workbook serialization failed")
		return nil, err
	}
	return artifact, nil
}

func (s *ReportService) buildTree(ctx context.Context, scope domain.AccessScope, req ports.ReportRequest) ([]ports.ProjectRollup, error) {
	projects, err := s.projects.ListAll(ctx, scope.ProjectScope(), req.ProjectID)
	if err != nil {
		return nil, err
	}

	tree := make([]ports.ProjectRollup, 0, len(projects))
	for _, project := range projects {
		modules, err := s.buildModuleRollups(ctx, project.ID, req)
		if err != nil {
			return nil, err
		}

		node := ports.ProjectRollup{
			ProjectID: project.ID,
			Name:      project.Name,
			Modules:   modules,
		}
		for _, m := range modules {
			node.RollupTotals = mergeTotals(node.RollupTotals, m.RollupTotals)
		}
		tree = append(tree, node)
	}
	return tree, nil
}

// buildModuleRollups returns a project's modules in name order, each with
// its task leaves, plus a trailing bucket for module-less tasks when any
// exist. Modules without logged work stay in the tree with zero totals.
func (s *ReportService) buildModuleRollups(ctx context.Context, projectID string, req ports.ReportRequest) ([]ports.ModuleRollup, error) {
	modules, err := s.modules.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ModuleRollup, 0, len(modules)+1)
	for _, module := range modules {
		node, err := s.moduleRollup(ctx, projectID, module.ID, module.Name, req)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}

	unassigned, err := s.moduleRollup(ctx, projectID, "", NoModuleName, req)
	if err != nil {
		return nil, err
	}
	if len(unassigned.Tasks) > 0 {
		out = append(out, unassigned)
	}
	return out, nil
}

func (s *ReportService) moduleRollup(ctx context.Context, projectID, moduleID, name string, req ports.ReportRequest) (ports.ModuleRollup, error) {
	tasks, err := s.buildTaskRollups(ctx, projectID, moduleID, req)
	if err != nil {
		return ports.ModuleRollup{}, err
	}

	node := ports.ModuleRollup{ModuleID: moduleID, Name: name, Tasks: tasks}
	for _, t := range tasks {
		node.RollupTotals = mergeTotals(node.RollupTotals, t.RollupTotals)
	}
	return node, nil
}

// buildTaskRollups aggregates the work logs of one module's tasks. Leaf
// totals sum adjusted minutes over logs whose start time falls in the
// requested range.
func (s *ReportService) buildTaskRollups(ctx context.Context, projectID, moduleID string, req ports.ReportRequest) ([]ports.TaskRollup, error) {
	tasks, err := s.tasks.ListByModule(ctx, projectID, moduleID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}

	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	logs, err := s.workLogs.ListForRange(ctx, ids, req.From, req.To)
	if err != nil {
		return nil, err
	}

	byTask := make(map[string]ports.RollupTotals, len(tasks))
	for _, log := range logs {
		byTask[log.TaskID] = addLog(byTask[log.TaskID], log)
	}

	out := make([]ports.TaskRollup, len(tasks))
	for i, t := range tasks {
		out[i] = ports.TaskRollup{
			TaskID:       t.ID,
			Title:        t.Title,
			Type:         t.Type,
			RollupTotals: byTask[t.ID],
		}
	}
	return out, nil
}

func (s *ReportService) visibleProject(ctx context.Context, scope domain.AccessScope, id string) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pred := scope.ProjectScope()
	if pred.ClientID != "" && project.ClientID != pred.ClientID {
		return nil, domain.ErrForbidden
	}
	if pred.ParticipantID != "" && project.CreatedBy != pred.ParticipantID && !project.HasMember(pred.ParticipantID) {
		return nil, domain.ErrForbidden
	}
	return project, nil
}

func addLog(t ports.RollupTotals, log *domain.WorkLog) ports.RollupTotals {
	t.TotalMinutes += log.AdjustedMin
	t.LogCount++
	start := log.StartTime
	if t.FirstEntry == nil || start.Before(*t.FirstEntry) {
		t.FirstEntry = &start
	}
	if t.LastEntry == nil || start.After(*t.LastEntry) {
		t.LastEntry = &start
	}
	return t
}

func mergeTotals(a, b ports.RollupTotals) ports.RollupTotals {
	a.TotalMinutes += b.TotalMinutes
	a.LogCount += b.LogCount
	if b.FirstEntry != nil && (a.FirstEntry == nil || b.FirstEntry.Before(*a.FirstEntry)) {
		a.FirstEntry = b.FirstEntry
	}
	if b.LastEntry != nil && (a.LastEntry == nil || b.LastEntry.After(*a.LastEntry)) {
		a.LastEntry = b.LastEntry
	}
	return a
}

// cacheKey fingerprints a report request together with the caller's scope so
// two callers with different visibility never share an entry.
func cacheKey(scope domain.AccessScope, req ports.ReportRequest) string {
	const layout = "20060102T150405"
	from, to := "-", "-"
	if req.From != nil {
		from = req.From.UTC().Format(layout)
	}
	if req.To != nil {
		to = req.To.UTC().Format(layout)
	}
	pred := scope.ProjectScope()
	return "report:" + string(scope.Role()) + ":" + pred.ClientID + ":" + pred.ParticipantID + ":" + req.ProjectID + ":" + from + ":" + to
}

var _ ports.ReportService = (*ReportService)(nil)
