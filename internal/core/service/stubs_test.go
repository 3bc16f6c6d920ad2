package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests. Each mirrors the
// filtering the real Mongo repository would apply.
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	byID map[string]*domain.Project
	seq  int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) add(p *domain.Project) *domain.Project {
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("project-%d", r.seq)
	}
	clone := *p
	r.byID[p.ID] = &clone
	return p
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	return r.add(p), nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) matchesScope(p *domain.Project, scope domain.ScopePredicate) bool {
	if scope.ClientID != "" && p.ClientID != scope.ClientID {
		return false
	}
	if scope.ParticipantID != "" && p.CreatedBy != scope.ParticipantID && !p.HasMember(scope.ParticipantID) {
		return false
	}
	return true
}

func (r *stubProjectRepo) List(_ context.Context, f ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	var out []*domain.Project
	for _, p := range r.byID {
		if !r.matchesScope(p, f.Scope) {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.ClientID != "" && p.ClientID != f.ClientID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubProjectRepo) ListIDsByClient(_ context.Context, clientID string) ([]string, error) {
	var ids []string
	for _, p := range r.byID {
		if p.ClientID == clientID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (r *stubProjectRepo) ListAll(_ context.Context, scope domain.ScopePredicate, id string) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.byID {
		if id != "" && p.ID != id {
			continue
		}
		if !r.matchesScope(p, scope) {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	// Name order, matching the Mongo sort.
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			if out[j].Name < out[i].Name {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *stubProjectRepo) CountByClient(_ context.Context, clientID string) (int64, error) {
	var n int64
	for _, p := range r.byID {
		if p.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

type stubModuleRepo struct {
	byID map[string]*domain.Module
	seq  int
}

func newStubModuleRepo() *stubModuleRepo {
	return &stubModuleRepo{byID: make(map[string]*domain.Module)}
}

func (r *stubModuleRepo) add(m *domain.Module) *domain.Module {
	if m.ID == "" {
		r.seq++
		m.ID = fmt.Sprintf("module-%d", r.seq)
	}
	clone := *m
	r.byID[m.ID] = &clone
	return m
}

func (r *stubModuleRepo) Create(_ context.Context, m *domain.Module) (*domain.Module, error) {
	return r.add(m), nil
}

func (r *stubModuleRepo) FindByID(_ context.Context, id string) (*domain.Module, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrModuleNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubModuleRepo) List(_ context.Context, f ports.ListModulesFilter) ([]*domain.Module, int64, error) {
	var out []*domain.Module
	for _, m := range r.byID {
		if f.ProjectID != "" && m.ProjectID != f.ProjectID {
			continue
		}
		if f.ProjectID == "" && f.ProjectIDs != nil {
			found := false
			for _, id := range f.ProjectIDs {
				if m.ProjectID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		clone := *m
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubModuleRepo) ListByProject(_ context.Context, projectID string) ([]*domain.Module, error) {
	var out []*domain.Module
	for _, m := range r.byID {
		if m.ProjectID == projectID {
			clone := *m
			out = append(out, &clone)
		}
	}
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			if out[j].Name < out[i].Name {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubModuleRepo) Update(_ context.Context, m *domain.Module) error {
	if _, ok := r.byID[m.ID]; !ok {
		return domain.ErrModuleNotFound
	}
	clone := *m
	r.byID[m.ID] = &clone
	return nil
}

func (r *stubModuleRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type stubTaskRepo struct {
	byID       map[string]*domain.Task
	activities map[string][]domain.Activity
	seq        int
	updateErr  error // if set, Update returns this error and writes nothing
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{
		byID:       make(map[string]*domain.Task),
		activities: make(map[string][]domain.Activity),
	}
}

func (r *stubTaskRepo) add(t *domain.Task) *domain.Task {
	if t.ID == "" {
		r.seq++
		t.ID = fmt.Sprintf("task-%d", r.seq)
	}
	clone := *t
	r.byID[t.ID] = &clone
	return t
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task, created domain.Activity) (*domain.Task, error) {
	r.add(t)
	created.TargetID = t.ID
	r.activities[t.ID] = append(r.activities[t.ID], created)
	return t, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) List(_ context.Context, f ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			continue
		}
		if f.ProjectID == "" && f.ProjectIDs != nil {
			found := false
			for _, id := range f.ProjectIDs {
				if t.ProjectID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.AssigneeID != "" && !t.HasAssignee(f.AssigneeID) {
			continue
		}
		if f.Scope.ParticipantID != "" && t.CreatedBy != f.Scope.ParticipantID && !t.HasAssignee(f.Scope.ParticipantID) {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubTaskRepo) ListByModule(_ context.Context, projectID, moduleID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if t.ProjectID != projectID || t.ModuleID != moduleID {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			if out[j].Title < out[i].Title {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task, entries []domain.Activity) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *t
	r.byID[t.ID] = &clone
	r.activities[t.ID] = append(r.activities[t.ID], entries...)
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id)
	delete(r.activities, id)
	return nil
}

func (r *stubTaskRepo) ListActivities(_ context.Context, taskID string) ([]*domain.Activity, error) {
	entries := r.activities[taskID]
	out := make([]*domain.Activity, 0, len(entries))
	// Newest first, matching the Mongo sort.
	for i := len(entries) - 1; i >= 0; i-- {
		clone := entries[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTaskRepo) CountByAssignee(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, t := range r.byID {
		if t.HasAssignee(userID) {
			n++
		}
	}
	return n, nil
}

type stubWorkLogRepo struct {
	byID map[string]*domain.WorkLog
	seq  int
}

func newStubWorkLogRepo() *stubWorkLogRepo {
	return &stubWorkLogRepo{byID: make(map[string]*domain.WorkLog)}
}

func (r *stubWorkLogRepo) Create(_ context.Context, w *domain.WorkLog) (*domain.WorkLog, error) {
	if w.ID == "" {
		r.seq++
		w.ID = fmt.Sprintf("worklog-%d", r.seq)
	}
	clone := *w
	r.byID[w.ID] = &clone
	return w, nil
}

func (r *stubWorkLogRepo) FindByID(_ context.Context, id string) (*domain.WorkLog, error) {
	w, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrWorkLogNotFound
	}
	clone := *w
	return &clone, nil
}

func (r *stubWorkLogRepo) ListByTask(_ context.Context, taskID string) ([]*domain.WorkLog, error) {
	var out []*domain.WorkLog
	for _, w := range r.byID {
		if w.TaskID == taskID {
			clone := *w
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubWorkLogRepo) ListForRange(_ context.Context, taskIDs []string, from, to *time.Time) ([]*domain.WorkLog, error) {
	idSet := make(map[string]struct{}, len(taskIDs))
	for _, id := range taskIDs {
		idSet[id] = struct{}{}
	}

	var out []*domain.WorkLog
	for _, w := range r.byID {
		if _, ok := idSet[w.TaskID]; !ok {
			continue
		}
		if from != nil && w.StartTime.Before(*from) {
			continue
		}
		if to != nil && w.StartTime.After(*to) {
			continue
		}
		clone := *w
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubWorkLogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrWorkLogNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubClientRepo struct {
	byID map[string]*domain.Client
	seq  int
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{byID: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) add(c *domain.Client) *domain.Client {
	if c.ID == "" {
		r.seq++
		c.ID = fmt.Sprintf("client-%d", r.seq)
	}
	clone := *c
	r.byID[c.ID] = &clone
	return c
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	for _, existing := range r.byID {
		if existing.Name == c.Name {
			return nil, domain.ErrDuplicateClientName
		}
	}
	return r.add(c), nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) List(_ context.Context, f ports.ListClientsFilter) ([]*domain.Client, int64, error) {
	var out []*domain.Client
	for _, c := range r.byID {
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubClientRepo) Update(_ context.Context, c *domain.Client) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrClientNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type stubUserRepo struct {
	byID map[string]*domain.User
	seq  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		r.seq++
		u.ID = fmt.Sprintf("user-%d", r.seq)
	}
	clone := *u
	r.byID[u.ID] = &clone
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	return r.add(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if f.Scope.ClientID != "" && u.ClientID != f.Scope.ClientID {
			continue
		}
		if f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) NamesByIDs(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out[id] = u.Name
		}
	}
	return out, nil
}

func (r *stubUserRepo) CountByClient(_ context.Context, clientID string) (int64, error) {
	var n int64
	for _, u := range r.byID {
		if u.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

type stubRequirementRepo struct {
	byID       map[string]*domain.Requirement
	activities map[string][]domain.Activity
	seq        int
}

func newStubRequirementRepo() *stubRequirementRepo {
	return &stubRequirementRepo{
		byID:       make(map[string]*domain.Requirement),
		activities: make(map[string][]domain.Activity),
	}
}

func (r *stubRequirementRepo) Create(_ context.Context, req *domain.Requirement, created domain.Activity) (*domain.Requirement, error) {
	if req.ID == "" {
		r.seq++
		req.ID = fmt.Sprintf("req-%d", r.seq)
	}
	clone := *req
	r.byID[req.ID] = &clone
	created.TargetID = req.ID
	r.activities[req.ID] = append(r.activities[req.ID], created)
	return req, nil
}

func (r *stubRequirementRepo) FindByID(_ context.Context, id string) (*domain.Requirement, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequirementNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubRequirementRepo) List(_ context.Context, f ports.ListRequirementsFilter) ([]*domain.Requirement, int64, error) {
	var out []*domain.Requirement
	for _, req := range r.byID {
		if f.Scope.ClientID != "" && req.ClientID != f.Scope.ClientID {
			continue
		}
		if f.Type != "" && string(req.Type) != f.Type {
			continue
		}
		if f.Status != "" && string(req.Status) != f.Status {
			continue
		}
		if f.ParentID != "" && req.ParentID != f.ParentID {
			continue
		}
		clone := *req
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubRequirementRepo) Update(_ context.Context, req *domain.Requirement, entries []domain.Activity) error {
	if _, ok := r.byID[req.ID]; !ok {
		return domain.ErrRequirementNotFound
	}
	clone := *req
	r.byID[req.ID] = &clone
	r.activities[req.ID] = append(r.activities[req.ID], entries...)
	return nil
}

func (r *stubRequirementRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrRequirementNotFound
	}
	delete(r.byID, id)
	delete(r.activities, id)
	return nil
}

func (r *stubRequirementRepo) CountChildren(_ context.Context, parentID string) (int64, error) {
	var n int64
	for _, req := range r.byID {
		if req.ParentID == parentID {
			n++
		}
	}
	return n, nil
}

func (r *stubRequirementRepo) ListActivities(_ context.Context, requirementID string) ([]*domain.Activity, error) {
	entries := r.activities[requirementID]
	out := make([]*domain.Activity, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		clone := entries[i]
		out = append(out, &clone)
	}
	return out, nil
}

// Interface conformance for the stubs.
var (
	_ ports.ProjectRepository     = (*stubProjectRepo)(nil)
	_ ports.ModuleRepository      = (*stubModuleRepo)(nil)
	_ ports.TaskRepository        = (*stubTaskRepo)(nil)
	_ ports.WorkLogRepository     = (*stubWorkLogRepo)(nil)
	_ ports.ClientRepository      = (*stubClientRepo)(nil)
	_ ports.UserRepository        = (*stubUserRepo)(nil)
	_ ports.RequirementRepository = (*stubRequirementRepo)(nil)
)
