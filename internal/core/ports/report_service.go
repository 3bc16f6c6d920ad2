package ports

import (
	"context"
	"time"

	"github.com/officedesk/office-console/internal/core/domain"
)

// ReportRequest selects the work-log report window. Nil bounds are open;
// ProjectID optionally narrows the tree to a single project.
type ReportRequest struct {
	From      *time.Time
	To        *time.Time
	ProjectID string
}

// RollupTotals are the aggregated figures carried by every tree node. A
// parent's totals are the sum/min/max over its children, from work-log
// leaves upward. Durations are adjusted minutes, not raw.
type RollupTotals struct {
	TotalMinutes float64    `json:"total_minutes"`
	LogCount     int        `json:"log_count"`
	FirstEntry   *time.Time `json:"first_entry,omitempty"`
	LastEntry    *time.Time `json:"last_entry,omitempty"`
}

// TaskRollup is a leaf node of the report tree.
type TaskRollup struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	Type   string `json:"type,omitempty"`
	RollupTotals
}

// ModuleRollup is a mid-level node. ModuleID is empty for the bucket that
// collects a project's module-less tasks.
type ModuleRollup struct {
	ModuleID string `json:"module_id,omitempty"`
	Name     string `json:"name"`
	RollupTotals
	Tasks []TaskRollup `json:"tasks,omitempty"`
}

// ProjectRollup is a root node of the report tree.
type ProjectRollup struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	RollupTotals
	Modules []ModuleRollup `json:"modules,omitempty"`
}

// ReportService builds the three-level work-log report. The interactive
// surface fetches one level at a time; FullTree computes all levels at once
// with identical totals, and Export serialises that tree to a workbook.
type ReportService interface {
	ProjectRollups(ctx context.Context, scope domain.AccessScope, req ReportRequest) ([]ProjectRollup, error)
	ModuleRollups(ctx context.Context, scope domain.AccessScope, projectID string, req ReportRequest) ([]ModuleRollup, error)
	TaskRollups(ctx context.Context, scope domain.AccessScope, projectID, moduleID string, req ReportRequest) ([]TaskRollup, error)
	FullTree(ctx context.Context, scope domain.AccessScope, req ReportRequest) ([]ProjectRollup, error)
	// Export returns the report as an xlsx workbook.
	Export(ctx context.Context, scope domain.AccessScope, req ReportRequest) ([]byte, error)
}
