package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskBacklog    TaskStatus = "backlog"
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskInReview   TaskStatus = "in_review"
	TaskBlocked    TaskStatus = "blocked"
	TaskDone       TaskStatus = "done"
	TaskCancelled  TaskStatus = "cancelled"
)

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrInvalidTaskStatus = errors.New("invalid task status")
var ErrInvalidTaskPriority = errors.New("invalid task priority")
var ErrAssigneeNotMember = errors.New("assignee is not a project member")
var ErrForbidden = errors.New("access forbidden")

// IsValid reports whether s is a known task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskBacklog, TaskTodo, TaskInProgress, TaskInReview, TaskBlocked, TaskDone, TaskCancelled:
		return true
	}
	return false
}

// IsValid reports whether p is a known task priority.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is the unit of trackable work. Invariant: CompletedAt is non-nil
// exactly when Status == TaskDone; ApplyStatus maintains it on every
// transition.
type Task struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	ProjectID   string       `json:"project_id" bson:"project_id"`
	ModuleID    string       `json:"module_id,omitempty" bson:"module_id,omitempty"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Type        string       `json:"type,omitempty" bson:"type,omitempty"`
	Status      TaskStatus   `json:"status" bson:"status"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty" bson:"due_date,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CreatedBy   string       `json:"created_by" bson:"created_by"`
	AssigneeIDs []string     `json:"assignee_ids" bson:"assignee_ids"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}

// HasAssignee reports whether userID is in the task's assignee set.
func (t *Task) HasAssignee(userID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ApplyStatus sets the status and keeps CompletedAt in sync: entering done
// stamps it with now, leaving done clears it. Re-entering done gets a fresh
// timestamp.
func (t *Task) ApplyStatus(status TaskStatus, now time.Time) {
	if status == TaskDone && t.Status != TaskDone {
		completed := now
		t.CompletedAt = &completed
	}
	if status != TaskDone {
		t.CompletedAt = nil
	}
	t.Status = status
}
