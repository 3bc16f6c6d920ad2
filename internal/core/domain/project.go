package domain

import (
	"errors"
	"time"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
	ProjectOnHold    ProjectStatus = "on_hold"
)

var ErrProjectNotFound = errors.New("project not found")
var ErrInvalidProjectStatus = errors.New("invalid project status")

// IsValid reports whether s is a known project status.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectOngoing, ProjectCompleted, ProjectCancelled, ProjectOnHold:
		return true
	}
	return false
}

// Project groups modules and tasks. ClientID is empty for internal projects.
type Project struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	ClientID    string        `json:"client_id,omitempty" bson:"client_id,omitempty"`
	Status      ProjectStatus `json:"status" bson:"status"`
	// Multiplier overrides the client's duration multiplier when set.
	Multiplier *float64  `json:"multiplier,omitempty" bson:"multiplier,omitempty"`
	CreatedBy  string    `json:"created_by" bson:"created_by"`
	MemberIDs  []string  `json:"member_ids" bson:"member_ids"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// HasMember reports whether userID is in the project's member set.
func (p *Project) HasMember(userID string) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
