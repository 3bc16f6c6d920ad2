package domain

import (
	"errors"
	"time"
)

// RequirementType classifies client intake items.
type RequirementType string

const (
	RequirementFeature       RequirementType = "feature"
	RequirementBug           RequirementType = "bug"
	RequirementChangeRequest RequirementType = "change_request"
	RequirementSupport       RequirementType = "support"
)

// RequirementStatus is the intake lifecycle.
type RequirementStatus string

const (
	RequirementOpen       RequirementStatus = "open"
	RequirementInProgress RequirementStatus = "in_progress"
	RequirementResolved   RequirementStatus = "resolved"
	RequirementRejected   RequirementStatus = "rejected"
)

var ErrRequirementNotFound = errors.New("requirement not found")
var ErrRequirementHasChildren = errors.New("requirement has child requirements")
var ErrChangeRequestNeedsParent = errors.New("change request requires a parent requirement")
var ErrInvalidRequirementType = errors.New("invalid requirement type")
var ErrInvalidRequirementStatus = errors.New("invalid requirement status")

// IsValid reports whether t is a known requirement type.
func (t RequirementType) IsValid() bool {
	switch t {
	case RequirementFeature, RequirementBug, RequirementChangeRequest, RequirementSupport:
		return true
	}
	return false
}

// IsValid reports whether s is a known requirement status.
func (s RequirementStatus) IsValid() bool {
	switch s {
	case RequirementOpen, RequirementInProgress, RequirementResolved, RequirementRejected:
		return true
	}
	return false
}

// Requirement is a client-facing intake item. A change request always points
// at the requirement it amends via ParentID.
type Requirement struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	ClientID    string            `json:"client_id,omitempty" bson:"client_id,omitempty"`
	ParentID    string            `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Title       string            `json:"title" bson:"title"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Type        RequirementType   `json:"type" bson:"type"`
	Status      RequirementStatus `json:"status" bson:"status"`
	Priority    TaskPriority      `json:"priority" bson:"priority"`
	CreatedBy   string            `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}
