package domain

import (
	"errors"
	"time"
)

var ErrModuleNotFound = errors.New("module not found")

// Module is an optional grouping of tasks inside a project.
type Module struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	ProjectID   string `json:"project_id" bson:"project_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	// Multiplier overrides the project's duration multiplier when set.
	Multiplier *float64  `json:"multiplier,omitempty" bson:"multiplier,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
