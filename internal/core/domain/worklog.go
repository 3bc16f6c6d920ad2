package domain

import (
	"errors"
	"time"
)

var ErrWorkLogNotFound = errors.New("work log not found")
var ErrNotWorkLogOwner = errors.New("work log belongs to another user")

// WorkLog records a span of time a user spent on a task. Immutable once
// created; only the logging user may delete it.
type WorkLog struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TaskID    string    `json:"task_id" bson:"task_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	StartTime time.Time `json:"start_time" bson:"start_time"`
	EndTime   time.Time `json:"end_time" bson:"end_time"`
	// DurationMin is the raw span in minutes; AdjustedMin is DurationMin
	// scaled by the multiplier chain effective at creation time.
	DurationMin float64   `json:"duration_min" bson:"duration_min"`
	AdjustedMin float64   `json:"adjusted_min" bson:"adjusted_min"`
	Note        string    `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
