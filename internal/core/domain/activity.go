package domain

import "time"

// ActivityType classifies an audit-trail entry.
type ActivityType string

const (
	ActivityCreated     ActivityType = "created"
	ActivityFieldChange ActivityType = "field_change"
	ActivityUpdated     ActivityType = "updated"
	ActivityAssigned    ActivityType = "assigned"
	ActivityUnassigned  ActivityType = "unassigned"
)

// Activity is one immutable audit-trail entry for a task or requirement.
// Old/new values are stored pre-stringified; they are display data, not a
// typed change log. Entries are never edited or deleted.
type Activity struct {
	ID       string       `json:"id" bson:"_id,omitempty"`
	TargetID string       `json:"target_id" bson:"target_id"`
	Type     ActivityType `json:"type" bson:"type"`
	Field    string       `json:"field,omitempty" bson:"field,omitempty"`
	OldValue string       `json:"old_value,omitempty" bson:"old_value,omitempty"`
	NewValue string       `json:"new_value,omitempty" bson:"new_value,omitempty"`
	ActorID  string       `json:"actor_id" bson:"actor_id"`
	At       time.Time    `json:"at" bson:"at"`
}
