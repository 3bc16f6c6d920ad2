package domain

import (
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("client not found")
var ErrDuplicateClientName = errors.New("client name already exists")
var ErrClientHasDependents = errors.New("client has active users or projects")

// Client is the tenant boundary. Client-scoped roles only ever see data
// belonging to their own client.
type Client struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
	// Multiplier, when set, is the default duration multiplier applied to
	// work logged under this client's projects. See EffectiveMultiplier.
	Multiplier *float64  `json:"multiplier,omitempty" bson:"multiplier,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
