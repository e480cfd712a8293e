package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventType names an account lifecycle event.
type EventType string

const (
	EventUserRegistered      EventType = "user.registered"
	EventUserUpdated         EventType = "user.updated"
	EventUserDeleted         EventType = "user.deleted"
	EventUserPasswordChanged EventType = "user.password_changed"
	EventRoleCreated         EventType = "role.created"
	EventRoleAssigned        EventType = "role.assigned"
)

// AccountEvent is published after an account change has been committed.
type AccountEvent struct {
	Type       EventType  `json:"type"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	RoleID     *uuid.UUID `json:"role_id,omitempty"`
	Email      string     `json:"email,omitempty"`
	RequestID  string     `json:"request_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
