package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	LogActionCreated       RenewalLogAction = "created"
	LogActionUpdated       RenewalLogAction = "updated"
	LogActionDeleted       RenewalLogAction = "deleted"
	LogActionStatusChanged RenewalLogAction = "status_changed"
	LogActionRenewed       RenewalLogAction = "renewed"
)

// FieldChange records one field transition inside an audit entry.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value,omitempty"`
	NewValue any    `json:"new_value,omitempty"`
}

// RenewalLog is the audit trail entry for a renewal mutation.
// Read-only from the client's perspective; the backend appends entries in
// response to mutations.
type RenewalLog struct {
	Id          uuid.UUID
	RenewalId   uuid.UUID
	ServiceName string
	Action      RenewalLogAction
	PerformedBy uuid.UUID
	UserEmail   string
	Timestamp   time.Time
	Changes     []FieldChange
	Notes       string
}

// ValidLogAction reports whether a is a known audit action.
func ValidLogAction(a RenewalLogAction) bool {
	switch a {
	case LogActionCreated, LogActionUpdated, LogActionDeleted, LogActionStatusChanged, LogActionRenewed:
		return true
	}
	return false
}
