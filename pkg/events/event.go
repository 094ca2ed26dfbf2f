package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "RENEWAL_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used by the constructors below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes.
const (
	TypeRenewalCreated       = "RENEWAL_CREATED"
	TypeRenewalUpdated       = "RENEWAL_UPDATED"
	TypeRenewalDeleted       = "RENEWAL_DELETED"
	TypeRenewalStatusChanged = "RENEWAL_STATUS_CHANGED"
	TypeRenewalRenewed       = "RENEWAL_RENEWED"
	TypeUserLogin            = "USER_LOGIN"
)

func newRenewalEvent(eventType, renewalId, serviceName, userId string) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"renewal_id":   renewalId,
			"service_name": serviceName,
			"user_id":      userId,
		},
		OccurredAt: time.Now(),
	}
}

func NewRenewalCreated(renewalId, serviceName, userId string) Event {
	return newRenewalEvent(TypeRenewalCreated, renewalId, serviceName, userId)
}

func NewRenewalUpdated(renewalId, serviceName, userId string) Event {
	return newRenewalEvent(TypeRenewalUpdated, renewalId, serviceName, userId)
}

func NewRenewalDeleted(renewalId, serviceName, userId string) Event {
	return newRenewalEvent(TypeRenewalDeleted, renewalId, serviceName, userId)
}

func NewRenewalStatusChanged(renewalId, serviceName, userId, oldStatus, newStatus string) Event {
	e := newRenewalEvent(TypeRenewalStatusChanged, renewalId, serviceName, userId)
	e.Data["old_status"] = oldStatus
	e.Data["new_status"] = newStatus
	return e
}

func NewRenewalRenewed(renewalId, serviceName, userId, newEndDate string) Event {
	e := newRenewalEvent(TypeRenewalRenewed, renewalId, serviceName, userId)
	e.Data["new_end_date"] = newEndDate
	return e
}

func NewUserLogin(userId, email string) Event {
	return BaseEvent{
		Type: TypeUserLogin,
		Data: map[string]interface{}{
			"user_id": userId,
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}
