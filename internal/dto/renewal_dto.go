package dto

import (
	"time"

	"github.com/google/uuid"

	"renewal-tracking-be/internal/entity"
)

// Renewal payloads are free-form maps rather than fixed structs: the API
// accepts both the current and the legacy key convention, and unknown keys
// must survive a round trip. Shape handling lives in pkg/renewal.

type RenewalListRequest struct {
	Type     string `query:"type"`
	Status   string `query:"status"`
	Provider string `query:"provider"`
	Search   string `query:"search"`
	From     string `query:"from"`
	To       string `query:"to"`
	SortBy   string `query:"sort_by"`
	SortDir  string `query:"sort_dir"`
	Shape    string `query:"shape"`
}

type UpdateStatusRequest struct {
	Status    string `json:"status" validate:"required,oneof=active expiring-soon expired pending canceled renewed"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type AddLogRequest struct {
	Action  string               `json:"action" validate:"required,oneof=created updated deleted status_changed renewed"`
	Notes   string               `json:"notes"`
	Changes []entity.FieldChange `json:"changes,omitempty"`
}

type RenewalLogResponse struct {
	Id          uuid.UUID            `json:"id"`
	RenewalId   uuid.UUID            `json:"renewal_id"`
	ServiceName string               `json:"service_name"`
	Action      string               `json:"action"`
	PerformedBy uuid.UUID            `json:"performed_by"`
	UserEmail   string               `json:"user_email,omitempty"`
	Timestamp   time.Time            `json:"timestamp"`
	Changes     []entity.FieldChange `json:"changes,omitempty"`
	Notes       string               `json:"notes,omitempty"`
}

type RenewalStatsResponse struct {
	Active       int     `json:"active"`
	ExpiringSoon int     `json:"expiringSoon"`
	Expired      int     `json:"expired"`
	Total        int     `json:"total"`
	TotalCost    float64 `json:"totalCost"`
}

// RenewalAuditMessage travels over the in-process audit bus from the
// renewal service to the log consumer.
type RenewalAuditMessage struct {
	RenewalId   string               `json:"renewal_id"`
	ServiceName string               `json:"service_name"`
	Action      string               `json:"action"`
	PerformedBy string               `json:"performed_by"`
	UserEmail   string               `json:"user_email,omitempty"`
	Changes     []entity.FieldChange `json:"changes,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	OccurredAt  time.Time            `json:"occurred_at"`
}
