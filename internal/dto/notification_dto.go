package dto

import "time"

// NotificationMessage is the payload pushed to websocket clients.
type NotificationMessage struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RenewalId string    `json:"renewal_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
