package service

import (
	"context"
	"fmt"
	"strings"

	"renewal-tracking-be/internal/dto"
	"renewal-tracking-be/internal/pkg/logger"
	"renewal-tracking-be/pkg/events"
	pktNats "renewal-tracking-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery pushes real-time updates to connected clients.
// Implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification dto.NotificationMessage)
}

type INotificationEventService interface {
	// Start begins listening to the event bus. Non-blocking.
	Start()
}

type notificationEventService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationEventService(
	subscriber *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) INotificationEventService {
	return &notificationEventService{
		subscriber: subscriber,
		delivery:   delivery,
		logger:     log,
	}
}

func (s *notificationEventService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationEvents", "No NATS subscriber configured, lifecycle notifications disabled", nil)
		return
	}

	err := s.subscriber.Subscribe("events.>", "renewal-notification-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationEvents", "Failed to start event subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationEvents", "Listening to events.>", nil)
}

func (s *notificationEventService) handleEvent(ctx context.Context, event events.Event) error {
	ownerId, msg, ok := lifecycleNotification(event)
	if !ok {
		return nil
	}

	if s.delivery != nil {
		s.delivery.Send(ownerId, msg)
	}
	s.logger.Info("NotificationEvents", "Notification pushed", map[string]interface{}{
		"event": event.EventType(), "user_id": ownerId.String(),
	})
	return nil
}

// lifecycleNotification translates a renewal lifecycle event into a push
// notification for the record's owner. Returns false for non-renewal events
// and events missing an addressable user.
func lifecycleNotification(event events.Event) (uuid.UUID, dto.NotificationMessage, bool) {
	if !strings.HasPrefix(event.EventType(), "RENEWAL_") {
		return uuid.Nil, dto.NotificationMessage{}, false
	}

	payload := event.Payload()
	userIdStr, _ := payload["user_id"].(string)
	ownerId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, dto.NotificationMessage{}, false
	}

	name, _ := payload["service_name"].(string)
	renewalId, _ := payload["renewal_id"].(string)

	var message string
	switch event.EventType() {
	case events.TypeRenewalCreated:
		message = fmt.Sprintf("%s was added", name)
	case events.TypeRenewalUpdated:
		message = fmt.Sprintf("%s was updated", name)
	case events.TypeRenewalDeleted:
		message = fmt.Sprintf("%s was deleted", name)
	case events.TypeRenewalStatusChanged:
		newStatus, _ := payload["new_status"].(string)
		message = fmt.Sprintf("%s is now %s", name, newStatus)
	case events.TypeRenewalRenewed:
		newEnd, _ := payload["new_end_date"].(string)
		message = fmt.Sprintf("%s was renewed until %s", name, newEnd)
	default:
		return uuid.Nil, dto.NotificationMessage{}, false
	}

	return ownerId, dto.NotificationMessage{
		Type:      "lifecycle",
		Title:     name,
		Message:   message,
		RenewalId: renewalId,
		CreatedAt: event.Timestamp(),
	}, true
}
