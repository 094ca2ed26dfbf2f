package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"renewal-tracking-be/internal/dto"
	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService drains the audit bus and persists each message as a
// renewal log row.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.RenewalAuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	renewalId, err := uuid.Parse(payload.RenewalId)
	if err != nil {
		log.Printf("[ERROR] Audit message has invalid renewal id %q: %v", payload.RenewalId, err)
		msg.Ack()
		return
	}

	performedBy, _ := uuid.Parse(payload.PerformedBy)

	occurredAt := payload.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	entry := &entity.RenewalLog{
		Id:          uuid.New(),
		RenewalId:   renewalId,
		ServiceName: payload.ServiceName,
		Action:      entity.RenewalLogAction(payload.Action),
		PerformedBy: performedBy,
		UserEmail:   payload.UserEmail,
		Timestamp:   occurredAt,
		Changes:     payload.Changes,
		Notes:       payload.Notes,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.RenewalLogRepository().Create(ctx, entry); err != nil {
		log.Printf("[ERROR] Failed to persist audit entry for renewal %s: %v", payload.RenewalId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
