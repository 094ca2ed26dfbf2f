package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/internal/repository/memory"
)

type recordingEmailService struct {
	reminders int
	notices   int
}

func (r *recordingEmailService) SendRenewalReminder(toEmail, serviceName, endDate string, daysRemaining int) error {
	r.reminders++
	return nil
}

func (r *recordingEmailService) SendExpiredNotice(toEmail, serviceName, endDate string) error {
	r.notices++
	return nil
}

func TestResolveChannel(t *testing.T) {
	none := entity.ReminderNone
	both := entity.ReminderBoth

	tests := []struct {
		name    string
		channel *entity.ReminderChannel
		want    entity.ReminderChannel
	}{
		{name: "unset defaults to email", channel: nil, want: entity.ReminderEmail},
		{name: "none passes through", channel: &none, want: entity.ReminderNone},
		{name: "both passes through", channel: &both, want: entity.ReminderBoth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &entity.Renewal{ReminderChannel: tt.channel}
			assert.Equal(t, tt.want, resolveChannel(rec))
		})
	}
}

func TestDeliverExpiredHonorsChannel(t *testing.T) {
	expiredRecord := func(channel entity.ReminderChannel) *entity.Renewal {
		return &entity.Renewal{
			Id: "r1", OwnerId: "2", Name: "Adobe Creative Cloud",
			EndDate: "2024-04-30", Status: entity.StatusExpired,
			ReminderChannel: &channel,
		}
	}

	t.Run("none suppresses every delivery", func(t *testing.T) {
		emails := &recordingEmailService{}
		s := &reminderService{emailService: emails, sent: memory.NewReminderCache()}

		s.deliverExpired(context.Background(), nil, expiredRecord(entity.ReminderNone), map[string]string{})

		assert.Zero(t, emails.notices)
		// Nothing was delivered, so nothing is marked as sent.
		assert.False(t, s.sent.Sent("r1:expired", time.Now()))
	})

	t.Run("notification channel skips email", func(t *testing.T) {
		emails := &recordingEmailService{}
		s := &reminderService{emailService: emails, sent: memory.NewReminderCache()}

		s.deliverExpired(context.Background(), nil, expiredRecord(entity.ReminderNotification), map[string]string{})

		assert.Zero(t, emails.notices)
		assert.True(t, s.sent.Sent("r1:expired", time.Now()))
	})
}

func TestDeliverUpcomingHonorsChannel(t *testing.T) {
	none := entity.ReminderNone
	rec := &entity.Renewal{
		Id: "r2", OwnerId: "2", Name: "Norton 360",
		EndDate: "2025-02-15", Status: entity.StatusExpiringSoon,
		ReminderChannel: &none,
	}

	emails := &recordingEmailService{}
	s := &reminderService{emailService: emails, sent: memory.NewReminderCache()}

	s.deliverUpcoming(context.Background(), nil, rec, 5, map[string]string{})

	assert.Zero(t, emails.reminders)
	assert.False(t, s.sent.Sent("r2", time.Now()))
}
