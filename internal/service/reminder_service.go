package service

import (
	"context"
	"fmt"
	"time"

	"renewal-tracking-be/internal/dto"
	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/internal/pkg/logger"
	"renewal-tracking-be/internal/pkg/mailer"
	"renewal-tracking-be/internal/repository/memory"
	"renewal-tracking-be/internal/repository/specification"
	"renewal-tracking-be/internal/repository/unitofwork"
	"renewal-tracking-be/internal/websocket"
	"renewal-tracking-be/pkg/dateutil"
	"renewal-tracking-be/pkg/renewal"

	"github.com/google/uuid"
)

// DefaultReminderLeadDays applies when a renewal has no explicit lead time.
const DefaultReminderLeadDays = 7

type IReminderService interface {
	// Run blocks, scanning on the configured interval until ctx is done.
	Run(ctx context.Context)
	// Scan performs a single pass: refresh statuses, deliver due reminders.
	Scan(ctx context.Context) error
}

type reminderService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	hub          *websocket.Hub
	sent         *memory.ReminderCache
	logger       logger.ILogger
	interval     time.Duration
}

func NewReminderService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	hub *websocket.Hub,
	log logger.ILogger,
	interval time.Duration,
) IReminderService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &reminderService{
		uowFactory:   uowFactory,
		emailService: emailService,
		hub:          hub,
		sent:         memory.NewReminderCache(),
		logger:       log,
		interval:     interval,
	}
}

func (s *reminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// First pass right away so restarts don't delay reminders a full interval.
	if err := s.Scan(ctx); err != nil {
		s.logger.Error("Reminder", "Initial scan failed", map[string]interface{}{"error": err.Error()})
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Scan(ctx); err != nil {
				s.logger.Error("Reminder", "Scan failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

func (s *reminderService) Scan(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.RenewalRepository().FindAll(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	emails := make(map[string]string)

	for _, rec := range records {
		if renewal.RefreshStatus(rec, now) {
			if err := uow.RenewalRepository().Update(ctx, rec); err != nil {
				s.logger.Warn("Reminder", "Failed to persist refreshed status", map[string]interface{}{
					"renewal_id": rec.Id, "error": err.Error(),
				})
			}
		}

		if renewal.IsSticky(rec.Status) {
			continue
		}

		days := dateutil.DaysRemaining(rec.EndDate, now)
		lead := DefaultReminderLeadDays
		if rec.ReminderDaysBefore != nil {
			lead = *rec.ReminderDaysBefore
		}

		switch {
		case days > 0 && days <= lead:
			s.deliverUpcoming(ctx, uow, rec, days, emails)
		case days <= 0 && rec.Status == entity.StatusExpired:
			s.deliverExpired(ctx, uow, rec, emails)
		}
	}

	return nil
}

func (s *reminderService) deliverUpcoming(ctx context.Context, uow unitofwork.UnitOfWork, rec *entity.Renewal, days int, emails map[string]string) {
	today := time.Now()
	if s.sent.Sent(rec.Id, today) {
		return
	}

	channel := resolveChannel(rec)
	if channel == entity.ReminderNone {
		return
	}

	if channel == entity.ReminderEmail || channel == entity.ReminderBoth {
		if email := s.ownerEmail(ctx, uow, rec.OwnerId, emails); email != "" {
			if err := s.emailService.SendRenewalReminder(email, rec.Name, dateutil.FormatDisplay(rec.EndDate), days); err != nil {
				s.logger.Warn("Reminder", "Email delivery failed", map[string]interface{}{
					"renewal_id": rec.Id, "error": err.Error(),
				})
			}
		}
	}

	if channel == entity.ReminderNotification || channel == entity.ReminderBoth {
		s.push(rec, "reminder", fmt.Sprintf("%s expires in %d days", rec.Name, days))
	}

	s.sent.MarkSent(rec.Id, today)
	s.logger.Info("Reminder", "Reminder delivered", map[string]interface{}{
		"renewal_id": rec.Id, "days_remaining": days, "channel": string(channel),
	})
}

func (s *reminderService) deliverExpired(ctx context.Context, uow unitofwork.UnitOfWork, rec *entity.Renewal, emails map[string]string) {
	today := time.Now()
	// Separate dedupe key so the expiry notice is not swallowed by a reminder
	// sent earlier the same day.
	key := rec.Id + ":expired"
	if s.sent.Sent(key, today) {
		return
	}

	channel := resolveChannel(rec)
	if channel == entity.ReminderNone {
		return
	}

	if channel == entity.ReminderEmail || channel == entity.ReminderBoth {
		if email := s.ownerEmail(ctx, uow, rec.OwnerId, emails); email != "" {
			if err := s.emailService.SendExpiredNotice(email, rec.Name, dateutil.FormatDisplay(rec.EndDate)); err != nil {
				s.logger.Warn("Reminder", "Expired notice delivery failed", map[string]interface{}{
					"renewal_id": rec.Id, "error": err.Error(),
				})
			}
		}
	}

	if channel == entity.ReminderNotification || channel == entity.ReminderBoth {
		s.push(rec, "expired", fmt.Sprintf("%s has expired", rec.Name))
	}

	s.sent.MarkSent(key, today)
}

// resolveChannel returns the record's delivery channel, defaulting to email.
// Every delivery path goes through this, so "none" silences a record entirely.
func resolveChannel(rec *entity.Renewal) entity.ReminderChannel {
	if rec.ReminderChannel != nil {
		return *rec.ReminderChannel
	}
	return entity.ReminderEmail
}

func (s *reminderService) push(rec *entity.Renewal, kind, message string) {
	if s.hub == nil {
		return
	}
	ownerId, err := uuid.Parse(rec.OwnerId)
	if err != nil {
		return
	}
	s.hub.Send(ownerId, dto.NotificationMessage{
		Type:      kind,
		Title:     rec.Name,
		Message:   message,
		RenewalId: rec.Id,
		CreatedAt: time.Now(),
	})
}

func (s *reminderService) ownerEmail(ctx context.Context, uow unitofwork.UnitOfWork, ownerId string, cache map[string]string) string {
	if email, ok := cache[ownerId]; ok {
		return email
	}
	uid, err := uuid.Parse(ownerId)
	if err != nil {
		cache[ownerId] = ""
		return ""
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: uid})
	if err != nil || user == nil {
		cache[ownerId] = ""
		return ""
	}
	cache[ownerId] = user.Email
	return user.Email
}
