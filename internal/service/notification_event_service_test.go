package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renewal-tracking-be/pkg/events"
)

func TestLifecycleNotification(t *testing.T) {
	ownerId := uuid.New()

	t.Run("created event addresses the owner", func(t *testing.T) {
		event := events.NewRenewalCreated("r1", "example.com", ownerId.String())

		target, msg, ok := lifecycleNotification(event)

		require.True(t, ok)
		assert.Equal(t, ownerId, target)
		assert.Equal(t, "lifecycle", msg.Type)
		assert.Equal(t, "example.com", msg.Title)
		assert.Equal(t, "example.com was added", msg.Message)
		assert.Equal(t, "r1", msg.RenewalId)
	})

	t.Run("status change names the new status", func(t *testing.T) {
		event := events.NewRenewalStatusChanged("r1", "Norton 360", ownerId.String(), "active", "canceled")

		_, msg, ok := lifecycleNotification(event)

		require.True(t, ok)
		assert.Equal(t, "Norton 360 is now canceled", msg.Message)
	})

	t.Run("renewal names the new end date", func(t *testing.T) {
		event := events.NewRenewalRenewed("r1", "company.org", ownerId.String(), "2026-11-15")

		_, msg, ok := lifecycleNotification(event)

		require.True(t, ok)
		assert.Equal(t, "company.org was renewed until 2026-11-15", msg.Message)
	})

	t.Run("non-renewal events are skipped", func(t *testing.T) {
		event := events.NewUserLogin(ownerId.String(), "user@example.com")

		_, _, ok := lifecycleNotification(event)
		assert.False(t, ok)
	})

	t.Run("unaddressable events are skipped", func(t *testing.T) {
		event := events.NewRenewalDeleted("r1", "example.com", "not-a-uuid")

		_, _, ok := lifecycleNotification(event)
		assert.False(t, ok)
	})

	t.Run("unknown renewal event types are skipped", func(t *testing.T) {
		event := events.BaseEvent{
			Type:       "RENEWAL_ARCHIVED",
			Data:       map[string]interface{}{"user_id": ownerId.String()},
			OccurredAt: time.Now(),
		}

		_, _, ok := lifecycleNotification(event)
		assert.False(t, ok)
	})
}
