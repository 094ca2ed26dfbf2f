package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ReminderCache dedupes reminder delivery: at most one reminder per renewal
// per calendar day, across repeated scan passes.
type ReminderCache struct {
	cache *cache.Cache
}

func NewReminderCache() *ReminderCache {
	// Entries expire after a day; purge sweep every hour.
	return &ReminderCache{
		cache: cache.New(24*time.Hour, 1*time.Hour),
	}
}

func key(renewalId string, day time.Time) string {
	return renewalId + "@" + day.Format("2006-01-02")
}

// Sent reports whether a reminder was already recorded for this renewal today.
func (c *ReminderCache) Sent(renewalId string, day time.Time) bool {
	_, found := c.cache.Get(key(renewalId, day))
	return found
}

// MarkSent records a delivered reminder.
func (c *ReminderCache) MarkSent(renewalId string, day time.Time) {
	c.cache.Set(key(renewalId, day), struct{}{}, cache.DefaultExpiration)
}
