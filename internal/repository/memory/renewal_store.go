// Package memory holds in-process stores: the local-first renewal
// collection (used when no database is configured and in tests) and the
// reminder dedupe cache.
package memory

import (
	"strconv"
	"sync"
	"time"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/pkg/renewal"
)

// RenewalStore owns an in-memory renewal collection. Each caller constructs
// its own instance; there is no shared global state.
type RenewalStore struct {
	mu     sync.RWMutex
	items  []*entity.Renewal
	nextId int
}

func NewRenewalStore() *RenewalStore {
	return &RenewalStore{nextId: 1}
}

// Seed replaces the collection. Ids already present are kept; the id counter
// continues past the seeded length.
func (s *RenewalStore) Seed(records []*entity.Renewal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]*entity.Renewal, 0, len(records))
	for _, rec := range records {
		s.items = append(s.items, rec.Clone())
	}
	s.nextId = len(records) + 1
}

// List returns a copy of the collection in insertion order.
func (s *RenewalStore) List() []*entity.Renewal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Renewal, 0, len(s.items))
	for _, rec := range s.items {
		out = append(out, rec.Clone())
	}
	return out
}

// ListByOwner returns the owner's records in insertion order.
func (s *RenewalStore) ListByOwner(ownerId string) []*entity.Renewal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Renewal, 0)
	for _, rec := range s.items {
		if rec.OwnerId == ownerId {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// Get returns the record with the given id, or nil.
func (s *RenewalStore) Get(id string) *entity.Renewal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.items {
		if rec.Id == id {
			return rec.Clone()
		}
	}
	return nil
}

// Add assigns a fresh id, derives the initial status from the end date, and
// appends the record. The stored copy is returned.
func (s *RenewalStore) Add(rec *entity.Renewal) *entity.Renewal {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := rec.Clone()
	stored.Id = strconv.Itoa(s.nextId)
	s.nextId++
	stored.Status = renewal.DeriveStatus(stored.EndDate, time.Now())
	s.items = append(s.items, stored)
	return stored.Clone()
}

// Update merges a wire-shaped patch (either key convention) over the record
// with the given id, preserving its position in the collection. Returns nil
// when no record matches. A patch cannot reassign the id.
func (s *RenewalStore) Update(id string, patch map[string]any) *entity.Renewal {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.items {
		if rec.Id != id {
			continue
		}
		merged := renewal.ToWire(rec, renewal.ShapeCurrent)
		for k, v := range renewal.NormalizeKeys(patch, renewal.ShapeCurrent) {
			merged[k] = v
		}
		updated := renewal.ToCanonical(merged)
		updated.Id = id
		s.items[i] = updated
		return updated.Clone()
	}
	return nil
}

// Delete removes the record and reports whether the collection shrank.
func (s *RenewalStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.items {
		if rec.Id == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Filter applies collection filters over a snapshot.
func (s *RenewalStore) Filter(f renewal.Filters) []*entity.Renewal {
	return renewal.Filter(s.List(), f)
}

// Stats aggregates the current collection.
func (s *RenewalStore) Stats() renewal.Stats {
	return renewal.Aggregate(s.List())
}

// SeedDemo loads the demo fixture set used by local-first mode.
func (s *RenewalStore) SeedDemo() {
	email := entity.ReminderEmail
	both := entity.ReminderBoth
	notification := entity.ReminderNotification

	s.Seed([]*entity.Renewal{
		{Id: "1", OwnerId: "2", Name: "example.com", Kind: entity.KindDomain, Provider: "GoDaddy",
			StartDate: "2024-05-10", EndDate: "2025-05-10", Cost: 12.99, Status: entity.StatusActive,
			ReminderChannel: &email, Notes: "Primary website domain"},
		{Id: "2", OwnerId: "2", Name: "Norton 360", Kind: entity.KindAntivirus, Provider: "Norton",
			StartDate: "2024-02-15", EndDate: "2025-02-15", Cost: 89.99, Status: entity.StatusActive,
			ReminderChannel: &both},
		{Id: "3", OwnerId: "2", Name: "MyApp Hosting", Kind: entity.KindHosting, Provider: "AWS",
			StartDate: "2024-03-01", EndDate: "2025-05-20", Cost: 29.99, Status: entity.StatusExpiringSoon,
			ReminderChannel: &notification, Notes: "Company website hosting"},
		{Id: "4", OwnerId: "1", Name: "Office 365", Kind: entity.KindSoftware, Provider: "Microsoft",
			StartDate: "2024-01-01", EndDate: "2025-01-01", Cost: 99.99, Status: entity.StatusActive,
			ReminderChannel: &email},
		{Id: "5", OwnerId: "1", Name: "company.org", Kind: entity.KindDomain, Provider: "Namecheap",
			StartDate: "2023-11-15", EndDate: "2024-11-15", Cost: 15.99, Status: entity.StatusActive,
			ReminderChannel: &both},
		{Id: "6", OwnerId: "2", Name: "Adobe Creative Cloud", Kind: entity.KindSoftware, Provider: "Adobe",
			StartDate: "2024-06-01", EndDate: "2024-04-30", Cost: 52.99, Status: entity.StatusExpired,
			ReminderChannel: &notification, Notes: "Need to renew ASAP"},
	})
}
