package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/pkg/renewal"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestStoreAddAssignsMonotonicIds(t *testing.T) {
	store := NewRenewalStore()

	first := store.Add(&entity.Renewal{Name: "one", EndDate: futureDate(90)})
	second := store.Add(&entity.Renewal{Name: "two", EndDate: futureDate(90)})

	assert.Equal(t, "1", first.Id)
	assert.Equal(t, "2", second.Id)
	assert.Equal(t, entity.StatusActive, first.Status)
}

func TestStoreAddDerivesStatus(t *testing.T) {
	store := NewRenewalStore()

	soon := store.Add(&entity.Renewal{Name: "soon", EndDate: futureDate(10)})
	gone := store.Add(&entity.Renewal{Name: "gone", EndDate: "2020-01-01"})

	assert.Equal(t, entity.StatusExpiringSoon, soon.Status)
	assert.Equal(t, entity.StatusExpired, gone.Status)
}

func TestStoreSeedContinuesIdCounter(t *testing.T) {
	store := NewRenewalStore()
	store.Seed([]*entity.Renewal{
		{Id: "1", Name: "seeded-a"},
		{Id: "2", Name: "seeded-b"},
	})

	added := store.Add(&entity.Renewal{Name: "fresh", EndDate: futureDate(90)})
	assert.Equal(t, "3", added.Id)
}

func TestStoreGet(t *testing.T) {
	store := NewRenewalStore()
	store.SeedDemo()

	rec := store.Get("1")
	if assert.NotNil(t, rec) {
		assert.Equal(t, "example.com", rec.Name)
	}
	assert.Nil(t, store.Get("999"))
}

func TestStoreReturnsCopies(t *testing.T) {
	store := NewRenewalStore()
	store.SeedDemo()

	rec := store.Get("1")
	rec.Name = "mutated"

	assert.Equal(t, "example.com", store.Get("1").Name)
}

func TestStoreUpdate(t *testing.T) {
	store := NewRenewalStore()
	store.SeedDemo()

	t.Run("merges patch in either shape", func(t *testing.T) {
		updated := store.Update("2", map[string]any{"item_name": "Norton Deluxe", "cost": 99.99})
		if assert.NotNil(t, updated) {
			assert.Equal(t, "Norton Deluxe", updated.Name)
			assert.Equal(t, 99.99, updated.Cost)
			// Untouched fields survive the merge.
			assert.Equal(t, "Norton", updated.Provider)
			assert.Equal(t, entity.KindAntivirus, updated.Kind)
		}
	})

	t.Run("preserves position", func(t *testing.T) {
		store.Update("3", map[string]any{"notes": "still third"})
		list := store.List()
		assert.Equal(t, "3", list[2].Id)
	})

	t.Run("cannot reassign id", func(t *testing.T) {
		updated := store.Update("4", map[string]any{"id": "77"})
		if assert.NotNil(t, updated) {
			assert.Equal(t, "4", updated.Id)
		}
		assert.Nil(t, store.Get("77"))
	})

	t.Run("nil for missing record", func(t *testing.T) {
		assert.Nil(t, store.Update("999", map[string]any{"notes": "x"}))
	})
}

func TestStoreDelete(t *testing.T) {
	store := NewRenewalStore()
	store.SeedDemo()

	assert.True(t, store.Delete("1"))
	assert.Nil(t, store.Get("1"))
	assert.False(t, store.Delete("1"))
	assert.Len(t, store.List(), 5)
}

func TestStoreListByOwner(t *testing.T) {
	store := NewRenewalStore()
	store.SeedDemo()

	mine := store.ListByOwner("1")
	assert.Len(t, mine, 2)
	for _, rec := range mine {
		assert.Equal(t, "1", rec.OwnerId)
	}
}

func TestStoreFilterAndStats(t *testing.T) {
	store := NewRenewalStore()
	store.SeedDemo()

	domains := store.Filter(renewal.Filters{Kind: "domain"})
	assert.Len(t, domains, 2)

	stats := store.Stats()
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 1, stats.Expired)
	assert.InDelta(t, 301.94, stats.TotalCost, 0.001)
}
