package renewal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"renewal-tracking-be/internal/entity"
)

func sampleRecords() []*entity.Renewal {
	return []*entity.Renewal{
		{Id: "1", Name: "example.com", Kind: entity.KindDomain, Provider: "GoDaddy",
			EndDate: "2025-05-10", Cost: 12.99, Status: entity.StatusActive},
		{Id: "2", Name: "Norton 360", Kind: entity.KindAntivirus, Provider: "Norton",
			EndDate: "2025-02-15", Cost: 89.99, Status: entity.StatusExpiringSoon},
		{Id: "3", Name: "MyApp Hosting", Kind: entity.KindHosting, Provider: "AWS",
			EndDate: "2025-05-20", Cost: 29.99, Status: entity.StatusActive},
		{Id: "4", Name: "Adobe Creative Cloud", Kind: entity.KindSoftware, Provider: "Adobe",
			EndDate: "2024-04-30", Cost: 52.99, Status: entity.StatusExpired},
		{Id: "5", Name: "company.org", Kind: entity.KindDomain, Provider: "Namecheap",
			EndDate: "2025-05-10", Cost: 15.99, Status: entity.StatusCanceled},
	}
}

func ids(records []*entity.Renewal) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Id)
	}
	return out
}

func TestFilter(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name    string
		filters Filters
		wantIds []string
	}{
		{name: "no criteria returns everything", filters: Filters{}, wantIds: []string{"1", "2", "3", "4", "5"}},
		{name: "all means no constraint", filters: Filters{Kind: "all", Status: "all"}, wantIds: []string{"1", "2", "3", "4", "5"}},
		{name: "by kind", filters: Filters{Kind: "domain"}, wantIds: []string{"1", "5"}},
		{name: "by status", filters: Filters{Status: "expired"}, wantIds: []string{"4"}},
		{name: "provider is case-insensitive substring", filters: Filters{Provider: "god"}, wantIds: []string{"1"}},
		{name: "search matches name or provider", filters: Filters{Search: "norton"}, wantIds: []string{"2"}},
		{name: "criteria are anded", filters: Filters{Kind: "domain", Search: "company"}, wantIds: []string{"5"}},
		{name: "date range inclusive bounds", filters: Filters{Range: &DateRange{Start: "2025-02-15", End: "2025-05-10"}}, wantIds: []string{"1", "2", "5"}},
		{name: "open-ended range", filters: Filters{Range: &DateRange{Start: "2025-05-01"}}, wantIds: []string{"1", "3", "5"}},
		{name: "no match", filters: Filters{Search: "zzz"}, wantIds: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.filters)
			assert.Equal(t, tt.wantIds, ids(got))
		})
	}
}

func TestFilterSkipsUnparseableDatesInRange(t *testing.T) {
	records := []*entity.Renewal{
		{Id: "ok", EndDate: "2025-03-01"},
		{Id: "bad", EndDate: "???"},
	}
	got := Filter(records, Filters{Range: &DateRange{Start: "2025-01-01"}})
	assert.Equal(t, []string{"ok"}, ids(got))
}

func TestSort(t *testing.T) {
	records := sampleRecords()

	t.Run("by name ascending ignores case", func(t *testing.T) {
		got := Sort(records, SortByName, SortAsc)
		assert.Equal(t, []string{"4", "5", "1", "3", "2"}, ids(got))
	})

	t.Run("by cost descending", func(t *testing.T) {
		got := Sort(records, SortByCost, SortDesc)
		assert.Equal(t, []string{"2", "4", "3", "5", "1"}, ids(got))
	})

	t.Run("by end date keeps ties in input order", func(t *testing.T) {
		got := Sort(records, SortByEndDate, SortAsc)
		// Records 1 and 5 share an end date; 1 precedes 5 in the input.
		assert.Equal(t, []string{"4", "2", "1", "5", "3"}, ids(got))
	})

	t.Run("input slice is untouched", func(t *testing.T) {
		before := ids(records)
		Sort(records, SortByCost, SortAsc)
		assert.Equal(t, before, ids(records))
	})

	t.Run("unknown key preserves order", func(t *testing.T) {
		got := Sort(records, SortKey("bogus"), SortAsc)
		assert.Equal(t, ids(records), ids(got))
	})
}

func TestAggregate(t *testing.T) {
	stats := Aggregate(sampleRecords())

	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.ExpiringSoon)
	assert.Equal(t, 1, stats.Expired)
	// Canceled counts toward the total but no status bucket.
	assert.Equal(t, 5, stats.Total)
	assert.InDelta(t, 201.95, stats.TotalCost, 0.001)
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)
	assert.Equal(t, Stats{}, stats)
}
