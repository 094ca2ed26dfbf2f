package renewal

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/pkg/dateutil"
)

// Filters are ANDed together; zero values (and the literal "all") impose no
// constraint.
type Filters struct {
	Kind     string
	Status   string
	Provider string
	Search   string
	Range    *DateRange
}

// DateRange bounds the end date, inclusive on both sides. Empty bound = open.
type DateRange struct {
	Start string
	End   string
}

type SortKey string
type SortDirection string

const (
	SortByEndDate  SortKey = "endDate"
	SortByName     SortKey = "name"
	SortByProvider SortKey = "provider"
	SortByCost     SortKey = "cost"

	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Stats aggregates a collection. Counts come from each record's stored
// status; callers wanting date-consistent counts refresh statuses first.
type Stats struct {
	Active       int     `json:"active"`
	ExpiringSoon int     `json:"expiringSoon"`
	Expired      int     `json:"expired"`
	Total        int     `json:"total"`
	TotalCost    float64 `json:"totalCost"`
}

func active(criterion string) bool {
	return criterion != "" && criterion != "all"
}

// Filter returns the records matching every provided criterion, preserving
// input order. With no criteria the input is returned unchanged.
func Filter(records []*entity.Renewal, f Filters) []*entity.Renewal {
	out := make([]*entity.Renewal, 0, len(records))
	for _, rec := range records {
		if !matches(rec, f) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matches(rec *entity.Renewal, f Filters) bool {
	if active(f.Kind) && string(rec.Kind) != f.Kind {
		return false
	}
	if active(f.Status) && string(rec.Status) != f.Status {
		return false
	}
	if active(f.Provider) && !containsFold(rec.Provider, f.Provider) {
		return false
	}
	if active(f.Search) && !containsFold(rec.Name, f.Search) && !containsFold(rec.Provider, f.Search) {
		return false
	}
	if f.Range != nil {
		end, ok := dateutil.Parse(rec.EndDate)
		if !ok {
			return false
		}
		end = dateutil.Midnight(end)
		if from, ok := dateutil.Parse(f.Range.Start); ok && end.Before(dateutil.Midnight(from)) {
			return false
		}
		if to, ok := dateutil.Parse(f.Range.End); ok && end.After(dateutil.Midnight(to)) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

var nameCollator = collate.New(language.English, collate.IgnoreCase)

// Sort returns a new slice ordered by key and direction. The sort is stable:
// equal keys keep their relative input order, so pagination is deterministic.
func Sort(records []*entity.Renewal, key SortKey, dir SortDirection) []*entity.Renewal {
	out := make([]*entity.Renewal, len(records))
	copy(out, records)

	less := func(a, b *entity.Renewal) bool { return false }
	switch key {
	case SortByName:
		less = func(a, b *entity.Renewal) bool { return nameCollator.CompareString(a.Name, b.Name) < 0 }
	case SortByProvider:
		less = func(a, b *entity.Renewal) bool { return nameCollator.CompareString(a.Provider, b.Provider) < 0 }
	case SortByCost:
		less = func(a, b *entity.Renewal) bool { return a.Cost < b.Cost }
	case SortByEndDate:
		less = func(a, b *entity.Renewal) bool {
			ta, _ := dateutil.Parse(a.EndDate)
			tb, _ := dateutil.Parse(b.EndDate)
			return ta.Before(tb)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Aggregate computes collection statistics. TotalCost is the raw sum across
// all records regardless of status; rounding is a presentation concern.
func Aggregate(records []*entity.Renewal) Stats {
	s := Stats{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case entity.StatusActive:
			s.Active++
		case entity.StatusExpiringSoon:
			s.ExpiringSoon++
		case entity.StatusExpired:
			s.Expired++
		}
		s.TotalCost += rec.Cost
	}
	return s
}
