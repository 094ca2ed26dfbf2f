package renewal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"renewal-tracking-be/internal/entity"
)

func TestToCanonicalLegacyShape(t *testing.T) {
	raw := map[string]any{
		"id":                   "42",
		"item_name":            "example.com",
		"category":             "domain",
		"vendor":               "GoDaddy",
		"start_date":           "2024-05-10",
		"end_date":             "2025-05-10",
		"cost":                 12.99,
		"status":               "active",
		"reminder_days_before": float64(14),
	}

	rec := ToCanonical(raw)

	assert.Equal(t, "42", rec.Id)
	assert.Equal(t, "example.com", rec.Name)
	assert.Equal(t, entity.KindDomain, rec.Kind)
	assert.Equal(t, "GoDaddy", rec.Provider)
	assert.Equal(t, "2024-05-10", rec.StartDate)
	assert.Equal(t, "2025-05-10", rec.EndDate)
	assert.Equal(t, 12.99, rec.Cost)
	assert.Equal(t, entity.StatusActive, rec.Status)
	if assert.NotNil(t, rec.ReminderDaysBefore) {
		assert.Equal(t, 14, *rec.ReminderDaysBefore)
	}
	assert.Nil(t, rec.ReminderChannel)
}

func TestToCanonicalCurrentKeyWins(t *testing.T) {
	raw := map[string]any{
		"item_name":    "old name",
		"service_name": "new name",
		"category":     "domain",
		"service_type": "hosting",
	}

	rec := ToCanonical(raw)

	assert.Equal(t, "new name", rec.Name)
	assert.Equal(t, entity.KindHosting, rec.Kind)
}

func TestToCanonicalDegradesFieldByField(t *testing.T) {
	raw := map[string]any{
		"service_name": "Thing",
		"end_date":     "31/12/2025",
		"cost":         "not a number",
		"start_date":   "2025-01-01T08:00:00Z",
	}

	rec := ToCanonical(raw)

	assert.Equal(t, "Thing", rec.Name)
	assert.Equal(t, "", rec.EndDate)
	assert.Equal(t, float64(0), rec.Cost)
	assert.Equal(t, "2025-01-01", rec.StartDate)
}

func TestToCanonicalStringCost(t *testing.T) {
	rec := ToCanonical(map[string]any{"cost": "89.99"})
	assert.Equal(t, 89.99, rec.Cost)
}

func TestToCanonicalNumericId(t *testing.T) {
	rec := ToCanonical(map[string]any{"id": float64(7)})
	assert.Equal(t, "7", rec.Id)
}

func TestExtraFieldsPreserved(t *testing.T) {
	raw := map[string]any{
		"service_name":  "Office 365",
		"billing_cycle": "annual",
		"seat_count":    float64(25),
	}

	rec := ToCanonical(raw)

	assert.Equal(t, "annual", rec.Extra["billing_cycle"])
	assert.Equal(t, float64(25), rec.Extra["seat_count"])

	out := ToWire(rec, ShapeCurrent)
	assert.Equal(t, "annual", out["billing_cycle"])
	assert.Equal(t, float64(25), out["seat_count"])
}

func TestToWireShapes(t *testing.T) {
	lead := 7
	ch := entity.ReminderEmail
	rec := &entity.Renewal{
		Id:                 "a1",
		Name:               "Norton 360",
		Kind:               entity.KindAntivirus,
		Provider:           "Norton",
		StartDate:          "2024-02-15",
		EndDate:            "2025-02-15",
		Cost:               89.99,
		Status:             entity.StatusActive,
		ReminderDaysBefore: &lead,
		ReminderChannel:    &ch,
	}

	legacy := ToWire(rec, ShapeLegacy)
	assert.Equal(t, "Norton 360", legacy["item_name"])
	assert.Equal(t, "antivirus", legacy["category"])
	assert.Equal(t, "Norton", legacy["vendor"])
	assert.Equal(t, 7, legacy["reminder_days_before"])
	assert.NotContains(t, legacy, "service_name")
	assert.NotContains(t, legacy, "reminder_type")

	current := ToWire(rec, ShapeCurrent)
	assert.Equal(t, "Norton 360", current["service_name"])
	assert.Equal(t, "antivirus", current["service_type"])
	assert.Equal(t, "Norton", current["provider"])
	assert.Equal(t, "email", current["reminder_type"])
	assert.NotContains(t, current, "item_name")
	assert.NotContains(t, current, "reminder_days_before")
}

func TestToWireOmitsUnsetOptionals(t *testing.T) {
	rec := &entity.Renewal{Name: "Bare"}
	out := ToWire(rec, ShapeCurrent)

	assert.Equal(t, "Bare", out["service_name"])
	assert.NotContains(t, out, "notes")
	assert.NotContains(t, out, "reminder_type")
	assert.NotContains(t, out, "start_date")
	assert.NotContains(t, out, "status")
	// Cost is always emitted; zero is a legitimate price.
	assert.Contains(t, out, "cost")
}

func TestRoundTripLosesNothing(t *testing.T) {
	raw := map[string]any{
		"id":           "r1",
		"service_name": "MyApp Hosting",
		"service_type": "hosting",
		"provider":     "AWS",
		"start_date":   "2024-03-01",
		"end_date":     "2025-05-20",
		"cost":         29.99,
		"status":       "expiring-soon",
		"notes":        "Company website hosting",
		"custom_tag":   "infra",
	}

	first := ToCanonical(raw)
	second := ToCanonical(ToWire(first, ShapeLegacy))

	assert.Equal(t, first, second)
}

func TestNormalizeKeys(t *testing.T) {
	t.Run("legacy patch to current keys", func(t *testing.T) {
		patch := map[string]any{"item_name": "Renamed", "vendor": "NewCo"}
		out := NormalizeKeys(patch, ShapeCurrent)

		assert.Equal(t, "Renamed", out["service_name"])
		assert.Equal(t, "NewCo", out["provider"])
		assert.NotContains(t, out, "item_name")
		assert.NotContains(t, out, "vendor")
	})

	t.Run("current key wins over legacy in same patch", func(t *testing.T) {
		patch := map[string]any{"item_name": "old", "service_name": "new"}
		out := NormalizeKeys(patch, ShapeCurrent)
		assert.Equal(t, "new", out["service_name"])
	})

	t.Run("shape-exclusive fields carried as-is", func(t *testing.T) {
		patch := map[string]any{"reminder_days_before": 14, "reminder_type": "email"}
		out := NormalizeKeys(patch, ShapeCurrent)

		// reminder_type maps into the current shape; the legacy-only lead
		// time has no current key and passes through untouched.
		assert.Equal(t, "email", out["reminder_type"])
		assert.Equal(t, 14, out["reminder_days_before"])
	})

	t.Run("unknown keys pass through", func(t *testing.T) {
		patch := map[string]any{"billing_cycle": "monthly"}
		out := NormalizeKeys(patch, ShapeLegacy)
		assert.Equal(t, "monthly", out["billing_cycle"])
	})
}
