package renewal

import (
	"testing"
	"time"

	"renewal-tracking-be/internal/entity"
)

var statusRef = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name    string
		endDate string
		want    entity.RenewalStatus
	}{
		{name: "due today is expired", endDate: "2025-01-01", want: entity.StatusExpired},
		{name: "yesterday is expired", endDate: "2024-12-31", want: entity.StatusExpired},
		{name: "tomorrow is expiring soon", endDate: "2025-01-02", want: entity.StatusExpiringSoon},
		{name: "exactly 30 days is expiring soon", endDate: "2025-01-31", want: entity.StatusExpiringSoon},
		{name: "31 days is active", endDate: "2025-02-01", want: entity.StatusActive},
		{name: "next year is active", endDate: "2026-01-01", want: entity.StatusActive},
		{name: "unparseable is expired", endDate: "not-a-date", want: entity.StatusExpired},
		{name: "empty is expired", endDate: "", want: entity.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.endDate, statusRef); got != tt.want {
				t.Errorf("DeriveStatus(%q) = %s, want %s", tt.endDate, got, tt.want)
			}
		})
	}
}

func TestIsSticky(t *testing.T) {
	sticky := []entity.RenewalStatus{entity.StatusPending, entity.StatusCanceled}
	derived := []entity.RenewalStatus{entity.StatusActive, entity.StatusExpiringSoon, entity.StatusExpired}

	for _, s := range sticky {
		if !IsSticky(s) {
			t.Errorf("IsSticky(%s) = false, want true", s)
		}
	}
	for _, s := range derived {
		if IsSticky(s) {
			t.Errorf("IsSticky(%s) = true, want false", s)
		}
	}
}

func TestRefreshStatus(t *testing.T) {
	t.Run("recomputes stale status", func(t *testing.T) {
		rec := &entity.Renewal{EndDate: "2024-12-01", Status: entity.StatusActive}
		if !RefreshStatus(rec, statusRef) {
			t.Fatal("RefreshStatus() = false, want true")
		}
		if rec.Status != entity.StatusExpired {
			t.Errorf("status = %s, want expired", rec.Status)
		}
	})

	t.Run("no change when already correct", func(t *testing.T) {
		rec := &entity.Renewal{EndDate: "2025-06-01", Status: entity.StatusActive}
		if RefreshStatus(rec, statusRef) {
			t.Error("RefreshStatus() = true, want false")
		}
	})

	t.Run("sticky statuses survive", func(t *testing.T) {
		rec := &entity.Renewal{EndDate: "2024-01-01", Status: entity.StatusCanceled}
		if RefreshStatus(rec, statusRef) {
			t.Error("RefreshStatus() = true, want false")
		}
		if rec.Status != entity.StatusCanceled {
			t.Errorf("status = %s, want canceled", rec.Status)
		}
	})

	t.Run("nil record", func(t *testing.T) {
		if RefreshStatus(nil, statusRef) {
			t.Error("RefreshStatus(nil) = true, want false")
		}
	})
}
