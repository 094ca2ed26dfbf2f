package renewal

import (
	"time"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/pkg/dateutil"
)

// ExpiringSoonWindowDays is the inclusive lead window for "expiring-soon".
const ExpiringSoonWindowDays = 30

// DeriveStatus classifies a renewal from its end date and a reference date.
// Boundaries are closed: exactly 30 days out is expiring-soon, exactly 0 days
// (or an unparseable end date) is expired.
func DeriveStatus(endDate string, ref time.Time) entity.RenewalStatus {
	days := dateutil.DaysRemaining(endDate, ref)
	switch {
	case days <= 0:
		return entity.StatusExpired
	case days <= ExpiringSoonWindowDays:
		return entity.StatusExpiringSoon
	default:
		return entity.StatusActive
	}
}

// DeriveStatusToday is DeriveStatus against the current date.
func DeriveStatusToday(endDate string) entity.RenewalStatus {
	return DeriveStatus(endDate, time.Now())
}

// IsSticky reports whether a status survives date-driven re-derivation.
// pending and canceled are set only by explicit user action and cannot be
// computed from dates, so they are preserved until the user changes them.
func IsSticky(s entity.RenewalStatus) bool {
	return s == entity.StatusPending || s == entity.StatusCanceled
}

// RefreshStatus recomputes the derived status in place, leaving sticky
// statuses untouched. Returns true when the stored status changed.
func RefreshStatus(rec *entity.Renewal, ref time.Time) bool {
	if rec == nil || IsSticky(rec.Status) {
		return false
	}
	derived := DeriveStatus(rec.EndDate, ref)
	if derived == rec.Status {
		return false
	}
	rec.Status = derived
	return true
}
