package entity

type RenewalKind string
type RenewalStatus string
type ReminderChannel string
type RenewalLogAction string

const (
	KindDomain    RenewalKind = "domain"
	KindAntivirus RenewalKind = "antivirus"
	KindHosting   RenewalKind = "hosting"
	KindSoftware  RenewalKind = "software"
	KindOther     RenewalKind = "other"

	StatusActive       RenewalStatus = "active"
	StatusExpiringSoon RenewalStatus = "expiring-soon"
	StatusExpired      RenewalStatus = "expired"
	// Sticky states: set only by explicit user action, never derived from dates.
	StatusPending  RenewalStatus = "pending"
	StatusCanceled RenewalStatus = "canceled"

	ReminderEmail        ReminderChannel = "email"
	ReminderNotification ReminderChannel = "notification"
	ReminderBoth         ReminderChannel = "both"
	ReminderNone         ReminderChannel = "none"
)

// Renewal is the canonical in-memory record. Two wire shapes exist for it
// (legacy item_name/category/vendor/reminder_days_before and current
// service_name/service_type/provider/reminder_type); translation lives in
// pkg/renewal, this struct is shape-agnostic.
//
// Dates are wire-format strings (YYYY-MM-DD); "" means absent or unparseable.
type Renewal struct {
	Id        string
	OwnerId   string
	Name      string
	Kind      RenewalKind
	Provider  string
	StartDate string
	EndDate   string
	Cost      float64
	Status    RenewalStatus
	Notes     string

	// Two incompatible reminder representations, kept independently.
	// No lossy conversion between them is attempted.
	ReminderDaysBefore *int
	ReminderChannel    *ReminderChannel

	// Extra holds wire fields this service does not model, preserved so
	// round-tripping a record never drops backend metadata.
	Extra map[string]any
}

// Clone returns a deep copy.
func (r *Renewal) Clone() *Renewal {
	if r == nil {
		return nil
	}
	dup := *r
	if r.ReminderDaysBefore != nil {
		v := *r.ReminderDaysBefore
		dup.ReminderDaysBefore = &v
	}
	if r.ReminderChannel != nil {
		v := *r.ReminderChannel
		dup.ReminderChannel = &v
	}
	if r.Extra != nil {
		dup.Extra = make(map[string]any, len(r.Extra))
		for k, v := range r.Extra {
			dup.Extra[k] = v
		}
	}
	return &dup
}

// ValidKind reports whether k is one of the supported categories.
func ValidKind(k RenewalKind) bool {
	switch k {
	case KindDomain, KindAntivirus, KindHosting, KindSoftware, KindOther:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s RenewalStatus) bool {
	switch s {
	case StatusActive, StatusExpiringSoon, StatusExpired, StatusPending, StatusCanceled:
		return true
	}
	return false
}
