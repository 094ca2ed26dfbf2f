package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByKind filters renewals by category.
type ByKind struct {
	Kind string
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}

// ByStatus filters renewals by lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ProviderContains matches the provider name case-insensitively.
type ProviderContains struct {
	Term string
}

func (s ProviderContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider ILIKE ?", "%"+s.Term+"%")
}

// NameOrProviderContains is the free-text search across name and provider.
type NameOrProviderContains struct {
	Term string
}

func (s NameOrProviderContains) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Term + "%"
	return db.Where("name ILIKE ? OR provider ILIKE ?", pattern, pattern)
}

// EndDateBetween bounds the end date, inclusive. Nil bounds are open.
type EndDateBetween struct {
	Start *time.Time
	End   *time.Time
}

func (s EndDateBetween) Apply(db *gorm.DB) *gorm.DB {
	if s.Start != nil {
		db = db.Where("end_date >= ?", *s.Start)
	}
	if s.End != nil {
		db = db.Where("end_date <= ?", *s.End)
	}
	return db
}

// ByRenewalID filters audit log entries by their parent renewal.
type ByRenewalID struct {
	RenewalID uuid.UUID
}

func (s ByRenewalID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("renewal_id = ?", s.RenewalID)
}

// ByEmail filters users by exact email.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
