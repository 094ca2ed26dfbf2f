package specification

import "gorm.io/gorm"

// EmailOrNameContains is the admin user search.
type EmailOrNameContains struct {
	Term string
}

func (s EmailOrNameContains) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Term + "%"
	return db.Where("email ILIKE ? OR full_name ILIKE ?", pattern, pattern)
}

// ByRole filters users by role.
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}
