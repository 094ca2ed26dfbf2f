package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Renewal struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name               string     `gorm:"type:varchar(255);not null"`
	Kind               string     `gorm:"type:varchar(50);not null;default:'other'"`
	Provider           string     `gorm:"type:varchar(255);not null"`
	StartDate          *time.Time `gorm:"type:date"`
	EndDate            *time.Time `gorm:"type:date;index"`
	Cost               float64    `gorm:"type:numeric(12,2);not null;default:0"`
	Status             string     `gorm:"type:varchar(50);not null;default:'active';index"`
	Notes              string     `gorm:"type:text"`
	ReminderDaysBefore *int
	ReminderChannel    *string `gorm:"type:varchar(20)"`
	// Wire fields this service does not model, preserved verbatim.
	Extra     datatypes.JSONMap
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Renewal) TableName() string {
	return "renewals"
}
