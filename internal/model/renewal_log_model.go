package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RenewalLog struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RenewalId   uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceName string    `gorm:"type:varchar(255)"`
	Action      string    `gorm:"type:varchar(50);not null"`
	PerformedBy uuid.UUID `gorm:"type:uuid;not null;index"`
	UserEmail   string    `gorm:"type:varchar(255)"`
	Timestamp   time.Time `gorm:"not null;index"`
	Changes     datatypes.JSON
	Notes       string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (RenewalLog) TableName() string {
	return "renewal_logs"
}
