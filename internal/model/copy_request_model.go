package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CopyRequest struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_copy_requests_user_date"`
	Date      string         `gorm:"type:varchar(10);not null;index:idx_copy_requests_user_date"`
	Form      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (CopyRequest) TableName() string {
	return "copy_requests"
}

type UsageEvent struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind          string     `gorm:"type:text;not null"`
	ChatSessionId *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

func (UsageEvent) TableName() string {
	return "usage_events"
}
