package entity

import (
	"time"

	"byteapi/cmd/internal/utils/uid"

	"gorm.io/gorm"
)

// ActivityLog entries are append-only in normal operation.
type ActivityLog struct {
	ID         int64          `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	UserID     string         `gorm:"not null;index" json:"user_id"`
	Action     string         `gorm:"not null;index" json:"action"`
	Collection string         `gorm:"not null;index" json:"collection"`
	DocumentID string         `gorm:"not null;column:document_id" json:"document_id"`
	Changes    map[string]any `gorm:"serializer:json" json:"changes"`
	Metadata   map[string]any `gorm:"serializer:json" json:"metadata"`
	Timestamp  time.Time      `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (ActivityLog) TableName() string {
	return TableActivityLog
}

// BeforeCreate assigns the store-generated id.
func (a *ActivityLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == 0 {
		a.ID = uid.Generate()
	}
	return nil
}
