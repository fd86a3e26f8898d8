package entity

import "time"

type Announcement struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Date        string    `gorm:"not null" json:"date"` // display string, e.g. "Sep 12, 2025"
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	ImageURL    *string   `gorm:"column:image_url" json:"image_url"`
	UpdatedBy   *string   `json:"updated_by"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Announcement) TableName() string {
	return TableAnnouncements
}
