package entity

import (
	"time"

	"gorm.io/gorm"
)

// EventDateLayout is the only accepted format for Event.Date.
const EventDateLayout = "2006-01-02"

var EventTypes = []string{"workshop", "hackathon", "networking", "social", "competition"}

type Event struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Date            string    `gorm:"not null;index" json:"date"`
	Description     string    `gorm:"not null" json:"description"`
	ImageURL        *string   `gorm:"column:image_url" json:"image_url"`
	Location        *string   `json:"location"`
	Type            *string   `json:"type"`
	RegistrationURL *string   `gorm:"column:registration_url" json:"registration_url"`
	RecapURL        *string   `gorm:"column:recap_url" json:"recap_url"`
	Recap           *string   `json:"recap"`
	IsPast          bool      `gorm:"not null;default:false;index" json:"is_past"`
	UpdatedBy       *string   `json:"updated_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return TableEvents
}

// BeforeSave keeps IsPast in sync with Date, the managed store does the
// same with a trigger.
func (e *Event) BeforeSave(_ *gorm.DB) error {
	e.IsPast = EventIsPast(e.Date, time.Now())
	return nil
}

// EventIsPast reports whether date lies strictly before the UTC day of now.
// Unparseable dates are never past.
func EventIsPast(date string, now time.Time) bool {
	d, err := time.Parse(EventDateLayout, date)
	if err != nil {
		return false
	}

	today := now.UTC().Truncate(24 * time.Hour)
	return d.Before(today)
}
