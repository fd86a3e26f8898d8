package entity

import "time"

const (
	ProjectStatusOngoing   = "On-going"
	ProjectStatusCompleted = "Completed"

	ProjectTypeCurrent = "current"
	ProjectTypePast    = "past"
)

type Project struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Status       string    `gorm:"not null" json:"status"`
	Description  string    `gorm:"not null" json:"description"`
	Technologies []string  `gorm:"serializer:json;not null" json:"technologies"`
	GithubURL    string    `gorm:"not null;column:github_url" json:"github_url"`
	ImageURL     *string   `gorm:"column:image_url" json:"image_url"`
	Type         string    `gorm:"not null;index" json:"type"`
	CreatedBy    *string   `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `gorm:"index" json:"updated_at"`
}

func (Project) TableName() string {
	return TableProjects
}
