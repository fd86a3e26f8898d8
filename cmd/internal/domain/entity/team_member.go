package entity

import "time"

type TeamMember struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Position      string    `gorm:"not null" json:"position"`
	ProfilePicURL string    `gorm:"not null;column:profile_pic_url" json:"profile_pic_url"`
	Rank          int       `gorm:"not null;index" json:"rank"`
	Categories    []string  `gorm:"serializer:json;not null" json:"categories"`
	Connections   []string  `gorm:"serializer:json" json:"connections"`
	UpdatedBy     *string   `json:"updated_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (TeamMember) TableName() string {
	return TableTeamMembers
}
