package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the store row provisioned for an identity-provider account.
// IsAdmin and IsOwner are independent flags, an owner does not need IsAdmin.
type User struct {
	UID           string    `gorm:"primaryKey;column:uid" json:"uid"`
	Username      string    `gorm:"not null" json:"username"`
	Email         string    `gorm:"not null" json:"email"`
	Role          string    `gorm:"not null;default:member" json:"role"`
	IsAdmin       bool      `gorm:"not null;default:false" json:"is_admin"`
	IsOwner       bool      `gorm:"not null;default:false" json:"is_owner"`
	Status        string    `gorm:"not null;default:active" json:"status"`
	EmailVerified bool      `gorm:"not null;default:false" json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return TableUsers
}

// BeforeCreate fills a missing uid, the managed store does it with a
// column default.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.UID == "" {
		u.UID = uuid.NewString()
	}
	return nil
}

// Identity is what an identity provider resolves a bearer token into.
type Identity struct {
	Subject string
	Email   string
}
