package models

import (
	"time"
)

// AuthToken is the persistent opaque bearer token issued at login. One per
// user; reused across logins until logout deletes it.
type AuthToken struct {
	Key       string    `json:"key" gorm:"primaryKey;size:64"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}
