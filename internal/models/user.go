package models

import (
	"time"
)

type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
	RoleUnset   UserRole = ""
)

// Valid reports whether the role is one of the closed set. RoleUnset is a
// legal state for accounts that never picked a role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleTeacher, RoleStudent, RoleUnset:
		return true
	}
	return false
}

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null;size:150"`
	Email        string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `json:"-" gorm:"not null;size:100"`
	FirstName    string `json:"first_name" gorm:"size:150"`
	LastName     string `json:"last_name" gorm:"size:150"`

	Role           UserRole `json:"role" gorm:"size:7;index"`
	Specialization *string  `json:"specialization" gorm:"size:20"`
	Image          *string  `json:"image" gorm:"size:500"`

	// Status: false until the account is confirmed via the activation link.
	IsActive bool `json:"is_active" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CoursesTaught []Course `json:"-" gorm:"foreignKey:TeacherID"`

	// Computed fields (not stored); CourseCount is populated for teachers only.
	CourseCount *int64 `json:"course_count,omitempty" gorm:"-"`
}

func (User) TableName() string {
	return "users"
}
