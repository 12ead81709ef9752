package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:100"`
	Description string `json:"description" gorm:"type:text"`

	// Relations; deleting a category deletes its courses.
	Courses []Course `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	CourseCount int64 `json:"course_count" gorm:"-"`
}

func (Category) TableName() string {
	return "categories"
}

type Course struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null;size:200;index"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(6,2);not null"`

	// TeacherID is optional; when set it must reference a user with the
	// teacher role, enforced at the service layer.
	TeacherID  *uint `json:"teacher,omitempty" gorm:"index"`
	CategoryID uint  `json:"category" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Teacher     *User        `json:"-" gorm:"foreignKey:TeacherID"`
	Category    Category     `json:"-" gorm:"foreignKey:CategoryID"`
	Enrollments []Enrollment `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Comments    []Comment    `json:"comments,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	TeacherName  *string `json:"teacher_name" gorm:"-"`
	CategoryName string  `json:"category_name" gorm:"-"`
	Students     []*User `json:"students,omitempty" gorm:"-"`
}

func (Course) TableName() string {
	return "courses"
}
