package models

import (
	"time"
)

// Enrollment links one student to one course, at most once per pair. The
// composite unique index backs up the application-level existence check so
// concurrent duplicate submissions surface as a conflict instead of a
// second row.
type Enrollment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StudentID  uint      `json:"student" gorm:"not null;uniqueIndex:idx_enrollments_student_course"`
	CourseID   uint      `json:"course" gorm:"not null;uniqueIndex:idx_enrollments_student_course"`
	EnrolledAt time.Time `json:"enrolled_at" gorm:"autoCreateTime"`

	// Relations
	Student User   `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course  Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	StudentInfo *EnrollmentStudentInfo `json:"student_info,omitempty" gorm:"-"`
	CourseInfo  *EnrollmentCourseInfo  `json:"course_info,omitempty" gorm:"-"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

type EnrollmentStudentInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type EnrollmentCourseInfo struct {
	Name        string  `json:"name"`
	TeacherName *string `json:"teacher_name"`
	Category    string  `json:"category"`
	Price       string  `json:"price"`
}

// Comment is an enrolled student's one-per-course review of a course. Same
// double enforcement as Enrollment: friendly existence check first, unique
// index as the backstop.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CourseID  uint      `json:"course" gorm:"not null;uniqueIndex:idx_comments_student_course"`
	StudentID uint      `json:"student" gorm:"not null;uniqueIndex:idx_comments_student_course"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Student User   `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course  Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	StudentName string `json:"student_name" gorm:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
