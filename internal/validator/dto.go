package validator

import (
	"github.com/shopspring/decimal"
)

// RegisterRequest carries the registration payload. The account stays
// inactive until the email confirmation flow flips is_active.
type RegisterRequest struct {
	Username        string  `json:"username" validate:"required,max=150"`
	Password        string  `json:"password" validate:"required,min=8"`
	ConfirmPassword string  `json:"confirm_password" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	FirstName       string  `json:"first_name" validate:"omitempty,max=150"`
	LastName        string  `json:"last_name" validate:"omitempty,max=150"`
	Role            string  `json:"role" validate:"required,user_role"`
	Specialization  *string `json:"specialization" validate:"omitempty,max=20"`
	Image           *string `json:"image" validate:"omitempty,url,max=500"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserUpdateRequest struct {
	Email          *string `json:"email" validate:"omitempty,email"`
	FirstName      *string `json:"first_name" validate:"omitempty,max=150"`
	LastName       *string `json:"last_name" validate:"omitempty,max=150"`
	Role           *string `json:"role" validate:"omitempty,user_role"`
	Specialization *string `json:"specialization" validate:"omitempty,max=20"`
	Image          *string `json:"image" validate:"omitempty,url,max=500"`
}

type CategoryCreateRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type CategoryUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
}

// CourseCreateRequest requires the teacher field to equal the acting user;
// the self-assignment rule itself lives in the business validator because
// it needs the request context.
type CourseCreateRequest struct {
	Title       string          `json:"title" validate:"required,course_title"`
	Description string          `json:"description"`
	Teacher     uint            `json:"teacher" validate:"required"`
	Category    uint            `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"`
}

type CourseUpdateRequest struct {
	Title       *string          `json:"title" validate:"omitempty,course_title"`
	Description *string          `json:"description"`
	Teacher     *uint            `json:"teacher"`
	Category    *uint            `json:"category"`
	Price       *decimal.Decimal `json:"price"`
}

type EnrollmentCreateRequest struct {
	Student uint `json:"student" validate:"required"`
	Course  uint `json:"course" validate:"required"`
}

type CommentCreateRequest struct {
	Student uint   `json:"student" validate:"required"`
	Course  uint   `json:"course" validate:"required"`
	Content string `json:"content" validate:"required,comment_content"`
}

type CommentUpdateRequest struct {
	Content *string `json:"content" validate:"omitempty,comment_content"`
}
