package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/edu-market/course-service/internal/models"
)

// priceMax mirrors the NUMERIC(6,2) column: four integer digits, two
// decimal places.
var priceMax = decimal.New(10000, 0)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateRegister validates the registration payload, including the
// byte-for-byte password confirmation.
func (bv *BusinessValidator) ValidateRegister(req *RegisterRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.Password != req.ConfirmPassword {
		errors = append(errors, ValidationError{
			Field:   "confirm_password",
			Message: "passwords do not match",
			Rule:    "password_match",
		})
	}

	return errors
}

// ValidateCourseCreate validates course creation: payload shape, price
// bounds and the teacher self-assignment rule.
func (bv *BusinessValidator) ValidateCourseCreate(req *CourseCreateRequest, actingUserID uint) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, bv.validatePrice(req.Price)...)
	errors = append(errors, bv.validateTeacherAssignment(req.Teacher, actingUserID)...)

	return errors
}

// ValidateCourseUpdate validates course updates against the same rules,
// applied only to the fields present.
func (bv *BusinessValidator) ValidateCourseUpdate(req *CourseUpdateRequest, actingUserID uint) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.Price != nil {
		errors = append(errors, bv.validatePrice(*req.Price)...)
	}
	if req.Teacher != nil {
		errors = append(errors, bv.validateTeacherAssignment(*req.Teacher, actingUserID)...)
	}

	return errors
}

// ValidateEnrollmentCreate validates the enrollment payload plus the
// self-enrollment rule; role and duplicate checks need the store and live
// in the service.
func (bv *BusinessValidator) ValidateEnrollmentCreate(req *EnrollmentCreateRequest, actingUserID uint) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.Student != actingUserID {
		errors = append(errors, ValidationError{
			Field:   "student",
			Message: "you can only enroll yourself in a course",
			Value:   req.Student,
			Rule:    "self_enrollment",
		})
	}

	return errors
}

// ValidateCommentCreate validates the comment payload shape. The enrollment
// and one-comment-per-course existence checks live in the service.
func (bv *BusinessValidator) ValidateCommentCreate(req *CommentCreateRequest) ValidationErrors {
	return bv.Validate(req)
}

func (bv *BusinessValidator) validatePrice(price decimal.Decimal) ValidationErrors {
	var errors ValidationErrors

	if price.IsNegative() {
		errors = append(errors, ValidationError{
			Field:   "price",
			Message: "cannot be negative",
			Value:   price.String(),
			Rule:    "price_range",
		})
	}
	if price.GreaterThanOrEqual(priceMax) {
		errors = append(errors, ValidationError{
			Field:   "price",
			Message: "must be below 10000.00",
			Value:   price.String(),
			Rule:    "price_range",
		})
	}
	if price.Exponent() < -2 {
		errors = append(errors, ValidationError{
			Field:   "price",
			Message: "cannot have more than two decimal places",
			Value:   price.String(),
			Rule:    "price_range",
		})
	}

	return errors
}

func (bv *BusinessValidator) validateTeacherAssignment(teacherID, actingUserID uint) ValidationErrors {
	if teacherID == actingUserID {
		return nil
	}
	return ValidationErrors{{
		Field:   "teacher",
		Message: "you can only assign yourself as the teacher for this course",
		Value:   teacherID,
		Rule:    "self_assignment",
	}}
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Role must be one of the closed assignable set; the unset state is
	// never accepted from a payload.
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch models.UserRole(fl.Field().String()) {
		case models.RoleTeacher, models.RoleStudent:
			return true
		}
		return false
	})

	// Title validation (1-200 characters)
	bv.validate.RegisterValidation("course_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		return len(title) >= 1 && len(title) <= 200
	})

	// Comment body must not be blank
	bv.validate.RegisterValidation("comment_content", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
