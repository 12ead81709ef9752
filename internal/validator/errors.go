package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents one rule-violating field in a request payload.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// ToValidationErrors converts go-playground validator output into our
// ValidationErrors type with readable messages.
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	if err == nil {
		return errors
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return append(errors, ValidationError{
			Field:   "request",
			Message: err.Error(),
			Rule:    "struct",
		})
	}

	for _, fe := range fieldErrors {
		errors = append(errors, ValidationError{
			Field:   fe.Field(),
			Message: messageForTag(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}

	return errors
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "user_role":
		return "must be either teacher or student"
	case "course_title":
		return "must be between 1 and 200 characters"
	case "comment_content":
		return "cannot be empty"
	default:
		return fmt.Sprintf("failed on rule %s", fe.Tag())
	}
}
