package usecase

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/abubakar1702/taskflow/internal/domain/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the validate tags on v and converts the first failure
// into a field-level validation error.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &apperrors.ValidationError{Field: "", Message: err.Error()}
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "oneof":
		return &apperrors.ValidationError{Field: field, Message: field + " must be one of: " + fe.Param()}
	case "required":
		return &apperrors.ValidationError{Field: field, Message: field + " is required"}
	default:
		return &apperrors.ValidationError{Field: field, Message: field + " is invalid"}
	}
}
