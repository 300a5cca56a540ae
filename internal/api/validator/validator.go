package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	// Report field names as their json tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	for tag, fn := range map[string]playgroundvalidator.Func{
		"user_role":      validateUserRole,
		"project_status": validateProjectStatus,
		"sort_order":     validateSortOrder,
		"deleted_status": validateDeletedStatus,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil
		}
	}

	return &CustomValidator{validator: v}
}

// Custom validation functions
func validateUserRole(fl playgroundvalidator.FieldLevel) bool {
	role := fl.Field().String()
	return role == "SUPER_ADMIN" || role == "ADMIN" || role == "MEMBER"
}

func validateProjectStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "PLANNED" || status == "ACTIVE" || status == "ON_HOLD" || status == "COMPLETED"
}

func validateSortOrder(fl playgroundvalidator.FieldLevel) bool {
	order := fl.Field().String()
	return order == "" || order == "asc" || order == "desc"
}

func validateDeletedStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "" || status == "all" || status == "active" || status == "deleted"
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}
