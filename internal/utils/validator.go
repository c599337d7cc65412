// internal/utils/validator.go
package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/norruva/dpp-backend/internal/models"
)

var validate *validator.Validate

var gtinPattern = regexp.MustCompile(`^(\d{8}|\d{12,14})$`)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	validate.RegisterValidation("gtin", validateGTIN)
	validate.RegisterValidation("percentage", validatePercentage)
	validate.RegisterValidation("specifications", validateSpecifications)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateGTIN accepts GTIN-8, GTIN-12, GTIN-13 and GTIN-14 digit strings.
func validateGTIN(fl validator.FieldLevel) bool {
	return gtinPattern.MatchString(fl.Field().String())
}

// validateSpecifications accepts a JSON object. Non-string values are kept in
// their JSON text form when the sheet is read back.
func validateSpecifications(fl validator.FieldLevel) bool {
	_, err := models.ParseSpecifications(fl.Field().String())
	return err == nil
}

func validatePercentage(fl validator.FieldLevel) bool {
	var v float64
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		v = fl.Field().Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v = float64(fl.Field().Int())
	default:
		return false
	}
	return v >= 0 && v <= 100
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

// IsValidationError reports whether err carries struct validation failures.
func IsValidationError(err error) bool {
	var validationErrs validator.ValidationErrors
	return errors.As(err, &validationErrs)
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "gtin":
		return "GTIN must have 8, 12, 13 or 14 digits"
	case "percentage":
		return e.Field() + " must be between 0 and 100"
	case "json":
		return e.Field() + " must be valid JSON"
	case "specifications":
		return e.Field() + " must be a JSON object"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
