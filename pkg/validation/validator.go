package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Custom validator instance
	validate = validator.New()

	// Any non-empty symbol without control characters: provider symbols carry
	// '&', spaces, '^', '=' and exceed 20 characters.
	tickerPattern = regexp.MustCompile(`^[^\x00-\x1f\x7f]+$`)
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

func init() {
	validate.RegisterValidation("ticker", validateTicker)
	validate.RegisterValidation("price", validatePrice)
}

// validateTicker validates ticker symbol format
func validateTicker(fl validator.FieldLevel) bool {
	ticker, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return tickerPattern.MatchString(ticker)
}

// validatePrice accepts finite, strictly positive prices
func validatePrice(fl validator.FieldLevel) bool {
	price, ok := fl.Field().Interface().(float64)
	if !ok {
		return false
	}
	return price > 0 && !math.IsInf(price, 0) && !math.IsNaN(price)
}

// ValidateStruct validates a struct using tags
func ValidateStruct(s interface{}) ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Message: err.Error()}}
	}

	var errors ValidationErrors
	for _, err := range verrs {
		errors = append(errors, ValidationError{
			Field:   err.Field(),
			Message: getErrorMessage(err.Field(), err.Tag()),
			Value:   err.Value(),
		})
	}
	return errors
}

// ValidatePrice checks a single price against the "price" tag.
func ValidatePrice(price float64) error {
	if err := validate.Var(price, "price"); err != nil {
		return ValidationErrors{{Field: "price", Message: getErrorMessage("price", "price"), Value: price}}
	}
	return nil
}

// getErrorMessage returns a user-friendly error message
func getErrorMessage(field, tag string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "ticker":
		return fmt.Sprintf("%s must be a valid ticker symbol", field)
	case "price":
		return fmt.Sprintf("%s must be a positive finite number", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, tag)
	}
}

// SanitizeString removes control characters and surrounding whitespace
func SanitizeString(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
