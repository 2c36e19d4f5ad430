package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"house-portal/models"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a new validator instance
func New() *Validator {
	v := validator.New()

	// Register custom tag name function to use JSON tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validators
	v.RegisterValidation("radiuskm", validateRadiusKm)
	v.RegisterValidation("housetype", validateHouseType)
	v.RegisterValidation("housestatus", validateHouseStatus)

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs ValidationErrors
	for _, err := range err.(validator.ValidationErrors) {
		validationErrs = append(validationErrs, ValidationError{
			Field:   err.Field(),
			Message: msgForTag(err),
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "latitude":
		return fmt.Sprintf("%s must be between -90 and 90 degrees", field)
	case "longitude":
		return fmt.Sprintf("%s must be between -180 and 180 degrees", field)
	case "radiuskm":
		return fmt.Sprintf("%s must be a positive number of kilometers (at most 20015)", field)
	case "housetype":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(houseTypes, ", "))
	case "housestatus":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(houseStatuses, ", "))
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// Custom validators

var houseTypes = []string{
	models.HouseTypeHouse,
	models.HouseTypeCondo,
	models.HouseTypeTownhouse,
	models.HouseTypeApartment,
}

var houseStatuses = []string{
	models.HouseStatusForSale,
	models.HouseStatusPending,
	models.HouseStatusSold,
}

// validateRadiusKm accepts positive radii up to half the earth's
// circumference; anything larger is a caller mistake, not a search.
func validateRadiusKm(fl validator.FieldLevel) bool {
	radius := fl.Field().Float()
	return radius > 0 && radius <= 20015
}

func validateHouseType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, t := range houseTypes {
		if value == t {
			return true
		}
	}
	return false
}

func validateHouseStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, s := range houseStatuses {
		if value == s {
			return true
		}
	}
	return false
}
