// Package validation checks client payloads against the creatable fields of
// each entity before anything reaches storage.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/ruralhealth/internal/models"
)

// Error reports every offending field at once, keyed by its JSON name.
type Error struct {
	Fields map[string]string
}

func (err *Error) Error() string {
	names := make([]string, 0, len(err.Fields))
	for name := range err.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+err.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

func validate() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(jsonFieldName)
		_ = engine.RegisterValidation("severity", func(field validator.FieldLevel) bool {
			return models.Severity(field.Field().Int()).Valid()
		})
	})
	return engine
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func CreateUser(input models.UserCreate) (models.UserCreate, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Gender = strings.TrimSpace(input.Gender)
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	if err := check(input); err != nil {
		return models.UserCreate{}, err
	}
	return input, nil
}

func CreateAppointment(input models.AppointmentCreate) (models.AppointmentCreate, error) {
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	input.Provider = strings.TrimSpace(input.Provider)
	input.Type = strings.TrimSpace(input.Type)
	input.Reason = strings.TrimSpace(input.Reason)
	if err := check(input); err != nil {
		return models.AppointmentCreate{}, err
	}
	return input, nil
}

func CreateSymptom(input models.SymptomCreate) (models.SymptomCreate, error) {
	input.DateTime = strings.TrimSpace(input.DateTime)
	input.Category = strings.TrimSpace(input.Category)
	input.Description = strings.TrimSpace(input.Description)
	if input.Notes != nil {
		notes := strings.TrimSpace(*input.Notes)
		if notes == "" {
			input.Notes = nil
		} else {
			input.Notes = &notes
		}
	}
	if err := check(input); err != nil {
		return models.SymptomCreate{}, err
	}
	return input, nil
}

func CreateContact(input models.ContactCreate) (models.ContactCreate, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)
	if err := check(input); err != nil {
		return models.ContactCreate{}, err
	}
	return input, nil
}

// Login only requires both fields to be present; the password is compared
// exactly as sent.
func Login(input models.Credentials) (models.Credentials, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := check(input); err != nil {
		return models.Credentials{}, err
	}
	return input, nil
}

func check(input any) error {
	err := validate().Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	fields := make(map[string]string, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		if _, seen := fields[fieldError.Field()]; seen {
			continue
		}
		fields[fieldError.Field()] = describe(fieldError)
	}
	return &Error{Fields: fields}
}

func describe(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldError.Param())
	case "severity":
		return "must be 1 (Mild), 2 (Moderate) or 3 (Severe)"
	default:
		return "is invalid"
	}
}
