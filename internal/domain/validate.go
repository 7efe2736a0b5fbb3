package domain

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when a record does not exist in storage.
var ErrNotFound = errors.New("record not found")

// ValidationError carries one message per offending field, keyed by the
// field's JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for name, or "" if the field is valid.
func (e *ValidationError) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsInf(f, 0) && !math.IsNaN(f)
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return IsRole(Role(fl.Field().String()))
		})
		_ = v.RegisterValidation("country", func(fl validator.FieldLevel) bool {
			return IsCountry(fl.Field().String())
		})
		_ = v.RegisterValidation("attributes", func(fl validator.FieldLevel) bool {
			attrs, ok := fl.Field().Interface().(Attributes)
			if !ok {
				return false
			}
			return attributesProblem(attrs) == ""
		})
		validate = v
	})
	return validate
}

func attributesProblem(attrs Attributes) string {
	for name, v := range attrs {
		if !IsAttribute(name) {
			return fmt.Sprintf("unknown attribute %q", name)
		}
		if v < MinAttribute || v > MaxAttribute {
			return fmt.Sprintf("%s must be between %d and %d", name, MinAttribute, MaxAttribute)
		}
	}
	return ""
}

// ValidateCar checks the fields a user supplies when creating or editing a car.
func ValidateCar(c *Car) error {
	return toValidationError(validatorInstance().Struct(carInput{
		Name:     c.Name,
		Team:     c.Team,
		Engine:   c.Engine,
		TopSpeed: c.TopSpeed,
	}), nil)
}

// ValidateMember checks the fields a user supplies when creating or editing a
// team member.
func ValidateMember(m *TeamMember) error {
	return toValidationError(validatorInstance().Struct(memberInput{
		Name:        m.Name,
		Role:        string(m.Role),
		Nationality: m.Nationality,
		Age:         m.Age,
		Bio:         m.Bio,
		Attributes:  m.Attributes,
	}), m.Attributes)
}

// The input structs keep validation rules next to the user-facing field names
// without constraining how the stored records are decoded.
type carInput struct {
	Name     string  `json:"name" validate:"notblank"`
	Team     string  `json:"team" validate:"notblank"`
	Engine   string  `json:"engine" validate:"notblank"`
	TopSpeed float64 `json:"top_speed" validate:"required,finite,gt=0"`
}

type memberInput struct {
	Name        string     `json:"name" validate:"notblank"`
	Role        string     `json:"role" validate:"notblank,role"`
	Nationality string     `json:"nationality" validate:"notblank,country"`
	Age         int        `json:"age" validate:"required,min=16,max=80"`
	Bio         string     `json:"bio" validate:"notblank"`
	Attributes  Attributes `json:"attributes" validate:"attributes"`
}

func toValidationError(err error, attrs Attributes) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe, attrs)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError, attrs Attributes) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min", "max":
		if fe.Field() == "age" {
			return "must be between 16 and 80"
		}
		return fmt.Sprintf("must be within %s", fe.Param())
	case "finite":
		return "must be a number"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "role":
		return "is not a known role"
	case "country":
		return "is not a supported country"
	case "attributes":
		return attributesProblem(attrs)
	default:
		return "is invalid"
	}
}
