// Package validation hooks field rules into gin's validator and turns their
// failures into one message per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"hospital-gin/internal/apperr"
	"hospital-gin/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Register installs the custom rules and json field naming on gin's
// validator. Safe to call more than once.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("phone", validPhone)
		_ = v.RegisterValidation("account_role", validRole)
		_ = v.RegisterValidation("gender", inList(models.Genders))
		_ = v.RegisterValidation("appointment_status", inList(models.AppointmentStatuses))
		_ = v.RegisterValidation("payment_status", inList(models.PaymentStatuses))
	})
}

// enums are the values each named allow-list rule accepts, for messages.
var enums = map[string][]string{
	"gender":             models.Genders,
	"appointment_status": models.AppointmentStatuses,
	"payment_status":     models.PaymentStatuses,
	"account_role":       roleNames(),
}

func roleNames() []string {
	out := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		out[i] = string(r)
	}
	return out
}

func validRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}

func inList(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, v := range values {
			if s == v {
				return true
			}
		}
		return false
	}
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// validPhone accepts any punctuation as long as exactly ten digits remain.
func validPhone(fl validator.FieldLevel) bool {
	digits := 0
	for _, r := range fl.Field().String() {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits == 10
}

// FromBinding converts a ShouldBind error into a validation *apperr.Error.
func FromBinding(err error) *apperr.Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("Invalid request body")
	}
	fields := make(map[string]string, len(verrs))
	order := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = Message(fe)
		order = append(order, name)
	}
	return apperr.ValidationFields(fields, order)
}

// Message renders a single field failure.
func Message(fe validator.FieldError) string {
	field := fe.Field()
	if values, ok := enums[fe.Tag()]; ok {
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(values, ", "))
	}
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", field)
	case "phone":
		return fmt.Sprintf("%s must be a valid 10-digit phone number", field)
	case "datetime":
		switch fe.Param() {
		case "2006-01-02":
			return fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", field)
		case "15:04":
			return fmt.Sprintf("%s must be a valid time (HH:MM)", field)
		}
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(splitOneOf(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// splitOneOf mirrors validator's oneof parsing of single-quoted values.
func splitOneOf(param string) []string {
	var out []string
	for param = strings.TrimSpace(param); param != ""; param = strings.TrimSpace(param) {
		if param[0] == '\'' {
			end := strings.IndexByte(param[1:], '\'')
			if end < 0 {
				out = append(out, param[1:])
				break
			}
			out = append(out, param[1:end+1])
			param = param[end+2:]
			continue
		}
		end := strings.IndexByte(param, ' ')
		if end < 0 {
			out = append(out, param)
			break
		}
		out = append(out, param[:end])
		param = param[end+1:]
	}
	return out
}
