package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError is one violated rule on one input field.
type FieldError struct {
	Field     string `json:"field"`
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// DateLayout is the accepted date format (yyyy-MM-dd).
const DateLayout = "2006-01-02"

var (
	emailPattern    = regexp.MustCompile(`^.+@.+$`)
	fullNamePattern = regexp.MustCompile(`^(\w+)\s+(\w+)$`)

	// now is swapped in tests.
	now = time.Now

	validate = newValidator()
)

// error codes reported to clients, keyed by validator tag
var errorCodes = map[string]string{
	"required":  "NotNull",
	"emailaddr": "Email",
	"max":       "Size",
	"fullname":  "Pattern",
	"isodate":   "DateFormat",
	"pastdate":  "Past",
}

// per-field overrides of the generic messages, keyed "field.tag"
var messages = map[string]string{
	"email.required":    "email is required",
	"email.emailaddr":   "valid email needed",
	"fullName.required": "full name is required",
	"fullName.fullname": "First and last name required delimited by whitespace",
	"birthday.required": "birthday is required",
	"birthday.isodate":  "birthday must be in format yyyy-MM-dd",
	"birthday.pastdate": "date of birth must be less than today",
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return fullNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("pastdate", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(DateLayout, fl.Field().String())
		if err != nil {
			// reported by isodate
			return true
		}
		y, m, day := now().Date()
		today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
		return d.Before(today)
	})
	return v
}

// Struct validates v against its `validate` tags and returns every
// violation in field declaration order, then rule order within a field.
// Each rule is checked on its own so a field can report several
// violations. A failed `required` ends the checks for that field.
// A nil result means v is valid.
func Struct(v any) []FieldError {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return []FieldError{{Field: "payload", ErrorCode: "Invalid", Message: "invalid payload"}}
	}
	rt := rv.Type()

	var out []FieldError
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag := sf.Tag.Get("validate")
		if !sf.IsExported() || tag == "" || tag == "-" {
			continue
		}
		out = append(out, checkField(jsonName(sf), rv.Field(i), strings.Split(tag, ","))...)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func checkField(name string, fv reflect.Value, rules []string) []FieldError {
	var out []FieldError
	for _, rule := range rules {
		if rule == "omitempty" {
			if fv.IsZero() {
				return nil
			}
			continue
		}
		err := validate.Var(fv.Interface(), rule)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			out = append(out, FieldError{Field: name, ErrorCode: "Invalid", Message: err.Error()})
			continue
		}
		for _, fe := range verrs {
			out = append(out, toFieldError(name, fe))
		}
		if rule == "required" {
			break
		}
	}
	return out
}

func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return sf.Name
	}
	return name
}

func toFieldError(field string, fe validator.FieldError) FieldError {
	code, ok := errorCodes[fe.Tag()]
	if !ok {
		code = fe.Tag()
	}
	msg, ok := messages[field+"."+fe.Tag()]
	if !ok {
		msg = formatFieldError(fe)
	}
	return FieldError{Field: field, ErrorCode: code, Message: msg}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.Slice {
			return "must contain at most " + param + " items"
		}
		return "must be at most " + param + " characters long"
	case "emailaddr":
		return "must be a valid email"
	case "fullname":
		return "must contain first and last name"
	case "isodate":
		return "must match date format yyyy-MM-dd"
	case "pastdate":
		return "must be in the past"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}
