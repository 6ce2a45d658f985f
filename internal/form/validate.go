// internal/form/validate.go
//
// Form decoding and validation.
//
// Context
//   Relay handlers accept small url-encoded forms.  Each form is a Go struct
//   whose string fields carry a `form:"name"` tag and optional
//   go-playground/validator rules.  ValidateForm copies posted values into
//   the struct and reports every rule failure as an ErrorField so the caller
//   can pick a query-parameter message.
//
// Tag options
//   `form:"code,trim"`  trims surrounding whitespace before validation.
//   Untagged or non-string fields are left alone.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// -----------------------------------------------------------------------------
// Error types
// -----------------------------------------------------------------------------

// ErrorField describes a single validation failure.
type ErrorField struct {
	Name    string // form field name
	Rule    string // validator tag that failed, e.g. "eqfield"
	Message string
}

// validationError wraps []ErrorField and satisfies the error interface.
type validationError struct{ Fields []ErrorField }

func (ve validationError) Error() string { return "form validation failed" }

// -----------------------------------------------------------------------------
// Validator
// -----------------------------------------------------------------------------

var v = newValidator()

func newValidator() *validator.Validate {
	vv := validator.New(validator.WithRequiredStructEnabled())
	vv.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _ := parseTag(f.Tag.Get("form"))
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return vv
}

// -----------------------------------------------------------------------------
// Public API
// -----------------------------------------------------------------------------

// ValidateForm fills dst (a pointer to struct) from posted and validates it.
// A non-empty slice means the input was rejected.
func ValidateForm(posted url.Values, dst any) ([]ErrorField, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("form: dst must be a pointer to struct, got %T", dst)
	}
	decode(posted, rv.Elem())

	err := v.Struct(dst)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("form: %w", err)
	}
	out := make([]ErrorField, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ErrorField{Name: fe.Field(), Rule: fe.Tag(), Message: message(fe)})
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func decode(posted url.Values, sv reflect.Value) {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		name, trim := parseTag(sf.Tag.Get("form"))
		if name == "" || name == "-" || !sf.IsExported() || sf.Type.Kind() != reflect.String {
			continue
		}
		val := posted.Get(name)
		if trim {
			val = strings.TrimSpace(val)
		}
		sv.Field(i).SetString(val)
	}
}

func parseTag(tag string) (name string, trim bool) {
	name, opts, _ := strings.Cut(tag, ",")
	for _, o := range strings.Split(opts, ",") {
		if o == "trim" {
			trim = true
		}
	}
	return name, trim
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "eqfield":
		return "Values do not match."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	}
	return "Invalid value."
}
