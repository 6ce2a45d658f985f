// internal/form/submit.go
//
// Consolidated submit helper.
//
// Context
//   Relay handlers want one call that parses the POST body, fills their
//   input struct, and validates it.  HandleSubmit does that and returns a
//   validation error the caller can tell apart from a broken request.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"net/http"
)

// maxFormBytes caps url-encoded bodies.  Every form here is a few fields.
const maxFormBytes = 64 << 10

// HandleSubmit parses r into dst and validates it.  On rule failures it
// returns a validation error (check with IsValidationError); dst is still
// filled so callers may inspect what was sent.
func HandleSubmit(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return err
	}
	errs, err := ValidateForm(r.PostForm, dst)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return validationError{Fields: errs}
	}
	return nil
}

// IsValidationError reports whether err came from failed validation.
func IsValidationError(err error) bool {
	var ve validationError
	return errors.As(err, &ve)
}

// Fields returns the field errors carried by err, or nil.
func Fields(err error) []ErrorField {
	var ve validationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
