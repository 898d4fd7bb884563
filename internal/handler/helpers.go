package handler

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/userauth-dev/userauth/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateForm runs struct validation and returns per-field messages keyed by
// the lowercased field name, or nil when the form is valid.
func validateForm(form any) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !stderrors.As(err, &vErrs) {
		return map[string]string{"form": "Invalid input."}
	}

	fields := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		fields[strings.ToLower(fe.Field())] = messageForTag(fe)
	}
	return fields
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	case "eqfield":
		return "Passwords must match."
	default:
		return "Invalid value."
	}
}

// writeFieldErrors reports per-field form errors, mirroring what a
// re-rendered form would show next to each field.
func writeFieldErrors(w http.ResponseWriter, statusCode int, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]any{"errors": fields})
}

func writeErrorAndStatusCode(w http.ResponseWriter, err error) {
	var vErr *internal_errors.ValidationError
	if stderrors.As(err, &vErr) {
		writeFieldErrors(w, http.StatusBadRequest, map[string]string{vErr.Field: vErr.Message})
		return
	}
	if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	// default error is 500
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
