package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "title", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the main error type for API responses.
//
// Status and Message are always present. Code, Errors and Override are omitted
// from the body when empty, which keeps translated database errors down
// to the bare {statusCode, message} pair.
type HTTPError struct {
	Status   int    `json:"statusCode"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
	Override bool   `json:"override,omitempty"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError, regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
