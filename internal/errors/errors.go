package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidLogin is returned when email or password is incorrect.
	ErrInvalidLogin = errors.New("Invalid login details")
	// ErrUnauthenticated is returned when no valid bearer token is presented.
	ErrUnauthenticated = errors.New("Unauthenticated.")
	// ErrForbidden is returned when the acting user does not own the resource.
	ErrForbidden = errors.New("This action is unauthorized.")
	// ErrProductNotFound is returned when no product exists with the given id.
	ErrProductNotFound = errors.New("Product not found.")
	// ErrPostNotFound is returned when no post exists with the given id.
	ErrPostNotFound = errors.New("Post not found.")
)

// MessageResponse is the body for every non-validation error.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationError carries per-field rule violations.
type ValidationError struct {
	Errors map[string][]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return "The given data was invalid."
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: map[string][]string{field: {message}}}
}

// Add appends a message to a field's error list.
func (e *ValidationError) Add(field, message string) {
	if e.Errors == nil {
		e.Errors = make(map[string][]string)
	}
	e.Errors[field] = append(e.Errors[field], message)
}

// ValidationResponse is the 422 body shape.
type ValidationResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// HTTPError pairs a status code with a response body.
type HTTPError struct {
	StatusCode int
	Body       interface{}
}

// MapErrorToHTTP maps domain errors to HTTP status codes and bodies.
// Anything unrecognized becomes a 500 with a generic message.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &HTTPError{
			StatusCode: http.StatusUnprocessableEntity,
			Body:       ValidationResponse{Message: ve.Error(), Errors: ve.Errors},
		}
	}

	switch {
	case errors.Is(err, ErrInvalidLogin), errors.Is(err, ErrUnauthenticated):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Body: MessageResponse{Message: err.Error()}}
	case errors.Is(err, ErrForbidden):
		return &HTTPError{StatusCode: http.StatusForbidden, Body: MessageResponse{Message: ErrForbidden.Error()}}
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrPostNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Body: MessageResponse{Message: err.Error()}}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Body: MessageResponse{Message: "Server Error"}}
	}
}
