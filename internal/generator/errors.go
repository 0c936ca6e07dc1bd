package generator

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorClass classifies a terminal generation failure.
type ErrorClass int

const (
	// ClassPermanent covers every non-retriable service or transport failure.
	ClassPermanent ErrorClass = iota
	// ClassTransient covers the two retriable server-side conditions
	// (overload and unavailable); terminal only after the single retry fails.
	ClassTransient
	// ClassMalformed covers a successful call whose payload carried no
	// usable text. Never retried.
	ClassMalformed
)

func (c ErrorClass) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassMalformed:
		return "malformed"
	default:
		return "permanent"
	}
}

// APIError is a non-2xx response from the generation service.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("generation API error: %s: %s", e.Status, e.Message)
}

// transient reports whether the status is one of the two documented
// retriable codes.
func (e *APIError) transient() bool {
	return e.StatusCode == http.StatusInternalServerError ||
		e.StatusCode == http.StatusServiceUnavailable
}

// ErrMalformedPayload marks a successful response whose body could not be
// parsed into text.
var ErrMalformedPayload = errors.New("generation response carried no text")

// GenerationError is the terminal failure returned by Generate.
type GenerationError struct {
	Class ErrorClass
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate content (%s): %v", e.Class, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Classify reports the failure class of an error returned by Generate.
func Classify(err error) (ErrorClass, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Class, true
	}
	return 0, false
}

func classify(err error) ErrorClass {
	if errors.Is(err, ErrMalformedPayload) {
		return ClassMalformed
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.transient() {
		return ClassTransient
	}
	return ClassPermanent
}
