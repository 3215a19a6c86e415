package telegraph

import (
	"errors"
	"fmt"
)

// ValidationError reports content or parameter validation failures detected
// locally, before any network call is made.
type ValidationError struct {
	Tag     string // offending element tag, if a node failed validation
	Attr    string // offending attribute key, if an attribute failed
	Field   string // offending parameter name, for non-content parameters
	Message string // additional detail for parameter failures
}

func (e *ValidationError) Error() string {
	switch {
	case e.Attr != "":
		return fmt.Sprintf("attribute %q is not allowed on <%s>", e.Attr, e.Tag)
	case e.Tag != "":
		return fmt.Sprintf("tag %q is not allowed", e.Tag)
	case e.Field != "":
		return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Message)
	default:
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
}

// APIError is a reply the service answered with ok:false. Message carries
// the service-provided error string verbatim (e.g. "PAGE_NOT_FOUND").
type APIError struct {
	Method  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error: %s", e.Method, e.Message)
}

// TransportError is a network-level failure: connectivity, timeout or
// context cancellation. The underlying cause is available via Unwrap.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a reply that did not match the expected shape for the
// record being decoded: a missing required field, a non-whitelisted tag in
// echoed content, or a reply that is not valid JSON at all.
type DecodeError struct {
	Type    string // record type being decoded ("Page", "Account", ...)
	Field   string // missing required field, if that is the failure
	Message string // detail for shape/syntax failures
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decoding %s: missing required field %q", e.Type, e.Field)
	}
	return fmt.Sprintf("decoding %s: %s", e.Type, e.Message)
}

// IsValidation returns true if the error is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAPI returns true if the error is an *APIError.
func IsAPI(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// IsTransport returns true if the error is a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsDecode returns true if the error is a *DecodeError.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
