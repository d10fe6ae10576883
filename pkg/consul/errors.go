package consul

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrAddressRequired       = errors.New("consul address is required")
	ErrInvalidAddress        = errors.New("consul address must be an absolute URI")
	ErrRequiredField         = errors.New("required field is missing")
	ErrUnresolvedPlaceholder = errors.New("path placeholder is unresolved")
	ErrInvalidPathSegment    = errors.New("path segment must not be . or ..")
	ErrIncompleteDescriptor  = errors.New("descriptor was not produced by a request builder")
	ErrUnsupportedMethod     = errors.New("unsupported HTTP method")
	ErrInvalidConsistency    = errors.New("invalid consistency mode")
	ErrNegativeWait          = errors.New("wait must not be negative")
	ErrInvalidHealthState    = errors.New("invalid health state")
	ErrInvalidCheckStatus    = errors.New("invalid check status")
	ErrInvalidSessionID      = errors.New("session ID must be a UUID")
	ErrBodyEncoding          = errors.New("request body could not be encoded")
	ErrInvalidHeader         = errors.New("invalid protocol header")
	ErrEmptyResponse         = errors.New("transport returned no response")
	ErrInvalidClientType     = errors.New("invalid client type")
)

// Error kinds reported to loggers and metrics.
const (
	KindValidation = "validation"
	KindConnection = "connection"
	KindAPI        = "api"
	KindResponse   = "response"
)

// Error is the closed set of errors returned by the client: *ValidationError,
// *ConnectionError, *APIError and *ResponseError.
type Error interface {
	error
	Kind() string
	consulError()
}

// ValidationError is returned when a request is malformed or incomplete. The
// request is never sent.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := "invalid request"
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}

	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error { return e.Err }

// Kind implements Error.
func (e *ValidationError) Kind() string { return KindValidation }

func (e *ValidationError) consulError() {}

// ConnectionError is returned when the transport could not complete the
// exchange: DNS, TLS, refused connections, timeouts and cancellation.
type ConnectionError struct {
	Method string
	URL    string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to consul: %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ConnectionError) Unwrap() error { return e.Err }

// Kind implements Error.
func (e *ConnectionError) Kind() string { return KindConnection }

func (e *ConnectionError) consulError() {}

// APIError is returned for any non-2xx response. StatusCode is always set;
// Body keeps the raw response body and Message is empty when the body could
// not be read as a message.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
	Header     http.Header
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("consul API error (status: %d)", e.StatusCode)
	}

	return fmt.Sprintf("consul API error (status: %d): %s", e.StatusCode, e.Message)
}

// Kind implements Error.
func (e *APIError) Kind() string { return KindAPI }

func (e *APIError) consulError() {}

// ResponseError is returned when a successful response could not be decoded
// into the declared payload type.
type ResponseError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("parsing consul response (status: %d): %v", e.StatusCode, e.Err)
}

// Unwrap returns the decoding error.
func (e *ResponseError) Unwrap() error { return e.Err }

// Kind implements Error.
func (e *ResponseError) Kind() string { return KindResponse }

func (e *ResponseError) consulError() {}

// NewAPIError builds an APIError from a non-success response. The message is
// taken from a JSON {"error"} or {"message"} body, or from a UTF-8 text body.
func NewAPIError(statusCode int, header http.Header, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    parseErrorMessage(body),
		Body:       body,
		Header:     header,
	}
}

func parseErrorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "{") {
		var structured struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}

		if err := json.Unmarshal([]byte(trimmed), &structured); err == nil {
			if structured.Error != "" {
				return structured.Error
			}

			return structured.Message
		}
	}

	if !utf8.ValidString(trimmed) {
		return ""
	}

	return trimmed
}

// ErrorKind returns the kind of a client error, or "" for foreign errors.
func ErrorKind(err error) string {
	var clientErr Error
	if errors.As(err, &clientErr) {
		return clientErr.Kind()
	}

	return ""
}

// StatusCode returns the HTTP status carried by an APIError or ResponseError,
// or 0.
func StatusCode(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}

	return 0
}

// IsNotFound reports whether err is an APIError with status 404. Read
// endpoints surface missing resources this way rather than with an empty
// payload.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	valErr := &ValidationError{}

	return errors.As(err, &valErr)
}

// IsConnectionError reports whether err is a ConnectionError.
func IsConnectionError(err error) bool {
	connErr := &ConnectionError{}

	return errors.As(err, &connErr)
}

// IsAPIError reports whether err is an APIError.
func IsAPIError(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr)
}

// IsResponseError reports whether err is a ResponseError.
func IsResponseError(err error) bool {
	respErr := &ResponseError{}

	return errors.As(err, &respErr)
}
