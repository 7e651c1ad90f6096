package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuth is returned when the API rejects the key (HTTP 401)
	ErrAuth = stderrors.New("API key rejected: invalid or revoked")
	// ErrValidation is returned for malformed local input
	ErrValidation = stderrors.New("invalid input")
)

// TransportError covers any non-success status other than 401 and network failures.
type TransportError struct {
	Op         string
	StatusCode int // zero for network failures
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s failed: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s failed: HTTP %d: %s", e.Op, e.StatusCode, body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Classify maps an HTTP response status to nil, ErrAuth or a *TransportError.
func Classify(op string, statusCode int, body string) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", op, ErrAuth)
	default:
		return &TransportError{Op: op, StatusCode: statusCode, Body: body}
	}
}

// NewNetworkError wraps a failure that happened before any response arrived.
func NewNetworkError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// Validationf returns an ErrValidation carrying a formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	return stderrors.Is(err, ErrAuth)
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return stderrors.As(err, &te)
}

// IsValidation reports whether err is a local input error.
func IsValidation(err error) bool {
	return stderrors.Is(err, ErrValidation)
}
