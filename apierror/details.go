// Package apierror classifies transport and HTTP failures into a fixed
// severity and category taxonomy with a user-facing message.
package apierror

import (
	"fmt"

	"github.com/jrsteele09/schoolgest-client/internal/utils"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type Category string

const (
	CategoryNetwork       Category = "network"
	CategoryValidation    Category = "validation"
	CategoryAuthorization Category = "authorization"
	CategoryServer        Category = "server"
	CategoryClient        Category = "client"
	CategoryUnknown       Category = "unknown"
)

// Categories lists every category Classify can produce
var Categories = []Category{
	CategoryNetwork,
	CategoryValidation,
	CategoryAuthorization,
	CategoryServer,
	CategoryClient,
	CategoryUnknown,
}

// Codes
const (
	CodeNetwork           = "NETWORK_ERROR"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeRateLimit         = "RATE_LIMIT"
	CodeServer            = "SERVER_ERROR"
	CodeServerUnavailable = "SERVER_UNAVAILABLE"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
	CodeSessionExpired    = "SESSION_EXPIRED"
	CodeUnknown           = "UNKNOWN_ERROR"
)

// ErrorDetails is the classified form of a failure
type ErrorDetails struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Category    Category
	Retryable   bool
	StatusCode  *int
	Cause       error
}

func (d ErrorDetails) Error() string {
	if d.StatusCode != nil {
		return fmt.Sprintf("%s (%d): %s", d.Code, *d.StatusCode, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

func (d ErrorDetails) Unwrap() error {
	return d.Cause
}

// Status returns the HTTP status or 0 when there is none
func (d ErrorDetails) Status() int {
	return utils.Value(d.StatusCode)
}
