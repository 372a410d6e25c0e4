package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DomainError is an expected business failure (wrong tier, unknown lead...).
// Handlers map these to 4xx without logging stacks.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// TechnicalError is an infrastructure failure. RequestID is the correlation id
// surfaced to the caller and written to the log so support can match the two.
type TechnicalError struct {
	Code      string
	Message   string
	RequestID string
}

func (e *TechnicalError) Error() string {
	return fmt.Sprintf("%s (request %s)", e.Message, e.RequestID)
}

func NewTechnicalError(code, message string) *TechnicalError {
	return &TechnicalError{
		Code:      code,
		Message:   message,
		RequestID: uuid.New().String(),
	}
}

// Retryable marks failures the caller may safely retry (the claim path is
// idempotent: a retried claim on a claimed lead just reports ALREADY_CLAIMED).
func (e *TechnicalError) Retryable() bool {
	return e.Code == CodePaymentUnavailable || e.Code == CodeStorageFailure
}

const (
	CodeStorageFailure     = "STORAGE_FAILURE"
	CodePaymentUnavailable = "PAYMENT_UNAVAILABLE"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors lets a usecase return the whole per-field set as one error.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}
