package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// Batch-fatal failure classes. The classifier aborts the whole upload on any
// of these so a systemic problem is reported once instead of degrading every
// item into fallback values.
var (
	// ErrRateLimited signals the service is temporarily overloaded (HTTP 429)
	ErrRateLimited = errors.New("classification service rate limited")

	// ErrQuotaExceeded signals the caller's quota or billing is exhausted (HTTP 402)
	ErrQuotaExceeded = errors.New("classification service quota exhausted")
)

// ServiceError represents any other non-success response from a provider
type ServiceError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Detail)
}

// statusToError maps a non-200 provider response to the error taxonomy.
// 429 and 402 are distinguished so the caller knows whether to wait or pay;
// everything else is a generic service error carrying the diagnostic body.
func statusToError(provider string, statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", provider, ErrRateLimited)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%s: %w", provider, ErrQuotaExceeded)
	default:
		return &ServiceError{Provider: provider, StatusCode: statusCode, Detail: string(body)}
	}
}
