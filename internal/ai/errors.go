package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ProviderError is a completion failure carrying the provider's HTTP status
// code when one is known. StatusCode 0 means the status could not be
// determined.
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ai provider error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("ai provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsTransient reports whether err looks like a provider failure expected to
// clear with time (rate limiting or temporary unavailability). Anything else
// is treated as fatal and must not be retried.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pe *ProviderError
	if errors.As(err, &pe) && pe.StatusCode != 0 {
		return pe.StatusCode == 429 || pe.StatusCode == 503
	}

	// Fall back to message sniffing — the provider client does not always
	// surface a typed status code.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "too many requests") || strings.Contains(msg, "rate limit"):
		return true
	case strings.Contains(msg, "503") || strings.Contains(msg, "service unavailable") || strings.Contains(msg, "temporarily unavailable"):
		return true
	}
	return false
}
