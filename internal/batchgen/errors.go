package batchgen

import (
	"errors"
	"strings"

	"flowz-server/internal/providers/genai"
)

// FailureKind classifies a failed generation call.
type FailureKind string

const (
	KindQuotaExceeded      FailureKind = "QUOTA_EXCEEDED"
	KindServiceUnavailable FailureKind = "SERVICE_UNAVAILABLE"
	KindContentBlocked     FailureKind = "CONTENT_BLOCKED"
	KindTimeout            FailureKind = "TIMEOUT"
	KindUnknown            FailureKind = "UNKNOWN"
)

// Classify maps a generation error to a failure kind and whether it is worth
// retrying. Rules apply in order; the first match wins. Content blocked by
// the provider's safety layer is the only non-retryable kind.
func Classify(err error) (FailureKind, bool) {
	status := 0
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	msg := strings.ToLower(err.Error())

	switch {
	case status == 429 || strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit"):
		return KindQuotaExceeded, true
	case status == 503 || strings.Contains(msg, "unavailable"):
		return KindServiceUnavailable, true
	case strings.Contains(msg, "safety") || strings.Contains(msg, "blocked") || strings.Contains(msg, "harmful"):
		return KindContentBlocked, false
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return KindTimeout, true
	default:
		return KindUnknown, true
	}
}
