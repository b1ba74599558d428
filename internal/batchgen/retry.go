package batchgen

import (
	"context"
	"math/rand"
	"time"
)

const (
	maxRetries  = 3
	baseDelay   = time.Second
	maxDelay    = 10 * time.Second
	jitterRatio = 0.25
)

// backoffDelay returns the wait before retry attempt n (0-indexed):
// min(baseDelay * 2^n, maxDelay) with symmetric jitter of ±25%.
func backoffDelay(attempt int) time.Duration {
	d := baseDelay
	for i := 0; i < attempt && d < maxDelay; i++ {
		d *= 2
	}
	if d > maxDelay {
		d = maxDelay
	}
	jitter := time.Duration((rand.Float64()*2 - 1) * jitterRatio * float64(d))
	return d + jitter
}

// generateWithRetry runs one generation call with bounded retries. A
// non-retryable failure propagates immediately; otherwise up to maxRetries
// additional attempts are made and the last error is returned when they are
// exhausted.
func (o *Orchestrator) generateWithRetry(ctx context.Context, jobID string, call func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		text, err := call(ctx)
		if err == nil {
			return text, nil
		}
		lastErr = err

		kind, retryable := Classify(err)
		if !retryable {
			return "", err
		}
		if attempt == maxRetries {
			break
		}

		delay := backoffDelay(attempt)
		o.logger.Warn().
			Err(err).
			Str("job_id", jobID).
			Str("kind", string(kind)).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("batchgen: generation failed, retrying")
		o.sleep(delay)
	}
	return "", lastErr
}
