package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/lexiverse-cli/internal/logger"
)

// HeaderRetryAfter is the retry-after header (seconds).
const HeaderRetryAfter = "Retry-After"

// maxRetryAfter caps how long a Retry-After header may pause requests.
const maxRetryAfter = 2 * time.Minute

// Throttle combines proactive client-side throttling with the backend's
// Retry-After hints.
type Throttle struct {
	bucket *rate.Limiter // nil when throttling is disabled

	mu         sync.Mutex
	pauseUntil time.Time
}

// NewThrottle creates a throttle allowing perSecond requests per second.
// Zero or negative disables the proactive limit.
func NewThrottle(perSecond float64) *Throttle {
	t := &Throttle{}
	if perSecond > 0 {
		t.bucket = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return t
}

// Wait blocks until a request may be sent.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.bucket != nil {
		if err := t.bucket.Wait(ctx); err != nil {
			return err
		}
	}

	t.mu.Lock()
	pauseUntil := t.pauseUntil
	t.mu.Unlock()

	if wait := time.Until(pauseUntil); wait > 0 {
		logger.Debug("backend asked to retry after %s", wait.Round(time.Second))
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return nil
}

// UpdateFromResponse records a Retry-After pause from 429 and 503 responses.
func (t *Throttle) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return
	}

	seconds, err := strconv.Atoi(resp.Header.Get(HeaderRetryAfter))
	if err != nil || seconds <= 0 {
		return
	}
	wait := time.Duration(seconds) * time.Second
	if wait > maxRetryAfter {
		wait = maxRetryAfter
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pauseUntil = time.Now().Add(wait)
}
