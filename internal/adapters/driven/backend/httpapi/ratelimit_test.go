package httpapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThrottle_Disabled(t *testing.T) {
	th := NewThrottle(0)

	assert.Nil(t, th.bucket)
	for i := 0; i < 100; i++ {
		require.NoError(t, th.Wait(context.Background()))
	}
}

func TestThrottle_LimitsRate(t *testing.T) {
	th := NewThrottle(20)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, th.Wait(context.Background()))
	}

	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestThrottle_RetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header string
		paused bool
	}{
		{"too many requests", http.StatusTooManyRequests, "30", true},
		{"service unavailable", http.StatusServiceUnavailable, "5", true},
		{"ok ignored", http.StatusOK, "30", false},
		{"missing header", http.StatusTooManyRequests, "", false},
		{"http date ignored", http.StatusTooManyRequests, "Wed, 21 Oct 2015 07:28:00 GMT", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := NewThrottle(0)
			resp := &http.Response{StatusCode: tt.status, Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set(HeaderRetryAfter, tt.header)
			}

			th.UpdateFromResponse(resp)

			assert.Equal(t, tt.paused, time.Now().Before(th.pauseUntil))
		})
	}
}

func TestThrottle_RetryAfterCapped(t *testing.T) {
	th := NewThrottle(0)
	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	resp.Header.Set(HeaderRetryAfter, "86400")

	th.UpdateFromResponse(resp)

	assert.LessOrEqual(t, time.Until(th.pauseUntil), maxRetryAfter)
}

func TestThrottle_WaitHonoursContextDuringPause(t *testing.T) {
	th := NewThrottle(0)
	th.pauseUntil = time.Now().Add(time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := th.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestThrottle_NilResponse(t *testing.T) {
	th := NewThrottle(0)
	th.UpdateFromResponse(nil)
	assert.True(t, th.pauseUntil.IsZero())
}
