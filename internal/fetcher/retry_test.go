package fetcher

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvega-dev/bibliago/internal/domain"
)

func testRetrier(max int) *Retrier {
	return NewRetrier(RetrierOptions{
		MaxRetries:      max,
		InitialInterval: 1 * time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      1.5,
	})
}

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := testRetrier(3).Retry(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_RetriesRetryableErrors(t *testing.T) {
	calls := 0
	err := testRetrier(3).Retry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &domain.RetryableError{Err: fmt.Errorf("HTTP 503")}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	permanent := domain.NewFetchError("http://example", 404, fmt.Errorf("HTTP 404"))
	calls := 0
	err := testRetrier(3).Retry(context.Background(), func() error {
		calls++
		return permanent
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls, "non-retryable errors abort immediately")
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := testRetrier(2).Retry(context.Background(), func() error {
		calls++
		return &domain.RetryableError{Err: fmt.Errorf("HTTP 502")}
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls) // initial attempt plus two retries
}

func TestRetry_HonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := testRetrier(10).Retry(ctx, func() error {
		calls++
		cancel()
		return &domain.RetryableError{Err: fmt.Errorf("HTTP 503")}
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || calls == 1)
}

func TestShouldRetryStatus(t *testing.T) {
	retryable := []int{429, 502, 503, 504}
	for _, code := range retryable {
		assert.True(t, ShouldRetryStatus(code), "status %d", code)
	}
	for _, code := range []int{200, 301, 400, 401, 403, 404, 500} {
		assert.False(t, ShouldRetryStatus(code), "status %d", code)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{value: "", want: 0},
		{value: "5", want: 5 * time.Second},
		{value: "0", want: 0},
		{value: "-1", want: 0},
		{value: "soon", want: 0},
		{value: "Wed, 21 Oct 2026 07:28:00 GMT", want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRetryAfter(tt.value), "value %q", tt.value)
	}
}
