package remote

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff_Success(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := retryWithBackoff(context.Background(), slog.Default(), operation, 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts, "should succeed on first try")
}

func TestRetryWithBackoff_EventualSuccess(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	err := retryWithBackoff(context.Background(), slog.Default(), operation, 5, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts, "should succeed on third attempt")
}

func TestRetryWithBackoff_AllAttemptsFail(t *testing.T) {
	attempts := 0
	expectedErr := errors.New("persistent error")
	operation := func() error {
		attempts++
		return expectedErr
	}

	err := retryWithBackoff(context.Background(), slog.Default(), operation, 3, time.Millisecond)
	assert.Equal(t, expectedErr, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_Permanent(t *testing.T) {
	attempts := 0
	expectedErr := errors.New("bad request")
	operation := func() error {
		attempts++
		return permanent(expectedErr)
	}

	err := retryWithBackoff(context.Background(), slog.Default(), operation, 5, time.Millisecond)
	assert.Equal(t, expectedErr, err)
	assert.Equal(t, 1, attempts, "permanent errors are not retried")
}

func TestRetryWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	operation := func() error {
		attempts++
		cancel()
		return errors.New("error")
	}

	err := retryWithBackoff(ctx, slog.Default(), operation, 5, 50*time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_InvalidMaxAttempts(t *testing.T) {
	err := retryWithBackoff(context.Background(), slog.Default(), func() error { return nil }, 0, time.Millisecond)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}
