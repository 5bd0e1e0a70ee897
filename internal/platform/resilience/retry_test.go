package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/platform/resilience"
)

func TestRetrier_SucceedsAfterTransientFailures(t *testing.T) {
	cfg := resilience.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}
	r := resilience.NewRetrier("notification-messenger", cfg)

	attempts := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestRetrier_ExhaustsAndWrapsError(t *testing.T) {
	cfg := resilience.RetryConfig{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
	r := resilience.NewRetrier("notification-messenger", cfg)

	err := r.Do(context.Background(), func(ctx context.Context) error {
		return errors.New("permanent")
	})

	require.Error(t, err)
	var resErr *resilience.ResilienceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, resilience.ErrCodeMaxRetriesExceeded, resErr.Code)
}
