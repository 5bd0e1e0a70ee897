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

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cfg := resilience.CircuitBreakerConfig{
		MaxRequests:      1,
		Interval:         time.Second,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 3,
	}
	cb := resilience.NewCircuitBreaker("downstream-data", cfg)

	failing := func() (any, error) { return nil, errors.New("downstream unavailable") }

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(context.Background(), failing)
		require.Error(t, err)
	}

	assert.Equal(t, resilience.StateOpen, cb.State())

	_, err := cb.Execute(context.Background(), func() (any, error) { return "unreachable", nil })
	require.Error(t, err)
	var resErr *resilience.ResilienceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, resilience.ErrCodeCircuitOpen, resErr.Code)
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	cfg := resilience.CircuitBreakerConfig{
		MaxRequests:      1,
		Interval:         time.Second,
		Timeout:          20 * time.Millisecond,
		FailureThreshold: 1,
	}
	cb := resilience.NewCircuitBreaker("downstream-notify", cfg)

	_, _ = cb.Execute(context.Background(), func() (any, error) { return nil, errors.New("fail") })
	require.Equal(t, resilience.StateOpen, cb.State())

	time.Sleep(30 * time.Millisecond)

	result, err := cb.Execute(context.Background(), func() (any, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, resilience.StateClosed, cb.State())
}
