package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stretchr/testify/assert"
)

func fastConfig(attempts uint) *RetryConfig {
	return &RetryConfig{Attempts: attempts, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	var retried []uint

	err := fastConfig(3).Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	}, func(attempt uint, _ error) {
		retried = append(retried, attempt)
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []uint{0, 1}, retried)
}

func TestDo_ReturnsLastError(t *testing.T) {
	calls := 0
	err := fastConfig(2).Do(context.Background(), func() error {
		calls++
		return errors.New("down")
	}, nil)

	assert.EqualError(t, err, "down")
	assert.Equal(t, 2, calls)
}

func TestDo_StopsOnUnrecoverable(t *testing.T) {
	calls := 0
	bad := errors.New("bad request")
	err := fastConfig(5).Do(context.Background(), func() error {
		calls++
		return retry.Unrecoverable(bad)
	}, nil)

	assert.ErrorIs(t, err, bad)
	assert.Equal(t, 1, calls)
}

func TestDo_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := fastConfig(5).Do(ctx, func() error {
		calls++
		return errors.New("down")
	}, nil)

	assert.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, uint(3), cfg.Attempts)
	assert.Len(t, cfg.ToRetryOptions(), 5)
}
