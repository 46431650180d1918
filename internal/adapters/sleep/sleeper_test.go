package sleep

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimer_Sleep(t *testing.T) {
	s := New()

	t.Run("Waits", func(t *testing.T) {
		start := time.Now()
		require.NoError(t, s.Sleep(context.Background(), 30*time.Millisecond))
		require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("ZeroReturnsImmediately", func(t *testing.T) {
		require.NoError(t, s.Sleep(context.Background(), 0))
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		start := time.Now()
		err := s.Sleep(ctx, time.Hour)
		require.True(t, errors.Is(err, context.Canceled), "got %v", err)
		require.Less(t, time.Since(start), time.Second)
	})
}

type recordingSleeper struct {
	calls []time.Duration
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.calls = append(r.calls, d)
	return nil
}

func TestWithSpinner(t *testing.T) {
	inner := &recordingSleeper{}
	var out bytes.Buffer
	s := WithSpinner(inner, &out)

	require.NoError(t, s.Sleep(context.Background(), 5*time.Millisecond))
	require.NoError(t, s.Sleep(context.Background(), 7*time.Millisecond))
	require.Equal(t, []time.Duration{5 * time.Millisecond, 7 * time.Millisecond}, inner.calls)
}
