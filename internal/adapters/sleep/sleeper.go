package sleep

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/hailam/randfiles/internal/ports"
)

// Timer blocks on a time.Timer.
type Timer struct{}

func New() ports.Sleeper {
	return Timer{}
}

func (Timer) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SpinnerSleeper shows a spinner on its writer while the wrapped Sleeper
// waits. The spinner stays silent when the writer is not a terminal.
type SpinnerSleeper struct {
	next ports.Sleeper
	w    io.Writer
}

// WithSpinner decorates next with a spinner drawn on w.
func WithSpinner(next ports.Sleeper, w io.Writer) ports.Sleeper {
	return &SpinnerSleeper{next: next, w: w}
}

func (s *SpinnerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(s.w))
	sp.Suffix = fmt.Sprintf(" waiting %s", d)
	sp.Start()
	defer sp.Stop()
	return s.next.Sleep(ctx, d)
}
