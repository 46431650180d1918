package ports

import (
	"context"
	"time"
)

// Sleeper blocks the caller between file creations.
type Sleeper interface {
	// Sleep waits for d, returning early with ctx.Err() if ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}
