package ports

import (
	"context"
	"time"
)

// Sleeper is the suspension point between protocol runs, injectable so
// tests don't wait out real delays.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}
