package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruitops/pipeline-api/internal/models"
)

// DefaultStoreTimeout bounds every store call. The hosted store offers no
// timeout of its own, so each repository method derives a deadline-bound
// context before touching the database.
const DefaultStoreTimeout = 5 * time.Second

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeErr wraps a driver-level failure, mapping deadline expiry onto the
// store-unavailable kind so the boundary can apply its retry policy.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, models.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
