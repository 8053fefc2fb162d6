package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/ecomcore/order-service/internal/config"
)

// Do runs fn until it succeeds, attempts are exhausted, or ctx is done.
// Backoff doubles from Base up to Max with +/-JitterFactor jitter.
func Do(ctx context.Context, policy config.Retry, fn func() error) error {
	if policy.Attempts < 1 {
		return fn()
	}

	d := policy.Base
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var err error
	for i := 0; i < policy.Attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == policy.Attempts-1 {
			break
		}

		delay := d
		if policy.JitterFactor > 0 {
			jitter := 1 + policy.JitterFactor*(2*r.Float64()-1)
			delay = time.Duration(float64(delay) * jitter)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if d *= 2; d > policy.Max {
			d = policy.Max
		}
	}
	return err
}
