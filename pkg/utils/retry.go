package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrPollExhausted is returned when a Poll runs out of attempts.
var ErrPollExhausted = errors.New("poll attempts exhausted")

// Poll runs fn up to attempts times with a fixed delay between tries.
// fn returns done=true to stop polling. Errors from fn are swallowed
// until the budget runs out; the last one is attached to the exhaustion
// error. Cancelling ctx stops the wait immediately.
func Poll(ctx context.Context, attempts int, interval time.Duration, fn func(ctx context.Context) (bool, error)) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		done, err := fn(ctx)
		if done {
			return nil
		}
		if err != nil {
			lastErr = err
		}

		// No wait after the final attempt
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	if lastErr != nil {
		return fmt.Errorf("%w after %d attempts: %v", ErrPollExhausted, attempts, lastErr)
	}
	return fmt.Errorf("%w after %d attempts", ErrPollExhausted, attempts)
}
