package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter. It also applies the per-call timeout.
type RetryProvider struct {
	inner   Provider
	config  RetryConfig
	timeout time.Duration
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

// WithRetryTimeout wraps a Provider with retry logic bounded by timeout.
// A zero timeout leaves calls unbounded.
func WithRetryTimeout(p Provider, cfg RetryConfig, timeout time.Duration) Provider {
	return &RetryProvider{inner: p, config: cfg, timeout: timeout}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	return retry(ctx, r, func() (*Response, error) {
		return r.inner.Generate(ctx, req)
	})
}

// Stream retries only while no delta has reached fn. Once text has been
// delivered a retry would duplicate it, so the error is returned as is.
func (r *RetryProvider) Stream(ctx context.Context, req Request, fn StreamFunc) (*Response, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	delivered := false
	var lastErr error
	invalidRetried := false

	for attempt := range r.attempts() {
		resp, err := r.inner.Stream(ctx, req, func(delta string) error {
			delivered = true
			return fn(delta)
		})
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if delivered || !r.shouldRetry(err, &invalidRetried) {
			return nil, err
		}
		if attempt == r.attempts()-1 {
			break
		}
		if err := r.sleep(ctx, attempt, err); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	return retry(ctx, r, func() (*Image, error) {
		return r.inner.GenerateImage(ctx, req)
	})
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func retry[T any](ctx context.Context, r *RetryProvider, call func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	invalidRetried := false

	for attempt := range r.attempts() {
		out, err := call()
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !r.shouldRetry(err, &invalidRetried) {
			return zero, err
		}

		// Last attempt: don't sleep, just return the error.
		if attempt == r.attempts()-1 {
			break
		}

		if err := r.sleep(ctx, attempt, err); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

func (r *RetryProvider) attempts() int {
	if r.config.MaxAttempts < 1 {
		return 1
	}
	return r.config.MaxAttempts
}

func (r *RetryProvider) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *RetryProvider) sleep(ctx context.Context, attempt int, err error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(r.backoff(attempt, err)):
		return nil
	}
}

// shouldRetry determines if an error is retryable.
func (r *RetryProvider) shouldRetry(err error, invalidRetried *bool) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Missing capability is permanent.
	if errors.Is(err, ErrImageUnsupported) {
		return false
	}

	// Max tokens is a configuration issue, not transient.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	// Invalid response gets one retry.
	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Rate limit, provider unavailable and other errors (network, etc.)
	// are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	// Respect RetryAfter for rate limits.
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
