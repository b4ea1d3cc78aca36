package ai

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/doeshing/sqai-go/internal/ports"
)

// retryGenerator re-issues failed calls. It wraps a generator so the
// Invoker keeps its single-call contract.
type retryGenerator struct {
	next     ports.TextGenerator
	attempts int
	delay    time.Duration
	sleep    func(context.Context, time.Duration) error
}

// WithRetry retries gen up to retries additional times, waiting delay plus
// up to 50% jitter, doubled after each failure.
func WithRetry(gen ports.TextGenerator, retries int, delay time.Duration) ports.TextGenerator {
	if retries <= 0 {
		return gen
	}
	return &retryGenerator{next: gen, attempts: retries + 1, delay: delay, sleep: sleepContext}
}

func (r *retryGenerator) Name() string {
	return r.next.Name()
}

func (r *retryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	wait := r.delay
	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			if err := r.sleep(ctx, jitter(wait)); err != nil {
				return "", lastErr
			}
			wait *= 2
		}
		out, err := r.next.Generate(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d + rand.N(d/2+1)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
