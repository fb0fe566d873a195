package routing

import (
	"context"
	"log"
	"time"

	"github.com/kaushikharsh25/sbms/module/core/domain"
)

var _ Provider = (*Chain)(nil)

// Chain tries providers strictly in configured order and returns the first
// answer. Providers are rank-ordered, not raced, to bound external API
// cost; a failed provider is skipped, never retried within the request.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	observer  Observer
}

// Observer receives per-attempt results, e.g. for metrics. May be nil.
type Observer interface {
	ProviderAttempt(provider, result string)
}

func NewChain(providers []Provider, perProviderTimeout time.Duration, obs Observer) *Chain {
	return &Chain{providers: providers, timeout: perProviderTimeout, observer: obs}
}

func (c *Chain) Name() string { return "chain" }

// Estimate walks the providers in order. Worst case latency is the sum of
// the per-provider timeouts, so keep them short.
func (c *Chain) Estimate(ctx context.Context, origin, dest domain.Coordinates) (int, error) {
	for _, p := range c.providers {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		seconds, err := p.Estimate(attemptCtx, origin, dest)
		cancel()

		if err != nil {
			// Transport detail is logged here and goes no further.
			log.Printf("eta provider %s unavailable: %v", p.Name(), err)
			c.observe(p.Name(), "unavailable")
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			continue
		}
		c.observe(p.Name(), "ok")
		return seconds, nil
	}
	return 0, ErrUnavailable
}

func (c *Chain) observe(provider, result string) {
	if c.observer != nil {
		c.observer.ProviderAttempt(provider, result)
	}
}
