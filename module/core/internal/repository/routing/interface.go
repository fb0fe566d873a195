package routing

import (
	"context"
	"errors"

	"github.com/kaushikharsh25/sbms/module/core/domain"
)

// ErrUnavailable marks a provider that cannot answer right now: missing
// credentials, non-2xx response, malformed payload, or timeout. It stays
// inside this package; callers of the chain only ever see exhaustion.
var ErrUnavailable = errors.New("eta provider unavailable")

// Provider estimates travel duration in seconds between two points.
// Implementations own the translation from the core's (lng, lat) order to
// whatever axis order their API wants.
type Provider interface {
	Name() string
	Estimate(ctx context.Context, origin, dest domain.Coordinates) (int, error)
}
