package publisher

import (
	"context"

	"github.com/kaushikharsh25/sbms/module/core/domain"
)

type ArrivalPublisher interface {
	PublishArrival(ctx context.Context, arrival *domain.StopArrival) error
}
