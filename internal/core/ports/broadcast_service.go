package ports

import (
	"context"

	"github.com/cholospace/mission-control/internal/core/domain"
)

type BroadcastService interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, message string, actor domain.Actor) error
}
