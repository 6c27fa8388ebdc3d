package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/tracking-aggregator/internal/core/ports"
)

const defaultCooldown = 5 * time.Minute

// RefreshGuard hands out one refresh slot per tracking number per cooldown.
// Key format: tracking:refresh:<tracking_number>
type RefreshGuard struct {
	client   redis.Cmdable
	cooldown time.Duration
}

var _ ports.RefreshGuard = (*RefreshGuard)(nil)

// NewRefreshGuard wraps client. A non-positive cooldown falls back to five minutes.
func NewRefreshGuard(client redis.Cmdable, cooldown time.Duration) *RefreshGuard {
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &RefreshGuard{client: client, cooldown: cooldown}
}

// Acquire reports true when no refresh of trackingNumber happened within the
// cooldown, and starts a new cooldown window.
func (g *RefreshGuard) Acquire(ctx context.Context, trackingNumber string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(trackingNumber), time.Now().UTC().Unix(), g.cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("refresh guard: %w", err)
	}
	return ok, nil
}

func (g *RefreshGuard) key(trackingNumber string) string {
	return keyPrefix + "refresh:" + trackingNumber
}
