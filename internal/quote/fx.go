package quote

import (
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/classifieds/internal/clock"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.quote",
	fx.Provide(NewStore),
)

// NewStore prefers Redis so quotes are shared across replicas.
func NewStore(client *redis.Client, c clock.Clock) Store {
	if client == nil {
		return NewMemoryStore(c)
	}
	return NewRedisStore(client, c)
}
