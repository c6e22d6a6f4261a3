package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/recommendation-service/internal/config"
)

const lockRetryInterval = 25 * time.Millisecond

// ErrLockNotAcquired is returned when another holder kept the lock past the wait budget.
var ErrLockNotAcquired = errors.New("lock not acquired")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Redis wraps the go-redis client.
type Redis struct {
	Client  *redis.Client
	lockTTL time.Duration
	logger  *zap.Logger
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, lockTTL: cfg.LockTTL(), logger: logger}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// Acquire takes a SET NX lock on key, retrying until it is free, ctx ends, or one
// lock TTL has passed. The returned func releases the lock only if it is still ours.
func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("redis client not configured")
	}

	token := uuid.NewString()
	deadline := time.Now().Add(r.lockTTL)
	for {
		ok, err := r.Client.SetNX(ctx, key, token, r.lockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { r.release(key, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockNotAcquired
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

func (r *Redis) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, r.Client, []string{key}, token).Err(); err != nil && r.logger != nil {
		r.logger.Warn("release redis lock", zap.String("key", key), zap.Error(err))
	}
}
