package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"

	"github.com/pulmotools/ildflow/pkg/ports"
)

// Locker implements ports.DistributedLocker with Redis SET NX polling.
type Locker struct {
	client *backend.Client
	prefix string
}

// NewLocker creates a distributed locker sharing the given client.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{client: client, prefix: prefix}
}

func (l *Locker) key(k string) string {
	return l.prefix + "lock:" + k
}

// Lock acquires the lock for key, polling until the context ends. The
// returned UnlockFunc only releases the lock when the caller still owns it.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	token := uuid.NewString()
	redisKey := l.key(key)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	unlock := func(ctx context.Context) error {
		// Release only our own token: a TTL expiry may have handed the
		// lock to someone else in the meantime.
		const script = `
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
else
    return 0
end`
		return l.client.Eval(ctx, script, []string{redisKey}, token).Err()
	}
	return unlock, nil
}
