package redis_lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNotHeld is returned by Release when the key is missing or owned by another token.
var ErrNotHeld = errors.New("lock not held")

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(
	`if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0`,
)

// RedisLock is a mutual-exclusion lock on top of Redis SET NX PX
type RedisLock struct {
	client     *redis.Client
	keyPrefix  string
	ttl        time.Duration
	retryDelay time.Duration
}

// NewRedisLock creates a Redis backed lock
func NewRedisLock(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisLock {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLock{
		client:     client,
		keyPrefix:  keyPrefix,
		ttl:        ttl,
		retryDelay: 50 * time.Millisecond,
	}
}

// TryAcquire makes a single attempt. ok is false when someone else holds the key.
func (l *RedisLock) TryAcquire(ctx context.Context, key string) (token string, ok bool, err error) {
	token = uuid.NewString()
	ok, err = l.client.SetNX(ctx, l.keyPrefix+key, token, l.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis SETNX failed: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Acquire blocks until the lock is obtained or ctx is done
func (l *RedisLock) Acquire(ctx context.Context, key string) (string, error) {
	for {
		token, ok, err := l.TryAcquire(ctx, key)
		if err != nil {
			return "", err
		}
		if ok {
			logrus.WithFields(logrus.Fields{"key": key}).Debug("lock acquired")
			return token, nil
		}

		timer := time.NewTimer(l.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", fmt.Errorf("waiting for lock %s: %w", key, ctx.Err())
		case <-timer.C:
		}
	}
}

// Release frees the lock if token still owns it
func (l *RedisLock) Release(ctx context.Context, key, token string) error {
	result, err := releaseScript.Run(ctx, l.client, []string{l.keyPrefix + key}, token).Int64()
	if err != nil {
		return fmt.Errorf("release script failed: %w", err)
	}
	if result == 0 {
		logrus.WithFields(logrus.Fields{"key": key}).Warn("lock expired or taken over before release")
		return ErrNotHeld
	}
	return nil
}

// TTL returns the expiry applied to each acquisition
func (l *RedisLock) TTL() time.Duration {
	return l.ttl
}
