package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"greenscore/pkg/redis_lock"

	"github.com/sirupsen/logrus"
)

// BucketLocker serializes score recomputation of one (month, year) bucket
type BucketLocker interface {
	Lock(ctx context.Context, month, year int) (unlock func(), err error)
}

func bucketKey(month, year int) string {
	return fmt.Sprintf("score:%d:%d", year, month)
}

// LocalLocker keyed mutex for single-process deployments
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewLocalLocker creates an in-process BucketLocker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{})}
}

func (l *LocalLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// Lock waits for the bucket or until ctx is done
func (l *LocalLocker) Lock(ctx context.Context, month, year int) (func(), error) {
	key := bucketKey(month, year)
	ch := l.slot(key)
	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for lock %s: %w", key, ctx.Err())
	}
}

// RedisLocker shares bucket locks between server instances
type RedisLocker struct {
	lock   *redis_lock.RedisLock
	logger *logrus.Logger
}

// NewRedisLocker wraps a RedisLock as a BucketLocker
func NewRedisLocker(lock *redis_lock.RedisLock, logger *logrus.Logger) *RedisLocker {
	return &RedisLocker{lock: lock, logger: logger}
}

// Lock acquires the Redis key for the bucket
func (l *RedisLocker) Lock(ctx context.Context, month, year int) (func(), error) {
	key := bucketKey(month, year)
	token, err := l.lock.Acquire(ctx, key)
	if err != nil {
		return nil, err
	}
	return func() {
		// release even if the request context is already cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.lock.Release(releaseCtx, key, token); err != nil {
			l.logger.WithFields(logrus.Fields{"key": key, "error": err}).Warn("failed to release bucket lock")
		}
	}, nil
}
