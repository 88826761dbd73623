package transcription

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a crashed worker can keep a record locked.
// Matches the per-attempt processing timeout.
const DefaultLockTTL = 10 * time.Minute

// RedisProcessLock guards a record against concurrent processing attempts
// with a SETNX key per record id.
type RedisProcessLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProcessLock(client *redis.Client, ttl time.Duration) *RedisProcessLock {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisProcessLock{client: client, ttl: ttl}
}

func (l *RedisProcessLock) key(id uuid.UUID) string {
	return "transcription:processing:" + id.String()
}

// Acquire implements domain.ProcessLocker. Returns false when another
// worker holds the record.
func (l *RedisProcessLock) Acquire(id uuid.UUID) (bool, error) {
	ok, err := l.client.SetNX(l.key(id), 1, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire process lock: %w", err)
	}
	return ok, nil
}

// Release implements domain.ProcessLocker.
func (l *RedisProcessLock) Release(id uuid.UUID) error {
	if err := l.client.Del(l.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to release process lock: %w", err)
	}
	return nil
}
