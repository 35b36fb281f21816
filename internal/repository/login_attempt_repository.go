package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginAttemptRepository tracks failed login attempts per account so the
// auth service can throttle credential guessing.
type LoginAttemptRepository interface {
	RecordFailure(ctx context.Context, email string, window time.Duration) (int64, error)
	Failures(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}

type loginAttemptRepository struct {
	client *redis.Client
}

// NewLoginAttemptRepository returns a Redis-backed implementation.
func NewLoginAttemptRepository(client *redis.Client) LoginAttemptRepository {
	return &loginAttemptRepository{client: client}
}

func attemptKey(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}

func (r *loginAttemptRepository) RecordFailure(ctx context.Context, email string, window time.Duration) (int64, error) {
	key := attemptKey(email)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// the window restarts on every failure
	if err := r.client.Expire(ctx, key, window).Err(); err != nil {
		return count, err
	}
	return count, nil
}

func (r *loginAttemptRepository) Failures(ctx context.Context, email string) (int64, error) {
	count, err := r.client.Get(ctx, attemptKey(email)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *loginAttemptRepository) Reset(ctx context.Context, email string) error {
	return r.client.Del(ctx, attemptKey(email)).Err()
}
