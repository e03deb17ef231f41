package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dashdrop/internal/auth-service/core/myerrors"
	"dashdrop/internal/config"

	"github.com/go-redis/redis/v8"
)

type OtpStore struct {
	client *redis.Client
}

func NewOtpStore(ctx context.Context, cfg *config.Redisconfig) (*OtpStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &OtpStore{client: client}, nil
}

func (s *OtpStore) Put(ctx context.Context, phone, code string, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, codeKey(phone), code, ttl)
	// fresh code, fresh attempt budget
	pipe.Del(ctx, attemptsKey(phone))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *OtpStore) Get(ctx context.Context, phone string) (string, error) {
	code, err := s.client.Get(ctx, codeKey(phone)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", myerrors.ErrOtpNotFound
		}
		return "", err
	}
	return code, nil
}

func (s *OtpStore) IncrAttempts(ctx context.Context, phone string) (int64, error) {
	key := attemptsKey(phone)
	attempts, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// the counter must not outlive the code
	if attempts == 1 {
		s.client.Expire(ctx, key, 5*time.Minute)
	}
	return attempts, nil
}

func (s *OtpStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, codeKey(phone), attemptsKey(phone)).Err()
}

func (s *OtpStore) Close() error {
	return s.client.Close()
}

func codeKey(phone string) string     { return "otp:code:" + phone }
func attemptsKey(phone string) string { return "otp:attempts:" + phone }
