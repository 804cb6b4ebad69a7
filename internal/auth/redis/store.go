// Package redis backs the auth package's ephemeral stores with a shared
// Redis instance so pending OTPs and reset tokens survive restarts and are
// visible to every server instance. Expiry is delegated to per-key TTLs.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/auth"
)

const (
	otpKeyPrefix        = "auth:otp:"
	resetTokenKeyPrefix = "auth:reset_token:"

	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

// NewClient parses a Redis URL and returns a ready-to-use client, verified
// with a ping at startup.
func NewClient(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	logger.Info("redis client connected", "addr", options.Addr)
	return client, nil
}

// Health exposes the client ping as a plain error for readiness checks.
type Health struct {
	client *redis.Client
}

func NewHealth(client *redis.Client) *Health {
	return &Health{client: client}
}

func (h *Health) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

type otpValue struct {
	Code string    `json:"code"`
	Flow auth.Flow `json:"flow"`
}

// OTPStore implements auth.OTPStore on Redis. SET with TTL gives both the
// overwrite-on-reissue rule and native expiry.
type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	return &OTPStore{client: client, ttl: ttl}
}

func (s *OTPStore) Issue(ctx context.Context, email string, flow auth.Flow) (string, error) {
	code, err := auth.GenerateOTP()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(otpValue{Code: code, Flow: flow})
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, otpKeyPrefix+email, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis otp set: %w", err)
	}
	return code, nil
}

func (s *OTPStore) Verify(ctx context.Context, email, code string, flow auth.Flow) (bool, error) {
	raw, err := s.client.Get(ctx, otpKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// absent or already expired; Redis evicted it for us
			return false, nil
		}
		return false, fmt.Errorf("redis otp get: %w", err)
	}

	var value otpValue
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return false, fmt.Errorf("redis otp decode: %w", err)
	}
	if value.Code != code || value.Flow != flow {
		return false, nil
	}

	if err := s.client.Del(ctx, otpKeyPrefix+email).Err(); err != nil {
		return false, fmt.Errorf("redis otp delete: %w", err)
	}
	return true, nil
}

// ResetTokenStore implements auth.ResetTokenStore on Redis.
type ResetTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResetTokenStore(client *redis.Client, ttl time.Duration) *ResetTokenStore {
	return &ResetTokenStore{client: client, ttl: ttl}
}

func (s *ResetTokenStore) Create(ctx context.Context, email string) (string, error) {
	token, err := auth.GenerateRandomToken()
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, resetTokenKeyPrefix+token, email, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis reset token set: %w", err)
	}
	return token, nil
}

func (s *ResetTokenStore) Redeem(ctx context.Context, token string) (string, error) {
	// GETDEL makes redeem atomic: two concurrent redeems cannot both win.
	email, err := s.client.GetDel(ctx, resetTokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", internal.ErrInvalidResetToken
		}
		return "", fmt.Errorf("redis reset token getdel: %w", err)
	}
	return email, nil
}
