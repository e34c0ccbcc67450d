package otp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisVerifier stores issued codes in Redis with a TTL. A code is deleted
// once it has been accepted.
type RedisVerifier struct {
	client   *redis.Client
	ttl      time.Duration
	length   int
	prefix   string
	generate func(length int) (string, error)
}

func NewRedisVerifier(client *redis.Client, length int, ttl time.Duration, prefix string) *RedisVerifier {
	return &RedisVerifier{
		client:   client,
		ttl:      ttl,
		length:   length,
		prefix:   prefix,
		generate: generateCode,
	}
}

func (v *RedisVerifier) key(subject string) string {
	return v.prefix + subject
}

func (v *RedisVerifier) Issue(ctx context.Context, subject string) (string, error) {
	code, err := v.generate(v.length)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	if err := v.client.Set(ctx, v.key(subject), code, v.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}
	log.Printf("[OTP] Code issued for %s, expires in %s", subject, v.ttl)
	return code, nil
}

func (v *RedisVerifier) Verify(ctx context.Context, subject, code string) (Verdict, error) {
	stored, err := v.client.Get(ctx, v.key(subject)).Result()
	if errors.Is(err, redis.Nil) {
		return Rejected, nil
	}
	if err != nil {
		return Rejected, err
	}
	if !equal(stored, code) {
		return Rejected, nil
	}
	if err := v.client.Del(ctx, v.key(subject)).Err(); err != nil {
		log.Printf("[OTP] Failed to delete consumed code for %s: %v", subject, err)
	}
	return Accepted, nil
}
