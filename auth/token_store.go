package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenStore is the allowlist of live refresh tokens. A refresh token is
// only honored while its (user, jti) key exists; logout and rotation delete
// the key.
type TokenStore struct {
	inner     *redis.Client
	keyParser tokenKeyParser
}

const (
	// Redis only has string type, there is no boolean or int, so we use "1"
	// to represent a live token
	redisTrue = "1"
)

var ctx = context.Background()

func NewTokenStore() (*TokenStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return &TokenStore{
		inner:     redisClient,
		keyParser: tokenKeyParser{delimiter: "__"},
	}, nil
}

type tokenKeyParser struct {
	delimiter string
}

func (p tokenKeyParser) EncodeTokenKey(userID string, tokenID string) string {
	return fmt.Sprintf("refresh%s%s%s%s", p.delimiter, userID, p.delimiter, tokenID)
}

// Save allowlists a refresh token until its expiry.
func (s *TokenStore) Save(userID string, tokenID string, ttl time.Duration) error {
	return s.inner.Set(ctx, s.keyParser.EncodeTokenKey(userID, tokenID), redisTrue, ttl).Err()
}

// IsLive reports whether the refresh token is still allowlisted.
func (s *TokenStore) IsLive(userID string, tokenID string) (bool, error) {
	res, err := s.inner.Get(ctx, s.keyParser.EncodeTokenKey(userID, tokenID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res == redisTrue, nil
}

// Revoke removes a refresh token from the allowlist. Revoking an unknown
// token succeeds.
func (s *TokenStore) Revoke(userID string, tokenID string) error {
	return s.inner.Del(ctx, s.keyParser.EncodeTokenKey(userID, tokenID)).Err()
}
