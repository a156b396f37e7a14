package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// blacklistPrefix is the key prefix for revoked access tokens.
const blacklistPrefix = "auth:blacklist:"

// TokenBlacklist tracks access tokens revoked before their natural expiry.
// Entries carry a TTL equal to the token's remaining lifetime, so the set
// cleans itself up without a background sweep.
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *Client) *TokenBlacklist {
	return &TokenBlacklist{client: client.Client}
}

func blacklistKey(token string) string {
	hash := sha256.Sum256([]byte(token))
	return blacklistPrefix + hex.EncodeToString(hash[:])
}

// Add marks a token as revoked until ttl elapses.
func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to track
	}
	if err := b.client.Set(ctx, blacklistKey(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

// Contains reports whether a token has been revoked.
func (b *TokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return n > 0, nil
}
