package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// package-level Redis client used for credential blacklist (optional)
var blacklistClient *redis.Client

// SetBlacklistClient configures the Redis client used for blacklist operations.
// Safe to call with nil to disable blacklist features.
func SetBlacklistClient(c *redis.Client) {
	blacklistClient = c
}

// BlacklistCredential stores the given credential in the Redis blacklist with
// TTL, so a logged-out token is rejected until its natural expiry. If no Redis
// client is configured, this is a no-op and returns nil.
func BlacklistCredential(ctx context.Context, credential string, ttl time.Duration) error {
	if blacklistClient == nil {
		return nil
	}
	key := "blacklist:credential:" + credential
	return blacklistClient.Set(ctx, key, "1", ttl).Err()
}

// IsCredentialBlacklisted returns true when the credential exists in the
// Redis blacklist. If no Redis client is configured, returns (false, nil).
func IsCredentialBlacklisted(ctx context.Context, credential string) (bool, error) {
	if blacklistClient == nil {
		return false, nil
	}
	key := "blacklist:credential:" + credential
	exists, err := blacklistClient.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
