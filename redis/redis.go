package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

const revokedPrefix = "revoked:"

// RevokeToken blacklists a token until its natural expiry, so logout
// actually invalidates it.
func RevokeToken(token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return Client.Set(Ctx, revokedPrefix+token, "1", ttl).Err()
}

// IsTokenRevoked reports whether the token was blacklisted by a logout.
// A Redis failure counts as not revoked so auth stays available.
func IsTokenRevoked(token string) bool {
	if Client == nil {
		return false
	}
	n, err := Client.Exists(Ctx, revokedPrefix+token).Result()
	if err != nil {
		return false
	}
	return n > 0
}
