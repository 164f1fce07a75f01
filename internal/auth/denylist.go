package auth

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token ids until their natural expiry.  Entries
// self-destruct once the token they shadow would have expired anyway, so
// the set stays bounded by the number of logouts within one token TTL.
type Denylist interface {
	// Revoke marks the token id as dead until the given instant.
	Revoke(ctx context.Context, tokenID string, until time.Time)
	// IsRevoked reports whether the token id has been revoked.
	IsRevoked(ctx context.Context, tokenID string) bool
}

// RedisDenylist implements Denylist on a Redis SET-with-expiry per token id.
// A nil client disables revocation: Revoke becomes a no-op and IsRevoked
// always reports false.  Redis errors are logged and treated as "not
// revoked" so an outage degrades to the plain stateless-token behavior
// instead of locking every user out.
type RedisDenylist struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisDenylist wraps the given client.  The client may be nil.
func NewRedisDenylist(rdb *redis.Client) *RedisDenylist {
	return &RedisDenylist{rdb: rdb, prefix: "deny"}
}

func (d *RedisDenylist) key(tokenID string) string { return d.prefix + ":" + tokenID }

// Revoke stores the token id with a TTL equal to its remaining lifetime.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) {
	if d.rdb == nil || tokenID == "" {
		return
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return // already expired, nothing to shadow
	}
	if err := d.rdb.Set(ctx, d.key(tokenID), 1, ttl).Err(); err != nil {
		log.Printf("denylist: revoke %s failed: %v", tokenID, err)
	}
}

// IsRevoked checks membership of the token id.
func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) bool {
	if d.rdb == nil || tokenID == "" {
		return false
	}
	n, err := d.rdb.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		log.Printf("denylist: lookup %s failed: %v", tokenID, err)
		return false
	}
	return n > 0
}
