package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/job-board/internal/domain"
)

const (
	tokenKeyPrefix = "auth:token:"
	ownerKeyPrefix = "auth:tokens:"
)

// TokenCache is a read-through Redis cache in front of the token table. It
// stores token digests only, keyed both individually and per owner so a
// revoke can purge every cached session of a principal at once. The database
// stays the source of truth; entries are TTL-bounded.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

type cachedToken struct {
	OwnerRole string `json:"owner_role"`
	OwnerID   string `json:"owner_id"`
	IssuedAt  int64  `json:"issued_at"`
}

// NewTokenCache builds the cache. A nil Redis wrapper or zero TTL disables it.
func NewTokenCache(r *Redis, ttl time.Duration) *TokenCache {
	if r == nil || r.Client == nil || ttl <= 0 {
		return nil
	}
	return &TokenCache{client: r.Client, ttl: ttl}
}

// Get returns the cached token for a digest, if present.
func (c *TokenCache) Get(ctx context.Context, digest string) (*domain.Token, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, tokenKeyPrefix+digest).Bytes()
	if err != nil {
		return nil, false
	}
	var entry cachedToken
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}
	return &domain.Token{
		Digest:    digest,
		OwnerRole: domain.Role(entry.OwnerRole),
		OwnerID:   entry.OwnerID,
		IssuedAt:  time.Unix(entry.IssuedAt, 0),
	}, true
}

// Put caches a validated token and indexes it under its owner.
func (c *TokenCache) Put(ctx context.Context, token *domain.Token) {
	if c == nil || token == nil {
		return
	}
	raw, err := json.Marshal(cachedToken{
		OwnerRole: string(token.OwnerRole),
		OwnerID:   token.OwnerID,
		IssuedAt:  token.IssuedAt.Unix(),
	})
	if err != nil {
		return
	}
	ownerKey := ownerKeyPrefix + string(token.OwnerRole) + ":" + token.OwnerID
	pipe := c.client.Pipeline()
	pipe.Set(ctx, tokenKeyPrefix+token.Digest, raw, c.ttl)
	pipe.SAdd(ctx, ownerKey, token.Digest)
	pipe.Expire(ctx, ownerKey, c.ttl)
	_, _ = pipe.Exec(ctx)
}

// PurgeOwner drops every cached token of a principal. Called on revoke so a
// logged-out token cannot keep validating from cache.
func (c *TokenCache) PurgeOwner(ctx context.Context, role domain.Role, ownerID string) {
	if c == nil {
		return
	}
	ownerKey := ownerKeyPrefix + string(role) + ":" + ownerID
	digests, err := c.client.SMembers(ctx, ownerKey).Result()
	if err != nil {
		return
	}
	keys := make([]string, 0, len(digests)+1)
	for _, digest := range digests {
		keys = append(keys, tokenKeyPrefix+digest)
	}
	keys = append(keys, ownerKey)
	_ = c.client.Del(ctx, keys...).Err()
}
