package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// defaultCacheTTL bounds how long a token revoked elsewhere could still
// introspect successfully on a node whose cache entry has not expired.
const defaultCacheTTL = 5 * time.Minute

type cachedIdentity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// cachedTokenStore fronts another TokenStore with a Redis cache so the
// per-request token lookup does not always hit Postgres. Revoke deletes the
// cache entry before delegating, so logout takes effect immediately.
type cachedTokenStore struct {
	inner TokenStore
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachedTokenStore wraps inner with a Redis introspection cache.
func NewCachedTokenStore(inner TokenStore, rdb *redis.Client) TokenStore {
	return &cachedTokenStore{inner: inner, rdb: rdb, ttl: defaultCacheTTL}
}

func cacheKey(key string) string { return "auth:token:" + key }

func (s *cachedTokenStore) Issue(ctx context.Context, userID uuid.UUID) (*Token, error) {
	return s.inner.Issue(ctx, userID)
}

func (s *cachedTokenStore) Introspect(ctx context.Context, key string) (*Identity, error) {
	if data, err := s.rdb.Get(ctx, cacheKey(key)).Bytes(); err == nil {
		var ci cachedIdentity
		if err := json.Unmarshal(data, &ci); err == nil {
			if uid, err := uuid.Parse(ci.UserID); err == nil {
				return &Identity{UserID: uid, Username: ci.Username, Role: Role(ci.Role)}, nil
			}
		}
	}

	ident, err := s.inner.Introspect(ctx, key)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(cachedIdentity{
		UserID:   ident.UserID.String(),
		Username: ident.Username,
		Role:     string(ident.Role),
	})
	if err == nil {
		// Cache failures are non-fatal; the next request falls through to Postgres.
		s.rdb.Set(ctx, cacheKey(key), data, s.ttl)
	}
	return ident, nil
}

func (s *cachedTokenStore) Revoke(ctx context.Context, key string) error {
	s.rdb.Del(ctx, cacheKey(key))
	return s.inner.Revoke(ctx, key)
}
