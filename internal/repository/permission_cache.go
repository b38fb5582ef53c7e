package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/job-board/internal/domain"
)

const permissionCachePrefix = "jobboard:role-permissions:"

// PermissionCache memoizes role → permission resolution.
type PermissionCache interface {
	Get(ctx context.Context, roleID string) (domain.RoleRef, []domain.Grant, bool, error)
	Set(ctx context.Context, role domain.RoleRef, grants []domain.Grant) error
	Invalidate(ctx context.Context, roleIDs ...string) error
	InvalidateAll(ctx context.Context) error
}

type cachedGrant struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	APIPath string `json:"apiPath"`
	Method  string `json:"method"`
	Module  string `json:"module"`
}

type cacheEntry struct {
	RoleID      string        `json:"roleId"`
	RoleName    string        `json:"roleName"`
	Permissions []cachedGrant `json:"permissions"`
}

func encodeEntry(role domain.RoleRef, grants []domain.Grant) ([]byte, error) {
	entry := cacheEntry{RoleID: role.ID, RoleName: role.Name, Permissions: make([]cachedGrant, 0, len(grants))}
	for _, g := range grants {
		entry.Permissions = append(entry.Permissions, cachedGrant(g))
	}
	return json.Marshal(entry)
}

func decodeEntry(raw []byte) (domain.RoleRef, []domain.Grant, error) {
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.RoleRef{}, nil, err
	}
	grants := make([]domain.Grant, 0, len(entry.Permissions))
	for _, g := range entry.Permissions {
		grants = append(grants, domain.Grant(g))
	}
	return domain.RoleRef{ID: entry.RoleID, Name: entry.RoleName}, grants, nil
}

type redisPermissionCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisPermissionCache stores entries under a fixed key prefix with the given TTL.
func NewRedisPermissionCache(client redis.UniversalClient, ttl time.Duration) PermissionCache {
	return &redisPermissionCache{client: client, ttl: ttl}
}

func (c *redisPermissionCache) Get(ctx context.Context, roleID string) (domain.RoleRef, []domain.Grant, bool, error) {
	raw, err := c.client.Get(ctx, permissionCachePrefix+roleID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RoleRef{}, nil, false, nil
	}
	if err != nil {
		return domain.RoleRef{}, nil, false, fmt.Errorf("redis get: %w", err)
	}
	role, grants, err := decodeEntry(raw)
	if err != nil {
		return domain.RoleRef{}, nil, false, fmt.Errorf("decode cached permissions: %w", err)
	}
	return role, grants, true, nil
}

func (c *redisPermissionCache) Set(ctx context.Context, role domain.RoleRef, grants []domain.Grant) error {
	raw, err := encodeEntry(role, grants)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, permissionCachePrefix+role.ID, raw, c.ttl).Err()
}

func (c *redisPermissionCache) Invalidate(ctx context.Context, roleIDs ...string) error {
	if len(roleIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		keys = append(keys, permissionCachePrefix+id)
	}
	return c.client.Del(ctx, keys...).Err()
}

// InvalidateAll drops every cached role; used when a permission itself changes.
func (c *redisPermissionCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, permissionCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

type nopPermissionCache struct{}

// NewNopPermissionCache returns a cache that never hits.
func NewNopPermissionCache() PermissionCache {
	return nopPermissionCache{}
}

func (nopPermissionCache) Get(context.Context, string) (domain.RoleRef, []domain.Grant, bool, error) {
	return domain.RoleRef{}, nil, false, nil
}

func (nopPermissionCache) Set(context.Context, domain.RoleRef, []domain.Grant) error { return nil }

func (nopPermissionCache) Invalidate(context.Context, ...string) error { return nil }

func (nopPermissionCache) InvalidateAll(context.Context) error { return nil }
