// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/platform/constants"
)

// scanBatch is the COUNT hint used while scanning for catalog keys.
const scanBatch = 200

// RedisCache is the read cache of the catalog API.
//
// Entries are JSON documents keyed by `catalog:material:<id>` and
// `catalog:recipe:<id>`. They are filled lazily on read and dropped
// wholesale by [RedisCache.Invalidate] before a batch registers anything.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a cache whose entries expire after ttl.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = constants.CacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Invalidate deletes every catalog key and returns how many were removed.
func (cache *RedisCache) Invalidate(context context.Context) (int, error) {
	var (
		keys    []string
		deleted int
	)

	flush := func() error {
		if len(keys) == 0 {
			return nil
		}
		n, err := cache.client.Del(context, keys...).Result()
		if err != nil {
			return fmt.Errorf("redis_catalog_invalidate_failed: %w", err)
		}
		deleted += int(n)
		keys = keys[:0]
		return nil
	}

	iter := cache.client.Scan(context, 0, constants.RedisPrefixCatalog+"*", scanBatch).Iterator()
	for iter.Next(context) {
		keys = append(keys, iter.Val())
		if len(keys) >= scanBatch {
			if err := flush(); err != nil {
				return deleted, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("redis_catalog_scan_failed: %w", err)
	}

	return deleted, flush()
}

// GetMaterial implements [material.Cache].
func (cache *RedisCache) GetMaterial(context context.Context, id string) (*material.Material, error) {
	var m material.Material
	found, err := cache.get(context, constants.RedisPrefixMaterial+id, &m)
	if err != nil || !found {
		return nil, err
	}
	return &m, nil
}

// SetMaterial implements [material.Cache].
func (cache *RedisCache) SetMaterial(context context.Context, m *material.Material) error {
	return cache.set(context, constants.RedisPrefixMaterial+m.ID, m)
}

// GetRecipe implements [recipe.Cache].
func (cache *RedisCache) GetRecipe(context context.Context, id string) (*recipe.Recipe, error) {
	var r recipe.Recipe
	found, err := cache.get(context, constants.RedisPrefixRecipe+id, &r)
	if err != nil || !found {
		return nil, err
	}
	return &r, nil
}

// SetRecipe implements [recipe.Cache].
func (cache *RedisCache) SetRecipe(context context.Context, r *recipe.Recipe) error {
	return cache.set(context, constants.RedisPrefixRecipe+r.ID, r)
}

func (cache *RedisCache) get(context context.Context, key string, target any) (bool, error) {
	raw, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_catalog_get_failed: %w", err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		// A corrupt entry is a miss; the next set overwrites it.
		return false, nil
	}
	return true, nil
}

func (cache *RedisCache) set(context context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis_catalog_encode_failed: %w", err)
	}
	if err := cache.client.Set(context, key, raw, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_catalog_set_failed: %w", err)
	}
	return nil
}
