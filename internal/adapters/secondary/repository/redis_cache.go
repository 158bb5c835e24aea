package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/webwebweb5/societify/internal/core/domain"
)

// RedisFeedCache est un cache court-TTL pour les feeds chauds (feed global).
// Pas d'invalidation au write : le TTL borne la staleness, et les feeds n'ont
// de toute façon aucune garantie de snapshot inter-enregistrements.
type RedisFeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisFeedCache(client *redis.Client, ttl time.Duration) *RedisFeedCache {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &RedisFeedCache{client: client, ttl: ttl}
}

// Get retourne (nil, nil) sur un miss : le caller retombe sur le store.
func (c *RedisFeedCache) Get(ctx context.Context, key string) ([]*domain.FeedPost, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var items []*domain.FeedPost
	if err := json.Unmarshal(data, &items); err != nil {
		// Donnée corrompue : on la laisse expirer, le caller recalcule.
		return nil, nil
	}
	return items, nil
}

func (c *RedisFeedCache) Set(ctx context.Context, key string, items []*domain.FeedPost) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
