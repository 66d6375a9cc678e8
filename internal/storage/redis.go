package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"hungryhub/internal/domain"
)

// RedisDishCache holds dish snapshots so repeated pricing reads skip the
// database. Prices resolved from a snapshot may lag a concurrent dish edit
// by up to TTL.
type RedisDishCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDishCache(client *redis.Client, ttl time.Duration) *RedisDishCache {
	return &RedisDishCache{Client: client, TTL: ttl}
}

func (c *RedisDishCache) DishKey(dishID int) string {
	return "dish:" + strconv.Itoa(dishID)
}

func (c *RedisDishCache) GetDish(ctx context.Context, key string) (*domain.Dish, error) {
	payload, err := c.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var dish domain.Dish
	if err := json.Unmarshal(payload, &dish); err != nil {
		return nil, err
	}
	return &dish, nil
}

func (c *RedisDishCache) SetDish(ctx context.Context, key string, dish *domain.Dish) error {
	payload, err := json.Marshal(dish)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}
