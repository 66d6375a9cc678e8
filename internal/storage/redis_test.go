package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"hungryhub/internal/domain"
)

func setupTestCache(t *testing.T) *RedisDishCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisDishCache(client, time.Minute)
}

func TestRedisDishCache_RoundTrip(t *testing.T) {
	cache := setupTestCache(t)
	ctx := context.Background()

	dish := &domain.Dish{
		ID:           2,
		RestaurantID: 1,
		Name:         "Burger",
		Price:        10,
		Options: []domain.DishOption{
			{Name: "Size", Choices: []domain.DishChoice{{Name: "Large", Extra: 2}}},
		},
	}

	key := cache.DishKey(dish.ID)
	assert.Equal(t, "dish:2", key)
	assert.NoError(t, cache.SetDish(ctx, key, dish))

	got, err := cache.GetDish(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, dish, got)
}

func TestRedisDishCache_Miss(t *testing.T) {
	cache := setupTestCache(t)

	got, err := cache.GetDish(context.Background(), cache.DishKey(404))

	assert.NoError(t, err)
	assert.Nil(t, got)
}
