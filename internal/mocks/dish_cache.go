package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hungryhub/internal/domain"
)

type DishCache struct {
	mock.Mock
}

func NewDishCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *DishCache {
	m := &DishCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *DishCache) DishKey(dishID int) string {
	args := m.Called(dishID)
	return args.String(0)
}

func (m *DishCache) GetDish(ctx context.Context, key string) (*domain.Dish, error) {
	args := m.Called(ctx, key)
	var dish *domain.Dish
	if args.Get(0) != nil {
		dish = args.Get(0).(*domain.Dish)
	}
	return dish, args.Error(1)
}

func (m *DishCache) SetDish(ctx context.Context, key string, dish *domain.Dish) error {
	args := m.Called(ctx, key, dish)
	return args.Error(0)
}
