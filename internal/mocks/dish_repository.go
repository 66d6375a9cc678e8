package mocks

import (
	"github.com/stretchr/testify/mock"

	"hungryhub/internal/domain"
)

type DishRepository struct {
	mock.Mock
}

func NewDishRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *DishRepository {
	m := &DishRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *DishRepository) CreateDish(dish *domain.Dish) error {
	args := m.Called(dish)
	return args.Error(0)
}

func (m *DishRepository) GetDish(id int) (*domain.Dish, error) {
	args := m.Called(id)
	var dish *domain.Dish
	if args.Get(0) != nil {
		dish = args.Get(0).(*domain.Dish)
	}
	return dish, args.Error(1)
}

func (m *DishRepository) UpdateDish(dish *domain.Dish) error {
	args := m.Called(dish)
	return args.Error(0)
}

func (m *DishRepository) DeleteDish(id int) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}
