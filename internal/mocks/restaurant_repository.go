package mocks

import (
	"github.com/stretchr/testify/mock"

	"hungryhub/internal/domain"
)

type RestaurantRepository struct {
	mock.Mock
}

func NewRestaurantRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *RestaurantRepository {
	m := &RestaurantRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RestaurantRepository) CreateRestaurant(rest *domain.Restaurant) error {
	args := m.Called(rest)
	return args.Error(0)
}

func (m *RestaurantRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	args := m.Called(id)
	var rest *domain.Restaurant
	if args.Get(0) != nil {
		rest = args.Get(0).(*domain.Restaurant)
	}
	return rest, args.Error(1)
}

func (m *RestaurantRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	args := m.Called(rest)
	return args.Error(0)
}

func (m *RestaurantRepository) DeleteRestaurant(id int) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RestaurantRepository) ListOwnedRestaurants(ownerID int) ([]domain.Restaurant, error) {
	args := m.Called(ownerID)
	var restaurants []domain.Restaurant
	if args.Get(0) != nil {
		restaurants = args.Get(0).([]domain.Restaurant)
	}
	return restaurants, args.Error(1)
}
