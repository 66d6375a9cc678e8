package mocks

import (
	"github.com/stretchr/testify/mock"

	"hungryhub/internal/domain"
)

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) CreateOrder(order *domain.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *OrderRepository) GetOrder(id int) (*domain.Order, error) {
	args := m.Called(id)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderRepository) ListByCustomer(customerID int, status domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(customerID, status)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderRepository) ListByDriver(driverID int, status domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(driverID, status)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderRepository) ListByRestaurant(restaurantID int) ([]domain.Order, error) {
	args := m.Called(restaurantID)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(orderID int, status domain.OrderStatus) error {
	args := m.Called(orderID, status)
	return args.Error(0)
}

func (m *OrderRepository) AssignDriver(orderID, driverID int) error {
	args := m.Called(orderID, driverID)
	return args.Error(0)
}

func (m *OrderRepository) SaveQRCode(orderID int, qr []byte) error {
	args := m.Called(orderID, qr)
	return args.Error(0)
}

func (m *OrderRepository) GetQRCode(orderID int) ([]byte, error) {
	args := m.Called(orderID)
	var qr []byte
	if args.Get(0) != nil {
		qr = args.Get(0).([]byte)
	}
	return qr, args.Error(1)
}
