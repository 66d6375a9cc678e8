package service

import (
	"context"

	"hungryhub/internal/domain"
)

type OrderServiceInterface interface {
	Create(ctx context.Context, customer domain.User, input domain.CreateOrderInput) (*domain.Order, error)
	List(user domain.User, status domain.OrderStatus) ([]domain.Order, error)
	Get(user domain.User, orderID int) (*domain.Order, error)
	UpdateStatus(ctx context.Context, user domain.User, orderID int, status domain.OrderStatus) (*domain.Order, error)
	Take(ctx context.Context, driver domain.User, orderID int) (*domain.Order, error)
	GetQRCode(orderID int) ([]byte, error)
}

type RestaurantServiceInterface interface {
	CreateRestaurant(owner domain.User, rest *domain.Restaurant) error
	EditRestaurant(owner domain.User, rest *domain.Restaurant) error
	DeleteRestaurant(owner domain.User, restaurantID int) error
	CreateDish(owner domain.User, dish *domain.Dish) error
	EditDish(owner domain.User, dish *domain.Dish) error
	DeleteDish(owner domain.User, dishID int) error
}

// Lookups return (nil, nil) when the row is absent; a non-nil error means
// the store itself failed.

type RestaurantRepository interface {
	CreateRestaurant(rest *domain.Restaurant) error
	GetRestaurant(id int) (*domain.Restaurant, error)
	UpdateRestaurant(rest *domain.Restaurant) error
	DeleteRestaurant(id int) (int64, error)
	ListOwnedRestaurants(ownerID int) ([]domain.Restaurant, error)
}

type DishRepository interface {
	CreateDish(dish *domain.Dish) error
	GetDish(id int) (*domain.Dish, error)
	UpdateDish(dish *domain.Dish) error
	DeleteDish(id int) (int64, error)
}

type OrderRepository interface {
	CreateOrder(order *domain.Order) error
	GetOrder(id int) (*domain.Order, error)
	ListByCustomer(customerID int, status domain.OrderStatus) ([]domain.Order, error)
	ListByDriver(driverID int, status domain.OrderStatus) ([]domain.Order, error)
	ListByRestaurant(restaurantID int) ([]domain.Order, error)
	UpdateOrderStatus(orderID int, status domain.OrderStatus) error
	AssignDriver(orderID, driverID int) error
	SaveQRCode(orderID int, qr []byte) error
	GetQRCode(orderID int) ([]byte, error)
}

type DishCache interface {
	DishKey(dishID int) string
	GetDish(ctx context.Context, key string) (*domain.Dish, error)
	SetDish(ctx context.Context, key string, dish *domain.Dish) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}
