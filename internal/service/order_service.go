package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hungryhub/internal/domain"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrDishNotFound       = errors.New("dish not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotOwner           = errors.New("you are not the owner")
	ErrOrderForbidden     = errors.New("you cannot see that order")
	ErrDriverAssigned     = errors.New("this order already has a driver")
	ErrCannotUpdateStatus = errors.New("you cannot change the order to that status")
)

type OrderService struct {
	restaurants RestaurantRepository
	dishes      DishRepository
	orders      OrderRepository
	cache       DishCache
	publisher   OrderPublisher
	qrEncoder   QRGenerator
}

func NewOrderService(restaurants RestaurantRepository, dishes DishRepository, orders OrderRepository, cache DishCache, publisher OrderPublisher, qr QRGenerator) *OrderService {
	return &OrderService{
		restaurants: restaurants,
		dishes:      dishes,
		orders:      orders,
		cache:       cache,
		publisher:   publisher,
		qrEncoder:   qr,
	}
}

// Create validates the restaurant and every dish, resolves final item
// prices from the selected options, and persists the order with its items
// in one transaction. Any lookup miss aborts before anything is written.
func (s *OrderService) Create(ctx context.Context, customer domain.User, input domain.CreateOrderInput) (*domain.Order, error) {
	restaurant, err := s.restaurants.GetRestaurant(input.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	var (
		total int
		items []domain.OrderItem
	)
	for _, selection := range input.Items {
		dish, err := s.lookupDish(ctx, selection.DishID)
		if err != nil {
			return nil, fmt.Errorf("failed to load dish: %w", err)
		}
		if dish == nil {
			return nil, ErrDishNotFound
		}
		total += resolveUnitPrice(dish, selection.Options)
		items = append(items, domain.OrderItem{
			DishID:  selection.DishID,
			Options: selection.Options,
		})
	}

	order := &domain.Order{
		CustomerID:   customer.ID,
		RestaurantID: restaurant.ID,
		Items:        items,
		Total:        total,
		Status:       domain.StatusPending,
	}
	if err := s.orders.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			_ = s.orders.SaveQRCode(order.ID, qr)
		}
	}
	s.publish(ctx, "order_created", order)

	return order, nil
}

// resolveUnitPrice starts from the dish base price and adds the surcharge
// of every matched selection. A nonzero option-level extra wins over the
// choice-level extra; unmatched names are skipped without failing the order.
func resolveUnitPrice(dish *domain.Dish, selections []domain.ItemOption) int {
	price := dish.Price
	for _, sel := range selections {
		option := findOption(dish.Options, sel.Name)
		if option == nil {
			log.Printf("[order-svc] dish %d has no option %q, skipping", dish.ID, sel.Name)
			continue
		}
		if option.Extra != 0 {
			price += option.Extra
			continue
		}
		choice := findChoice(option.Choices, sel.Choice)
		if choice == nil {
			log.Printf("[order-svc] option %q on dish %d has no choice %q, skipping", sel.Name, dish.ID, sel.Choice)
			continue
		}
		price += choice.Extra
	}
	return price
}

func findOption(options []domain.DishOption, name string) *domain.DishOption {
	for i := range options {
		if options[i].Name == name {
			return &options[i]
		}
	}
	return nil
}

func findChoice(choices []domain.DishChoice, name string) *domain.DishChoice {
	for i := range choices {
		if choices[i].Name == name {
			return &choices[i]
		}
	}
	return nil
}

func (s *OrderService) lookupDish(ctx context.Context, dishID int) (*domain.Dish, error) {
	if s.cache != nil {
		if dish, err := s.cache.GetDish(ctx, s.cache.DishKey(dishID)); err == nil && dish != nil {
			return dish, nil
		}
	}
	dish, err := s.dishes.GetDish(dishID)
	if err != nil || dish == nil {
		return dish, err
	}
	if s.cache != nil {
		_ = s.cache.SetDish(ctx, s.cache.DishKey(dishID), dish)
	}
	return dish, nil
}

// List returns the orders the user may see: their own for clients, their
// assigned deliveries for drivers, and for owners every order across the
// restaurants they own. Owners get the status filter applied after the
// per-restaurant lists are flattened.
func (s *OrderService) List(user domain.User, status domain.OrderStatus) ([]domain.Order, error) {
	switch user.Role {
	case domain.RoleClient:
		return s.orders.ListByCustomer(user.ID, status)
	case domain.RoleDelivery:
		return s.orders.ListByDriver(user.ID, status)
	case domain.RoleOwner:
		restaurants, err := s.restaurants.ListOwnedRestaurants(user.ID)
		if err != nil {
			return nil, err
		}
		var all []domain.Order
		for _, restaurant := range restaurants {
			orders, err := s.orders.ListByRestaurant(restaurant.ID)
			if err != nil {
				return nil, err
			}
			all = append(all, orders...)
		}
		if status != "" {
			filtered := make([]domain.Order, 0, len(all))
			for _, order := range all {
				if order.Status == status {
					filtered = append(filtered, order)
				}
			}
			all = filtered
		}
		return all, nil
	default:
		// Role is a closed set; an unknown value yields no orders rather
		// than an error.
		return nil, nil
	}
}

func (s *OrderService) Get(user domain.User, orderID int) (*domain.Order, error) {
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	visible, err := s.visibleTo(user, order)
	if err != nil {
		return nil, fmt.Errorf("failed to check order visibility: %w", err)
	}
	if !visible {
		return nil, ErrOrderForbidden
	}
	return order, nil
}

// visibleTo allows the customer, the assigned driver, and the owner of the
// order's restaurant.
func (s *OrderService) visibleTo(user domain.User, order *domain.Order) (bool, error) {
	if order.CustomerID == user.ID {
		return true, nil
	}
	if order.DriverID != 0 && order.DriverID == user.ID {
		return true, nil
	}
	restaurant, err := s.restaurants.GetRestaurant(order.RestaurantID)
	if err != nil {
		return false, err
	}
	return restaurant != nil && user.Owns(restaurant.OwnerID), nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, user domain.User, orderID int, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	visible, err := s.visibleTo(user, order)
	if err != nil {
		return nil, fmt.Errorf("failed to check order visibility: %w", err)
	}
	if !visible {
		return nil, ErrOrderForbidden
	}
	if !allowedTransition(user.Role, status) {
		return nil, ErrCannotUpdateStatus
	}
	if err := s.orders.UpdateOrderStatus(orderID, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status
	s.publish(ctx, "status_changed", order)
	return order, nil
}

// Owners move orders through the kitchen, drivers through delivery.
// Clients never change the status.
func allowedTransition(role domain.Role, status domain.OrderStatus) bool {
	switch role {
	case domain.RoleOwner:
		return status == domain.StatusCooking || status == domain.StatusCooked
	case domain.RoleDelivery:
		return status == domain.StatusPickedUp || status == domain.StatusDelivered
	default:
		return false
	}
}

func (s *OrderService) Take(ctx context.Context, driver domain.User, orderID int) (*domain.Order, error) {
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.DriverID != 0 {
		return nil, ErrDriverAssigned
	}
	if err := s.orders.AssignDriver(orderID, driver.ID); err != nil {
		return nil, fmt.Errorf("failed to assign driver: %w", err)
	}
	order.DriverID = driver.ID
	s.publish(ctx, "order_taken", order)
	return order, nil
}

func (s *OrderService) GetQRCode(orderID int) ([]byte, error) {
	qr, err := s.orders.GetQRCode(orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			_ = s.orders.SaveQRCode(orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		CustomerID:   order.CustomerID,
		DriverID:     order.DriverID,
		Status:       order.Status,
		Total:        order.Total,
		Timestamp:    time.Now(),
	})
}

var _ OrderServiceInterface = (*OrderService)(nil)
