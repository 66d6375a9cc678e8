package service

import (
	"fmt"

	"hungryhub/internal/domain"
)

type RestaurantService struct {
	restaurants RestaurantRepository
	dishes      DishRepository
}

func NewRestaurantService(restaurants RestaurantRepository, dishes DishRepository) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, dishes: dishes}
}

func (s *RestaurantService) CreateRestaurant(owner domain.User, rest *domain.Restaurant) error {
	rest.OwnerID = owner.ID
	if err := s.restaurants.CreateRestaurant(rest); err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}
	return nil
}

func (s *RestaurantService) EditRestaurant(owner domain.User, rest *domain.Restaurant) error {
	existing, err := s.restaurants.GetRestaurant(rest.ID)
	if err != nil {
		return fmt.Errorf("failed to load restaurant: %w", err)
	}
	if existing == nil {
		return ErrRestaurantNotFound
	}
	if !owner.Owns(existing.OwnerID) {
		return ErrNotOwner
	}
	rest.OwnerID = existing.OwnerID
	if err := s.restaurants.UpdateRestaurant(rest); err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	return nil
}

func (s *RestaurantService) DeleteRestaurant(owner domain.User, restaurantID int) error {
	existing, err := s.restaurants.GetRestaurant(restaurantID)
	if err != nil {
		return fmt.Errorf("failed to load restaurant: %w", err)
	}
	if existing == nil {
		return ErrRestaurantNotFound
	}
	if !owner.Owns(existing.OwnerID) {
		return ErrNotOwner
	}
	if _, err := s.restaurants.DeleteRestaurant(restaurantID); err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	return nil
}

func (s *RestaurantService) CreateDish(owner domain.User, dish *domain.Dish) error {
	restaurant, err := s.restaurants.GetRestaurant(dish.RestaurantID)
	if err != nil {
		return fmt.Errorf("failed to load restaurant: %w", err)
	}
	if restaurant == nil {
		return ErrRestaurantNotFound
	}
	if !owner.Owns(restaurant.OwnerID) {
		return ErrNotOwner
	}
	if err := s.dishes.CreateDish(dish); err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}
	return nil
}

func (s *RestaurantService) EditDish(owner domain.User, dish *domain.Dish) error {
	existing, err := s.dishes.GetDish(dish.ID)
	if err != nil {
		return fmt.Errorf("failed to load dish: %w", err)
	}
	if existing == nil {
		return ErrDishNotFound
	}
	if err := s.checkDishOwner(owner, existing); err != nil {
		return err
	}
	dish.RestaurantID = existing.RestaurantID
	if err := s.dishes.UpdateDish(dish); err != nil {
		return fmt.Errorf("failed to update dish: %w", err)
	}
	return nil
}

func (s *RestaurantService) DeleteDish(owner domain.User, dishID int) error {
	existing, err := s.dishes.GetDish(dishID)
	if err != nil {
		return fmt.Errorf("failed to load dish: %w", err)
	}
	if existing == nil {
		return ErrDishNotFound
	}
	if err := s.checkDishOwner(owner, existing); err != nil {
		return err
	}
	if _, err := s.dishes.DeleteDish(dishID); err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}
	return nil
}

// Dish ownership follows the owning restaurant.
func (s *RestaurantService) checkDishOwner(owner domain.User, dish *domain.Dish) error {
	restaurant, err := s.restaurants.GetRestaurant(dish.RestaurantID)
	if err != nil {
		return fmt.Errorf("failed to load restaurant: %w", err)
	}
	if restaurant == nil {
		return ErrRestaurantNotFound
	}
	if !owner.Owns(restaurant.OwnerID) {
		return ErrNotOwner
	}
	return nil
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)
