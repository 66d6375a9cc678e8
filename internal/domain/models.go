package domain

import "time"

type Role string

const (
	RoleClient   Role = "Client"
	RoleOwner    Role = "Owner"
	RoleDelivery Role = "Delivery"
)

type User struct {
	ID   int  `json:"id"`
	Role Role `json:"role"`
}

// Owns reports whether the user is the owner referenced by ownerID.
// Every restaurant/dish mutation goes through this single check.
func (u User) Owns(ownerID int) bool {
	return u.ID == ownerID
}

type Restaurant struct {
	ID          int       `json:"id"`
	OwnerID     int       `json:"owner_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type DishChoice struct {
	Name  string `json:"name"`
	Extra int    `json:"extra,omitempty"`
}

type DishOption struct {
	Name    string       `json:"name"`
	Extra   int          `json:"extra,omitempty"`
	Choices []DishChoice `json:"choices,omitempty"`
}

// Dish prices are integer currency units. A nonzero option Extra applies
// instead of any choice Extra within that option.
type Dish struct {
	ID           int          `json:"id"`
	RestaurantID int          `json:"restaurant_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        int          `json:"price"`
	Options      []DishOption `json:"options,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCooking   OrderStatus = "Cooking"
	StatusCooked    OrderStatus = "Cooked"
	StatusPickedUp  OrderStatus = "PickedUp"
	StatusDelivered OrderStatus = "Delivered"
)

// ItemOption names an option on the dish and, optionally, the chosen
// choice within it.
type ItemOption struct {
	Name   string `json:"name"`
	Choice string `json:"choice,omitempty"`
}

type OrderItemInput struct {
	DishID  int          `json:"dish_id"`
	Options []ItemOption `json:"options,omitempty"`
}

type CreateOrderInput struct {
	RestaurantID int              `json:"restaurant_id"`
	Items        []OrderItemInput `json:"items"`
}

type OrderItem struct {
	ID      int          `json:"id"`
	OrderID int          `json:"order_id"`
	DishID  int          `json:"dish_id"`
	Options []ItemOption `json:"options,omitempty"`
}

// DriverID is zero until a delivery user takes the order.
type Order struct {
	ID           int         `json:"id"`
	CustomerID   int         `json:"customer_id"`
	RestaurantID int         `json:"restaurant_id"`
	DriverID     int         `json:"driver_id,omitempty"`
	Items        []OrderItem `json:"items,omitempty"`
	Total        int         `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

type OrderEvent struct {
	Type         string      `json:"type"`
	OrderID      int         `json:"order_id"`
	RestaurantID int         `json:"restaurant_id"`
	CustomerID   int         `json:"customer_id"`
	DriverID     int         `json:"driver_id,omitempty"`
	Status       OrderStatus `json:"status"`
	Total        int         `json:"total,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
}
