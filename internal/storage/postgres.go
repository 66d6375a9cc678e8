package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"hungryhub/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateRestaurant(rest *domain.Restaurant) error {
	return r.DB.QueryRow(
		"INSERT INTO restaurants (owner_id, name, address, description) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		rest.OwnerID, rest.Name, rest.Address, rest.Description,
	).Scan(&rest.ID, &rest.CreatedAt)
}

func (r *PostgresRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRow(`
		SELECT id, owner_id, name, COALESCE(address, ''), COALESCE(description, ''), created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Address, &rest.Description, &rest.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	return r.DB.QueryRow(
		"UPDATE restaurants SET name=$1, address=$2, description=$3 WHERE id=$4 RETURNING id, owner_id, name, COALESCE(address, ''), COALESCE(description, ''), created_at",
		rest.Name, rest.Address, rest.Description, rest.ID).
		Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Address, &rest.Description, &rest.CreatedAt)
}

func (r *PostgresRepository) DeleteRestaurant(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM restaurants WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ListOwnedRestaurants(ownerID int) ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(`
		SELECT id, owner_id, name, COALESCE(address, ''), COALESCE(description, ''), created_at
		FROM restaurants
		WHERE owner_id = $1
		ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Address, &rest.Description, &rest.CreatedAt); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, nil
}

func (r *PostgresRepository) CreateDish(dish *domain.Dish) error {
	options, err := json.Marshal(dish.Options)
	if err != nil {
		return fmt.Errorf("marshal dish options: %w", err)
	}
	return r.DB.QueryRow(
		"INSERT INTO dishes (restaurant_id, name, description, price, options) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at",
		dish.RestaurantID, dish.Name, dish.Description, dish.Price, options).
		Scan(&dish.ID, &dish.CreatedAt)
}

func (r *PostgresRepository) GetDish(id int) (*domain.Dish, error) {
	var (
		dish    domain.Dish
		options []byte
	)
	err := r.DB.QueryRow(
		"SELECT id, restaurant_id, name, COALESCE(description, ''), price, COALESCE(options, '[]'), created_at FROM dishes WHERE id = $1",
		id).
		Scan(&dish.ID, &dish.RestaurantID, &dish.Name, &dish.Description, &dish.Price, &options, &dish.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(options, &dish.Options); err != nil {
		return nil, fmt.Errorf("unmarshal dish options: %w", err)
	}
	return &dish, nil
}

func (r *PostgresRepository) UpdateDish(dish *domain.Dish) error {
	options, err := json.Marshal(dish.Options)
	if err != nil {
		return fmt.Errorf("marshal dish options: %w", err)
	}
	_, err = r.DB.Exec(`
		UPDATE dishes
		SET name=$1, description=$2, price=$3, options=$4
		WHERE id=$5`,
		dish.Name, dish.Description, dish.Price, options, dish.ID)
	return err
}

func (r *PostgresRepository) DeleteDish(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM dishes WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(`
		INSERT INTO orders (customer_id, restaurant_id, total, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, order.CustomerID, order.RestaurantID, order.Total, order.Status).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for i := range order.Items {
		options, err := json.Marshal(order.Items[i].Options)
		if err != nil {
			return fmt.Errorf("marshal item options: %w", err)
		}
		if err := tx.QueryRow(`
			INSERT INTO order_items (order_id, dish_id, options)
			VALUES ($1, $2, $3)
			RETURNING id
		`, order.ID, order.Items[i].DishID, options).Scan(&order.Items[i].ID); err != nil {
			return err
		}
		order.Items[i].OrderID = order.ID
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(id int) (*domain.Order, error) {
	var (
		order    domain.Order
		driverID sql.NullInt64
	)
	err := r.DB.QueryRow(`
		SELECT id, customer_id, restaurant_id, driver_id, total, status, created_at
		FROM orders WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerID, &order.RestaurantID, &driverID, &order.Total, &order.Status, &order.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	order.DriverID = int(driverID.Int64)

	rows, err := r.DB.Query(`
		SELECT id, order_id, dish_id, options
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item    domain.OrderItem
			options []byte
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.DishID, &options); err != nil {
			continue
		}
		if err := json.Unmarshal(options, &item.Options); err != nil {
			continue
		}
		order.Items = append(order.Items, item)
	}

	return &order, nil
}

func (r *PostgresRepository) ListByCustomer(customerID int, status domain.OrderStatus) ([]domain.Order, error) {
	query := `
		SELECT id, customer_id, restaurant_id, driver_id, total, status, created_at
		FROM orders
		WHERE customer_id = $1`
	args := []interface{}{customerID}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"
	return r.listOrders(query, args...)
}

func (r *PostgresRepository) ListByDriver(driverID int, status domain.OrderStatus) ([]domain.Order, error) {
	query := `
		SELECT id, customer_id, restaurant_id, driver_id, total, status, created_at
		FROM orders
		WHERE driver_id = $1`
	args := []interface{}{driverID}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"
	return r.listOrders(query, args...)
}

func (r *PostgresRepository) ListByRestaurant(restaurantID int) ([]domain.Order, error) {
	return r.listOrders(`
		SELECT id, customer_id, restaurant_id, driver_id, total, status, created_at
		FROM orders
		WHERE restaurant_id = $1
		ORDER BY id`, restaurantID)
}

func (r *PostgresRepository) listOrders(query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			order    domain.Order
			driverID sql.NullInt64
		)
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.RestaurantID, &driverID, &order.Total, &order.Status, &order.CreatedAt); err != nil {
			continue
		}
		order.DriverID = int(driverID.Int64)
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *PostgresRepository) UpdateOrderStatus(orderID int, status domain.OrderStatus) error {
	_, err := r.DB.Exec("UPDATE orders SET status = $1 WHERE id = $2", status, orderID)
	return err
}

func (r *PostgresRepository) AssignDriver(orderID, driverID int) error {
	_, err := r.DB.Exec("UPDATE orders SET driver_id = $1 WHERE id = $2 AND driver_id IS NULL", driverID, orderID)
	return err
}

func (r *PostgresRepository) SaveQRCode(orderID int, qr []byte) error {
	_, err := r.DB.Exec("UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(orderID int) ([]byte, error) {
	var qrCode []byte
	if err := r.DB.QueryRow("SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qrCode); err != nil {
		return nil, err
	}
	return qrCode, nil
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			owner_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			address TEXT,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS dishes (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			price INTEGER NOT NULL,
			options JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			customer_id INTEGER NOT NULL,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id),
			driver_id INTEGER,
			total INTEGER NOT NULL,
			status TEXT NOT NULL,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			dish_id INTEGER NOT NULL,
			options JSONB NOT NULL DEFAULT '[]'
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
