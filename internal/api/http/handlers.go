package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"hungryhub/internal/domain"
	"hungryhub/internal/service"
)

type Handler struct {
	Orders      service.OrderServiceInterface
	Restaurants service.RestaurantServiceInterface
}

func NewHandler(orders service.OrderServiceInterface, restaurants service.RestaurantServiceInterface) *Handler {
	return &Handler{Orders: orders, Restaurants: restaurants}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}", h.editRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")

	r.HandleFunc("/api/restaurants/{restaurantId}/dishes", h.createDish).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/dishes/{dishId}", h.editDish).Methods("PUT")
	r.HandleFunc("/api/restaurants/{restaurantId}/dishes/{dishId}", h.deleteDish).Methods("DELETE")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PUT")
	r.HandleFunc("/api/orders/{id}/take", h.takeOrder).Methods("PUT")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

// Every JSON endpoint answers with this envelope; callers check ok before
// reading data.
type response struct {
	OK    bool        `json:"ok"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

func writeData(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response{OK: true, Data: data})
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response{OK: false, Error: message})
}

// writeServiceError maps the known sentinel errors to their user-visible
// messages; anything else gets the operation's generic fallback.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrRestaurantNotFound):
		writeError(w, http.StatusNotFound, "Restaurant Not Found")
	case errors.Is(err, service.ErrDishNotFound):
		writeError(w, http.StatusNotFound, "Dish Not Found")
	case errors.Is(err, service.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "Order Not Found")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "You are not the owner")
	case errors.Is(err, service.ErrOrderForbidden):
		writeError(w, http.StatusForbidden, "You cannot see that")
	case errors.Is(err, service.ErrDriverAssigned):
		writeError(w, http.StatusConflict, "This order already has a driver")
	case errors.Is(err, service.ErrCannotUpdateStatus):
		writeError(w, http.StatusForbidden, "You can't do that")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request, roles ...domain.Role) (domain.User, bool) {
	user, ok := UserFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return domain.User{}, false
	}
	if len(roles) == 0 {
		return user, true
	}
	for _, role := range roles {
		if user.Role == role {
			return user, true
		}
	}
	writeError(w, http.StatusForbidden, "You are not allowed to do that")
	return domain.User{}, false
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "order-svc",
	})
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireUser(w, r, domain.RoleOwner)
	if !ok {
		return
	}

	var restaurant domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&restaurant); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Restaurants.CreateRestaurant(owner, &restaurant); err != nil {
		writeServiceError(w, err, "Could not create restaurant")
		return
	}
	writeData(w, http.StatusCreated, restaurant)
}

func (h *Handler) editRestaurant(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireUser(w, r, domain.RoleOwner)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var restaurant domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&restaurant); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	restaurant.ID = id

	if err := h.Restaurants.EditRestaurant(owner, &restaurant); err != nil {
		writeServiceError(w, err, "Could not edit the restaurant")
		return
	}
	writeData(w, http.StatusOK, restaurant)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireUser(w, r, domain.RoleOwner)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Restaurants.DeleteRestaurant(owner, id); err != nil {
		writeServiceError(w, err, "Could not delete the restaurant")
		return
	}
	writeData(w, http.StatusOK, nil)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireUser(w, r, domain.RoleOwner)
	if !ok {
		return
	}
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])

	var dish domain.Dish
	if err := json.NewDecoder(r.Body).Decode(&dish); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dish.RestaurantID = restaurantID

	if err := h.Restaurants.CreateDish(owner, &dish); err != nil {
		writeServiceError(w, err, "Could not create a dish")
		return
	}
	writeData(w, http.StatusCreated, dish)
}

func (h *Handler) editDish(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireUser(w, r, domain.RoleOwner)
	if !ok {
		return
	}
	dishID, _ := strconv.Atoi(mux.Vars(r)["dishId"])

	var dish domain.Dish
	if err := json.NewDecoder(r.Body).Decode(&dish); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dish.ID = dishID

	if err := h.Restaurants.EditDish(owner, &dish); err != nil {
		writeServiceError(w, err, "Could not edit dish")
		return
	}
	writeData(w, http.StatusOK, dish)
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.requireUser(w, r, domain.RoleOwner)
	if !ok {
		return
	}
	dishID, _ := strconv.Atoi(mux.Vars(r)["dishId"])

	if err := h.Restaurants.DeleteDish(owner, dishID); err != nil {
		writeServiceError(w, err, "Could not delete the dish")
		return
	}
	writeData(w, http.StatusOK, nil)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.requireUser(w, r, domain.RoleClient)
	if !ok {
		return
	}

	var input domain.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Orders.Create(r.Context(), customer, input)
	if err != nil {
		writeServiceError(w, err, "Could not create order")
		return
	}
	writeData(w, http.StatusCreated, map[string]int{"order_id": order.ID})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	status := domain.OrderStatus(r.URL.Query().Get("status"))

	orders, err := h.Orders.List(user, status)
	if err != nil {
		writeServiceError(w, err, "Could not load orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeData(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	order, err := h.Orders.Get(user, id)
	if err != nil {
		writeServiceError(w, err, "Could not load order")
		return
	}
	writeData(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var payload struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), user, id, payload.Status)
	if err != nil {
		writeServiceError(w, err, "Could not edit order")
		return
	}
	writeData(w, http.StatusOK, order)
}

func (h *Handler) takeOrder(w http.ResponseWriter, r *http.Request) {
	driver, ok := h.requireUser(w, r, domain.RoleDelivery)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	order, err := h.Orders.Take(r.Context(), driver, id)
	if err != nil {
		writeServiceError(w, err, "Could not take order")
		return
	}
	writeData(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	qr, err := h.Orders.GetQRCode(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Order Not Found")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}
