package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "hungryhub/internal/api/http"
	"hungryhub/internal/domain"
	"hungryhub/internal/mocks"
	"hungryhub/internal/service"
)

type envelope struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type handlerFixture struct {
	restaurants *mocks.RestaurantRepository
	dishes      *mocks.DishRepository
	orders      *mocks.OrderRepository
	router      http.Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	restaurants := mocks.NewRestaurantRepository(t)
	dishes := mocks.NewDishRepository(t)
	orders := mocks.NewOrderRepository(t)

	orderService := service.NewOrderService(restaurants, dishes, orders, nil, nil, nil)
	restaurantService := service.NewRestaurantService(restaurants, dishes)
	handler := httpapi.NewHandler(orderService, restaurantService)

	return &handlerFixture{
		restaurants: restaurants,
		dishes:      dishes,
		orders:      orders,
		router:      httpapi.NewRouter(handler),
	}
}

func (f *handlerFixture) do(method, path string, user *domain.User, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("X-User-ID", strconv.Itoa(user.ID))
		req.Header.Set("X-User-Role", string(user.Role))
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCreateOrderHandler(t *testing.T) {
	body := `{"restaurant_id":1,"items":[{"dish_id":2,"options":[{"name":"Size","choice":"Large"}]}]}`

	t.Run("requires identity", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		w, env := fixture.do("POST", "/api/orders", nil, body)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, env.OK)
	})

	t.Run("requires the client role", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		w, env := fixture.do("POST", "/api/orders", &domain.User{ID: 9, Role: domain.RoleOwner}, body)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, env.OK)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		w, env := fixture.do("POST", "/api/orders", &domain.User{ID: 5, Role: domain.RoleClient}, `{invalid}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.OK)
	})

	t.Run("restaurant not found", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		fixture.restaurants.On("GetRestaurant", 1).Return(nil, nil).Once()

		w, env := fixture.do("POST", "/api/orders", &domain.User{ID: 5, Role: domain.RoleClient}, body)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, env.OK)
		assert.Equal(t, "Restaurant Not Found", env.Error)
	})

	t.Run("created", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		fixture.restaurants.On("GetRestaurant", 1).Return(&domain.Restaurant{ID: 1, OwnerID: 9}, nil).Once()
		fixture.dishes.On("GetDish", 2).Return(burgerDish(), nil).Once()
		fixture.orders.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Run(func(args mock.Arguments) {
			args.Get(0).(*domain.Order).ID = 10
		}).Return(nil).Once()

		w, env := fixture.do("POST", "/api/orders", &domain.User{ID: 5, Role: domain.RoleClient}, body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.OK)

		var data struct {
			OrderID int `json:"order_id"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 10, data.OrderID)
	})

	t.Run("persistence failure", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		fixture.restaurants.On("GetRestaurant", 1).Return(&domain.Restaurant{ID: 1, OwnerID: 9}, nil).Once()
		fixture.dishes.On("GetDish", 2).Return(burgerDish(), nil).Once()
		fixture.orders.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(assert.AnError).Once()

		w, env := fixture.do("POST", "/api/orders", &domain.User{ID: 5, Role: domain.RoleClient}, body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, env.OK)
		assert.Equal(t, "Could not create order", env.Error)
	})
}

func TestListOrdersHandler(t *testing.T) {
	t.Run("client gets own orders", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		fixture.orders.On("ListByCustomer", 5, domain.OrderStatus("")).Return([]domain.Order{
			{ID: 1, CustomerID: 5},
		}, nil).Once()

		w, env := fixture.do("GET", "/api/orders", &domain.User{ID: 5, Role: domain.RoleClient}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.OK)

		var orders []domain.Order
		assert.NoError(t, json.Unmarshal(env.Data, &orders))
		assert.Len(t, orders, 1)
	})

	t.Run("status query parameter is forwarded", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		fixture.orders.On("ListByDriver", 3, domain.StatusPickedUp).Return(nil, nil).Once()

		w, env := fixture.do("GET", "/api/orders?status=PickedUp", &domain.User{ID: 3, Role: domain.RoleDelivery}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.OK)
	})

	t.Run("owner gets every order of every owned restaurant", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		fixture.restaurants.On("ListOwnedRestaurants", 9).Return([]domain.Restaurant{
			{ID: 1, OwnerID: 9},
			{ID: 2, OwnerID: 9},
		}, nil).Once()
		fixture.orders.On("ListByRestaurant", 1).Return([]domain.Order{{ID: 1}, {ID: 2}}, nil).Once()
		fixture.orders.On("ListByRestaurant", 2).Return([]domain.Order{{ID: 3}, {ID: 4}, {ID: 5}}, nil).Once()

		w, env := fixture.do("GET", "/api/orders", &domain.User{ID: 9, Role: domain.RoleOwner}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.OK)

		var orders []domain.Order
		assert.NoError(t, json.Unmarshal(env.Data, &orders))
		assert.Len(t, orders, 5)
	})

	t.Run("store failure", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		fixture.orders.On("ListByCustomer", 5, domain.OrderStatus("")).Return(nil, assert.AnError).Once()

		w, env := fixture.do("GET", "/api/orders", &domain.User{ID: 5, Role: domain.RoleClient}, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Could not load orders", env.Error)
	})
}

func TestGetOrderHandler_Forbidden(t *testing.T) {
	fixture := newHandlerFixture(t)
	fixture.orders.On("GetOrder", 7).Return(&domain.Order{ID: 7, CustomerID: 5, RestaurantID: 1}, nil).Once()
	fixture.restaurants.On("GetRestaurant", 1).Return(&domain.Restaurant{ID: 1, OwnerID: 9}, nil).Once()

	w, env := fixture.do("GET", "/api/orders/7", &domain.User{ID: 8, Role: domain.RoleClient}, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, env.OK)
}

func TestEditRestaurantHandler_NotOwner(t *testing.T) {
	fixture := newHandlerFixture(t)
	fixture.restaurants.On("GetRestaurant", 1).Return(&domain.Restaurant{ID: 1, OwnerID: 9}, nil).Once()

	w, env := fixture.do("PUT", "/api/restaurants/1", &domain.User{ID: 8, Role: domain.RoleOwner}, `{"name":"Taken Over"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You are not the owner", env.Error)
}

func TestTakeOrderHandler(t *testing.T) {
	t.Run("driver takes an order", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		fixture.orders.On("GetOrder", 7).Return(&domain.Order{ID: 7, CustomerID: 5, RestaurantID: 1}, nil).Once()
		fixture.orders.On("AssignDriver", 7, 3).Return(nil).Once()

		w, env := fixture.do("PUT", "/api/orders/7/take", &domain.User{ID: 3, Role: domain.RoleDelivery}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.OK)
	})

	t.Run("clients cannot take orders", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		w, env := fixture.do("PUT", "/api/orders/7/take", &domain.User{ID: 5, Role: domain.RoleClient}, "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, env.OK)
	})
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	fixture := newHandlerFixture(t)
	fixture.orders.On("GetOrder", 7).Return(&domain.Order{ID: 7, CustomerID: 5, RestaurantID: 1}, nil).Once()
	fixture.restaurants.On("GetRestaurant", 1).Return(&domain.Restaurant{ID: 1, OwnerID: 9}, nil).Once()
	fixture.orders.On("UpdateOrderStatus", 7, domain.StatusCooking).Return(nil).Once()

	w, env := fixture.do("PUT", "/api/orders/7/status", &domain.User{ID: 9, Role: domain.RoleOwner}, `{"status":"Cooking"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.OK)

	var order domain.Order
	assert.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, domain.StatusCooking, order.Status)
}

func TestHealthCheckHandler(t *testing.T) {
	fixture := newHandlerFixture(t)
	w, _ := fixture.do("GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
