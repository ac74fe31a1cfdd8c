package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"donerci/internal/cart"
	"donerci/internal/database"
	"donerci/internal/models"
	"donerci/internal/pricing"
	"donerci/internal/repository"
	"donerci/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	users  services.UserService
}

func setupServer(t *testing.T, healthErr error) *testServer {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Initialize(database.DriverSQLite, dsn, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	calc := pricing.NewCalculator(pricing.DefaultDeliveryFee)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	userRepo := repository.NewUserRepository(db)

	activities := services.NewActivityService(repository.NewActivityRepository(db), nil, nil)
	orders := services.NewOrderService(db, orderRepo, repository.NewOrderItemRepository(db), menuRepo, activities, calc, nil)
	users := services.NewUserService(userRepo, activities, nil)

	router := NewRouter(Services{
		Contacts:        services.NewContactService(repository.NewContactRepository(db)),
		Catalog:         services.NewCatalogService(menuRepo, restaurantRepo, activities, nil),
		Orders:          orders,
		Carts:           services.NewCartService(cart.NewMemoryStore(), menuRepo, orders, calc, nil),
		Restaurants:     services.NewRestaurantService(restaurantRepo, activities, nil),
		Users:           users,
		Activities:      activities,
		Stats:           services.NewStatsService(userRepo, restaurantRepo, menuRepo, orderRepo),
		Recommendations: services.NewRecommendationService(restaurantRepo),
	}, RouterOptions{
		AllowedOrigins:   []string{"*"},
		SessionCookieTTL: 3600,
		HealthCheck:      func(context.Context) error { return healthErr },
	})
	return &testServer{router: router, db: db, users: users}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) seedMenuItem(t *testing.T, name, price string) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{Name: name, Price: decimal.RequireFromString(price)}
	require.NoError(t, s.db.Create(item).Error)
	return item
}

func TestHealth(t *testing.T) {
	s := setupServer(t, nil)
	w := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	down := setupServer(t, errors.New("db gone"))
	w = down.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestContactEndpoint(t *testing.T) {
	s := setupServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/contact", gin.H{"name": "Ayse", "email": "ayse@example.com", "message": "Hello"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotZero(t, body["id"])
	assert.Equal(t, "Ayse", body["name"])

	w = s.do(t, http.MethodPost, "/api/contact", gin.H{"name": "Ayse"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "email")

	w = s.do(t, http.MethodPost, "/api/contact", "{not json", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuEndpoints(t *testing.T) {
	s := setupServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/menu", gin.H{"name": "Lahmacun", "description": "Thin and crispy", "price": 7.5, "image_url": "/img/l.jpg"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "7.5", created["price"])

	w = s.do(t, http.MethodPost, "/api/menu", gin.H{"description": "nameless"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/menu", gin.H{"name": "Baklava", "price": "1.999"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/menu", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Lahmacun", items[0]["name"])
}

func TestOrderEndpoint(t *testing.T) {
	s := setupServer(t, nil)
	pizza := s.seedMenuItem(t, "Pizza", "14.99")

	w := s.do(t, http.MethodPost, "/api/order", gin.H{
		"customer_name": "Ayse",
		"total":         32.97,
		"items":         []gin.H{{"menu_item_id": pizza.ID, "quantity": 2}},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, 1, body["orderId"])
	assert.Equal(t, "32.97", body["total"])

	w = s.do(t, http.MethodPost, "/api/order", gin.H{"items": []gin.H{}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "customer_name")

	w = s.do(t, http.MethodPost, "/api/order", gin.H{
		"customer_name": "Ayse",
		"items":         []gin.H{{"menu_item_id": 999, "quantity": 1}},
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var orders int64
	require.NoError(t, s.db.Model(&models.Order{}).Count(&orders).Error)
	assert.EqualValues(t, 1, orders)
}

func TestCartFlow(t *testing.T) {
	s := setupServer(t, nil)
	pizza := s.seedMenuItem(t, "Pizza", "14.99")

	w := s.do(t, http.MethodPost, "/api/cart/items", gin.H{"menu_item_id": pizza.ID}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sid := w.Header().Get(sessionHeader)
	require.NotEmpty(t, sid)
	session := map[string]string{sessionHeader: sid}

	w = s.do(t, http.MethodPost, "/api/cart/items", gin.H{"menu_item_id": pizza.ID}, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sid, w.Header().Get(sessionHeader))
	assert.EqualValues(t, 2, decode(t, w)["item_count"])

	w = s.do(t, http.MethodPatch, fmt.Sprintf("/api/cart/items/%d", pizza.ID), gin.H{"quantity": 0}, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["item_count"])

	w = s.do(t, http.MethodGet, "/api/cart", nil, session)
	require.Equal(t, http.StatusOK, w.Code)
	totals := decode(t, w)["totals"].(map[string]interface{})
	assert.Equal(t, "29.98", totals["subtotal"])
	assert.Equal(t, "32.97", totals["total"])

	w = s.do(t, http.MethodPost, "/api/cart/checkout", gin.H{"customer_name": "Ayse"}, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/cart/checkout", gin.H{
		"customer_name": "Ayse",
		"email":         "ayse@example.com",
		"phone":         "+90 555 000 0000",
		"address":       "Kadikoy",
	}, session)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "32.97", decode(t, w)["total"])

	w = s.do(t, http.MethodGet, "/api/cart", nil, session)
	assert.EqualValues(t, 0, decode(t, w)["item_count"])
}

func TestCartSessionFromCookie(t *testing.T) {
	s := setupServer(t, nil)
	pizza := s.seedMenuItem(t, "Pizza", "14.99")

	w := s.do(t, http.MethodPost, "/api/cart/items", gin.H{"menu_item_id": pizza.ID}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookie, cookies[0].Name)

	w = s.do(t, http.MethodGet, "/api/cart", nil, map[string]string{"Cookie": sessionCookie + "=" + cookies[0].Value})
	assert.EqualValues(t, 1, decode(t, w)["item_count"])

	w = s.do(t, http.MethodGet, "/api/cart", nil, map[string]string{sessionHeader: "../../etc"})
	assert.NotEqual(t, "../../etc", w.Header().Get(sessionHeader))
	assert.EqualValues(t, 0, decode(t, w)["item_count"])
}

func TestAdminUsers(t *testing.T) {
	s := setupServer(t, nil)
	admin, err := s.users.CreateUser(context.Background(), &services.UserInput{
		Name: "Root", Email: "root@donerci.com", Password: "supersecret", Role: "admin",
	}, "system")
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, "/api/admin/users", gin.H{"name": "Can", "email": "can@example.com", "password": "123456"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.NotContains(t, created, "password_hash")
	assert.Equal(t, "customer", created["role"])

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", admin.ID), nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%v", created["id"]), nil, map[string]string{actorHeader: "ops@donerci.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodDelete, "/api/admin/users/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/activities?limit=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var activities []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &activities))
	require.Len(t, activities, 1)
	assert.Equal(t, "Delete", activities[0]["type"])
	assert.Equal(t, "ops@donerci.com", activities[0]["user"])
}

func TestAdminOrders(t *testing.T) {
	s := setupServer(t, nil)
	pizza := s.seedMenuItem(t, "Pizza", "14.99")
	w := s.do(t, http.MethodPost, "/api/order", gin.H{
		"customer_name": "Ayse",
		"items":         []gin.H{{"menu_item_id": pizza.ID, "quantity": 1}},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/orders/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 1)

	w = s.do(t, http.MethodPatch, "/api/admin/orders/1/status", gin.H{"status": "completed"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decode(t, w)["status"])

	w = s.do(t, http.MethodPatch, "/api/admin/orders/1/status", gin.H{"status": "completed"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/orders/42", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/stats", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)
	assert.EqualValues(t, 1, stats["total_orders"])
	assert.Equal(t, "17.98", stats["revenue"])
}

func TestAdminRestaurantsAndPublicRead(t *testing.T) {
	s := setupServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/admin/restaurants", gin.H{"name": "Istanbul Grill", "cuisine": "Turkish", "address": "Istiklal Cd. 1", "rating": 4.8}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["id"]

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/restaurants/%v", id), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Istanbul Grill", decode(t, w)["name"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/recommendations?restaurant_id=%v", id), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recommendations from Istanbul Grill", decode(t, w)["title"])

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/restaurants/%v", id), nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/restaurants/%v", id), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := setupServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/menu", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
