package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"donerci/internal/cart"
	"donerci/internal/database"
	"donerci/internal/models"
	"donerci/internal/pricing"
	"donerci/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu        sync.Mutex
	published []models.Activity
	err       error
}

func (p *recordingPublisher) PublishActivity(_ context.Context, a *models.Activity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, *a)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.published))
	for _, a := range p.published {
		out = append(out, a.Type)
	}
	return out
}

type testEnv struct {
	db          *gorm.DB
	logs        *observer.ObservedLogs
	publisher   *recordingPublisher
	store       *cart.MemoryStore
	menuRepo    repository.MenuRepository
	orderRepo   repository.OrderRepository
	itemRepo    repository.OrderItemRepository
	restaurants repository.RestaurantRepository
	activities  ActivityService
	orders      OrderService
	carts       CartService
	catalog     CatalogService
	users       UserService
	restaurant  RestaurantService
	stats       StatsService
	calc        pricing.Calculator
	logger      *zap.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Initialize(database.DriverSQLite, dsn, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	env := &testEnv{
		db:          db,
		logs:        logs,
		publisher:   &recordingPublisher{},
		store:       cart.NewMemoryStore(),
		menuRepo:    repository.NewMenuRepository(db),
		orderRepo:   repository.NewOrderRepository(db),
		itemRepo:    repository.NewOrderItemRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		calc:        pricing.NewCalculator(pricing.DefaultDeliveryFee),
		logger:      logger,
	}
	env.activities = NewActivityService(repository.NewActivityRepository(db), env.publisher, logger)
	env.orders = NewOrderService(db, env.orderRepo, env.itemRepo, env.menuRepo, env.activities, env.calc, logger)
	env.carts = NewCartService(env.store, env.menuRepo, env.orders, env.calc, logger)
	env.catalog = NewCatalogService(env.menuRepo, env.restaurants, env.activities, logger)
	env.users = NewUserService(repository.NewUserRepository(db), env.activities, logger)
	env.restaurant = NewRestaurantService(env.restaurants, env.activities, logger)
	env.stats = NewStatsService(repository.NewUserRepository(db), env.restaurants, env.menuRepo, env.orderRepo)
	return env
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (e *testEnv) restaurantNamed(t *testing.T, name string) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{Name: name, Cuisine: "Turkish", Address: "Istiklal Cd. 1"}
	require.NoError(t, e.restaurants.Create(context.Background(), r))
	return r
}

func (e *testEnv) menuItem(t *testing.T, name, price string, restaurant *models.Restaurant) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{Name: name, Price: money(price), ImageURL: "/img/" + strings.ToLower(name) + ".jpg"}
	if restaurant != nil {
		item.RestaurantID = &restaurant.ID
	}
	require.NoError(t, e.menuRepo.Create(context.Background(), item))
	return item
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}
