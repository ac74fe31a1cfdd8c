package services

import (
	"context"

	"donerci/internal/apperr"
	"donerci/internal/models"
	"donerci/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardStats are the headline numbers of the admin dashboard.
type DashboardStats struct {
	TotalUsers       int64           `json:"total_users"`
	TotalRestaurants int64           `json:"total_restaurants"`
	TotalMenuItems   int64           `json:"total_menu_items"`
	TotalOrders      int64           `json:"total_orders"`
	PendingOrders    int64           `json:"pending_orders"`
	Revenue          decimal.Decimal `json:"revenue"`
}

type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	menuRepo       repository.MenuRepository
	orderRepo      repository.OrderRepository
}

func NewStatsService(
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
	menuRepo repository.MenuRepository,
	orderRepo repository.OrderRepository,
) StatsService {
	return &statsService{userRepo: userRepo, restaurantRepo: restaurantRepo, menuRepo: menuRepo, orderRepo: orderRepo}
}

func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var (
		stats DashboardStats
		err   error
	)
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, apperr.Persistence("count users", err)
	}
	if stats.TotalRestaurants, err = s.restaurantRepo.Count(ctx); err != nil {
		return nil, apperr.Persistence("count restaurants", err)
	}
	if stats.TotalMenuItems, err = s.menuRepo.Count(ctx); err != nil {
		return nil, apperr.Persistence("count menu items", err)
	}
	if stats.TotalOrders, err = s.orderRepo.Count(ctx, ""); err != nil {
		return nil, apperr.Persistence("count orders", err)
	}
	if stats.PendingOrders, err = s.orderRepo.Count(ctx, string(models.OrderPending)); err != nil {
		return nil, apperr.Persistence("count pending orders", err)
	}
	// Only completed orders count as revenue.
	if stats.Revenue, err = s.orderRepo.Revenue(ctx, models.OrderCompleted); err != nil {
		return nil, apperr.Persistence("sum revenue", err)
	}
	return &stats, nil
}
