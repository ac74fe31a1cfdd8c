package services

import (
	"context"
	"fmt"
	"strings"

	"donerci/internal/apperr"
	"donerci/internal/models"
	"donerci/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type MenuItemInput struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	ImageURL     string           `json:"image_url"`
	RestaurantID *uint            `json:"restaurant_id"`
}

func (in *MenuItemInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return apperr.Validation(missing...)
	}
	if in.Price.IsNegative() {
		return apperr.Validationf("price", "price must not be negative")
	}
	if !in.Price.Equal(in.Price.Round(2)) {
		return apperr.Validationf("price", "price must have at most two decimal places")
	}
	return nil
}

type CatalogService interface {
	ListMenu(ctx context.Context) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, in *MenuItemInput, actor string) (*models.MenuItem, error)
}

type catalogService struct {
	menuRepo       repository.MenuRepository
	restaurantRepo repository.RestaurantRepository
	activities     ActivityService
	logger         *zap.Logger
}

func NewCatalogService(menuRepo repository.MenuRepository, restaurantRepo repository.RestaurantRepository, activities ActivityService, logger *zap.Logger) CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &catalogService{menuRepo: menuRepo, restaurantRepo: restaurantRepo, activities: activities, logger: logger}
}

func (s *catalogService) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.menuRepo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Persistence("list menu", err)
	}
	return items, nil
}

func (s *catalogService) CreateMenuItem(ctx context.Context, in *MenuItemInput, actor string) (*models.MenuItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.RestaurantID != nil {
		if _, err := s.restaurantRepo.GetByID(ctx, *in.RestaurantID); err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.Validationf("restaurant_id", "restaurant %d does not exist", *in.RestaurantID)
			}
			return nil, apperr.Persistence("get restaurant", err)
		}
	}

	item := &models.MenuItem{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        *in.Price,
		ImageURL:     in.ImageURL,
		RestaurantID: in.RestaurantID,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, apperr.Persistence("create menu item", err)
	}

	if _, err := s.activities.Record(ctx, models.ActivityCreate, actor, fmt.Sprintf("Added new menu item: %s", item.Name)); err != nil {
		s.logger.Error("menu item created but activity not recorded", zap.Uint("menu_item_id", item.ID), zap.Error(err))
	}
	return item, nil
}
