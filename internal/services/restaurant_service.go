package services

import (
	"context"
	"fmt"
	"strings"

	"donerci/internal/apperr"
	"donerci/internal/models"
	"donerci/internal/repository"

	"go.uber.org/zap"
)

type RestaurantInput struct {
	Name    string  `json:"name"`
	Cuisine string  `json:"cuisine"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
}

type RestaurantService interface {
	List(ctx context.Context) ([]models.Restaurant, error)
	// Get returns the restaurant with its menu.
	Get(ctx context.Context, id uint) (*models.Restaurant, error)
	Create(ctx context.Context, in *RestaurantInput, actor string) (*models.Restaurant, error)
	Delete(ctx context.Context, id uint, actor string) error
}

type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
	activities     ActivityService
	logger         *zap.Logger
}

func NewRestaurantService(restaurantRepo repository.RestaurantRepository, activities ActivityService, logger *zap.Logger) RestaurantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &restaurantService{restaurantRepo: restaurantRepo, activities: activities, logger: logger}
}

func (s *restaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	restaurants, err := s.restaurantRepo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Persistence("list restaurants", err)
	}
	return restaurants, nil
}

func (s *restaurantService) Get(ctx context.Context, id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		return nil, apperr.Persistence("get restaurant", err)
	}
	return restaurant, nil
}

func (s *restaurantService) Create(ctx context.Context, in *RestaurantInput, actor string) (*models.Restaurant, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Cuisine) == "" {
		missing = append(missing, "cuisine")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation(missing...)
	}
	if in.Rating < 0 || in.Rating > 5 {
		return nil, apperr.Validationf("rating", "rating must be between 0 and 5")
	}

	restaurant := &models.Restaurant{
		Name:    strings.TrimSpace(in.Name),
		Cuisine: strings.TrimSpace(in.Cuisine),
		Address: strings.TrimSpace(in.Address),
		Rating:  in.Rating,
	}
	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, apperr.Persistence("create restaurant", err)
	}

	if _, err := s.activities.Record(ctx, models.ActivityCreate, actor, fmt.Sprintf("Added new restaurant: %s", restaurant.Name)); err != nil {
		s.logger.Error("restaurant created but activity not recorded", zap.Uint("restaurant_id", restaurant.ID), zap.Error(err))
	}
	return restaurant, nil
}

func (s *restaurantService) Delete(ctx context.Context, id uint, actor string) error {
	if err := s.restaurantRepo.Delete(ctx, id); err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		return apperr.Persistence("delete restaurant", err)
	}

	if _, err := s.activities.Record(ctx, models.ActivityDelete, actor, fmt.Sprintf("Deleted restaurant with ID: %d", id)); err != nil {
		s.logger.Error("restaurant deleted but activity not recorded", zap.Uint("restaurant_id", id), zap.Error(err))
	}
	return nil
}
