package services

import (
	"context"
	"fmt"

	"donerci/internal/apperr"
	"donerci/internal/repository"
)

var defaultRecommendations = []string{
	"Try our signature doner wraps with homemade sauces.",
	"Based on your preferences, you might enjoy our vegetarian options.",
	"Our chef's special today pairs perfectly with your previous orders.",
}

type Recommendations struct {
	Title           string   `json:"title"`
	Recommendations []string `json:"recommendations"`
}

// RecommendationService returns fixed suggestion text. There is no
// personalisation behind it.
type RecommendationService interface {
	Recommend(ctx context.Context, restaurantID *uint) (*Recommendations, error)
}

type recommendationService struct {
	restaurantRepo repository.RestaurantRepository
}

func NewRecommendationService(restaurantRepo repository.RestaurantRepository) RecommendationService {
	return &recommendationService{restaurantRepo: restaurantRepo}
}

func (s *recommendationService) Recommend(ctx context.Context, restaurantID *uint) (*Recommendations, error) {
	out := &Recommendations{
		Title:           "Recommendations",
		Recommendations: append([]string(nil), defaultRecommendations...),
	}
	if restaurantID == nil {
		return out, nil
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, *restaurantID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		return nil, apperr.Persistence("get restaurant", err)
	}

	out.Title = fmt.Sprintf("Recommendations from %s", restaurant.Name)
	if len(restaurant.MenuItems) > 0 {
		out.Recommendations = append([]string{
			fmt.Sprintf("Guests at %s often start with the %s.", restaurant.Name, restaurant.MenuItems[0].Name),
		}, out.Recommendations...)
	}
	return out, nil
}
