package repository

import (
	"context"

	"donerci/internal/models"

	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id uint) (*models.MenuItem, error)
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	GetByRestaurant(ctx context.Context, restaurantID uint) ([]models.MenuItem, error)
	// FindForOrder loads the given items with their restaurant inside tx.
	FindForOrder(tx *gorm.DB, ids []uint) (map[uint]models.MenuItem, error)
	Count(ctx context.Context) (int64, error)
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Preload("Restaurant").First(&item, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *menuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *menuRepository) GetByRestaurant(ctx context.Context, restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *menuRepository) FindForOrder(tx *gorm.DB, ids []uint) (map[uint]models.MenuItem, error) {
	var items []models.MenuItem
	if err := tx.Preload("Restaurant").Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]models.MenuItem, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *menuRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.MenuItem{}).Count(&n).Error
	return n, err
}
