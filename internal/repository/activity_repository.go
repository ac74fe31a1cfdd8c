package repository

import (
	"context"

	"donerci/internal/models"

	"gorm.io/gorm"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	// Recent returns up to limit entries, newest first. A limit above 200 is
	// clamped to 200.
	Recent(ctx context.Context, limit int) ([]models.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	var out []models.Activity
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&out).Error
	return out, err
}
