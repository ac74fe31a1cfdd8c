package repository

import (
	"donerci/internal/models"

	"gorm.io/gorm"
)

type OrderItemRepository interface {
	// Create inserts one order line inside tx.
	Create(tx *gorm.DB, orderItem *models.OrderItem) error
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) Create(tx *gorm.DB, orderItem *models.OrderItem) error {
	return tx.Create(orderItem).Error
}
