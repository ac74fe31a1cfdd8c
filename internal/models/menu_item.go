package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	RestaurantID *uint           `json:"restaurant_id,omitempty" gorm:"index"`
	Restaurant   *Restaurant     `json:"-" gorm:"foreignKey:RestaurantID"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL     string          `json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
}
