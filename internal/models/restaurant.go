package models

import (
	"time"
)

type Restaurant struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"not null"`
	Cuisine   string     `json:"cuisine" gorm:"not null"`
	Address   string     `json:"address" gorm:"not null"`
	Rating    float64    `json:"rating" gorm:"default:0"`
	MenuItems []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt time.Time  `json:"created_at"`
}
