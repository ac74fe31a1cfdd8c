package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the header of a placed order. Its lines are created in the same
// transaction and never change afterwards.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderNumber     string          `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerName    string          `json:"customer_name" gorm:"not null"`
	ContactEmail    string          `json:"contact_email"`
	ContactPhone    string          `json:"contact_phone"`
	DeliveryAddress string          `json:"delivery_address"`
	RestaurantID    *uint           `json:"restaurant_id"`
	RestaurantName  string          `json:"restaurant_name"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(10,2);not null"`
	Total           decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	Status          string          `json:"status" gorm:"default:'pending';index"` // pending, completed, cancelled
	Source          string          `json:"source" gorm:"default:'api'"`           // checkout, api
	Items           []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type OrderSource string

const (
	SourceCheckout OrderSource = "checkout"
	SourceAPI      OrderSource = "api"
)
