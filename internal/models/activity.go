package models

import "time"

// Activity is an append-only audit record of a notable mutation.
type Activity struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Type      string    `json:"type" gorm:"not null;index"` // Order, Create, Update, Delete
	Actor     string    `json:"user" gorm:"not null"`
	Details   string    `json:"details" gorm:"type:text"`
	CreatedAt time.Time `json:"timestamp" gorm:"index"`
}

type ActivityType string

const (
	ActivityOrder  ActivityType = "Order"
	ActivityCreate ActivityType = "Create"
	ActivityUpdate ActivityType = "Update"
	ActivityDelete ActivityType = "Delete"
)
