package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Phone       string         `json:"phone" gorm:"unique;not null"`
	TotalOrders int            `json:"total_orders" gorm:"default:0"`
	TotalSpent  Amount         `json:"total_spent" gorm:"default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// CustomerTier is derived from stored facts on every read, never persisted.
type CustomerTier string

const (
	TierVIP     CustomerTier = "VIP"
	TierNew     CustomerTier = "New"
	TierRegular CustomerTier = "Regular"
)
