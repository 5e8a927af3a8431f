package models

import (
	"time"

	"gorm.io/gorm"
)

type Table struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Number    int            `json:"number" gorm:"unique;not null"`
	Seats     int            `json:"seats" gorm:"not null"`
	Status    string         `json:"status" gorm:"default:'Available'"` // Available, Booked
	OrderID   *uint          `json:"order_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"unique;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type Dish struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"not null"`
	CategoryID uint           `json:"category_id" gorm:"not null"`
	Price      Amount         `json:"price" gorm:"not null"`
	Image      string         `json:"image"`
	Available  bool           `json:"available" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
