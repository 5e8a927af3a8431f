package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Order struct {
	ID            uint                          `json:"id" gorm:"primaryKey"`
	OrderNumber   string                        `json:"order_number" gorm:"unique;not null"`
	CustomerName  string                        `json:"customer_name" gorm:"not null"`
	CustomerPhone string                        `json:"customer_phone"`
	TableID       *uint                         `json:"table_id"`
	Items         datatypes.JSONSlice[OrderLine] `json:"items"`
	Status        string                        `json:"status" gorm:"default:'In Progress'"` // In Progress, Preparing, Ready, Paid
	PaymentMethod string                        `json:"payment_method"`                      // Cash, Online
	Bills         Bills                         `json:"bills" gorm:"embedded;embeddedPrefix:bill_"`
	CreatedBy     UserRef                       `json:"created_by" gorm:"type:text"`
	CreatedAt     time.Time                     `json:"created_at"`
	UpdatedAt     time.Time                     `json:"updated_at"`
	DeletedAt     gorm.DeletedAt                `json:"deleted_at" gorm:"index"`
}

type OrderLine struct {
	Name     string `json:"name"`
	Price    Amount `json:"price"`
	Quantity int    `json:"quantity"`
}

// Bills is the bill breakdown of an order. Total and TotalWithDiscount are
// pointers because the backend omits them on some orders and revenue
// aggregation depends on which one is present.
type Bills struct {
	Subtotal          Amount  `json:"subtotal"`
	Discount          Amount  `json:"discount"`
	Total             *Amount `json:"total"`
	TotalWithDiscount *Amount `json:"totalWithDiscount"`
}

type OrderStatus string

const (
	OrderInProgress OrderStatus = "In Progress"
	OrderPreparing  OrderStatus = "Preparing"
	OrderReady      OrderStatus = "Ready"
	OrderPaid       OrderStatus = "Paid"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentOnline PaymentMethod = "Online"
)
