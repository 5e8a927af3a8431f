package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	Phone        string         `json:"phone"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"default:'Waiter'"` // Admin, Manager, Cashier, Waiter, Kitchen
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type UserRole string

const (
	RoleAdmin   UserRole = "Admin"
	RoleManager UserRole = "Manager"
	RoleCashier UserRole = "Cashier"
	RoleWaiter  UserRole = "Waiter"
	RoleKitchen UserRole = "Kitchen"
)

// RefID is the identifier form used when matching a user against an order's
// creator reference.
func (u User) RefID() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}

// UserRef is a reference to the user that created a record. The backend is
// inconsistent about the shape: sometimes a raw identifier, sometimes a
// populated object carrying the identifier and name. Both decode into the
// same value, and only the identifier is persisted.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Name = ""
		return nil
	}

	// Identifiers also arrive as bare numbers.
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		r.ID = num.String()
		r.Name = ""
		return nil
	}

	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Name    string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid user reference: %w", err)
	}
	r.ID = obj.MongoID
	if r.ID == "" {
		r.ID = obj.ID
	}
	r.Name = obj.Name
	return nil
}

func (r UserRef) Value() (driver.Value, error) {
	return r.ID, nil
}

func (r *UserRef) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		r.ID = ""
	case string:
		r.ID = v
	case []byte:
		r.ID = string(v)
	default:
		return fmt.Errorf("cannot scan %T into UserRef", value)
	}
	r.Name = ""
	return nil
}
