package models

import "time"

// LoginHistory records one session. Name, email and role are snapshots taken
// at login time so the row stays meaningful after the user record changes.
type LoginHistory struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	LoginAt     time.Time  `json:"login_at" gorm:"autoCreateTime"`
	LogoutAt    *time.Time `json:"logout_at"`
	IPAddress   string     `json:"ip_address"`
	UserAgent   string     `json:"user_agent"`
	DeviceLabel string     `json:"device_label"`
	Status      string     `json:"status" gorm:"default:'Active'"` // Active, Logged Out, Expired
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type SessionStatus string

const (
	SessionActive    SessionStatus = "Active"
	SessionLoggedOut SessionStatus = "Logged Out"
	SessionExpired   SessionStatus = "Expired"
)
