package models

import "time"

// GuestDevice tracks an issued guest device identity and its expiry.
type GuestDevice struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
