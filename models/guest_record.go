package models

import "time"

// GuestCartRecord is the on-device durable record for a guest cart:
// one row per storage key, payload holding the full JSON-serialized
// ordered sequence of line items. Every mutation overwrites the payload
// in full; last write wins.
type GuestCartRecord struct {
	StorageKey string `gorm:"primaryKey"`
	Payload    string
	UpdatedAt  time.Time
}
