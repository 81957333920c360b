package models

import "time"

// SyncEvent is emitted while a merge runs so clients can follow the
// progress of their cart sync in real time.
type SyncEvent struct {
	DeviceID  string     `json:"device_id"`
	UserID    string     `json:"user_id,omitempty"`
	ProductID string     `json:"product_id,omitempty"`
	Status    string     `json:"status"` // started | item_synced | item_failed | completed
	Error     string     `json:"error,omitempty"`
	SyncState SyncStatus `json:"sync_state,omitempty"`
	At        time.Time  `json:"at"`
}
