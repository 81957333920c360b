package localstore

import (
	"context"
	"encoding/json"
	"log"

	"github.com/DevNutsPk/demoEcommerce/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the device-scoped guest cart record. It is a dumb key/value
// boundary: no dedup, no quantity arithmetic — all mutation composition
// belongs to the reconciler.
type Store interface {
	// Load returns the persisted ordered line items. It fails soft: an
	// absent, unreadable or corrupt record yields an empty sequence.
	Load(ctx context.Context) []models.CartLineItem

	// Save overwrites the record with the full serialized sequence.
	Save(ctx context.Context, items []models.CartLineItem) error

	// Clear removes the record. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

type gormStore struct {
	db  *gorm.DB
	key string
}

// New returns a Store persisting under the given storage key.
func New(db *gorm.DB, storageKey string) Store {
	return &gormStore{db: db, key: storageKey}
}

func (s *gormStore) Load(ctx context.Context) []models.CartLineItem {
	var rec models.GuestCartRecord
	if err := s.db.WithContext(ctx).First(&rec, "storage_key = ?", s.key).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("⚠️ Failed to read guest cart record %s, treating as empty: %v", s.key, err)
		}
		return []models.CartLineItem{}
	}

	var items []models.CartLineItem
	if err := json.Unmarshal([]byte(rec.Payload), &items); err != nil {
		log.Printf("⚠️ Corrupt guest cart record %s, treating as empty: %v", s.key, err)
		return []models.CartLineItem{}
	}
	if items == nil {
		items = []models.CartLineItem{}
	}
	return items
}

func (s *gormStore) Save(ctx context.Context, items []models.CartLineItem) error {
	if items == nil {
		items = []models.CartLineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}

	rec := models.GuestCartRecord{StorageKey: s.key, Payload: string(payload)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&rec).Error
}

func (s *gormStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Delete(&models.GuestCartRecord{}, "storage_key = ?", s.key).Error
}
