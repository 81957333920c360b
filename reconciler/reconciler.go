package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/DevNutsPk/demoEcommerce/gateway"
	"github.com/DevNutsPk/demoEcommerce/models"
	"github.com/google/uuid"
)

// ErrInvalidInput is returned for empty product IDs or non-positive
// quantities on AddItem.
var ErrInvalidInput = errors.New("invalid cart input")

// AddItem adds quantity of (productID, variant) to the active cart.
// Adding an identity that is already present sums quantities; two adds
// never create two line items. In guest mode the loaded snapshot is
// mutated and saved in one locked cycle; in authenticated mode the
// server's add-or-increment enforces dedup.
func (s *Session) AddItem(ctx context.Context, productID string, variant map[string]string, quantity int) error {
	if productID == "" || quantity <= 0 {
		return ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == models.ModeAuthenticated {
		if _, err := s.remote.AddOrIncrement(ctx, s.userID, productID, variant, quantity); err != nil {
			return fmt.Errorf("failed to add item to server cart: %w", err)
		}
		return nil
	}

	items := s.local.Load(ctx)
	key := models.IdentityKey(productID, variant)
	if idx := indexByIdentity(items, key); idx >= 0 {
		items[idx].Quantity += quantity
	} else {
		item := models.CartLineItem{
			LocalID:   uuid.NewString(),
			ProductID: productID,
			Variant:   variant,
			Quantity:  quantity,
		}
		// Display cache only; a catalog outage never blocks the add.
		if s.catalog != nil {
			if info, err := s.catalog.FetchProduct(ctx, productID); err == nil {
				item.Display = &info
			}
		}
		items = append(items, item)
	}
	s.saveGuest(ctx, items)
	return nil
}

// UpdateQuantity sets the quantity of the item with itemKey exactly
// (not additive). A quantity of zero or below removes the item. An
// absent key is a no-op.
func (s *Session) UpdateQuantity(ctx context.Context, itemKey string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == models.ModeAuthenticated {
		var err error
		if quantity <= 0 {
			err = s.remote.RemoveItem(ctx, itemKey)
		} else {
			_, err = s.remote.UpdateQuantity(ctx, itemKey, quantity)
		}
		if errors.Is(err, gateway.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to update server cart item: %w", err)
		}
		return nil
	}

	items := s.local.Load(ctx)
	idx := indexByKey(items, itemKey)
	if idx < 0 {
		return nil
	}
	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}
	s.saveGuest(ctx, items)
	return nil
}

// RemoveItem removes the item with itemKey; removing an absent key is a
// no-op, not an error.
func (s *Session) RemoveItem(ctx context.Context, itemKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == models.ModeAuthenticated {
		if err := s.remote.RemoveItem(ctx, itemKey); err != nil && !errors.Is(err, gateway.ErrNotFound) {
			return fmt.Errorf("failed to remove server cart item: %w", err)
		}
		return nil
	}

	items := s.local.Load(ctx)
	idx := indexByKey(items, itemKey)
	if idx < 0 {
		return nil
	}
	items = append(items[:idx], items[idx+1:]...)
	s.saveGuest(ctx, items)
	return nil
}

// ClearCart empties the active mode's backing store. Mode is unchanged.
func (s *Session) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == models.ModeAuthenticated {
		if err := s.remote.ResetCart(ctx, s.userID); err != nil {
			return fmt.Errorf("failed to reset server cart: %w", err)
		}
		return nil
	}

	if err := s.local.Clear(ctx); err != nil {
		log.Printf("⚠️ Failed to clear guest cart for %s: %v", s.deviceID, err)
	}
	return nil
}

// View builds the unified display projection for the current mode.
// Guest items are enriched through the catalog, degrading to the cached
// display fields and finally to a placeholder; the guest view never
// fails. The authenticated view reads the server cart, which is the
// source of truth for price and stock.
func (s *Session) View(ctx context.Context) (models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := models.CartView{
		Mode:       s.mode,
		SyncStatus: s.syncStatus,
		Items:      []models.DisplayItem{},
	}

	if s.mode == models.ModeAuthenticated {
		remoteItems, err := s.remote.FetchCart(ctx, s.userID)
		if err != nil {
			return view, fmt.Errorf("failed to fetch server cart: %w", err)
		}
		for _, it := range remoteItems {
			view.Items = append(view.Items, models.DisplayItem{
				ItemKey:       it.ID,
				ProductID:     it.ProductID,
				Variant:       it.Variant,
				Quantity:      it.Quantity,
				Title:         it.Product.Title,
				Brand:         it.Product.Brand,
				Category:      it.Product.Category,
				Price:         it.Product.Price,
				Thumbnail:     it.Product.Thumbnail,
				StockQuantity: it.Product.StockQuantity,
			})
		}
		view.Totals()
		return view, nil
	}

	for _, it := range s.local.Load(ctx) {
		view.Items = append(view.Items, s.displayGuestItem(ctx, it))
	}
	view.Totals()
	return view, nil
}

func (s *Session) displayGuestItem(ctx context.Context, it models.CartLineItem) models.DisplayItem {
	info := it.Display
	if s.catalog != nil {
		if fresh, err := s.catalog.FetchProduct(ctx, it.ProductID); err == nil {
			info = &fresh
		}
	}
	if info == nil {
		info = models.PlaceholderProduct()
	}
	return models.DisplayItem{
		ItemKey:       it.LocalID,
		ProductID:     it.ProductID,
		Variant:       it.Variant,
		Quantity:      it.Quantity,
		Title:         info.Title,
		Brand:         info.Brand,
		Category:      info.Category,
		Price:         info.Price,
		Thumbnail:     info.Thumbnail,
		StockQuantity: info.StockQuantity,
	}
}

// saveGuest persists the full item sequence. A write failure is a
// non-fatal warning; the response reflects the in-memory mutation and a
// later save overwrites the record in full anyway.
func (s *Session) saveGuest(ctx context.Context, items []models.CartLineItem) {
	if err := s.local.Save(ctx, items); err != nil {
		log.Printf("⚠️ Failed to persist guest cart for %s: %v", s.deviceID, err)
	}
}

func indexByIdentity(items []models.CartLineItem, identityKey string) int {
	for i, it := range items {
		if it.IdentityKey() == identityKey {
			return i
		}
	}
	return -1
}

// indexByKey matches a guest item by its LocalID, falling back to the
// identity key so callers may address items by product-variant too.
func indexByKey(items []models.CartLineItem, itemKey string) int {
	for i, it := range items {
		if it.LocalID == itemKey {
			return i
		}
	}
	return indexByIdentity(items, itemKey)
}
