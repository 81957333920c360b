package models

// Mode tells which backing store the session's cart lives in.
type Mode string

const (
	ModeGuest         Mode = "guest"
	ModeAuthenticated Mode = "authenticated"
)

// SyncStatus describes the outcome of the last guest-to-server merge.
type SyncStatus string

const (
	SyncIdle          SyncStatus = "idle"
	SyncInProgress    SyncStatus = "syncing"
	SyncSucceeded     SyncStatus = "succeeded"
	SyncFailedPartial SyncStatus = "failed_partial"
)

// DisplayItem is the normalized display projection of a line item,
// identical for guest and authenticated carts so the view layer never
// branches on mode.
type DisplayItem struct {
	ItemKey       string            `json:"item_key"`
	ProductID     string            `json:"product_id"`
	Variant       map[string]string `json:"variant,omitempty"`
	Quantity      int               `json:"quantity"`
	Title         string            `json:"title"`
	Brand         string            `json:"brand"`
	Category      string            `json:"category"`
	Price         float64           `json:"price"`
	Thumbnail     string            `json:"thumbnail"`
	StockQuantity int               `json:"stock_quantity"`
}

// CartView is the unified read model handed to the UI.
type CartView struct {
	Mode       Mode          `json:"mode"`
	SyncStatus SyncStatus    `json:"sync_status"`
	Items      []DisplayItem `json:"items"`
	Subtotal   float64       `json:"subtotal"`
	TotalItems int           `json:"total_items"`
}

// Totals fills Subtotal and TotalItems from the current items.
func (v *CartView) Totals() {
	v.Subtotal = 0
	v.TotalItems = 0
	for _, it := range v.Items {
		v.Subtotal += it.Price * float64(it.Quantity)
		v.TotalItems += it.Quantity
	}
}

// MergeFailure records one line item the merge could not push upstream,
// together with the error that caused it.
type MergeFailure struct {
	Item CartLineItem `json:"item"`
	Err  string       `json:"error"`
}

// MergeResult is the aggregate outcome of one merge run.
type MergeResult struct {
	Status SyncStatus     `json:"status"`
	Synced []CartLineItem `json:"synced"`
	Failed []MergeFailure `json:"failed"`
}
