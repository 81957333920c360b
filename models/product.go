package models

// ProductInfo holds display attributes for a product as served by the
// catalog service. Used to decorate guest line items for display only.
type ProductInfo struct {
	Title         string  `json:"title"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	Thumbnail     string  `json:"thumbnail"`
	StockQuantity int     `json:"stock_quantity"`
}

// PlaceholderProduct is the degraded record used when enrichment fails:
// zeroed price, "Unknown" labels. The cart view must never block on a
// catalog outage.
func PlaceholderProduct() *ProductInfo {
	return &ProductInfo{
		Title:    "Product",
		Brand:    "Unknown",
		Category: "Unknown",
	}
}

// RemoteLineItem is a line item as the server cart service returns it.
// The server's product record is authoritative for price and stock.
type RemoteLineItem struct {
	ID        string            `json:"id"`
	ProductID string            `json:"product_id"`
	Variant   map[string]string `json:"variant,omitempty"`
	Quantity  int               `json:"quantity"`
	Product   ProductInfo       `json:"product"`
}
