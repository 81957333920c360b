package models

import (
	"sort"
	"strings"
)

// CartLineItem is one product-variant entry in a cart.
//
// Identity is (ProductID, Variant); at most one line item exists per
// identity within a cart. LocalID is only set for guest items and stays
// stable until the item is merged or removed. Display is an advisory
// cache of catalog data and is never consulted for merge correctness.
type CartLineItem struct {
	LocalID   string            `json:"local_id,omitempty"`
	ProductID string            `json:"product_id"`
	Variant   map[string]string `json:"variant,omitempty"`
	Quantity  int               `json:"quantity"`
	Display   *ProductInfo      `json:"display,omitempty"`
}

// IdentityKey returns the canonical dedup key for the item:
// the product ID followed by the variant attributes in sorted order.
func (i CartLineItem) IdentityKey() string {
	return IdentityKey(i.ProductID, i.Variant)
}

// IdentityKey builds the canonical key for a (productID, variant) pair,
// e.g. "p1|color=red|size=M".
func IdentityKey(productID string, variant map[string]string) string {
	if len(variant) == 0 {
		return productID
	}
	keys := make([]string, 0, len(variant))
	for k := range variant {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(productID)
	for _, k := range keys {
		b.WriteString("|")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(variant[k])
	}
	return b.String()
}

// SameIdentity reports whether two items refer to the same product-variant.
func (i CartLineItem) SameIdentity(other CartLineItem) bool {
	return i.IdentityKey() == other.IdentityKey()
}
