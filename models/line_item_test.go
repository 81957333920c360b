package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityKeyIsStableAcrossAttributeOrder(t *testing.T) {
	t.Parallel()

	a := CartLineItem{ProductID: "p1", Variant: map[string]string{"size": "M", "color": "red"}}
	b := CartLineItem{ProductID: "p1", Variant: map[string]string{"color": "red", "size": "M"}}

	assert.Equal(t, "p1|color=red|size=M", a.IdentityKey())
	assert.True(t, a.SameIdentity(b))
}

func TestIdentityKeyDistinguishesVariants(t *testing.T) {
	t.Parallel()

	m := CartLineItem{ProductID: "p1", Variant: map[string]string{"size": "M"}}
	l := CartLineItem{ProductID: "p1", Variant: map[string]string{"size": "L"}}
	bare := CartLineItem{ProductID: "p1"}

	assert.False(t, m.SameIdentity(l))
	assert.False(t, m.SameIdentity(bare))
	assert.Equal(t, "p1", bare.IdentityKey())
}

func TestCartViewTotals(t *testing.T) {
	t.Parallel()

	view := CartView{Items: []DisplayItem{
		{Price: 10, Quantity: 2},
		{Price: 2.5, Quantity: 4},
	}}
	view.Totals()

	assert.Equal(t, 30.0, view.Subtotal)
	assert.Equal(t, 6, view.TotalItems)

	empty := CartView{}
	empty.Totals()
	assert.Equal(t, 0.0, empty.Subtotal)
	assert.Equal(t, 0, empty.TotalItems)
}

func TestPlaceholderProductDegradesGracefully(t *testing.T) {
	t.Parallel()

	p := PlaceholderProduct()
	assert.Equal(t, "Product", p.Title)
	assert.Equal(t, "Unknown", p.Brand)
	assert.Equal(t, "Unknown", p.Category)
	assert.Zero(t, p.Price)
	assert.Zero(t, p.StockQuantity)
}
