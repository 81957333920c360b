package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DevNutsPk/demoEcommerce/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartClient(baseURL string) *cartServiceClient {
	return &cartServiceClient{
		baseURL: baseURL,
		apiKey:  "secret",
		client:  &http.Client{Timeout: 2 * time.Second},
	}
}

func TestAddOrIncrementSendsItemAndParsesResponse(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-KEY")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.RemoteLineItem{
			ID: "r1", ProductID: "p1", Quantity: 5,
			Product: models.ProductInfo{Title: "Sneaker", Price: 10},
		})
	}))
	defer srv.Close()

	client := newTestCartClient(srv.URL)
	item, err := client.AddOrIncrement(context.Background(), "u-9", "p1", map[string]string{"size": "M"}, 5)

	require.NoError(t, err)
	assert.Equal(t, "/carts/u-9/items", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "p1", gotBody["product_id"])
	assert.Equal(t, float64(5), gotBody["quantity"])
	assert.Equal(t, "r1", item.ID)
	assert.Equal(t, "Sneaker", item.Product.Title)
}

func TestFetchCartDecodesOrderedItems(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/carts/u-9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.RemoteLineItem{
			{ID: "r1", ProductID: "p1", Quantity: 1},
			{ID: "r2", ProductID: "p2", Quantity: 2},
		})
	}))
	defer srv.Close()

	items, err := newTestCartClient(srv.URL).FetchCart(context.Background(), "u-9")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "r1", items[0].ID)
	assert.Equal(t, "r2", items[1].ID)
}

func TestNotFoundIsDistinguishableFromTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := newTestCartClient(srv.URL)
	err := client.RemoveItem(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = client.UpdateQuantity(context.Background(), "missing", 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServerErrorIsNotMistakenForNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestCartClient(srv.URL).ResetCart(context.Background(), "u-9")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchProductDecodesCatalogRecord(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/p1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ProductInfo{
			Title: "Sneaker", Brand: "Acme", Category: "Shoes",
			Price: 49.5, Thumbnail: "/img/p1.png", StockQuantity: 12,
		})
	}))
	defer srv.Close()

	client := &catalogClient{baseURL: srv.URL, client: &http.Client{Timeout: 2 * time.Second}}
	info, err := client.FetchProduct(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "Sneaker", info.Title)
	assert.Equal(t, "Acme", info.Brand)
	assert.Equal(t, 49.5, info.Price)
	assert.Equal(t, 12, info.StockQuantity)
}

func TestFetchProductUnknownProductIsNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := &catalogClient{baseURL: srv.URL, client: &http.Client{Timeout: 2 * time.Second}}
	_, err := client.FetchProduct(context.Background(), "gone")
	require.ErrorIs(t, err, ErrNotFound)
}
