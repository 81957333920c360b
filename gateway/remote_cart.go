package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/DevNutsPk/demoEcommerce/models"
)

// ErrNotFound marks a 404 from an upstream service, distinguishable
// from transport or validation failures.
var ErrNotFound = errors.New("not found")

// RemoteCart is the server-side cart service, scoped per authenticated
// user. The server enforces its own idempotency and per-user isolation;
// this client never issues parallel writes against the same cart.
type RemoteCart interface {
	AddOrIncrement(ctx context.Context, userID, productID string, variant map[string]string, quantity int) (models.RemoteLineItem, error)
	FetchCart(ctx context.Context, userID string) ([]models.RemoteLineItem, error)
	UpdateQuantity(ctx context.Context, lineItemID string, quantity int) (models.RemoteLineItem, error)
	RemoveItem(ctx context.Context, lineItemID string) error
	ResetCart(ctx context.Context, userID string) error
}

type cartServiceClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewCartServiceClient builds the HTTP client for the cart service from
// CART_SERVICE_URL and CART_SERVICE_API_KEY.
func NewCartServiceClient() (RemoteCart, error) {
	baseURL := os.Getenv("CART_SERVICE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("cart service configuration missing")
	}
	return &cartServiceClient{
		baseURL: baseURL,
		apiKey:  os.Getenv("CART_SERVICE_API_KEY"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *cartServiceClient) AddOrIncrement(ctx context.Context, userID, productID string, variant map[string]string, quantity int) (models.RemoteLineItem, error) {
	payload := map[string]interface{}{
		"product_id": productID,
		"variant":    variant,
		"quantity":   quantity,
	}
	var item models.RemoteLineItem
	url := fmt.Sprintf("%s/carts/%s/items", c.baseURL, userID)
	if err := c.doJSON(ctx, http.MethodPost, url, payload, &item); err != nil {
		return models.RemoteLineItem{}, err
	}
	return item, nil
}

func (c *cartServiceClient) FetchCart(ctx context.Context, userID string) ([]models.RemoteLineItem, error) {
	var items []models.RemoteLineItem
	url := fmt.Sprintf("%s/carts/%s", c.baseURL, userID)
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.RemoteLineItem{}
	}
	return items, nil
}

func (c *cartServiceClient) UpdateQuantity(ctx context.Context, lineItemID string, quantity int) (models.RemoteLineItem, error) {
	payload := map[string]interface{}{"quantity": quantity}
	var item models.RemoteLineItem
	url := fmt.Sprintf("%s/cart-items/%s", c.baseURL, lineItemID)
	if err := c.doJSON(ctx, http.MethodPut, url, payload, &item); err != nil {
		return models.RemoteLineItem{}, err
	}
	return item, nil
}

func (c *cartServiceClient) RemoveItem(ctx context.Context, lineItemID string) error {
	url := fmt.Sprintf("%s/cart-items/%s", c.baseURL, lineItemID)
	return c.doJSON(ctx, http.MethodDelete, url, nil, nil)
}

func (c *cartServiceClient) ResetCart(ctx context.Context, userID string) error {
	url := fmt.Sprintf("%s/carts/%s", c.baseURL, userID)
	return c.doJSON(ctx, http.MethodDelete, url, nil, nil)
}

// doJSON issues one JSON request and decodes the response into out
// (out may be nil for ack-only calls).
func (c *cartServiceClient) doJSON(ctx context.Context, method, url string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach cart service: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("cart service: %w", ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cart service error (%d): %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse cart service response: %v", err)
	}
	return nil
}
