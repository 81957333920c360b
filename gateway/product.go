package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/DevNutsPk/demoEcommerce/models"
)

// ProductCatalog serves current display attributes for a product. It
// decorates guest line items for the cart view and is never consulted
// for merge correctness.
type ProductCatalog interface {
	FetchProduct(ctx context.Context, productID string) (models.ProductInfo, error)
}

type catalogClient struct {
	baseURL string
	client  *http.Client
}

// NewCatalogClient builds the HTTP client for the product catalog from
// CATALOG_URL.
func NewCatalogClient() (ProductCatalog, error) {
	baseURL := os.Getenv("CATALOG_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("catalog configuration missing")
	}
	return &catalogClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}, nil
}

func (c *catalogClient) FetchProduct(ctx context.Context, productID string) (models.ProductInfo, error) {
	url := fmt.Sprintf("%s/products/%s", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.ProductInfo{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.ProductInfo{}, fmt.Errorf("failed to reach catalog: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.ProductInfo{}, fmt.Errorf("catalog: %w", ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.ProductInfo{}, fmt.Errorf("catalog error (%d): %s", resp.StatusCode, string(body))
	}

	var info models.ProductInfo
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ProductInfo{}, err
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return models.ProductInfo{}, fmt.Errorf("failed to parse catalog response: %v", err)
	}
	return info, nil
}
