package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/greenbasket/storefront/internal/domain"
)

// GetProduct fetches a single catalog entry. Concurrent requests for the
// same product share one round-trip.
func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	v, err, _ := c.products.Do(strconv.FormatInt(id, 10), func() (any, error) {
		var product domain.Product
		if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
			return nil, err
		}
		return product, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return v.(domain.Product), nil
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.products.Do("list", func() (any, error) {
		var products []domain.Product
		if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
			return nil, err
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}
