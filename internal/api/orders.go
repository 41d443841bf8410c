package api

import (
	"context"
	"net/http"

	"github.com/greenbasket/storefront/internal/domain"
)

type createOrderResponse struct {
	ID int64 `json:"id"`
}

// CreateOrder submits the shipping details and returns the new order id. The
// backend builds the order from its copy of the cart.
func (c *Client) CreateOrder(ctx context.Context, details domain.ShippingDetails) (int64, error) {
	var resp createOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", details, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
