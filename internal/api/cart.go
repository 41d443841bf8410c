package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/greenbasket/storefront/internal/domain"
)

type cartPayload struct {
	Items []domain.CartLine `json:"items"`
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// FetchCart returns the server's authoritative cart for the current identity.
func (c *Client) FetchCart(ctx context.Context) (domain.CartSnapshot, error) {
	var payload cartPayload
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &payload); err != nil {
		return domain.CartSnapshot{}, err
	}
	return domain.CartSnapshot{Lines: payload.Items}, nil
}

// AddItem adds quantity of a product to the server cart. Callers must
// refetch afterwards; the response body is not an authoritative cart.
func (c *Client) AddItem(ctx context.Context, productID int64, quantity int) error {
	return c.do(ctx, http.MethodPost, "/cart/items", addItemRequest{ProductID: productID, Quantity: quantity}, nil)
}

func (c *Client) RemoveItem(ctx context.Context, lineID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/items/%d", lineID), nil, nil)
}

// SetQuantity replaces a line's quantity. Quantities below 1 are rejected
// client-side and never reach this call.
func (c *Client) SetQuantity(ctx context.Context, lineID int64, quantity int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/cart/items/%d", lineID), updateQuantityRequest{Quantity: quantity}, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil)
}
