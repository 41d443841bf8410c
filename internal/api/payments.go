package api

import (
	"context"
	"net/http"

	"github.com/greenbasket/storefront/internal/domain"
)

type createIntentRequest struct {
	OrderID int64 `json:"orderId"`
}

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type confirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// CreateIntent requests a payment intent for the order. The returned intent
// is decoded once; mock intents are recognised by their secret shape.
func (c *Client) CreateIntent(ctx context.Context, orderID int64) (domain.PaymentIntent, error) {
	var resp createIntentResponse
	if err := c.do(ctx, http.MethodPost, "/payments/create-intent", createIntentRequest{OrderID: orderID}, &resp); err != nil {
		return domain.PaymentIntent{}, err
	}
	return domain.ParsePaymentIntent(resp.ClientSecret), nil
}

// ConfirmPayment notifies the backend that the given payment intent
// completed, so it can move the order to PAID.
func (c *Client) ConfirmPayment(ctx context.Context, paymentIntentID string) error {
	return c.do(ctx, http.MethodPost, "/payments/confirm", confirmPaymentRequest{PaymentIntentID: paymentIntentID}, nil)
}
