// Package checkout turns the current cart into a server-side order.
package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/greenbasket/storefront/internal/domain"
)

// Cart is the slice of the reconciler the orchestrator needs.
type Cart interface {
	CurrentSnapshot() domain.CartSnapshot
	ClearCart(ctx context.Context) error
}

type OrderGateway interface {
	CreateOrder(ctx context.Context, details domain.ShippingDetails) (int64, error)
}

type Orchestrator struct {
	orders OrderGateway
	cart   Cart
	logger *zap.Logger
}

func NewOrchestrator(orders OrderGateway, cart Cart, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		orders: orders,
		cart:   cart,
		logger: logger,
	}
}

// Submit places an order for the current cart and returns the new order id.
// Validation runs before any network call. On success the cart is cleared
// exactly once. Failures are surfaced verbatim and never retried here:
// resubmitting could create duplicate orders, so a retry is a new explicit
// user action.
func (o *Orchestrator) Submit(ctx context.Context, details domain.ShippingDetails) (int64, error) {
	if o.cart.CurrentSnapshot().IsEmpty() {
		return 0, ErrEmptyCart
	}
	if err := details.Validate(); err != nil {
		return 0, err
	}

	orderID, err := o.orders.CreateOrder(ctx, details)
	if err != nil {
		return 0, err
	}

	if err := o.cart.ClearCart(ctx); err != nil {
		// The order exists; a failed clear must not read as a failed submit.
		o.logger.Warn("cart clear after order submission failed",
			zap.Int64("order_id", orderID), zap.Error(err))
	}

	o.logger.Info("order submitted", zap.Int64("order_id", orderID))
	return orderID, nil
}
