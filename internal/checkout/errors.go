package checkout

import "github.com/greenbasket/storefront/internal/domain"

// ErrEmptyCart blocks submission before any network call is made.
var ErrEmptyCart = &domain.ValidationError{
	Field: "cart",
	Msg:   "cart is empty, nothing to checkout",
}
