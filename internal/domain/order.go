package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCreated         OrderStatus = "CREATED"
	OrderStatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	OrderStatusPaid            OrderStatus = "PAID"
	OrderStatusFailed          OrderStatus = "FAILED"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid || s == OrderStatusFailed
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// Order is the client's view of a server-side order. The backend owns the
// status; the client only infers AWAITING_PAYMENT -> PAID after a successful
// confirmation round-trip.
type Order struct {
	ID        int64           `json:"id"`
	Status    OrderStatus     `json:"status"`
	Total     decimal.Decimal `json:"totalAmount"`
	Items     []CartLine      `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ShippingDetails struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`
}

// Validate mirrors the backend's required-field rules so a bad form never
// costs a network round-trip.
func (d ShippingDetails) Validate() error {
	required := []struct {
		field, value, msg string
	}{
		{"fullName", d.FullName, "Full name is required"},
		{"phoneNumber", d.PhoneNumber, "Phone number is required"},
		{"street", d.Street, "Street address is required"},
		{"city", d.City, "City is required"},
		{"state", d.State, "State is required"},
		{"zipCode", d.ZipCode, "Zip code is required"},
		{"country", d.Country, "Country is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Msg: r.msg}
		}
	}
	return nil
}
