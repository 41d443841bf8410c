package domain

import "github.com/shopspring/decimal"

// CartLine is a single entry in the cart. For server-backed carts LineID is
// issued by the backend; for guest carts it equals the product id, which
// keeps a single line per product.
type CartLine struct {
	LineID    int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Name      string          `json:"productName"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageRef  string          `json:"imageUrl"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSnapshot is the ordered cart state owned by the reconciler. Total and
// Count are derived from the lines on every call so they cannot drift from
// the line data.
type CartSnapshot struct {
	Lines []CartLine `json:"items"`
}

func (s CartSnapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (s CartSnapshot) Count() int {
	count := 0
	for _, l := range s.Lines {
		count += l.Quantity
	}
	return count
}

func (s CartSnapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}

func (s CartSnapshot) Clone() CartSnapshot {
	if s.Lines == nil {
		return CartSnapshot{}
	}
	lines := make([]CartLine, len(s.Lines))
	copy(lines, s.Lines)
	return CartSnapshot{Lines: lines}
}

type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
}
