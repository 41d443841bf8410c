package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(id int64, price string, qty int) CartLine {
	return CartLine{
		LineID:    id,
		ProductID: id,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestSnapshotTotals(t *testing.T) {
	snap := CartSnapshot{Lines: []CartLine{
		line(1, "10", 2),
		line(2, "25", 1),
	}}

	assert.True(t, snap.Total().Equal(decimal.RequireFromString("45")))
	assert.Equal(t, 3, snap.Count())
}

func TestSnapshotTotalsRecomputed(t *testing.T) {
	snap := CartSnapshot{Lines: []CartLine{line(1, "9.99", 1)}}
	assert.True(t, snap.Total().Equal(decimal.RequireFromString("9.99")))

	snap.Lines[0].Quantity = 3
	assert.True(t, snap.Total().Equal(decimal.RequireFromString("29.97")))
	assert.Equal(t, 3, snap.Count())
}

func TestSnapshotEmpty(t *testing.T) {
	var snap CartSnapshot
	assert.True(t, snap.IsEmpty())
	assert.Equal(t, 0, snap.Count())
	assert.True(t, snap.Total().IsZero())
}

func TestSnapshotCloneIsIndependent(t *testing.T) {
	snap := CartSnapshot{Lines: []CartLine{line(1, "5", 1)}}
	clone := snap.Clone()
	clone.Lines[0].Quantity = 10

	assert.Equal(t, 1, snap.Lines[0].Quantity)
}

func TestShippingDetailsValidate(t *testing.T) {
	valid := ShippingDetails{
		FullName:    "Jane Doe",
		PhoneNumber: "+1 234 567 890",
		Street:      "123 Main St",
		City:        "New York",
		State:       "NY",
		ZipCode:     "10001",
		Country:     "United States",
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.City = "  "
	err := missing.Validate()
	assert.Error(t, err)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "city", verr.Field)
	assert.Equal(t, "City is required", verr.Msg)
}
