package guestcart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/greenbasket/storefront/internal/domain"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewFileStore(t.TempDir(), zap.NewNop())

	snap := store.Load()
	assert.True(t, snap.IsEmpty())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir(), zap.NewNop())
	snap := domain.CartSnapshot{Lines: []domain.CartLine{{
		LineID:    7,
		ProductID: 7,
		Name:      "Organic Avocado",
		UnitPrice: decimal.RequireFromString("2.49"),
		Quantity:  4,
		ImageRef:  "https://example.com/avocado.jpg",
	}}}

	store.Save(snap)
	loaded := store.Load()

	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, int64(7), loaded.Lines[0].LineID)
	assert.Equal(t, 4, loaded.Lines[0].Quantity)
	assert.True(t, loaded.Total().Equal(decimal.RequireFromString("9.96")))
}

func TestLoadMalformedContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cart.json"), []byte("{not json"), 0o600))

	store := NewFileStore(dir, zap.NewNop())
	snap := store.Load()
	assert.True(t, snap.IsEmpty())
}

func TestLoadDropsZeroQuantityLines(t *testing.T) {
	dir := t.TempDir()
	content := `{"items":[{"id":1,"productId":1,"quantity":0,"price":"3.00"},{"id":2,"productId":2,"quantity":2,"price":"1.50"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cart.json"), []byte(content), 0o600))

	store := NewFileStore(dir, zap.NewNop())
	snap := store.Load()

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, int64(2), snap.Lines[0].LineID)
}
