package devserver

import (
	"github.com/shopspring/decimal"

	"github.com/greenbasket/storefront/internal/domain"
)

func seedProducts() []domain.Product {
	price := decimal.RequireFromString
	return []domain.Product{
		{ID: 1, Name: "Fuji Apple", Price: price("0.80"), ImageURL: "https://placehold.co/100?text=Apple"},
		{ID: 2, Name: "Organic Avocado", Price: price("2.49"), ImageURL: "https://placehold.co/100?text=Avocado"},
		{ID: 3, Name: "Heirloom Tomatoes", Price: price("4.25"), ImageURL: "https://placehold.co/100?text=Tomatoes"},
		{ID: 4, Name: "Oat Milk 1L", Price: price("3.10"), ImageURL: "https://placehold.co/100?text=Oat+Milk"},
		{ID: 5, Name: "Sourdough Loaf", Price: price("5.50"), ImageURL: "https://placehold.co/100?text=Bread"},
		{ID: 6, Name: "Free-Range Eggs (12)", Price: price("6.00"), ImageURL: "https://placehold.co/100?text=Eggs"},
	}
}
