package catalog

import (
	"github.com/casamaria/storefront-backend/pkg/enums"
)

// MenuItem is the catalog entry. Price is in the smallest currency unit
// (whole pesos). The cart copies items by value so later catalog edits never
// change lines already added.
type MenuItem struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Price           int64              `json:"price"`
	Category        enums.MenuCategory `json:"category"`
	Image           string             `json:"image"`
	Popular         bool               `json:"popular,omitempty"`
	DiscountPercent int                `json:"discount_percent,omitempty"`
}
