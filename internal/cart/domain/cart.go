package domain

import catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"

// Line is a stored cart entry. Qty is always at least 1; a zero quantity
// means the line is gone.
type Line struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// Item is a line resolved against the merged catalog.
type Item struct {
	Product   catalog.Product `json:"product"`
	Qty       int             `json:"qty"`
	LineTotal float64         `json:"lineTotal"`
}
