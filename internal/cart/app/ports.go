package app

import catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"

// CatalogReader exposes the merged product list the cart prices against.
type CatalogReader interface {
	Products() []catalog.Product
}
