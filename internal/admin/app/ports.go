package app

import (
	"context"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// OverridesStore is the catalog overlay the editor writes into. UpdateOverrides
// must apply fn atomically with respect to other updates.
type OverridesStore interface {
	Overrides() catalog.Overrides
	UpdateOverrides(ctx context.Context, fn func(catalog.Overrides) (catalog.Overrides, bool)) (bool, error)
	Product(id string) (catalog.Product, error)
}
