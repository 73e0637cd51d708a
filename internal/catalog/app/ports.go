package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// BaseSource fetches the read-only base catalog document.
type BaseSource interface {
	Fetch(ctx context.Context) (domain.Catalog, error)
}
