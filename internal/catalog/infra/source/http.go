package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

const maxCatalogBytes = 32 << 20

type HTTP struct {
	URL    string
	Client *http.Client
}

func (h HTTP) Fetch(ctx context.Context) (domain.Catalog, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Catalog{}, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	var c domain.Catalog
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxCatalogBytes)).Decode(&c); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return normalize(c), nil
}

// Open picks a source for location: http(s) URLs are fetched, anything else
// is treated as a file path.
func Open(location string) app.BaseSource {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTP{URL: location}
	}
	return File{Path: location}
}
