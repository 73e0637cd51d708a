package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// File reads the base catalog from disk. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
type File struct {
	Path string
}

func (f File) Fetch(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog %s: %w", f.Path, err)
	}

	var c domain.Catalog
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &c)
	default:
		err = json.Unmarshal(b, &c)
	}
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog %s: %w", f.Path, err)
	}
	return normalize(c), nil
}

func normalize(c domain.Catalog) domain.Catalog {
	if c.Categories == nil {
		c.Categories = []domain.Category{}
	}
	if c.Products == nil {
		c.Products = []domain.Product{}
	}
	return c
}
