package app

import (
	"slices"
	"strings"

	"github.com/dwikikusuma/storefront/internal/browse/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

const (
	promoLimit   = 3
	sectionLimit = 5
)

// PreferredSectionOrder lists the categories shown first on the home screen.
var PreferredSectionOrder = []string{"technology", "watch", "cosmetic", "real_estate", "food"}

// FilterProducts keeps products in the selected category whose title,
// subtitle or vendor contain the trimmed search text, ignoring case.
func FilterProducts(products []catalog.Product, f domain.Filter) []catalog.Product {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if f.CategoryID != catalog.AllCategories && p.CategoryID != f.CategoryID {
			continue
		}
		if q != "" {
			hay := strings.ToLower(p.Title + " " + p.Subtitle + " " + p.Vendor)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// PromoProducts returns up to three promo-featured products, cheapest first.
// Equal prices keep catalog order.
func PromoProducts(products []catalog.Product) []catalog.Product {
	featured := make([]catalog.Product, 0)
	for _, p := range products {
		if p.PromoFeatured {
			featured = append(featured, p)
		}
	}
	slices.SortStableFunc(featured, func(a, b catalog.Product) int {
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		default:
			return 0
		}
	})
	if len(featured) > promoLimit {
		featured = featured[:promoLimit]
	}
	return featured
}

// Sections groups products by category: preferred categories first in fixed
// order, then the rest in catalog order. Each section holds at most five
// products and empty sections are left out.
func Sections(c catalog.Catalog) []domain.Section {
	byID := make(map[string]catalog.Category, len(c.Categories))
	for _, cat := range c.Categories {
		byID[cat.ID] = cat
	}

	build := func(cat catalog.Category) domain.Section {
		cards := make([]domain.Card, 0, sectionLimit)
		for _, p := range c.Products {
			if p.CategoryID != cat.ID {
				continue
			}
			cards = append(cards, NewCard(p))
			if len(cards) == sectionLimit {
				break
			}
		}
		return domain.Section{ID: cat.ID, Title: cat.Name, Products: cards}
	}

	ordered := make([]domain.Section, 0, len(c.Categories))
	for _, id := range PreferredSectionOrder {
		if cat, ok := byID[id]; ok {
			ordered = append(ordered, build(cat))
		}
	}
	for _, cat := range c.Categories {
		if !slices.Contains(PreferredSectionOrder, cat.ID) {
			ordered = append(ordered, build(cat))
		}
	}

	out := ordered[:0]
	for _, s := range ordered {
		if len(s.Products) > 0 {
			out = append(out, s)
		}
	}
	return out
}
