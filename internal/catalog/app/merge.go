package app

import "github.com/dwikikusuma/storefront/internal/catalog/domain"

// Merge layers overrides on top of base. Entities are keyed by id, base first
// and overrides second, so an override replaces the base entry in place.
// Deleted ids hide entities from both layers, and a deleted category also
// hides every product pointing at it.
func Merge(base domain.Catalog, overrides domain.Overrides) domain.Catalog {
	deletedCat := toSet(overrides.DeletedCategoryIDs)
	deletedProd := toSet(overrides.DeletedProductIDs)

	cats := newOrderedMap[domain.Category]()
	for _, layer := range [][]domain.Category{base.Categories, overrides.Categories} {
		for _, c := range layer {
			if _, gone := deletedCat[c.ID]; gone {
				continue
			}
			cats.put(c.ID, c)
		}
	}

	prods := newOrderedMap[domain.Product]()
	for _, layer := range [][]domain.Product{base.Products, overrides.Products} {
		for _, p := range layer {
			if _, gone := deletedProd[p.ID]; gone {
				continue
			}
			if _, gone := deletedCat[p.CategoryID]; gone {
				continue
			}
			prods.put(p.ID, p)
		}
	}

	return domain.Catalog{Categories: cats.values(), Products: prods.values()}
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// orderedMap keeps first-insertion order while letting later puts replace values.
type orderedMap[V any] struct {
	index map[string]int
	items []V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{index: make(map[string]int)}
}

func (m *orderedMap[V]) put(key string, v V) {
	if i, ok := m.index[key]; ok {
		m.items[i] = v
		return
	}
	m.index[key] = len(m.items)
	m.items = append(m.items, v)
}

func (m *orderedMap[V]) values() []V {
	if m.items == nil {
		return []V{}
	}
	return m.items
}
