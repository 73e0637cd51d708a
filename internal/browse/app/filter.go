package app

import (
	"github.com/dwikikusuma/storefront/internal/browse/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/events"
	"github.com/dwikikusuma/storefront/pkg/observable"
)

// FilterStore holds search text and the selected category. It is never
// persisted.
type FilterStore struct {
	state *observable.Subject[domain.Filter]
	bus   *events.Bus
}

func NewFilterStore(bus *events.Bus) *FilterStore {
	return &FilterStore{
		state: observable.NewSubject(domain.Filter{CategoryID: catalog.AllCategories}),
		bus:   bus,
	}
}

func (f *FilterStore) Value() domain.Filter { return f.state.Value() }

func (f *FilterStore) SetSearch(v string) {
	f.set(func(cur domain.Filter) domain.Filter { cur.Search = v; return cur })
}

// SetCategoryID selects a category; an empty id selects all.
func (f *FilterStore) SetCategoryID(id string) {
	if id == "" {
		id = catalog.AllCategories
	}
	f.set(func(cur domain.Filter) domain.Filter { cur.CategoryID = id; return cur })
}

// Apply sets both fields at once, as a submitted search form does.
func (f *FilterStore) Apply(search, categoryID string) {
	if categoryID == "" {
		categoryID = catalog.AllCategories
	}
	f.set(func(domain.Filter) domain.Filter {
		return domain.Filter{Search: search, CategoryID: categoryID}
	})
}

func (f *FilterStore) Reset() {
	f.set(func(domain.Filter) domain.Filter {
		return domain.Filter{CategoryID: catalog.AllCategories}
	})
}

func (f *FilterStore) Subscribe(fn func(domain.Filter)) func() { return f.state.Subscribe(fn) }

func (f *FilterStore) set(fn func(domain.Filter) domain.Filter) {
	next := f.state.Update(fn)
	f.bus.Publish(events.FilterChanged, map[string]any{
		"search":      next.Search,
		"category_id": next.CategoryID,
	})
}
