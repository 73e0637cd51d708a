package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// Editor applies admin-form changes to the overrides blob. Every accepted
// change is written back through the store, which persists it.
type Editor struct {
	store OverridesStore
	log   *zap.Logger
}

func NewEditor(store OverridesStore, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{store: store, log: log}
}

func (e *Editor) Overrides() catalog.Overrides { return e.store.Overrides() }

// AddCategory adds an override category. The id defaults to the slug of the
// name. It reports false, changing nothing, when the name is blank, the id
// comes out empty, or an override category already uses the id.
func (e *Editor) AddCategory(ctx context.Context, name, id string) (catalog.Category, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Category{}, false, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		id = Slugify(name)
	}
	if id == "" {
		return catalog.Category{}, false, nil
	}

	c := catalog.Category{ID: id, Name: name}
	ok, err := e.update(ctx, "add_category", id, func(o catalog.Overrides) (catalog.Overrides, bool) {
		if slices.ContainsFunc(o.Categories, func(x catalog.Category) bool { return x.ID == id }) {
			return o, false
		}
		o.Categories = append(o.Categories, c)
		return o, true
	})
	if err != nil || !ok {
		return catalog.Category{}, false, err
	}
	return c, true, nil
}

// DeleteCategory soft-deletes id and drops the override category and the
// override products filed under it.
func (e *Editor) DeleteCategory(ctx context.Context, id string) error {
	_, err := e.update(ctx, "delete_category", id, func(o catalog.Overrides) (catalog.Overrides, bool) {
		o.DeletedCategoryIDs = addID(o.DeletedCategoryIDs, id)
		o.Categories = slices.DeleteFunc(o.Categories, func(c catalog.Category) bool { return c.ID == id })
		o.Products = slices.DeleteFunc(o.Products, func(p catalog.Product) bool { return p.CategoryID == id })
		return o, true
	})
	return err
}

func (e *Editor) UndeleteCategory(ctx context.Context, id string) error {
	_, err := e.update(ctx, "undelete_category", id, func(o catalog.Overrides) (catalog.Overrides, bool) {
		o.DeletedCategoryIDs = removeID(o.DeletedCategoryIDs, id)
		return o, true
	})
	return err
}

// UpsertProduct normalizes d and stores it, replacing any override product
// with the same id and clearing a soft-delete of that id. It reports false,
// changing nothing, when the draft does not normalize.
func (e *Editor) UpsertProduct(ctx context.Context, d Draft) (catalog.Product, bool, error) {
	p, ok := Normalize(d)
	if !ok {
		return catalog.Product{}, false, nil
	}

	_, err := e.update(ctx, "upsert_product", p.ID, func(o catalog.Overrides) (catalog.Overrides, bool) {
		if i := slices.IndexFunc(o.Products, func(x catalog.Product) bool { return x.ID == p.ID }); i >= 0 {
			o.Products[i] = p
		} else {
			o.Products = append(o.Products, p)
		}
		o.DeletedProductIDs = removeID(o.DeletedProductIDs, p.ID)
		return o, true
	})
	if err != nil {
		return catalog.Product{}, false, err
	}
	return p, true, nil
}

// EditProduct loads a product from the merged catalog into a draft.
func (e *Editor) EditProduct(id string) (Draft, error) {
	p, err := e.store.Product(id)
	if err != nil {
		return Draft{}, err
	}
	return DraftFrom(p), nil
}

// DeleteProduct soft-deletes id and drops it from the override products.
func (e *Editor) DeleteProduct(ctx context.Context, id string) error {
	_, err := e.update(ctx, "delete_product", id, func(o catalog.Overrides) (catalog.Overrides, bool) {
		o.DeletedProductIDs = addID(o.DeletedProductIDs, id)
		o.Products = slices.DeleteFunc(o.Products, func(p catalog.Product) bool { return p.ID == id })
		return o, true
	})
	return err
}

func (e *Editor) UndeleteProduct(ctx context.Context, id string) error {
	_, err := e.update(ctx, "undelete_product", id, func(o catalog.Overrides) (catalog.Overrides, bool) {
		o.DeletedProductIDs = removeID(o.DeletedProductIDs, id)
		return o, true
	})
	return err
}

// Export renders the overrides as indented JSON.
func (e *Editor) Export() (string, error) {
	return catalogapp.ExportOverrides(e.store.Overrides())
}

// Import replaces the overrides with the parsed text. Blank or unparsable
// text is ignored and reported as false.
func (e *Editor) Import(ctx context.Context, text string) (bool, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return false, nil
	}
	parsed, err := catalogapp.ParseOverrides(raw)
	if err != nil {
		e.log.Debug("import ignored", zap.Error(err))
		return false, nil
	}
	return e.update(ctx, "import", "", func(catalog.Overrides) (catalog.Overrides, bool) {
		return parsed, true
	})
}

func (e *Editor) update(ctx context.Context, op, id string, fn func(catalog.Overrides) (catalog.Overrides, bool)) (bool, error) {
	changed, err := e.store.UpdateOverrides(ctx, fn)
	if err != nil {
		return changed, fmt.Errorf("%s %s: %w", op, id, err)
	}
	if changed {
		e.log.Info("overrides saved", zap.String("op", op), zap.String("id", id))
	}
	return changed, nil
}

func addID(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(x string) bool { return x == id })
}
