package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	adminapp "github.com/dwikikusuma/storefront/internal/admin/app"
	browseapp "github.com/dwikikusuma/storefront/internal/browse/app"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/source"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/events"
	"github.com/dwikikusuma/storefront/pkg/kv"
	"github.com/dwikikusuma/storefront/pkg/kv/boltkv"
	"github.com/dwikikusuma/storefront/pkg/kv/sqlitekv"
)

// stores is the process-wide session: one of each store over a shared KV.
type stores struct {
	kv      kv.Store
	bus     *events.Bus
	catalog *catalogapp.Service
	cart    *cartapp.Service
	filter  *browseapp.FilterStore
	editor  *adminapp.Editor
}

func openKV(cfg config.Config) (kv.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		return kv.NewMemory(), nil
	case "sqlite":
		return sqlitekv.Open(cfg.StorePath)
	case "bolt":
		return boltkv.Open(cfg.StorePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newStores(ctx context.Context, cfg config.Config, log *zap.Logger) (*stores, error) {
	store, err := openKV(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	bus := events.NewBus()
	if err := events.LogChanges(bus, log, events.CatalogChanged, events.CartChanged, events.FilterChanged); err != nil {
		closeKV(store)
		return nil, err
	}

	cat := catalogapp.NewService(ctx, store, cfg.OverridesKey, source.Open(cfg.CatalogSource),
		catalogapp.WithBus(bus), catalogapp.WithLogger(log.Named("catalog")))
	crt := cartapp.NewService(ctx, store, cfg.CartKey, cat,
		cartapp.WithBus(bus), cartapp.WithLogger(log.Named("cart")))

	return &stores{
		kv:      store,
		bus:     bus,
		catalog: cat,
		cart:    crt,
		filter:  browseapp.NewFilterStore(bus),
		editor:  adminapp.NewEditor(cat, log.Named("admin")),
	}, nil
}

func (s *stores) Close() { closeKV(s.kv) }

func closeKV(store kv.Store) {
	if c, ok := store.(kv.Closer); ok {
		_ = c.Close()
	}
}
