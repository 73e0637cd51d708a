package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/events"
	"github.com/dwikikusuma/storefront/pkg/kv"
	"github.com/dwikikusuma/storefront/pkg/observable"
)

var ErrNotFound = errors.New("not found")

type state struct {
	base      domain.Catalog
	loaded    bool
	overrides domain.Overrides
	merged    domain.Catalog
}

// Service is the catalog overlay store: a base catalog fetched once plus a
// persisted overrides blob, exposed as a merged view.
type Service struct {
	store  kv.Store
	key    string
	loader *baseLoader
	bus    *events.Bus
	log    *zap.Logger

	// writeMu serializes overrides changes together with their persistence,
	// so the stored blob always matches the last in-memory state.
	writeMu sync.Mutex
	state   *observable.Subject[state]
}

type Option func(*Service)

func WithBus(b *events.Bus) Option { return func(s *Service) { s.bus = b } }

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.log = l } }

// NewService reads the persisted overrides under key. Unreadable or malformed
// content starts the store with empty overrides.
func NewService(ctx context.Context, store kv.Store, key string, src BaseSource, opts ...Option) *Service {
	s := &Service{
		store:  store,
		key:    key,
		loader: newBaseLoader(src),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	overrides := domain.Overrides{}.Normalize()
	raw, ok, err := store.Get(ctx, key)
	switch {
	case err != nil:
		s.log.Warn("read overrides failed, starting empty", zap.String("key", key), zap.Error(err))
	case ok:
		overrides = DecodeOverrides(raw)
	}

	s.state = observable.NewSubject(state{
		overrides: overrides,
		merged:    domain.Catalog{Categories: []domain.Category{}, Products: []domain.Product{}},
	})
	return s
}

// Load fetches the base catalog. It is safe to call from many goroutines;
// only one fetch reaches the source.
func (s *Service) Load(ctx context.Context) error {
	base, err := s.loader.get(ctx)
	if err != nil {
		return fmt.Errorf("load base catalog: %w", err)
	}

	var changed bool
	next := s.state.Update(func(st state) state {
		if st.loaded {
			return st
		}
		changed = true
		st.base = base
		st.loaded = true
		st.merged = Merge(st.base, st.overrides)
		return st
	})
	if changed {
		s.log.Info("base catalog loaded",
			zap.Int("categories", len(base.Categories)),
			zap.Int("products", len(base.Products)),
		)
		s.publish("load", next.merged)
	}
	return nil
}

func (s *Service) Loaded() bool { return s.state.Value().loaded }

// Catalog returns the merged view. Before Load succeeds it is empty.
func (s *Service) Catalog() domain.Catalog { return s.state.Value().merged }

func (s *Service) Categories() []domain.Category { return s.Catalog().Categories }

func (s *Service) Products() []domain.Product { return s.Catalog().Products }

func (s *Service) Product(id string) (domain.Product, error) {
	for _, p := range s.Products() {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %q: %w", id, ErrNotFound)
}

// Overrides returns a copy of the current overrides blob.
func (s *Service) Overrides() domain.Overrides { return s.state.Value().overrides.Clone() }

// SetOverrides replaces the overrides wholesale and persists them. Nil
// collections are normalized to empty ones. The in-memory state changes even
// when persisting fails; the error is returned for the caller to log.
func (s *Service) SetOverrides(ctx context.Context, next domain.Overrides) error {
	_, err := s.UpdateOverrides(ctx, func(domain.Overrides) (domain.Overrides, bool) {
		return next, true
	})
	return err
}

// UpdateOverrides runs fn on a copy of the current overrides and, when fn
// reports a change, stores and persists the result. Concurrent updates run
// one at a time, each seeing the previous one's result. Subscribers are
// notified while the update holds its turn and must not call back into
// UpdateOverrides or SetOverrides.
func (s *Service) UpdateOverrides(ctx context.Context, fn func(domain.Overrides) (domain.Overrides, bool)) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next, changed := fn(s.state.Value().overrides.Clone())
	if !changed {
		return false, nil
	}
	next = next.Clone().Normalize()

	st := s.state.Update(func(st state) state {
		st.overrides = next
		if st.loaded {
			st.merged = Merge(st.base, st.overrides)
		}
		return st
	})
	s.publish("set_overrides", st.merged)

	raw, err := EncodeOverrides(next)
	if err != nil {
		return true, fmt.Errorf("encode overrides: %w", err)
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return true, fmt.Errorf("persist overrides: %w", err)
	}
	return true, nil
}

// Subscribe calls fn with the merged catalog now and after every change.
func (s *Service) Subscribe(fn func(domain.Catalog)) func() {
	return s.state.Subscribe(func(st state) { fn(st.merged) })
}

func (s *Service) publish(op string, merged domain.Catalog) {
	s.bus.Publish(events.CatalogChanged, map[string]any{
		"op":         op,
		"categories": len(merged.Categories),
		"products":   len(merged.Products),
	})
}
