package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/events"
	"github.com/dwikikusuma/storefront/pkg/kv"
	"github.com/dwikikusuma/storefront/pkg/observable"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	store   kv.Store
	key     string
	catalog CatalogReader
	bus     *events.Bus
	log     *zap.Logger

	// writeMu keeps each change and its persistence together.
	writeMu sync.Mutex
	lines   *observable.Subject[[]domain.Line]
}

type Option func(*Service)

func WithBus(b *events.Bus) Option { return func(s *Service) { s.bus = b } }

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.log = l } }

func NewService(ctx context.Context, store kv.Store, key string, reader CatalogReader, opts ...Option) *Service {
	s := &Service{
		store:   store,
		key:     key,
		catalog: reader,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	lines := []domain.Line{}
	raw, ok, err := store.Get(ctx, key)
	switch {
	case err != nil:
		s.log.Warn("read cart failed, starting empty", zap.String("key", key), zap.Error(err))
	case ok:
		lines = DecodeLines(raw)
	}
	s.lines = observable.NewSubject(lines)
	return s
}

// Lines returns a copy of the stored lines in insertion order.
func (s *Service) Lines() []domain.Line {
	return append([]domain.Line{}, s.lines.Value()...)
}

// Add increases the line for productID by floor(qty), at least 1, creating
// the line when missing.
func (s *Service) Add(ctx context.Context, productID string, qty float64) error {
	if productID == "" {
		return ErrInvalidInput
	}
	n := max(1, floorQty(qty, 1))
	return s.mutate(ctx, "add", productID, func(lines []domain.Line) []domain.Line {
		if i := indexOf(lines, productID); i >= 0 {
			lines[i].Qty += n
			return lines
		}
		return append(lines, domain.Line{ProductID: productID, Qty: n})
	})
}

// SetQty sets the line to floor(qty). Zero or less removes the line.
func (s *Service) SetQty(ctx context.Context, productID string, qty float64) error {
	if productID == "" {
		return ErrInvalidInput
	}
	n := max(0, floorQty(qty, 1))
	return s.mutate(ctx, "set_qty", productID, func(lines []domain.Line) []domain.Line {
		return setQty(lines, productID, n)
	})
}

// Increment and Decrement step a line by one with setQty semantics: a
// missing line starts from 0 and reaching 0 removes it.
func (s *Service) Increment(ctx context.Context, productID string) error {
	return s.step(ctx, "increment", productID, 1)
}

func (s *Service) Decrement(ctx context.Context, productID string) error {
	return s.step(ctx, "decrement", productID, -1)
}

func (s *Service) step(ctx context.Context, op, productID string, delta int) error {
	if productID == "" {
		return ErrInvalidInput
	}
	return s.mutate(ctx, op, productID, func(lines []domain.Line) []domain.Line {
		cur := 0
		if i := indexOf(lines, productID); i >= 0 {
			cur = lines[i].Qty
		}
		return setQty(lines, productID, max(0, cur+delta))
	})
}

func (s *Service) Remove(ctx context.Context, productID string) error {
	return s.mutate(ctx, "remove", productID, func(lines []domain.Line) []domain.Line {
		return removeLine(lines, productID)
	})
}

func (s *Service) Clear(ctx context.Context) error {
	return s.mutate(ctx, "clear", "", func([]domain.Line) []domain.Line {
		return []domain.Line{}
	})
}

// Items joins lines against the merged catalog. Lines whose product is gone
// are skipped but stay stored, so they reappear if the product returns.
func (s *Service) Items() []domain.Item {
	byID := make(map[string]catalog.Product)
	for _, p := range s.catalog.Products() {
		byID[p.ID] = p
	}

	lines := s.lines.Value()
	items := make([]domain.Item, 0, len(lines))
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			continue
		}
		items = append(items, domain.Item{Product: p, Qty: l.Qty, LineTotal: p.Price * float64(l.Qty)})
	}
	return items
}

// Subtotal sums line totals over resolved items only.
func (s *Service) Subtotal() float64 {
	var total float64
	for _, it := range s.Items() {
		total += it.LineTotal
	}
	return total
}

// Count sums quantities over every stored line, resolved or not.
func (s *Service) Count() int {
	var n int
	for _, l := range s.lines.Value() {
		n += l.Qty
	}
	return n
}

func (s *Service) Subscribe(fn func([]domain.Line)) func() {
	return s.lines.Subscribe(fn)
}

// mutate copies the lines, applies fn, publishes the result and persists it.
// Mutations run one at a time so the stored cart matches memory.
func (s *Service) mutate(ctx context.Context, op, productID string, fn func([]domain.Line) []domain.Line) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.lines.Update(func(cur []domain.Line) []domain.Line {
		return fn(append([]domain.Line{}, cur...))
	})

	s.bus.Publish(events.CartChanged, map[string]any{
		"op":         op,
		"product_id": productID,
		"lines":      len(next),
	})

	raw, err := EncodeLines(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

func setQty(lines []domain.Line, productID string, n int) []domain.Line {
	if n <= 0 {
		return removeLine(lines, productID)
	}
	if i := indexOf(lines, productID); i >= 0 {
		lines[i].Qty = n
		return lines
	}
	return append(lines, domain.Line{ProductID: productID, Qty: n})
}

func removeLine(lines []domain.Line, productID string) []domain.Line {
	out := lines[:0]
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	return out
}

func indexOf(lines []domain.Line, productID string) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// floorQty floors q, substituting def for NaN and infinities.
func floorQty(q float64, def int) int {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return def
	}
	f := math.Floor(q)
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}
