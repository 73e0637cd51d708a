package app

import (
	"time"

	"github.com/dwikikusuma/storefront/internal/browse/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type CatalogReader interface {
	Catalog() catalog.Catalog
}

type CartCounter interface {
	Count() int
}

// View composes the home screen from the catalog, filter and cart stores.
type View struct {
	catalog  CatalogReader
	cart     CartCounter
	filter   *FilterStore
	carousel *Carousel
	now      func() time.Time
}

func NewView(c CatalogReader, cart CartCounter, filter *FilterStore, now func() time.Time) *View {
	if now == nil {
		now = time.Now
	}
	return &View{catalog: c, cart: cart, filter: filter, carousel: &Carousel{}, now: now}
}

func (v *View) Filter() *FilterStore { return v.filter }

// StepPromo moves the carousel over the current promo list.
func (v *View) StepPromo(delta int) int {
	return v.carousel.Step(delta, PromoProducts(v.catalog.Catalog().Products))
}

func (v *View) Home() domain.Home {
	c := v.catalog.Catalog()
	f := v.filter.Value()
	promos := PromoProducts(c.Products)

	promo := domain.Promo{Index: v.carousel.Index(), Countdown: domain.ZeroCountdown}
	if p, ok := v.carousel.Current(promos); ok {
		card := NewCard(p)
		promo.Product = &card
		promo.Countdown = CountdownTo(p.PromoEndsAt, v.now())
	}

	return domain.Home{
		Categories: c.Categories,
		Filter:     f,
		Products:   NewCards(FilterProducts(c.Products, f)),
		Promos:     NewCards(promos),
		Promo:      promo,
		Sections:   Sections(c),
		CartCount:  v.cart.Count(),
	}
}
