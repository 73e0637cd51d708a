package app

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dwikikusuma/storefront/internal/browse/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders an amount with thousands separators and two decimals.
func FormatPrice(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

func NewCard(p catalog.Product) domain.Card {
	c := domain.Card{Product: p, PriceLabel: FormatPrice(p.Price)}
	if p.CompareAtPrice != nil {
		c.CompareAtLabel = FormatPrice(*p.CompareAtPrice)
	}
	return c
}

func NewCards(ps []catalog.Product) []domain.Card {
	out := make([]domain.Card, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewCard(p))
	}
	return out
}
