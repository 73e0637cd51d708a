package domain

import catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"

// Filter is the in-memory search state. CategoryID "all" matches everything.
type Filter struct {
	Search     string `json:"search"`
	CategoryID string `json:"categoryId"`
}

// Countdown holds zero-padded remaining time: three-digit days and
// two-digit hours, minutes and seconds.
type Countdown struct {
	Days  string `json:"days"`
	Hours string `json:"hours"`
	Mins  string `json:"mins"`
	Secs  string `json:"secs"`
}

var ZeroCountdown = Countdown{Days: "000", Hours: "00", Mins: "00", Secs: "00"}

// Card is a product with display-ready price labels.
type Card struct {
	catalog.Product
	PriceLabel     string `json:"priceLabel"`
	CompareAtLabel string `json:"compareAtLabel,omitempty"`
}

type Section struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Products []Card `json:"products"`
}

type Promo struct {
	Index     int       `json:"index"`
	Product   *Card     `json:"product,omitempty"`
	Countdown Countdown `json:"countdown"`
}

type Home struct {
	Categories []catalog.Category `json:"categories"`
	Filter     Filter             `json:"filter"`
	Products   []Card             `json:"products"`
	Promos     []Card             `json:"promos"`
	Promo      Promo              `json:"promo"`
	Sections   []Section          `json:"sections"`
	CartCount  int                `json:"cartCount"`
}
