package app

import (
	"math"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

const (
	DefaultCategoryID = "technology"
	PlaceholderImage  = "images/placeholder-1x1.svg"
)

// Draft is the product form as submitted. Numeric fields stay loosely typed
// (numbers, numeric strings, blanks or null) until Normalize coerces them.
type Draft struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	CategoryID     string `json:"categoryId"`
	Price          any    `json:"price"`
	CompareAtPrice any    `json:"compareAtPrice"`
	Badge          string `json:"badge"`
	Vendor         string `json:"vendor"`
	Image          string `json:"image"`
	PromoFeatured  bool   `json:"promoFeatured"`
	PromoSold      any    `json:"promoSold"`
	PromoStock     any    `json:"promoStock"`
	PromoEndsAt    string `json:"promoEndsAt"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// explicitNull marks a promo count the form sent as JSON null, which counts
// as 0. An omitted count stays nil and is dropped.
type explicitNull struct{}

func (explicitNull) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (d *Draft) UnmarshalJSON(b []byte) error {
	type plain Draft
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err == nil {
		if v, ok := fields["promoSold"]; ok && v == nil {
			p.PromoSold = explicitNull{}
		}
		if v, ok := fields["promoStock"]; ok && v == nil {
			p.PromoStock = explicitNull{}
		}
	}
	*d = Draft(p)
	return nil
}

// NewDraft returns the blank product form for categoryID.
func NewDraft(categoryID string) Draft {
	if categoryID == "" {
		categoryID = DefaultCategoryID
	}
	return Draft{
		CategoryID: categoryID,
		Price:      0.0,
		Image:      PlaceholderImage,
		PromoSold:  700.0,
		PromoStock: 300.0,
	}
}

// DraftFrom loads an existing product into the form.
func DraftFrom(p catalog.Product) Draft {
	d := Draft{
		ID:            p.ID,
		Title:         p.Title,
		Subtitle:      p.Subtitle,
		CategoryID:    p.CategoryID,
		Price:         p.Price,
		Badge:         p.Badge,
		Vendor:        p.Vendor,
		Image:         p.Image,
		PromoFeatured: p.PromoFeatured,
		PromoEndsAt:   p.PromoEndsAt,
	}
	if p.CompareAtPrice != nil {
		d.CompareAtPrice = *p.CompareAtPrice
	}
	if p.PromoSold != nil {
		d.PromoSold = *p.PromoSold
	}
	if p.PromoStock != nil {
		d.PromoStock = *p.PromoStock
	}
	return d
}

// Normalize turns a draft into a product. It reports false when title,
// category, id or image is blank or the price is not a finite number >= 0.
// A blank id falls back to the slug of the title.
func Normalize(d Draft) (catalog.Product, bool) {
	title := strings.TrimSpace(d.Title)
	categoryID := strings.TrimSpace(d.CategoryID)
	id := strings.TrimSpace(d.ID)
	if id == "" {
		id = Slugify(title)
	}
	image := strings.TrimSpace(d.Image)

	price := 0.0
	if d.Price != nil {
		price = toNumber(d.Price)
	}
	if title == "" || categoryID == "" || id == "" || image == "" || !finite(price) || price < 0 {
		return catalog.Product{}, false
	}

	p := catalog.Product{
		ID:            id,
		Title:         title,
		Subtitle:      strings.TrimSpace(d.Subtitle),
		CategoryID:    categoryID,
		Price:         price,
		Badge:         strings.TrimSpace(d.Badge),
		Vendor:        strings.TrimSpace(d.Vendor),
		Image:         image,
		PromoFeatured: d.PromoFeatured,
		PromoEndsAt:   strings.TrimSpace(d.PromoEndsAt),
	}
	if !isBlank(d.CompareAtPrice) {
		p.CompareAtPrice = optional(toNumber(d.CompareAtPrice))
	}
	p.PromoSold = optional(toNumber(d.PromoSold))
	p.PromoStock = optional(toNumber(d.PromoStock))
	return p, true
}

// toNumber coerces form input the way a number field does: nil and
// unparsable text become NaN, blank text and an explicit null become 0.
func toNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return math.NaN()
	case explicitNull:
		return 0
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		f, err := cast.ToFloat64E(x)
		if err != nil {
			return math.NaN()
		}
		return f
	}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func optional(f float64) *float64 {
	if !finite(f) {
		return nil
	}
	return &f
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
