package domain

// AllCategories is the filter value that matches every category.
const AllCategories = "all"

type Category struct {
	ID   string `json:"id" mapstructure:"id" yaml:"id"`
	Name string `json:"name" mapstructure:"name" yaml:"name"`
	Icon string `json:"icon,omitempty" mapstructure:"icon" yaml:"icon,omitempty"`
}

type Product struct {
	ID             string   `json:"id" mapstructure:"id" yaml:"id"`
	Title          string   `json:"title" mapstructure:"title" yaml:"title"`
	Subtitle       string   `json:"subtitle,omitempty" mapstructure:"subtitle" yaml:"subtitle,omitempty"`
	CategoryID     string   `json:"categoryId" mapstructure:"categoryId" yaml:"categoryId"`
	Price          float64  `json:"price" mapstructure:"price" yaml:"price"`
	CompareAtPrice *float64 `json:"compareAtPrice,omitempty" mapstructure:"compareAtPrice" yaml:"compareAtPrice,omitempty"`
	Badge          string   `json:"badge,omitempty" mapstructure:"badge" yaml:"badge,omitempty"`
	Vendor         string   `json:"vendor,omitempty" mapstructure:"vendor" yaml:"vendor,omitempty"`
	Image          string   `json:"image" mapstructure:"image" yaml:"image"`

	PromoFeatured bool     `json:"promoFeatured,omitempty" mapstructure:"promoFeatured" yaml:"promoFeatured,omitempty"`
	PromoSold     *float64 `json:"promoSold,omitempty" mapstructure:"promoSold" yaml:"promoSold,omitempty"`
	PromoStock    *float64 `json:"promoStock,omitempty" mapstructure:"promoStock" yaml:"promoStock,omitempty"`
	PromoEndsAt   string   `json:"promoEndsAt,omitempty" mapstructure:"promoEndsAt" yaml:"promoEndsAt,omitempty"`
}

// Catalog is both the immutable base document and the merged read view.
type Catalog struct {
	Categories []Category `json:"categories" yaml:"categories"`
	Products   []Product  `json:"products" yaml:"products"`
}

// Overrides is the user-local overlay. Ids listed in the deleted sets hide
// entities from both layers.
type Overrides struct {
	Categories         []Category `json:"categories"`
	Products           []Product  `json:"products"`
	DeletedCategoryIDs []string   `json:"deletedCategoryIds"`
	DeletedProductIDs  []string   `json:"deletedProductIds"`
}

// Clone returns a deep copy so callers can edit without touching shared state.
func (o Overrides) Clone() Overrides {
	return Overrides{
		Categories:         append([]Category{}, o.Categories...),
		Products:           append([]Product{}, o.Products...),
		DeletedCategoryIDs: append([]string{}, o.DeletedCategoryIDs...),
		DeletedProductIDs:  append([]string{}, o.DeletedProductIDs...),
	}
}

// Normalize replaces nil collections with empty ones.
func (o Overrides) Normalize() Overrides {
	if o.Categories == nil {
		o.Categories = []Category{}
	}
	if o.Products == nil {
		o.Products = []Product{}
	}
	if o.DeletedCategoryIDs == nil {
		o.DeletedCategoryIDs = []string{}
	}
	if o.DeletedProductIDs == nil {
		o.DeletedProductIDs = []string{}
	}
	return o
}
