package model

import "time"

// Product type constants
const (
	ProductTypeSimple       = "simple"
	ProductTypeVirtual      = "virtual"
	ProductTypeDownloadable = "downloadable"
	ProductTypeConfigurable = "configurable"
	ProductTypeGrouped      = "grouped"
	ProductTypeBundle       = "bundle"
)

// Product status constants
const (
	ProductStatusEnabled  = 1
	ProductStatusDisabled = 2
)

// Product visibility constants
const (
	VisibilityNotVisible    = 1
	VisibilityInCatalog     = 2
	VisibilityInSearch      = 3
	VisibilityCatalogSearch = 4
)

// Product is a catalog read-model row with the associations the indexing
// pipeline needs: website assignment, stock, categories, image, rating.
type Product struct {
	ID               int64  `json:"id"`
	SKU              string `json:"sku"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	ShortDescription string `json:"short_description,omitempty"`
	TypeID           string `json:"type_id"`
	Status           int    `json:"status"`
	Visibility       int    `json:"visibility"`
	URLKey           string `json:"url_key,omitempty"`
	ImagePath        string `json:"image_path,omitempty"`

	// Pricing; currency comes from the store scope
	Price        float64  `json:"price"`
	SpecialPrice *float64 `json:"special_price,omitempty"`

	// Associations
	WebsiteIDs  []int64 `json:"website_ids"`
	CategoryIDs []int64 `json:"category_ids"`

	// ParentIDs lists composite products this product is a child of.
	ParentIDs []int64 `json:"parent_ids,omitempty"`

	// Salability flags maintained at save time. IsAvailable accounts for
	// qty/backorder/website rules; composites carry their own aggregate
	// stock flag in the stock item.
	IsAvailable bool `json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntityID is part of the extensible entity capability.
func (p *Product) EntityID() int64 { return p.ID }

// EntitySubtype is part of the extensible entity capability.
func (p *Product) EntitySubtype() string { return p.TypeID }

// IsComposite reports whether the product aggregates child products.
func (p *Product) IsComposite() bool {
	switch p.TypeID {
	case ProductTypeConfigurable, ProductTypeGrouped, ProductTypeBundle:
		return true
	}
	return false
}

// IsEnabled reports whether the product status is enabled.
func (p *Product) IsEnabled() bool {
	return p.Status == ProductStatusEnabled
}

// AssignedToWebsite reports whether the product carries an explicit
// assignment to the given website.
func (p *Product) AssignedToWebsite(websiteID int64) bool {
	for _, id := range p.WebsiteIDs {
		if id == websiteID {
			return true
		}
	}
	return false
}

// StockItem is the per-product stock record.
type StockItem struct {
	ProductID int64   `json:"product_id"`
	IsInStock bool    `json:"is_in_stock"`
	Qty       float64 `json:"qty"`
	// SalableQty is qty minus reservations; drives the is_salable method.
	SalableQty float64 `json:"salable_qty"`
	// Backorders allows sales below zero qty.
	Backorders bool `json:"backorders"`
}

// Store is a store scope bound to one website.
type Store struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	WebsiteID int64  `json:"website_id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
}

// Website groups stores for catalog assignment.
type Website struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// Category is a catalog category row used for record relations.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Rating is the aggregated review rating for a product.
type Rating struct {
	ProductID int64 `json:"product_id"`
	// Average is the mean rating on a 0-100 scale.
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
