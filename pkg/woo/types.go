// pkg/woo/types.go
package woo

// Product is a WooCommerce product payload and response shape. Fields
// not sent on create carry omitempty.
type Product struct {
	ID               int                `json:"id,omitempty"`
	Name             string             `json:"name,omitempty"`
	Type             string             `json:"type,omitempty"`
	SKU              string             `json:"sku,omitempty"`
	Status           string             `json:"status,omitempty"`
	Description      string             `json:"description,omitempty"`
	ShortDescription string             `json:"short_description,omitempty"`
	Categories       []CategoryRef      `json:"categories,omitempty"`
	Attributes       []ProductAttribute `json:"attributes,omitempty"`
	Images           []ImageRef         `json:"images,omitempty"`
	Variations       []int              `json:"variations,omitempty"`
}

// CategoryRef links a product to a store category by ID.
type CategoryRef struct {
	ID int `json:"id"`
}

// ImageRef links a product or variation to an uploaded media item.
type ImageRef struct {
	ID int `json:"id"`
}

// ProductAttribute is a variation-defining attribute on a variable product.
type ProductAttribute struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Position  int      `json:"position"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
	Options   []string `json:"options"`
}

// Variation is one purchasable combination under a variable product.
type Variation struct {
	ID           int                  `json:"id,omitempty"`
	RegularPrice string               `json:"regular_price"`
	StockStatus  string               `json:"stock_status,omitempty"`
	Attributes   []VariationAttribute `json:"attributes"`
	Image        *ImageRef            `json:"image,omitempty"`
}

// VariationAttribute selects one option of a product attribute.
type VariationAttribute struct {
	ID     int    `json:"id"`
	Option string `json:"option"`
}

// Media is the WordPress media item returned by an upload.
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url,omitempty"`
}
