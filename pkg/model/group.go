// pkg/model/group.go
package model

// VariantRow is one spreadsheet row resolved to a variant of a logical
// product. Owned exclusively by its ProductGroup.
type VariantRow struct {
	RowIndex        int
	RawSKU          string
	Variation       string   // token distinguishing this variant from siblings
	Color           string   // color cell, or the variation token when blank
	Sizes           []string // size labels marked available on this row
	Price           string   // cleaned decimal string, empty when absent
	Name            string
	Family          string
	TechDescription string
	Description     string
	Images          []string // resolved image paths, filled during projection
}

// ProductGroup is the set of spreadsheet rows collapsed into one logical
// catalog entry. Variants keep spreadsheet row order, which determines
// first-seen-wins tie-breaks during projection.
type ProductGroup struct {
	BaseSKU  string
	Variants []*VariantRow
}

// Append adds a variant, preserving insertion order.
func (g *ProductGroup) Append(v *VariantRow) {
	g.Variants = append(g.Variants, v)
}
