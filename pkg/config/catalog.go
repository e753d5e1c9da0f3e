// pkg/config/catalog.go
package config

import (
	"sort"
	"strings"
)

// Attribute describes a store-side product attribute used for variations.
type Attribute struct {
	ID   int
	Name string
	Slug string
}

// ColumnLayout maps spreadsheet column offsets to field meanings.
// Offsets are zero-based; SizeStart..SizeEnd is the inclusive span of
// size-availability columns.
type ColumnLayout struct {
	CategoryGroup   int
	Family          int
	SKU             int
	Price           int
	Name            int
	ColorMaterial   int
	Color           int
	TechDescription int
	Description     int
	SizeStart       int
	SizeEnd         int

	// First data row, zero-based; header rows above it are skipped.
	DataStartRow int
}

// CatalogConfig is the immutable catalog configuration passed into the
// grouper and projector at construction. Never read from globals.
type CatalogConfig struct {
	SizeAttribute  Attribute
	ColorAttribute Attribute

	// Family value -> store category IDs, with a Default fallback.
	CategoryMapping map[string][]int
	DefaultCategory []int

	Layout ColumnLayout

	// Size column offset -> size label, e.g. 9 -> "2-3".
	SizeColumns map[int]string
}

// DefaultCatalogConfig returns the configuration for the Fillette catalog.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		SizeAttribute:  Attribute{ID: 3, Name: "Taille", Slug: "pa_taille"},
		ColorAttribute: Attribute{ID: 6, Name: "Couleur", Slug: "pa_colors"},
		CategoryMapping: map[string][]int{
			"PANTALON JEANS":  {296, 298, 307}, // Fillette > Bas > Jeans
			"JUPE JEANS":      {296, 298, 310}, // Fillette > Bas > Jupe
			"PANTALON COTTON": {296, 298, 308}, // Fillette > Bas > Pantalons
			"T-SHIRT":         {296, 297, 301}, // Fillette > Hauts > T-shirts
			"PULL":            {296, 297, 303}, // Fillette > Hauts > Pull
			"SWEAT":           {296, 297, 305}, // Fillette > Hauts > Sweats
		},
		DefaultCategory: []int{296},
		Layout: ColumnLayout{
			CategoryGroup:   0,
			Family:          1,
			SKU:             2,
			Price:           3,
			Name:            4,
			ColorMaterial:   5,
			Color:           6,
			TechDescription: 7,
			Description:     8,
			SizeStart:       9,
			SizeEnd:         16,
			DataStartRow:    4,
		},
		SizeColumns: map[int]string{
			9:  "2-3",
			10: "3-4",
			11: "4-5",
			12: "6-7",
			13: "7-8",
			14: "9-10",
			15: "11-12",
			16: "13-14",
		},
	}
}

// CategoriesForFamily resolves a spreadsheet family value to store
// category IDs: exact match first, then substring match, then default.
func (c CatalogConfig) CategoriesForFamily(family string) []int {
	family = strings.ToUpper(strings.TrimSpace(family))
	if family == "" {
		return c.DefaultCategory
	}

	if ids, ok := c.CategoryMapping[family]; ok {
		return ids
	}

	// Substring fallback over sorted keys so the result does not depend
	// on map iteration order.
	keys := make([]string, 0, len(c.CategoryMapping))
	for key := range c.CategoryMapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.Contains(family, key) {
			return c.CategoryMapping[key]
		}
	}

	return c.DefaultCategory
}
