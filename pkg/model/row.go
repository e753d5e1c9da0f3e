// pkg/model/row.go
package model

import "strings"

// Row is one spreadsheet line with named fields, populated once at the
// spreadsheet boundary. Positional cell addressing stays inside
// pkg/spreadsheet; everything downstream works with this struct.
type Row struct {
	Index           int    // zero-based row index in the source sheet
	CategoryGroup   string // e.g. "JEANS", "COTTON"
	Family          string // e.g. "PANTALON JEANS"
	SKU             string // raw CODE ARTICLE cell, as typed
	Price           string // raw price cell
	Name            string // DESIGNATION
	ColorMaterial   string // combined color/material cell
	Color           string // COULEUR
	TechDescription string
	Description     string
	Sizes           []string // size labels whose availability cell was marked
}

// HasSKU reports whether the SKU cell is present (non-blank after trimming).
func (r Row) HasSKU() bool {
	return strings.TrimSpace(r.SKU) != ""
}

// SkippedRow records a spreadsheet row excluded from grouping, with a
// machine-readable reason.
type SkippedRow struct {
	Index  int    `json:"row"`
	RawSKU string `json:"raw_sku,omitempty"`
	Reason string `json:"reason"`
}

// Skip reasons recorded by the grouper.
const (
	SkipReasonBlankSKU      = "blank_sku"
	SkipReasonUnparsableSKU = "unparseable_sku"
)
