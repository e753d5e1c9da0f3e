// pkg/model/draft.go
package model

// Draft is a complete catalog-entry description produced by projection,
// ready to hand to the store API. Computed once per run, never mutated
// afterward.
type Draft struct {
	BaseSKU          string
	Name             string
	Family           string
	Description      string
	ShortDescription string
	CategoryIDs      []int
	Colors           []string // first-occurrence order, deduplicated
	Sizes            []string // union, sorted by (label length, lexicographic)
	Price            string   // minimum parseable variant price
	Images           []string // group gallery, deduplicated by file basename
	ColorImages      map[string]string // color -> representative image path
	Variations       []VariationDraft
}

// VariationDraft is one purchasable color x size combination.
type VariationDraft struct {
	Size  string
	Color string // empty for the synthetic no-color row
	Price string
	Image string // representative image path, empty when none resolved
}
