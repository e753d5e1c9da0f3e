// pkg/catalog/grouper.go
package catalog

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"woosync/pkg/config"
	"woosync/pkg/model"
	"woosync/pkg/sku"
)

// Grouper partitions spreadsheet rows into logical products by base SKU.
type Grouper struct {
	cfg    config.CatalogConfig
	logger *zap.Logger
}

// NewGrouper creates a new Grouper with the given catalog configuration.
func NewGrouper(cfg config.CatalogConfig, logger *zap.Logger) *Grouper {
	return &Grouper{
		cfg:    cfg,
		logger: logger,
	}
}

// Group scans rows left to right and collects them into product groups
// keyed by parsed base SKU, preserving first-seen base order. Rows with
// a blank or unparseable SKU are excluded with a recorded reason and
// never abort the scan. Duplicate variation tokens within a group are
// legal; the projector resolves them later.
func (g *Grouper) Group(rows []model.Row) ([]*model.ProductGroup, []model.SkippedRow) {
	byBase := make(map[string]*model.ProductGroup)
	var order []*model.ProductGroup
	var skipped []model.SkippedRow

	for _, row := range rows {
		if !row.HasSKU() {
			skipped = append(skipped, model.SkippedRow{
				Index:  row.Index,
				Reason: model.SkipReasonBlankSKU,
			})
			continue
		}

		parsed := sku.Parse(row.SKU)
		if parsed.IsZero() {
			skipped = append(skipped, model.SkippedRow{
				Index:  row.Index,
				RawSKU: row.SKU,
				Reason: model.SkipReasonUnparsableSKU,
			})
			continue
		}

		group, ok := byBase[parsed.Base]
		if !ok {
			group = &model.ProductGroup{BaseSKU: parsed.Base}
			byBase[parsed.Base] = group
			order = append(order, group)
		}

		// The color cell falls back to the variation token: rows like
		// "WPMF001 ROSE" carry the color only inside the SKU.
		color := strings.TrimSpace(row.Color)
		if color == "" {
			color = parsed.Variation
		}

		group.Append(&model.VariantRow{
			RowIndex:        row.Index,
			RawSKU:          strings.TrimSpace(row.SKU),
			Variation:       parsed.Variation,
			Color:           color,
			Sizes:           row.Sizes,
			Price:           CleanPrice(row.Price),
			Name:            row.Name,
			Family:          row.Family,
			TechDescription: row.TechDescription,
			Description:     row.Description,
		})
	}

	g.logger.Info("Grouped spreadsheet rows",
		zap.Int("rows", len(rows)),
		zap.Int("groups", len(order)),
		zap.Int("skipped", len(skipped)))

	return order, skipped
}

// CleanPrice normalizes a raw price cell to a 2-decimal string, or the
// empty string when the cell is blank or not a number.
func CleanPrice(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ""
	}

	return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64)
}
