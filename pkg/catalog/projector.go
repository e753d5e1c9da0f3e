// pkg/catalog/projector.go
package catalog

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"woosync/pkg/config"
	"woosync/pkg/images"
	"woosync/pkg/model"
)

// Projection failure reasons.
const (
	ReasonNoName  = "no_name"
	ReasonNoSizes = "no_sizes"
)

// ProjectionError reports that a group cannot be turned into a catalog
// entry, with a machine-readable reason. One failed group never aborts
// the run; the caller records it and moves on.
type ProjectionError struct {
	BaseSKU string
	Reason  string
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("cannot project %s: %s", e.BaseSKU, e.Reason)
}

// Projector turns product groups into complete catalog-entry drafts.
type Projector struct {
	cfg    config.CatalogConfig
	logger *zap.Logger
}

// NewProjector creates a new Projector with the given catalog configuration.
func NewProjector(cfg config.CatalogConfig, logger *zap.Logger) *Projector {
	return &Projector{
		cfg:    cfg,
		logger: logger,
	}
}

// Config exposes the catalog configuration the projector was built with.
func (p *Projector) Config() config.CatalogConfig {
	return p.cfg
}

// colorAccum collects per-color attributes across variants in row order.
type colorAccum struct {
	sizes map[string]struct{}
	price string
	image string
}

// Project produces the catalog-entry draft for a group: representative
// fields, attribute option lists, image assignments and the full
// color x size variation matrix. It is pure over the group and index;
// projecting the same inputs twice yields identical drafts.
func (p *Projector) Project(group *model.ProductGroup, idx *images.Index) (*model.Draft, error) {
	// Representative fields come from the first variant with a name,
	// in spreadsheet row order.
	var rep *model.VariantRow
	for _, v := range group.Variants {
		if strings.TrimSpace(v.Name) != "" {
			rep = v
			break
		}
	}
	if rep == nil {
		return nil, &ProjectionError{BaseSKU: group.BaseSKU, Reason: ReasonNoName}
	}

	var colors []string
	seenColors := make(map[string]struct{})
	sizeUnion := make(map[string]struct{})
	colorData := make(map[string]*colorAccum)
	var gallery []string
	seenBasenames := make(map[string]struct{})
	price := ""

	for _, v := range group.Variants {
		color := strings.TrimSpace(v.Color)
		if color != "" {
			if _, seen := seenColors[color]; !seen {
				seenColors[color] = struct{}{}
				colors = append(colors, color)
			}
		}

		for _, size := range v.Sizes {
			sizeUnion[size] = struct{}{}
		}

		// Minimum parseable price wins; absence never overwrites an
		// earlier price.
		if v.Price != "" && (price == "" || mustPrice(v.Price) < mustPrice(price)) {
			price = v.Price
		}

		v.Images = idx.Resolve(v.RawSKU)
		for _, img := range v.Images {
			name := filepath.Base(img)
			if _, seen := seenBasenames[name]; !seen {
				seenBasenames[name] = struct{}{}
				gallery = append(gallery, img)
			}
		}

		cd, ok := colorData[color]
		if !ok {
			cd = &colorAccum{sizes: make(map[string]struct{})}
			colorData[color] = cd
		}
		for _, size := range v.Sizes {
			cd.sizes[size] = struct{}{}
		}
		if cd.price == "" {
			cd.price = v.Price
		}
		if cd.image == "" && len(v.Images) > 0 {
			cd.image = v.Images[0]
		}
	}

	if len(sizeUnion) == 0 {
		return nil, &ProjectionError{BaseSKU: group.BaseSKU, Reason: ReasonNoSizes}
	}
	sizes := SortSizes(sizeUnion)

	colorImages := make(map[string]string)
	for color, cd := range colorData {
		if color != "" && cd.image != "" {
			colorImages[color] = cd.image
		}
	}

	draft := &model.Draft{
		BaseSKU:          group.BaseSKU,
		Name:             strings.TrimSpace(rep.Name),
		Family:           strings.TrimSpace(rep.Family),
		Description:      strings.TrimSpace(rep.Description),
		ShortDescription: strings.TrimSpace(rep.TechDescription),
		CategoryIDs:      p.cfg.CategoriesForFamily(rep.Family),
		Colors:           colors,
		Sizes:            sizes,
		Price:            price,
		Images:           gallery,
		ColorImages:      colorImages,
	}

	// Variation matrix: colors x per-color sizes, with a single
	// synthetic no-color row when the sheet carries no colors at all.
	effective := colors
	if len(effective) == 0 {
		effective = []string{""}
	}
	for _, color := range effective {
		colorSizes := sizes
		colorPrice := price
		colorImage := ""
		if cd, ok := colorData[color]; ok {
			if len(cd.sizes) > 0 {
				colorSizes = SortSizes(cd.sizes)
			}
			if cd.price != "" {
				colorPrice = cd.price
			}
			colorImage = cd.image
		}
		for _, size := range colorSizes {
			draft.Variations = append(draft.Variations, model.VariationDraft{
				Size:  size,
				Color: color,
				Price: colorPrice,
				Image: colorImage,
			})
		}
	}

	p.logger.Debug("Projected product group",
		zap.String("baseSku", group.BaseSKU),
		zap.Int("colors", len(colors)),
		zap.Int("sizes", len(sizes)),
		zap.Int("variations", len(draft.Variations)))

	return draft, nil
}

// SortSizes orders size labels by length first, then lexicographically,
// so short numeric labels like "2-3" sort before "11-12" without a
// hardcoded size table.
func SortSizes(set map[string]struct{}) []string {
	sizes := make([]string, 0, len(set))
	for s := range set {
		sizes = append(sizes, s)
	}
	sort.Slice(sizes, func(i, j int) bool {
		if len(sizes[i]) != len(sizes[j]) {
			return len(sizes[i]) < len(sizes[j])
		}
		return sizes[i] < sizes[j]
	})
	return sizes
}

// mustPrice parses a price already cleaned by CleanPrice.
func mustPrice(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
