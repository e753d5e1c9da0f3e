// pkg/sync/engine.go
package sync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"woosync/pkg/catalog"
	"woosync/pkg/config"
	"woosync/pkg/images"
	"woosync/pkg/model"
	"woosync/pkg/sku"
	"woosync/pkg/woo"
)

// API is the store surface the engine needs. The concrete woo.Client
// satisfies it; tests substitute a fake.
type API interface {
	GetProductBySKU(ctx context.Context, skuCode string) (*woo.Product, error)
	ListAllProducts(ctx context.Context) ([]woo.Product, error)
	CreateProduct(ctx context.Context, product *woo.Product) (*woo.Product, error)
	UpdateProduct(ctx context.Context, id int, product *woo.Product) (*woo.Product, error)
	ListVariations(ctx context.Context, productID int) ([]woo.Variation, error)
	CreateVariation(ctx context.Context, productID int, variation *woo.Variation) (*woo.Variation, error)
	UpdateVariation(ctx context.Context, productID, variationID int, variation *woo.Variation) (*woo.Variation, error)
	UploadImage(ctx context.Context, path string) (*woo.Media, error)
}

// Options control one sync run.
type Options struct {
	DryRun        bool
	SkipExisting  bool
	Limit         int // 0 means no limit
	DefaultStatus string
	StockStatus   string
}

// Engine drives a sync run: group spreadsheet rows, project each group
// into a catalog draft, then create or update the store product and its
// variations. One bad group never aborts the run; failures land in the
// summary's failed bucket with the offending identity.
type Engine struct {
	api       API
	opts      Options
	grouper   *catalog.Grouper
	projector *catalog.Projector
	logger    *zap.Logger

	// Uppercased SKUs already present in the store, loaded once per run
	// when skip-existing is on. nil means unknown, always check live.
	existing map[string]struct{}
}

// NewEngine creates a sync engine over the given store API.
func NewEngine(api API, catalogCfg config.CatalogConfig, opts Options, logger *zap.Logger) *Engine {
	return &Engine{
		api:       api,
		opts:      opts,
		grouper:   catalog.NewGrouper(catalogCfg, logger),
		projector: catalog.NewProjector(catalogCfg, logger),
		logger:    logger,
	}
}

// Run executes one sync over the given rows and image index and returns
// the run summary. The returned error is reserved for run-level
// problems (e.g. the initial store listing); per-group failures are
// reported in the summary instead.
func (e *Engine) Run(ctx context.Context, rows []model.Row, idx *images.Index) (*Summary, error) {
	summary := NewSummary(e.opts.DryRun)

	if e.opts.SkipExisting && !e.opts.DryRun {
		if err := e.loadExistingSKUs(ctx); err != nil {
			return nil, err
		}
	}

	groups, skippedRows := e.grouper.Group(rows)
	summary.SkippedRows = skippedRows

	for _, group := range groups {
		if e.opts.Limit > 0 && summary.Processed >= e.opts.Limit {
			e.logger.Info("Product limit reached", zap.Int("limit", e.opts.Limit))
			break
		}

		draft, err := e.projector.Project(group, idx)
		if err != nil {
			var perr *catalog.ProjectionError
			if errors.As(err, &perr) {
				e.logger.Warn("Skipping group",
					zap.String("baseSku", group.BaseSKU),
					zap.String("reason", perr.Reason))
				summary.Add(ItemResult{
					SKU:    group.BaseSKU,
					Status: StatusSkipped,
					Reason: perr.Reason,
				})
				continue
			}
			return nil, err
		}

		summary.Add(e.syncGroup(ctx, group, draft))
	}

	summary.Complete()

	e.logger.Info("Sync complete",
		zap.String("runId", summary.RunID),
		zap.Bool("dryRun", summary.DryRun),
		zap.Int("processed", summary.Processed),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))

	return summary, nil
}

// loadExistingSKUs lists every store product once and records its SKU
// and base SKU, so definitely-new groups skip the per-group lookup.
func (e *Engine) loadExistingSKUs(ctx context.Context) error {
	products, err := e.api.ListAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list store products: %w", err)
	}

	e.existing = make(map[string]struct{})
	for _, p := range products {
		raw := strings.TrimSpace(p.SKU)
		if raw == "" {
			continue
		}
		e.existing[strings.ToUpper(raw)] = struct{}{}
		if base := sku.BaseCode(raw); base != "" {
			e.existing[strings.ToUpper(base)] = struct{}{}
		}
	}

	e.logger.Info("Loaded existing product SKUs", zap.Int("count", len(e.existing)))
	return nil
}

func (e *Engine) knownSKU(s string) bool {
	if e.existing == nil {
		return true // unknown: always check live
	}
	_, ok := e.existing[strings.ToUpper(s)]
	return ok
}

// findExisting locates the store product for a group: base SKU first,
// then each variant's raw SKU (common in messy imports where a single
// variant was created as its own product).
func (e *Engine) findExisting(ctx context.Context, group *model.ProductGroup) (*woo.Product, error) {
	candidates := []string{group.BaseSKU}
	for _, v := range group.Variants {
		candidates = append(candidates, v.RawSKU)
	}

	for _, candidate := range candidates {
		if !e.knownSKU(candidate) {
			continue
		}
		product, err := e.api.GetProductBySKU(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if product != nil {
			return product, nil
		}
	}

	return nil, nil
}

// isComplete reports whether an existing product already has variations
// and images, i.e. nothing left for the sync to add.
func isComplete(p *woo.Product) bool {
	return len(p.Variations) > 0 && len(p.Images) > 0
}

// syncGroup pushes one projected group to the store. All failures are
// converted into a failed ItemResult at this boundary.
func (e *Engine) syncGroup(ctx context.Context, group *model.ProductGroup, draft *model.Draft) ItemResult {
	result := ItemResult{
		SKU:        draft.BaseSKU,
		Name:       draft.Name,
		Colors:     len(draft.Colors),
		Sizes:      len(draft.Sizes),
		Variations: len(draft.Variations),
	}

	existing, err := e.findExisting(ctx, group)
	if err != nil {
		return e.failed(result, err, "lookup_product")
	}

	if existing != nil && e.opts.SkipExisting && isComplete(existing) {
		e.logger.Info("Skipping complete product",
			zap.String("baseSku", draft.BaseSKU),
			zap.Int("productId", existing.ID))
		result.Status = StatusSkipped
		result.Reason = SkipReasonComplete
		result.ProductID = existing.ID
		return result
	}

	if e.opts.DryRun {
		e.logger.Info("Dry run, would sync product",
			zap.String("baseSku", draft.BaseSKU),
			zap.String("name", draft.Name),
			zap.Int("variations", len(draft.Variations)))
		result.Status = StatusPlanned
		return result
	}

	// Upload the gallery first. Upload failures degrade to "no image";
	// they never fail the group.
	uploaded := make(map[string]int) // basename -> media ID
	var gallery []woo.ImageRef
	for _, path := range draft.Images {
		media, err := e.api.UploadImage(ctx, path)
		if err != nil {
			e.logger.Warn("Image upload failed, continuing without it",
				zap.String("baseSku", draft.BaseSKU),
				zap.String("image", path),
				zap.Error(err))
			continue
		}
		uploaded[filepath.Base(path)] = media.ID
		gallery = append(gallery, woo.ImageRef{ID: media.ID})
	}

	// Per-color representative images, reusing gallery uploads by
	// basename instead of uploading the same file twice.
	colorMedia := make(map[string]int)
	for color, path := range draft.ColorImages {
		if id, ok := uploaded[filepath.Base(path)]; ok {
			colorMedia[color] = id
			continue
		}
		media, err := e.api.UploadImage(ctx, path)
		if err != nil {
			e.logger.Warn("Variation image upload failed, continuing without it",
				zap.String("baseSku", draft.BaseSKU),
				zap.String("color", color),
				zap.Error(err))
			continue
		}
		colorMedia[color] = media.ID
	}

	payload := e.productPayload(draft, gallery)

	var product *woo.Product
	if existing != nil {
		product, err = e.api.UpdateProduct(ctx, existing.ID, payload)
		if err != nil {
			return e.failed(result, err, "update_product")
		}
		result.Status = StatusUpdated
	} else {
		product, err = e.api.CreateProduct(ctx, payload)
		if err != nil {
			return e.failed(result, err, "create_product")
		}
		result.Status = StatusCreated
	}
	result.ProductID = product.ID

	synced, err := e.syncVariations(ctx, product.ID, draft, colorMedia)
	if err != nil {
		return e.failed(result, err, "sync_variations")
	}
	result.Variations = synced

	e.logger.Info("Synced product",
		zap.String("baseSku", draft.BaseSKU),
		zap.Int("productId", product.ID),
		zap.String("status", string(result.Status)),
		zap.Int("variations", synced))

	return result
}

// productPayload builds the variable-product create/update body.
func (e *Engine) productPayload(draft *model.Draft, gallery []woo.ImageRef) *woo.Product {
	cfg := e.projector.Config()

	payload := &woo.Product{
		Name:             draft.Name,
		Type:             "variable",
		SKU:              draft.BaseSKU,
		Status:           e.opts.DefaultStatus,
		Description:      draft.Description,
		ShortDescription: draft.ShortDescription,
		Images:           gallery,
	}
	for _, id := range draft.CategoryIDs {
		payload.Categories = append(payload.Categories, woo.CategoryRef{ID: id})
	}

	payload.Attributes = append(payload.Attributes, woo.ProductAttribute{
		ID:        cfg.SizeAttribute.ID,
		Name:      cfg.SizeAttribute.Name,
		Position:  0,
		Visible:   true,
		Variation: true,
		Options:   draft.Sizes,
	})
	if len(draft.Colors) > 0 {
		payload.Attributes = append(payload.Attributes, woo.ProductAttribute{
			ID:        cfg.ColorAttribute.ID,
			Name:      cfg.ColorAttribute.Name,
			Position:  1,
			Visible:   true,
			Variation: true,
			Options:   draft.Colors,
		})
	}

	return payload
}

// syncVariations creates or updates every color x size combination,
// matching existing variations by their attribute pair. A failure on a
// single combination is logged and skipped; a failure listing the
// existing variations fails the group.
func (e *Engine) syncVariations(ctx context.Context, productID int, draft *model.Draft, colorMedia map[string]int) (int, error) {
	cfg := e.projector.Config()

	existing, err := e.api.ListVariations(ctx, productID)
	if err != nil {
		return 0, err
	}

	type comboKey struct{ size, color string }
	existingByCombo := make(map[comboKey]woo.Variation, len(existing))
	for _, v := range existing {
		var key comboKey
		for _, attr := range v.Attributes {
			switch attr.ID {
			case cfg.SizeAttribute.ID:
				key.size = attr.Option
			case cfg.ColorAttribute.ID:
				key.color = attr.Option
			}
		}
		existingByCombo[key] = v
	}

	synced := 0
	for _, vd := range draft.Variations {
		payload := &woo.Variation{
			RegularPrice: vd.Price,
			StockStatus:  e.opts.StockStatus,
			Attributes: []woo.VariationAttribute{
				{ID: cfg.SizeAttribute.ID, Option: vd.Size},
			},
		}
		if vd.Color != "" {
			payload.Attributes = append(payload.Attributes, woo.VariationAttribute{
				ID:     cfg.ColorAttribute.ID,
				Option: vd.Color,
			})
		}
		if id, ok := colorMedia[vd.Color]; ok {
			payload.Image = &woo.ImageRef{ID: id}
		}

		key := comboKey{size: vd.Size, color: vd.Color}
		if ev, ok := existingByCombo[key]; ok {
			_, err = e.api.UpdateVariation(ctx, productID, ev.ID, payload)
		} else {
			_, err = e.api.CreateVariation(ctx, productID, payload)
		}
		if err != nil {
			e.logger.Error("Failed to sync variation",
				zap.Int("productId", productID),
				zap.String("size", vd.Size),
				zap.String("color", vd.Color),
				zap.Error(err))
			continue
		}
		synced++
	}

	return synced, nil
}

func (e *Engine) failed(result ItemResult, err error, stage string) ItemResult {
	record := NewItemError(err, ErrorCategoryAPI).WithSKU(result.SKU).WithStage(stage)
	e.logger.Error("Product sync failed",
		zap.String("baseSku", result.SKU),
		zap.String("stage", stage),
		zap.Error(err))
	result.Status = StatusFailed
	result.Error = record.String()
	return result
}
