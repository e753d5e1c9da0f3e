// pkg/spreadsheet/reader.go
package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"woosync/pkg/config"
	"woosync/pkg/model"
)

// Reader loads catalog rows from an XLSX workbook. Positional cell
// addressing lives here; everything downstream works with model.Row.
type Reader struct {
	cfg    config.CatalogConfig
	logger *zap.Logger
}

// NewReader creates a new Reader with the given catalog configuration.
func NewReader(cfg config.CatalogConfig, logger *zap.Logger) *Reader {
	return &Reader{
		cfg:    cfg,
		logger: logger,
	}
}

// Read opens the workbook and returns typed rows from the first sheet,
// starting at startRow (zero-based; negative means the configured data
// start row). Header rows are skipped. A cell counts as present iff it
// is non-blank after trimming; size cells marked "X" (case-insensitive)
// map to their configured labels.
func (r *Reader) Read(path string, startRow int) ([]model.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	if startRow < 0 {
		startRow = r.cfg.Layout.DataStartRow
	}

	rows := make([]model.Row, 0, len(cells))
	for i := startRow; i < len(cells); i++ {
		rows = append(rows, r.rowFromCells(i, cells[i]))
	}

	r.logger.Info("Loaded spreadsheet rows",
		zap.String("path", path),
		zap.String("sheet", sheet),
		zap.Int("rows", len(rows)),
		zap.Int("startRow", startRow))

	return rows, nil
}

func (r *Reader) rowFromCells(index int, cells []string) model.Row {
	layout := r.cfg.Layout

	row := model.Row{
		Index:           index,
		CategoryGroup:   cellAt(cells, layout.CategoryGroup),
		Family:          cellAt(cells, layout.Family),
		SKU:             cellAt(cells, layout.SKU),
		Price:           cellAt(cells, layout.Price),
		Name:            cellAt(cells, layout.Name),
		ColorMaterial:   cellAt(cells, layout.ColorMaterial),
		Color:           cellAt(cells, layout.Color),
		TechDescription: cellAt(cells, layout.TechDescription),
		Description:     cellAt(cells, layout.Description),
	}

	for col := layout.SizeStart; col <= layout.SizeEnd; col++ {
		if strings.EqualFold(cellAt(cells, col), "X") {
			if label, ok := r.cfg.SizeColumns[col]; ok {
				row.Sizes = append(row.Sizes, label)
			}
		}
	}

	return row
}

// cellAt returns the trimmed cell value at a column offset; rows
// shorter than the offset yield the empty string.
func cellAt(cells []string, col int) string {
	if col < 0 || col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}
