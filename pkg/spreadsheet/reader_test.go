package spreadsheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"woosync/pkg/config"
)

// writeWorkbook builds a small catalog workbook with the real column
// layout: header rows, then data rows with SKU, price, name, color and
// size availability marks.
func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	set := func(values map[string]interface{}) {
		for cell, v := range values {
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	// Header rows 1-4 (data starts at Excel row 5, zero-based index 4).
	set(map[string]interface{}{"A1": "CATALOGUE"})
	set(map[string]interface{}{"A3": "FAMILLE", "C3": "CODE ARTICLE", "D3": "PRIX"})

	// Data row 5: full variant with two sizes marked.
	set(map[string]interface{}{
		"A5": "JEANS",
		"B5": "PANTALON JEANS",
		"C5": "WPJF 001-127",
		"D5": 19.99,
		"E5": "Jean slim fille",
		"G5": "ROUGE",
		"H5": "Coupe slim",
		"I5": "Un jean confortable",
		"J5": "X",
		"N5": "x",
	})

	// Data row 6: no SKU.
	set(map[string]interface{}{"E6": "Ligne sans code"})

	// Data row 7: short row, SKU only.
	set(map[string]interface{}{"C7": "WPGR 002"})

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func Test_Read_TypedRows(t *testing.T) {
	path := writeWorkbook(t)
	reader := NewReader(config.DefaultCatalogConfig(), zap.NewNop())

	rows, err := reader.Read(path, -1)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[0]
	require.Equal(t, 4, first.Index)
	require.Equal(t, "PANTALON JEANS", first.Family)
	require.Equal(t, "WPJF 001-127", first.SKU)
	require.Equal(t, "19.99", first.Price)
	require.Equal(t, "Jean slim fille", first.Name)
	require.Equal(t, "ROUGE", first.Color)
	require.Equal(t, "Coupe slim", first.TechDescription)
	require.Equal(t, "Un jean confortable", first.Description)
	require.Equal(t, []string{"2-3", "7-8"}, first.Sizes)

	require.False(t, rows[1].HasSKU())

	require.Equal(t, "WPGR 002", rows[2].SKU)
	require.Empty(t, rows[2].Sizes)
}

func Test_Read_StartRowOverride(t *testing.T) {
	path := writeWorkbook(t)
	reader := NewReader(config.DefaultCatalogConfig(), zap.NewNop())

	rows, err := reader.Read(path, 6)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "WPGR 002", rows[0].SKU)
}

func Test_Read_MissingFile(t *testing.T) {
	reader := NewReader(config.DefaultCatalogConfig(), zap.NewNop())
	_, err := reader.Read(filepath.Join(t.TempDir(), "absent.xlsx"), -1)
	require.Error(t, err)
}
