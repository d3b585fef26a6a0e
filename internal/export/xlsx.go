package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/tezkor/menu-tracker/constants"
	"github.com/tezkor/menu-tracker/internal/common"
)

const sheetName = "Menu"

var unsafeRefRE = regexp.MustCompile(`[^0-9A-Za-zА-Яа-яЁё._-]+`)

// XLSXWriter appends export rows to an XLSX workbook per sheet reference.
// One workbook per reference, created on first export, under a configured
// directory.
type XLSXWriter struct {
	dir    string
	logger *slog.Logger
}

func NewXLSXWriter(dir string, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{dir: dir, logger: logger}
}

// Export appends rows to the workbook addressed by sheetRef. Empty input is a
// no-op; an unusable reference is an input error, everything else surfaces as
// an external failure so the caller can offer a retry.
func (w *XLSXWriter) Export(ctx context.Context, sheetRef string, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	name := unsafeRefRE.ReplaceAllString(strings.TrimSpace(sheetRef), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return common.NewAppError("EXPORT_BAD_REF", "sheet reference is empty", common.ErrInvalidInput)
	}
	path := filepath.Join(w.dir, name+".xlsx")

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return common.NewAppError("EXPORT_IO", "create export dir", common.ErrExternal)
	}

	f, next, err := w.openWorkbook(path)
	if err != nil {
		return common.NewAppError("EXPORT_IO", fmt.Sprintf("open workbook %s", path), common.ErrExternal)
	}
	defer func() { _ = f.Close() }()

	for _, r := range rows {
		for col, v := range r.Values() {
			cell, _ := excelize.CoordinatesToCellName(col+1, next)
			_ = f.SetCellValue(sheetName, cell, v)
		}
		next++
	}

	if err := f.SaveAs(path); err != nil {
		return common.NewAppError("EXPORT_IO", fmt.Sprintf("save workbook %s", path), common.ErrExternal)
	}

	w.logger.Info("export.ok",
		"batch_id", uuid.New(), "path", path, "rows", len(rows),
	)
	return nil
}

// openWorkbook opens an existing workbook or creates one with the header row,
// returning the first free row index.
func (w *XLSXWriter) openWorkbook(path string) (*excelize.File, int, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, 0, err
		}
		existing, err := f.GetRows(sheetName)
		if err != nil {
			_ = f.Close()
			return nil, 0, err
		}
		return f, len(existing) + 1, nil
	}

	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, 0, err
	}
	// NewFile seeds a default sheet; drop it so only Menu remains.
	_ = f.DeleteSheet("Sheet1")
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range constants.ExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	return f, 2, nil
}
