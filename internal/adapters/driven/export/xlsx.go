// Package export writes contract history to spreadsheet workbooks.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
)

// Ensure XLSXExporter implements the interface.
var _ driven.HistoryExporter = (*XLSXExporter)(nil)

// SheetName is the worksheet holding the history rows.
const SheetName = "Contratos"

const timeLayout = "2006-01-02 15:04:05"

// Headers are the column titles of the history sheet.
var Headers = []string{
	"ID",
	"Locatário",
	"Arquivo",
	"Modelo",
	"Destino",
	"Status",
	"Erro",
	"Mensagem",
	"Tokens não resolvidos",
	"Criado em",
	"Atualizado em",
}

// XLSXExporter renders history records as an XLSX workbook.
type XLSXExporter struct{}

// NewXLSXExporter creates an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export writes one row per record, in the order given, to w.
func (e *XLSXExporter) Export(ctx context.Context, records []domain.ContractRecord, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet so the workbook has exactly one.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
	}

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		values := []any{
			r.ID,
			r.Locatee,
			r.Filename,
			r.Schema.String(),
			r.Target.String(),
			r.Status.String(),
			string(r.ErrorKind),
			r.Message,
			strings.Join(r.Unresolved, ", "),
			formatTime(r.CreatedAt),
			formatTime(r.UpdatedAt),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 38) // id
	_ = f.SetColWidth(SheetName, "B", "B", 28) // locatee
	_ = f.SetColWidth(SheetName, "C", "C", 48) // file
	_ = f.SetColWidth(SheetName, "D", "G", 14)
	_ = f.SetColWidth(SheetName, "H", "I", 40)
	_ = f.SetColWidth(SheetName, "J", "K", 20)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}
