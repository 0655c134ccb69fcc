// backend-go/internal/export/xlsx.go
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

const analysisSheet = "Analisis"

// WriteAnalysisXLSX writes the analyzed table as a single-sheet workbook with
// the same column order as the CSV export.
func WriteAnalysisXLSX(w io.Writer, records []domain.AnalyzedRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(analysisSheet)
	if err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	header := make([]interface{}, len(analysisHeader))
	for i, name := range analysisHeader {
		header[i] = name
	}
	if err := f.SetSheetRow(analysisSheet, "A1", &header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			record.Code,
			record.Description,
			record.TechnicalName,
			record.Center,
			record.Warehouse,
			record.OnHand,
			record.Unit,
			record.MinStock,
			record.MaxStock,
			record.GapToMin,
			record.FulfillmentPct,
			string(record.Status),
			record.Action,
			record.PurchaseQty,
			record.PurchaseValue,
			record.Criticality,
			record.Supplier,
			record.LeadTimeDays,
			record.UnitPrice,
			record.StockValue,
		}
		if err := f.SetSheetRow(analysisSheet, cell, &row); err != nil {
			return fmt.Errorf("export: write row %s: %w", record.Code, err)
		}
	}

	return f.Write(w)
}

// WriteSolpedCSV streams generated purchase-request lines in the layout the
// procurement team imports into SAP.
func WriteSolpedCSV(w io.Writer, lines []domain.SolpedLine) error {
	header := []string{
		"SOLPED_Numero", "Fecha", "Codigo", "Descripcion", "Nombre_Tecnico",
		"Centro", "Cantidad_Solicitada", "Unidad", "Precio_Unitario",
		"Valor_Total", "Criticidad", "Proveedor", "Solicitado_Por", "Estado",
	}
	rows := make([][]string, 0, len(lines)+1)
	rows = append(rows, header)
	for _, line := range lines {
		rows = append(rows, []string{
			line.Number,
			line.Date,
			line.Code,
			line.Description,
			line.TechnicalName,
			line.Center,
			fmt.Sprintf("%d", line.Quantity),
			line.Unit,
			formatFloat(line.UnitPrice),
			formatFloat(line.TotalValue),
			line.Criticality,
			line.Supplier,
			line.RequestedBy,
			string(line.State),
		})
	}
	return writeAll(w, rows)
}
