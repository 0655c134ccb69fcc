// backend-go/internal/export/csv.go
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

// analysisHeader is the column order the planning team expects, matching the
// dashboard table left to right.
var analysisHeader = []string{
	"Codigo",
	"Descripcion",
	"Nombre_Tecnico",
	"Centro",
	"Almacen",
	"Stock_Actual",
	"Unidad",
	"Stock_Minimo",
	"Stock_Maximo",
	"Brecha_Minimo",
	"Cumplimiento_Pct",
	"Estado",
	"Accion",
	"Cantidad_Comprar",
	"Valor_Compra",
	"Criticidad",
	"Proveedor",
	"Lead_Time_dias",
	"Precio_Unitario",
	"Valor_Stock",
}

// WriteAnalysisCSV streams the analyzed table as CSV in the canonical column
// order.
func WriteAnalysisCSV(w io.Writer, records []domain.AnalyzedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(analysisHeader); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Code,
			record.Description,
			record.TechnicalName,
			record.Center,
			record.Warehouse,
			formatFloat(record.OnHand),
			record.Unit,
			formatFloat(record.MinStock),
			formatFloat(record.MaxStock),
			formatFloat(record.GapToMin),
			formatFloat(record.FulfillmentPct),
			string(record.Status),
			record.Action,
			strconv.Itoa(record.PurchaseQty),
			formatFloat(record.PurchaseValue),
			record.Criticality,
			record.Supplier,
			strconv.Itoa(record.LeadTimeDays),
			formatFloat(record.UnitPrice),
			formatFloat(record.StockValue),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row %s: %w", record.Code, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return cw.Error()
}
