// backend-go/internal/ingest/normalize.go
package ingest

import (
	"strconv"
	"strings"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

// Header aliases map the naming conventions of the SAP export and the
// parameters sheet onto canonical field names. Matching is case- and
// accent-insensitive on the normalized form.
var stockHeaderAliases = map[string]string{
	"codigo material":         "codigo",
	"codigo":                  "codigo",
	"texto breve de material": "descripcion",
	"descripcion":             "descripcion",
	"centro":                  "centro",
	"nombre centro de costo":  "centro_nombre",
	"centro nombre":           "centro_nombre",
	"ubicacion":               "almacen",
	"almacen":                 "almacen",
	"cantidad":                "stock_actual",
	"stock actual":            "stock_actual",
	"unidad de medida":        "unidad",
	"unidad":                  "unidad",
	"valor por unidad":        "precio_unitario",
	"precio unitario":         "precio_unitario",
	"valor total":             "valor_total",
}

var paramHeaderAliases = map[string]string{
	"codigo":              "codigo",
	"centro":              "centro",
	"descripcion":         "descripcion",
	"nombre_tecnico":      "nombre_tecnico",
	"nombre tecnico":      "nombre_tecnico",
	"centro_nombre":       "centro_nombre",
	"stock_minimo":        "stock_minimo",
	"stock minimo":        "stock_minimo",
	"stock_maximo":        "stock_maximo",
	"stock maximo":        "stock_maximo",
	"lead_time_dias":      "lead_time",
	"lead time dias":      "lead_time",
	"criticidad":          "criticidad",
	"consumo_prom_mensual": "consumo_mensual",
	"consumo prom mensual": "consumo_mensual",
	"proveedor":           "proveedor",
	"categoria":           "categoria",
	"observaciones":       "observaciones",
}

func normalizeHeader(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	replacer := strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n")
	return replacer.Replace(lowered)
}

// headerIndex maps canonical column names to their position in the header
// row, using the provided alias table.
func headerIndex(header []string, aliases map[string]string) map[string]int {
	index := make(map[string]int, len(header))
	for i, cell := range header {
		if canonical, ok := aliases[normalizeHeader(cell)]; ok {
			if _, taken := index[canonical]; !taken {
				index[canonical] = i
			}
		}
	}
	return index
}

func cellAt(row []string, index map[string]int, field string) string {
	pos, ok := index[field]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

// parseFloat coerces a spreadsheet cell to a number, defaulting instead of
// failing: real-world exports carry blanks, dashes and locale formatting.
func parseFloat(raw string, fallback float64) float64 {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return fallback
	}
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	// "1.234,56" style: dots are thousands separators, comma is decimal.
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return fallback
	}
	return value
}

func parseInt(raw string, fallback int) int {
	value := parseFloat(raw, float64(fallback))
	return int(value)
}

// StockFromRows turns a normalized header+rows table into stock records.
// Rows without a material code are dropped; all numeric fields coerce with
// a zero default and derived stock value is recomputed.
func StockFromRows(rows [][]string) []domain.StockRecord {
	if len(rows) < 2 {
		return nil
	}

	index := headerIndex(rows[0], stockHeaderAliases)
	records := make([]domain.StockRecord, 0, len(rows)-1)

	for _, row := range rows[1:] {
		code := cellAt(row, index, "codigo")
		if code == "" {
			continue
		}

		record := domain.StockRecord{
			Code:        code,
			Description: cellAt(row, index, "descripcion"),
			Center:      cellAt(row, index, "centro"),
			CenterName:  cellAt(row, index, "centro_nombre"),
			Warehouse:   cellAt(row, index, "almacen"),
			OnHand:      parseFloat(cellAt(row, index, "stock_actual"), 0),
			Unit:        cellAt(row, index, "unidad"),
			UnitPrice:   parseFloat(cellAt(row, index, "precio_unitario"), 0),
		}

		if record.Description == "" {
			record.Description = domain.DefaultDescription
		}
		if record.Unit == "" {
			record.Unit = domain.DefaultUnit
		}
		if record.Warehouse == "" {
			record.Warehouse = domain.DefaultWarehouse
		}
		if record.OnHand < 0 {
			record.OnHand = 0
		}
		if record.UnitPrice < 0 {
			record.UnitPrice = 0
		}
		record.StockValue = record.OnHand * record.UnitPrice

		records = append(records, record)
	}

	return records
}

// ParametersFromRows turns a normalized header+rows table into stocking
// parameters. A row that exists but carries unparsable threshold cells gets
// the configured-row defaults, which are distinct from the join-miss zeroes
// applied by the reconciler.
func ParametersFromRows(rows [][]string) []domain.StockParameters {
	if len(rows) < 2 {
		return nil
	}

	index := headerIndex(rows[0], paramHeaderAliases)
	params := make([]domain.StockParameters, 0, len(rows)-1)

	for _, row := range rows[1:] {
		code := cellAt(row, index, "codigo")
		if code == "" {
			continue
		}

		param := domain.StockParameters{
			Code:               code,
			Center:             cellAt(row, index, "centro"),
			Description:        cellAt(row, index, "descripcion"),
			TechnicalName:      cellAt(row, index, "nombre_tecnico"),
			MinStock:           parseFloat(cellAt(row, index, "stock_minimo"), domain.DefaultMinStock),
			MaxStock:           parseFloat(cellAt(row, index, "stock_maximo"), domain.DefaultMaxStock),
			LeadTimeDays:       parseInt(cellAt(row, index, "lead_time"), domain.DefaultLeadTimeDays),
			MonthlyConsumption: parseFloat(cellAt(row, index, "consumo_mensual"), domain.DefaultMonthlyConsumption),
			Criticality:        domain.NormalizeCriticality(cellAt(row, index, "criticidad")),
			Supplier:           cellAt(row, index, "proveedor"),
			Category:           cellAt(row, index, "categoria"),
			Observations:       cellAt(row, index, "observaciones"),
		}

		if param.Supplier == "" {
			param.Supplier = domain.SupplierPendingAssignment
		}
		if param.MinStock < 0 {
			param.MinStock = 0
		}
		if param.MaxStock < param.MinStock {
			param.MaxStock = param.MinStock
		}
		if param.LeadTimeDays < 1 {
			param.LeadTimeDays = 1
		}
		if param.MonthlyConsumption < 0 {
			param.MonthlyConsumption = 0
		}

		params = append(params, param)
	}

	return params
}
