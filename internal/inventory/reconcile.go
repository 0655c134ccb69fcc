// backend-go/internal/inventory/reconcile.go
package inventory

import (
	"errors"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

// ErrEmptyStock signals that the stock export carried zero records. Callers
// must not render an empty analysis as if it were a valid one.
var ErrEmptyStock = errors.New("inventory: stock export is empty")

// ReconcileReport carries validation counters from a reconcile pass.
type ReconcileReport struct {
	StockRows      int
	MatchedRows    int
	DuplicateKeys  int
	JoinedByCenter bool
}

// Reconcile left-joins the stock export with the stocking parameters.
//
// Every stock row survives exactly once. When both sides carry a center the
// join key is (code, center) so the same material can hold different
// thresholds per center; otherwise parameters apply globally by code.
// Missing configuration is a normal condition resolved by defaulting, never
// an error. Duplicate parameter keys resolve last-writer-wins; the count is
// reported so callers can log it.
func Reconcile(stock []domain.StockRecord, params []domain.StockParameters) ([]domain.UnifiedRecord, ReconcileReport, error) {
	report := ReconcileReport{StockRows: len(stock)}

	if len(stock) == 0 {
		return nil, report, ErrEmptyStock
	}

	if len(params) == 0 {
		unified := make([]domain.UnifiedRecord, 0, len(stock))
		for _, record := range stock {
			unified = append(unified, defaultedRecord(record))
		}
		return unified, report, nil
	}

	report.JoinedByCenter = joinByCenter(stock, params)

	index := make(map[string]domain.StockParameters, len(params))
	for _, param := range params {
		key := joinKey(param.Code, param.Center, report.JoinedByCenter)
		if _, exists := index[key]; exists {
			report.DuplicateKeys++
		}
		index[key] = param
	}

	unified := make([]domain.UnifiedRecord, 0, len(stock))
	for _, record := range stock {
		key := joinKey(record.Code, record.Center, report.JoinedByCenter)
		param, ok := index[key]
		if !ok {
			unified = append(unified, defaultedRecord(record))
			continue
		}

		report.MatchedRows++
		merged := domain.UnifiedRecord{
			StockRecord:        record,
			TechnicalName:      param.TechnicalName,
			MinStock:           param.MinStock,
			MaxStock:           param.MaxStock,
			LeadTimeDays:       param.LeadTimeDays,
			MonthlyConsumption: param.MonthlyConsumption,
			Criticality:        domain.NormalizeCriticality(param.Criticality),
			Supplier:           param.Supplier,
			Category:           param.Category,
			HasParameters:      true,
		}
		if merged.Supplier == "" {
			merged.Supplier = domain.SupplierUnconfigured
		}
		if merged.Description == "" {
			merged.Description = param.Description
		}
		unified = append(unified, merged)
	}

	return unified, report, nil
}

// joinByCenter reports whether both tables carry a center attribute. A
// single populated value on each side is enough: parameter sources are
// either center-scoped throughout or not at all.
func joinByCenter(stock []domain.StockRecord, params []domain.StockParameters) bool {
	stockHasCenter := false
	for _, record := range stock {
		if record.Center != "" {
			stockHasCenter = true
			break
		}
	}
	if !stockHasCenter {
		return false
	}

	for _, param := range params {
		if param.Center != "" {
			return true
		}
	}
	return false
}

func joinKey(code, center string, byCenter bool) string {
	key := CanonicalCode(code)
	if byCenter {
		key += "\x00" + CanonicalCode(center)
	}
	return key
}

// defaultedRecord fills a stock row that matched no parameters. Thresholds
// default to zero (not to the configured-row defaults) so the classifier can
// tell "never configured" apart from "configured with zero".
func defaultedRecord(record domain.StockRecord) domain.UnifiedRecord {
	return domain.UnifiedRecord{
		StockRecord:   record,
		Criticality:   domain.DefaultCriticality,
		Supplier:      domain.SupplierUnconfigured,
		HasParameters: false,
	}
}
