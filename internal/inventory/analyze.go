// backend-go/internal/inventory/analyze.go
package inventory

import (
	"fmt"
	"math"
	"sort"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

// lowBandFactor is the danger band above the minimum: a line whose surplus
// over the minimum is below 20% of that minimum is still BAJO.
const lowBandFactor = 0.2

// Analyze derives gaps, status, recommended action, purchase quantity and
// priority for every unified record, returning a fresh slice sorted most
// urgent first. Pure and deterministic; the input is never mutated.
func Analyze(unified []domain.UnifiedRecord) []domain.AnalyzedRecord {
	analyzed := make([]domain.AnalyzedRecord, 0, len(unified))
	for _, record := range unified {
		analyzed = append(analyzed, analyzeRecord(record))
	}

	sort.SliceStable(analyzed, func(i, j int) bool {
		a, b := analyzed[i], analyzed[j]
		if a.Status.Severity() != b.Status.Severity() {
			return a.Status.Severity() < b.Status.Severity()
		}
		if a.PriorityRank != b.PriorityRank {
			return a.PriorityRank < b.PriorityRank
		}
		return a.GapToMin < b.GapToMin
	})

	return analyzed
}

func analyzeRecord(record domain.UnifiedRecord) domain.AnalyzedRecord {
	result := domain.AnalyzedRecord{
		UnifiedRecord: record,
		GapToMin:      record.OnHand - record.MinStock,
		GapToMax:      record.MaxStock - record.OnHand,
		PriorityRank:  domain.PriorityRank(record.Criticality),
	}

	if record.MinStock > 0 {
		result.FulfillmentPct = roundTo(record.OnHand/record.MinStock*100, 1)
	}

	result.Status = Classify(record)
	result.Action = recommendedAction(result)

	if result.Status == domain.StatusCritical || result.Status == domain.StatusLow {
		result.PurchaseQty = int(math.Ceil(math.Max(0, record.MaxStock-record.OnHand)))
	}
	result.PurchaseValue = float64(result.PurchaseQty) * record.UnitPrice

	return result
}

// Classify assigns the operational status of a single line. Checks run in a
// fixed priority order and the first match wins: a line below its minimum is
// CRITICO even when it also sits inside the 20% band.
func Classify(record domain.UnifiedRecord) domain.Status {
	if !record.HasParameters {
		return domain.StatusUnconfigured
	}

	gap := record.OnHand - record.MinStock

	switch {
	case gap < 0:
		return domain.StatusCritical
	case gap < record.MinStock*lowBandFactor:
		return domain.StatusLow
	case record.OnHand > record.MaxStock:
		return domain.StatusOverstock
	default:
		return domain.StatusOK
	}
}

func recommendedAction(record domain.AnalyzedRecord) string {
	unit := record.Unit
	if unit == "" {
		unit = domain.DefaultUnit
	}

	switch record.Status {
	case domain.StatusCritical:
		return fmt.Sprintf("COMPRAR URGENTE - Faltante: %.0f %s", math.Abs(record.GapToMin), unit)
	case domain.StatusLow:
		return fmt.Sprintf("SOLICITAR COMPRA - Recomendado: %.0f %s", record.GapToMax, unit)
	case domain.StatusOverstock:
		return "REVISAR - Stock excesivo"
	case domain.StatusOK:
		return "NORMAL - Monitoreo continuo"
	case domain.StatusUnconfigured:
		return "CONFIGURAR PARAMETROS"
	default:
		return "—"
	}
}

// Summarize reduces the analyzed table to the flat metrics consumed by
// dashboard widgets.
func Summarize(analyzed []domain.AnalyzedRecord) domain.SummaryMetrics {
	metrics := domain.SummaryMetrics{TotalMaterials: len(analyzed)}

	for _, record := range analyzed {
		switch record.Status {
		case domain.StatusCritical:
			metrics.Critical++
		case domain.StatusLow:
			metrics.Low++
		case domain.StatusOK:
			metrics.OK++
		case domain.StatusOverstock:
			metrics.Overstock++
		case domain.StatusUnconfigured:
			metrics.Unconfigured++
		}

		metrics.TotalStockValue += record.OnHand * record.UnitPrice
		metrics.RequiredPurchases += record.PurchaseValue

		switch record.Criticality {
		case "A":
			metrics.CategoryAMaterials++
		case "B":
			metrics.CategoryBMaterials++
		case "C":
			metrics.CategoryCMaterials++
		}
	}

	return metrics
}

// Recommendations filters the analyzed table down to the lines the purchase
// workflow consumes: CRITICO/BAJO rows with a positive purchase quantity.
func Recommendations(analyzed []domain.AnalyzedRecord) []domain.AnalyzedRecord {
	recommended := make([]domain.AnalyzedRecord, 0)
	for _, record := range analyzed {
		if record.PurchaseQty > 0 {
			recommended = append(recommended, record)
		}
	}
	return recommended
}
