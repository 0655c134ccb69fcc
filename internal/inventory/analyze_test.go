package inventory

import (
	"reflect"
	"testing"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

func unifiedRow(code string, onHand, min, max, price float64) domain.UnifiedRecord {
	return domain.UnifiedRecord{
		StockRecord: domain.StockRecord{
			Code:      code,
			OnHand:    onHand,
			Unit:      "UND",
			UnitPrice: price,
		},
		MinStock:      min,
		MaxStock:      max,
		Criticality:   "C",
		Supplier:      "ACME SAS",
		HasParameters: true,
	}
}

func TestAnalyze_CriticalLine(t *testing.T) {
	// onHand 5 against min 10 / max 50 at unit price 10.
	analyzed := Analyze([]domain.UnifiedRecord{unifiedRow("100", 5, 10, 50, 10)})

	got := analyzed[0]
	if got.Status != domain.StatusCritical {
		t.Fatalf("status = %s, want CRITICO", got.Status)
	}
	if got.GapToMin != -5 {
		t.Errorf("gapToMin = %v, want -5", got.GapToMin)
	}
	if got.PurchaseQty != 45 {
		t.Errorf("purchaseQty = %d, want 45", got.PurchaseQty)
	}
	if got.PurchaseValue != 450 {
		t.Errorf("purchaseValue = %v, want 450", got.PurchaseValue)
	}
	if got.FulfillmentPct != 50 {
		t.Errorf("fulfillmentPct = %v, want 50", got.FulfillmentPct)
	}
	if got.Action != "COMPRAR URGENTE - Faltante: 5 UND" {
		t.Errorf("unexpected action %q", got.Action)
	}
}

func TestAnalyze_BoundaryOfLowBandIsOK(t *testing.T) {
	// gap = 2 equals min*0.2 exactly; the band check is strict, so the line
	// falls through to OK (12 does not exceed max 50).
	analyzed := Analyze([]domain.UnifiedRecord{unifiedRow("200", 12, 10, 50, 5)})

	if analyzed[0].Status != domain.StatusOK {
		t.Fatalf("status = %s, want OK", analyzed[0].Status)
	}
	if analyzed[0].PurchaseQty != 0 {
		t.Errorf("purchaseQty = %d, want 0", analyzed[0].PurchaseQty)
	}
}

func TestAnalyze_CriticalBeatsLowBand(t *testing.T) {
	// gap = -1 is below minimum and also inside the 20% band; CRITICO is
	// checked first and wins.
	analyzed := Analyze([]domain.UnifiedRecord{unifiedRow("300", 9, 10, 20, 1)})

	if analyzed[0].Status != domain.StatusCritical {
		t.Fatalf("status = %s, want CRITICO", analyzed[0].Status)
	}
}

func TestAnalyze_UnconfiguredLine(t *testing.T) {
	record := domain.UnifiedRecord{
		StockRecord: domain.StockRecord{Code: "400", OnHand: 3, UnitPrice: 2},
		Criticality: "C",
		Supplier:    domain.SupplierUnconfigured,
	}

	analyzed := Analyze([]domain.UnifiedRecord{record})

	got := analyzed[0]
	if got.Status != domain.StatusUnconfigured {
		t.Fatalf("status = %s, want SIN CONFIGURAR", got.Status)
	}
	if got.FulfillmentPct != 0 {
		t.Errorf("fulfillmentPct = %v, want 0 with zero minimum", got.FulfillmentPct)
	}
	if got.PurchaseQty != 0 {
		t.Errorf("purchaseQty = %d, want 0", got.PurchaseQty)
	}
}

func TestAnalyze_ZeroMinimumConfiguredIsNotUnconfigured(t *testing.T) {
	record := unifiedRow("500", 5, 0, 10, 1)

	analyzed := Analyze([]domain.UnifiedRecord{record})

	// gap = 5 ≥ 0 and min*0.2 = 0, so the line is neither critical nor low.
	if analyzed[0].Status != domain.StatusOK {
		t.Fatalf("status = %s, want OK for configured zero minimum", analyzed[0].Status)
	}
}

func TestAnalyze_LowLine(t *testing.T) {
	analyzed := Analyze([]domain.UnifiedRecord{unifiedRow("600", 11, 10, 50, 2)})

	got := analyzed[0]
	if got.Status != domain.StatusLow {
		t.Fatalf("status = %s, want BAJO", got.Status)
	}
	if got.PurchaseQty != 39 {
		t.Errorf("purchaseQty = %d, want 39", got.PurchaseQty)
	}
	if got.Action != "SOLICITAR COMPRA - Recomendado: 39 UND" {
		t.Errorf("unexpected action %q", got.Action)
	}
}

func TestAnalyze_OverstockLine(t *testing.T) {
	analyzed := Analyze([]domain.UnifiedRecord{unifiedRow("700", 120, 10, 50, 2)})

	got := analyzed[0]
	if got.Status != domain.StatusOverstock {
		t.Fatalf("status = %s, want SOBREINVENTARIO", got.Status)
	}
	if got.PurchaseQty != 0 {
		t.Errorf("purchaseQty = %d, want 0", got.PurchaseQty)
	}
}

func TestAnalyze_FractionalShortfallRoundsUp(t *testing.T) {
	analyzed := Analyze([]domain.UnifiedRecord{unifiedRow("800", 5.5, 10, 50, 1)})

	if analyzed[0].PurchaseQty != 45 {
		t.Errorf("purchaseQty = %d, want ceil(44.5) = 45", analyzed[0].PurchaseQty)
	}
}

func TestAnalyze_StatusTotalityAndQtyInvariant(t *testing.T) {
	records := []domain.UnifiedRecord{
		unifiedRow("100", 5, 10, 50, 10),
		unifiedRow("200", 12, 10, 50, 5),
		unifiedRow("300", 9, 10, 20, 1),
		unifiedRow("700", 120, 10, 50, 2),
		unifiedRow("500", 5, 0, 10, 1),
		{StockRecord: domain.StockRecord{Code: "400", OnHand: 3}},
	}

	known := map[domain.Status]bool{
		domain.StatusCritical:     true,
		domain.StatusLow:          true,
		domain.StatusOK:           true,
		domain.StatusOverstock:    true,
		domain.StatusUnconfigured: true,
	}

	for _, record := range Analyze(records) {
		if !known[record.Status] {
			t.Errorf("row %s left unclassified: %q", record.Code, record.Status)
		}
		if record.PurchaseQty < 0 {
			t.Errorf("row %s purchaseQty negative", record.Code)
		}
		if record.Status != domain.StatusCritical && record.Status != domain.StatusLow && record.PurchaseQty != 0 {
			t.Errorf("row %s status %s must not recommend a purchase", record.Code, record.Status)
		}
	}
}

func TestAnalyze_SortMostUrgentFirst(t *testing.T) {
	ok := unifiedRow("OK", 30, 10, 50, 1)
	critB := unifiedRow("CRIT-B", 2, 10, 50, 1)
	critB.Criticality = "B"
	critA := unifiedRow("CRIT-A", 5, 10, 50, 1)
	critA.Criticality = "A"
	critADeeper := unifiedRow("CRIT-A2", 1, 10, 50, 1)
	critADeeper.Criticality = "A"
	over := unifiedRow("OVER", 90, 10, 50, 1)
	unconf := domain.UnifiedRecord{StockRecord: domain.StockRecord{Code: "UNCONF", OnHand: 1}}

	analyzed := Analyze([]domain.UnifiedRecord{ok, critB, critA, over, unconf, critADeeper})

	var order []string
	for _, record := range analyzed {
		order = append(order, record.Code)
	}

	want := []string{"CRIT-A2", "CRIT-A", "CRIT-B", "OK", "OVER", "UNCONF"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("sort order = %v, want %v", order, want)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	records := []domain.UnifiedRecord{
		unifiedRow("100", 5, 10, 50, 10),
		unifiedRow("200", 12, 10, 50, 5),
		unifiedRow("700", 120, 10, 50, 2),
	}

	first := Analyze(records)
	second := Analyze(records)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated analysis over identical input diverged")
	}
}

func TestSummarize(t *testing.T) {
	analyzed := Analyze([]domain.UnifiedRecord{
		unifiedRow("100", 5, 10, 50, 10), // CRITICO, purchase 45*10
		unifiedRow("200", 12, 10, 50, 5), // OK
		unifiedRow("210", 40, 10, 50, 2), // OK
	})

	metrics := Summarize(analyzed)

	if metrics.TotalMaterials != 3 {
		t.Errorf("total_materiales = %d, want 3", metrics.TotalMaterials)
	}
	if metrics.Critical != 1 || metrics.OK != 2 {
		t.Errorf("criticos = %d, ok = %d, want 1 and 2", metrics.Critical, metrics.OK)
	}
	wantStock := 5*10.0 + 12*5.0 + 40*2.0
	if metrics.TotalStockValue != wantStock {
		t.Errorf("valor_total_stock = %v, want %v", metrics.TotalStockValue, wantStock)
	}
	if metrics.RequiredPurchases != 450 {
		t.Errorf("valor_compras_requeridas = %v, want 450", metrics.RequiredPurchases)
	}
	if metrics.CategoryCMaterials != 3 {
		t.Errorf("materiales_categoria_c = %d, want 3", metrics.CategoryCMaterials)
	}
}

func TestRecommendations(t *testing.T) {
	analyzed := Analyze([]domain.UnifiedRecord{
		unifiedRow("100", 5, 10, 50, 10),
		unifiedRow("200", 12, 10, 50, 5),
		unifiedRow("700", 120, 10, 50, 2),
	})

	recommended := Recommendations(analyzed)
	if len(recommended) != 1 {
		t.Fatalf("expected a single recommended purchase, got %d", len(recommended))
	}
	if recommended[0].Code != "100" {
		t.Errorf("recommended code = %s, want 100", recommended[0].Code)
	}
}

func TestPriorityRank(t *testing.T) {
	cases := map[string]int{"A": 1, "b": 2, "C": 3, "": 4, "Z": 4}
	for tier, want := range cases {
		if got := domain.PriorityRank(tier); got != want {
			t.Errorf("PriorityRank(%q) = %d, want %d", tier, got, want)
		}
	}
}
