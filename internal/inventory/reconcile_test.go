package inventory

import (
	"errors"
	"testing"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

func stockRow(code, center string, onHand, price float64) domain.StockRecord {
	return domain.StockRecord{
		Code:        code,
		Description: "MATERIAL " + code,
		Center:      center,
		OnHand:      onHand,
		Unit:        "UND",
		UnitPrice:   price,
		StockValue:  onHand * price,
	}
}

func paramRow(code, center string, min, max float64) domain.StockParameters {
	return domain.StockParameters{
		Code:        code,
		Center:      center,
		MinStock:    min,
		MaxStock:    max,
		Criticality: "B",
		Supplier:    "ACME SAS",
	}
}

func TestReconcile_EmptyStockFails(t *testing.T) {
	_, _, err := Reconcile(nil, []domain.StockParameters{paramRow("100", "", 10, 50)})
	if !errors.Is(err, ErrEmptyStock) {
		t.Fatalf("expected ErrEmptyStock, got %v", err)
	}
}

func TestReconcile_EmptyParamsDefaultsEveryRow(t *testing.T) {
	stock := []domain.StockRecord{
		stockRow("100", "C001", 5, 10),
		stockRow("200", "C001", 12, 5),
	}

	unified, report, err := Reconcile(stock, nil)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(unified) != len(stock) {
		t.Fatalf("expected %d rows, got %d", len(stock), len(unified))
	}
	if report.DuplicateKeys != 0 || report.MatchedRows != 0 {
		t.Errorf("unexpected report: %+v", report)
	}

	for _, record := range unified {
		if record.HasParameters {
			t.Errorf("row %s should not be marked as configured", record.Code)
		}
		if record.MinStock != 0 || record.MaxStock != 0 || record.LeadTimeDays != 0 {
			t.Errorf("row %s thresholds should default to zero", record.Code)
		}
		if record.Criticality != "C" {
			t.Errorf("row %s criticality = %q, want C", record.Code, record.Criticality)
		}
		if record.Supplier != domain.SupplierUnconfigured {
			t.Errorf("row %s supplier = %q, want %q", record.Code, record.Supplier, domain.SupplierUnconfigured)
		}
	}
}

func TestReconcile_JoinsByCodeAndCenter(t *testing.T) {
	stock := []domain.StockRecord{
		stockRow("100", "C001", 5, 10),
		stockRow("100", "C002", 5, 10),
	}
	params := []domain.StockParameters{
		paramRow("100", "C001", 10, 50),
		paramRow("100", "C002", 20, 80),
	}

	unified, report, err := Reconcile(stock, params)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if !report.JoinedByCenter {
		t.Fatal("expected join on (code, center)")
	}
	if unified[0].MinStock != 10 || unified[1].MinStock != 20 {
		t.Errorf("per-center thresholds not applied: %v / %v", unified[0].MinStock, unified[1].MinStock)
	}
}

func TestReconcile_GlobalParamsApplyToEveryCenter(t *testing.T) {
	stock := []domain.StockRecord{
		stockRow("100", "C001", 5, 10),
		stockRow("100", "C002", 5, 10),
	}
	params := []domain.StockParameters{paramRow("100", "", 10, 50)}

	unified, report, err := Reconcile(stock, params)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if report.JoinedByCenter {
		t.Fatal("center-less parameters must join on code alone")
	}
	for _, record := range unified {
		if record.MinStock != 10 {
			t.Errorf("center %s did not receive global minimum", record.Center)
		}
	}
}

func TestReconcile_CanonicalCodeJoin(t *testing.T) {
	stock := []domain.StockRecord{stockRow("1024.0", "", 5, 10)}
	params := []domain.StockParameters{paramRow("1024", "", 10, 50)}

	unified, _, err := Reconcile(stock, params)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if !unified[0].HasParameters {
		t.Fatal("float-formatted code should match its integer form")
	}
}

func TestReconcile_DuplicateKeysLastWins(t *testing.T) {
	stock := []domain.StockRecord{stockRow("100", "C001", 5, 10)}
	params := []domain.StockParameters{
		paramRow("100", "C001", 10, 50),
		paramRow("100", "C001", 30, 90),
	}

	unified, report, err := Reconcile(stock, params)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if report.DuplicateKeys != 1 {
		t.Errorf("DuplicateKeys = %d, want 1", report.DuplicateKeys)
	}
	if unified[0].MinStock != 30 || unified[0].MaxStock != 90 {
		t.Errorf("expected last duplicate to win, got min=%v max=%v", unified[0].MinStock, unified[0].MaxStock)
	}
	if len(unified) != 1 {
		t.Errorf("duplicate parameters must not fan out stock rows, got %d", len(unified))
	}
}

func TestReconcile_DescriptionFallsBackToParamSide(t *testing.T) {
	stock := []domain.StockRecord{{Code: "100", Center: "C001", OnHand: 1}}
	params := []domain.StockParameters{{
		Code:        "100",
		Center:      "C001",
		Description: "VALVULA DE BOLA 1/2",
		MinStock:    10,
		MaxStock:    50,
	}}

	unified, _, err := Reconcile(stock, params)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if unified[0].Description != "VALVULA DE BOLA 1/2" {
		t.Errorf("description = %q, want parameter-side fallback", unified[0].Description)
	}
}

func TestReconcile_CoverageInvariant(t *testing.T) {
	stock := []domain.StockRecord{
		stockRow("100", "C001", 5, 10),
		stockRow("200", "C001", 12, 5),
		stockRow("300", "C002", 9, 1),
	}
	params := []domain.StockParameters{paramRow("100", "C001", 10, 50)}

	unified, _, err := Reconcile(stock, params)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(unified) != len(stock) {
		t.Fatalf("left join dropped or duplicated rows: got %d, want %d", len(unified), len(stock))
	}
}

func TestReconcile_InputsNotMutated(t *testing.T) {
	stock := []domain.StockRecord{stockRow("100", "C001", 5, 10)}
	params := []domain.StockParameters{{Code: "100", Center: "C001", Criticality: "x", MinStock: 10, MaxStock: 50}}

	if _, _, err := Reconcile(stock, params); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if params[0].Criticality != "x" {
		t.Error("Reconcile mutated its parameter input")
	}
	if stock[0].OnHand != 5 {
		t.Error("Reconcile mutated its stock input")
	}
}

func TestCanonicalCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1024", "1024"},
		{"1024.0", "1024"},
		{"  1024.0  ", "1024"},
		{"1024.5", "1024.5"},
		{"ABC-100", "ABC-100"},
		{"", ""},
		{"00123", "123"},
	}

	for _, tc := range cases {
		if got := CanonicalCode(tc.in); got != tc.want {
			t.Errorf("CanonicalCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
