package ingest

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

func TestStockFromRows_NormalizesSAPColumns(t *testing.T) {
	rows := [][]string{
		{"Codigo material", "Texto breve de material", "Centro", "Cantidad", "Unidad de medida", "Valor por unidad"},
		{"1024.0", "TUBO PVC 2IN", "C001", "15", "MTS", "3500"},
		{"2048", "", "C001", "no-numerico", "", "-5"},
		{"", "FILA SIN CODIGO", "C001", "9", "UND", "1"},
	}

	records := StockFromRows(rows)

	if len(records) != 2 {
		t.Fatalf("expected 2 records (codeless row dropped), got %d", len(records))
	}

	first := records[0]
	if first.OnHand != 15 || first.UnitPrice != 3500 || first.StockValue != 52500 {
		t.Errorf("unexpected numerics: %+v", first)
	}
	if first.Unit != "MTS" {
		t.Errorf("unit = %q, want MTS", first.Unit)
	}

	second := records[1]
	if second.OnHand != 0 {
		t.Errorf("unparsable quantity should default to 0, got %v", second.OnHand)
	}
	if second.UnitPrice != 0 {
		t.Errorf("negative price should clamp to 0, got %v", second.UnitPrice)
	}
	if second.Description != domain.DefaultDescription {
		t.Errorf("blank description = %q, want %q", second.Description, domain.DefaultDescription)
	}
	if second.Unit != domain.DefaultUnit || second.Warehouse != domain.DefaultWarehouse {
		t.Errorf("missing unit/warehouse defaults not applied: %+v", second)
	}
}

func TestParametersFromRows_DefaultsAndCoercion(t *testing.T) {
	rows := [][]string{
		{"Codigo", "Centro", "Stock_Minimo", "Stock_Maximo", "Lead_Time_dias", "Criticidad", "Consumo_Prom_Mensual", "Proveedor"},
		{"100", "C001", "20", "80", "15", "a", "7.5", "ACME SAS"},
		{"200", "C001", "", "", "", "X", "", ""},
		{"300", "C001", "40", "10", "0", "", "-1", "OTRO"},
	}

	params := ParametersFromRows(rows)
	if len(params) != 3 {
		t.Fatalf("expected 3 params, got %d", len(params))
	}

	if params[0].Criticality != "A" {
		t.Errorf("criticality should uppercase, got %q", params[0].Criticality)
	}

	defaulted := params[1]
	if defaulted.MinStock != domain.DefaultMinStock || defaulted.MaxStock != domain.DefaultMaxStock {
		t.Errorf("blank thresholds: got min=%v max=%v", defaulted.MinStock, defaulted.MaxStock)
	}
	if defaulted.LeadTimeDays != domain.DefaultLeadTimeDays {
		t.Errorf("blank lead time = %d, want %d", defaulted.LeadTimeDays, domain.DefaultLeadTimeDays)
	}
	if defaulted.MonthlyConsumption != domain.DefaultMonthlyConsumption {
		t.Errorf("blank consumption = %v, want %v", defaulted.MonthlyConsumption, domain.DefaultMonthlyConsumption)
	}
	if defaulted.Criticality != "C" {
		t.Errorf("out-of-set criticality = %q, want C", defaulted.Criticality)
	}
	if defaulted.Supplier != domain.SupplierPendingAssignment {
		t.Errorf("blank supplier = %q, want %q", defaulted.Supplier, domain.SupplierPendingAssignment)
	}

	clamped := params[2]
	if clamped.MaxStock != clamped.MinStock {
		t.Errorf("max below min should clamp: %+v", clamped)
	}
	if clamped.LeadTimeDays != 1 {
		t.Errorf("lead time floor is 1, got %d", clamped.LeadTimeDays)
	}
	if clamped.MonthlyConsumption != 0 {
		t.Errorf("negative consumption should clamp to 0, got %v", clamped.MonthlyConsumption)
	}
}

func TestParseFloat_LocaleFormats(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1234.5", 1234.5},
		{"1.234,5", 1234.5},
		{"$3.500,00", 3500},
		{"", 10},
		{"n/a", 10},
	}

	for _, tc := range cases {
		if got := parseFloat(tc.in, 10); got != tc.want {
			t.Errorf("parseFloat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoadStockXLSX_RoundTrip(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Codigo material", "Texto breve de material", "Centro", "Cantidad", "Valor por unidad"}
	row := []interface{}{"100", "VALVULA", "C001", 5, 10}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("SetSheetRow failed: %v", err)
	}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatalf("SetSheetRow failed: %v", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx failed: %v", err)
	}

	records, err := LoadStockXLSX(&buf)
	if err != nil {
		t.Fatalf("LoadStockXLSX failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Code != "100" || records[0].OnHand != 5 || records[0].UnitPrice != 10 {
		t.Errorf("unexpected record: %+v", records[0])
	}
}
