// backend-go/internal/domain/models.go
package domain

import "time"

// Default labels for fields that arrive empty from the SAP export or the
// parameters sheet. They surface verbatim in reports, so they stay in the
// wording the planning team uses.
const (
	DefaultUnit               = "UND"
	DefaultWarehouse          = "ALM01"
	DefaultDescription        = "SIN DESCRIPCION"
	SupplierUnconfigured      = "SIN CONFIGURAR"
	SupplierPendingAssignment = "POR CONFIGURAR"
	DefaultCriticality        = "C"
	DefaultMinStock           = 10.0
	DefaultMaxStock           = 50.0
	DefaultLeadTimeDays       = 30
	DefaultMonthlyConsumption = 5.0
)

// StockRecord is one row of the raw SAP stock export, already normalized to
// canonical field names by the ingest layer. Immutable input to Reconcile.
type StockRecord struct {
	Code        string  `json:"codigo" db:"codigo"`
	Description string  `json:"descripcion" db:"descripcion"`
	Center      string  `json:"centro" db:"centro"`
	CenterName  string  `json:"centro_nombre" db:"centro_nombre"`
	Warehouse   string  `json:"almacen" db:"almacen"`
	OnHand      float64 `json:"stock_actual" db:"stock_actual"`
	Unit        string  `json:"unidad" db:"unidad"`
	UnitPrice   float64 `json:"precio_unitario" db:"precio_unitario"`
	StockValue  float64 `json:"valor_stock" db:"valor_stock"`
}

// StockParameters is one row of the manually maintained stocking thresholds,
// keyed by material code and (optionally) center.
type StockParameters struct {
	Code               string  `json:"codigo" db:"codigo"`
	Center             string  `json:"centro" db:"centro"`
	Description        string  `json:"descripcion" db:"descripcion"`
	TechnicalName      string  `json:"nombre_tecnico" db:"nombre_tecnico"`
	MinStock           float64 `json:"stock_minimo" db:"stock_minimo"`
	MaxStock           float64 `json:"stock_maximo" db:"stock_maximo"`
	LeadTimeDays       int     `json:"lead_time" db:"lead_time"`
	MonthlyConsumption float64 `json:"consumo_mensual" db:"consumo_mensual"`
	Criticality        string  `json:"criticidad" db:"criticidad"`
	Supplier           string  `json:"proveedor" db:"proveedor"`
	Category           string  `json:"categoria" db:"categoria"`
	Observations       string  `json:"observaciones" db:"observaciones"`
}

// UnifiedRecord is the result of the left join between the stock export and
// the stocking parameters. HasParameters distinguishes "never configured"
// from "configured with a zero minimum"; the classifier depends on it.
type UnifiedRecord struct {
	StockRecord

	TechnicalName      string  `json:"nombre_tecnico"`
	MinStock           float64 `json:"stock_minimo"`
	MaxStock           float64 `json:"stock_maximo"`
	LeadTimeDays       int     `json:"lead_time"`
	MonthlyConsumption float64 `json:"consumo_mensual"`
	Criticality        string  `json:"criticidad"`
	Supplier           string  `json:"proveedor"`
	Category           string  `json:"categoria"`
	HasParameters      bool    `json:"tiene_parametros"`
}

// AnalyzedRecord is a UnifiedRecord plus every derived field. Never
// persisted; recomputed on each analysis pass.
type AnalyzedRecord struct {
	UnifiedRecord

	GapToMin       float64 `json:"brecha_minimo"`
	GapToMax       float64 `json:"brecha_maximo"`
	FulfillmentPct float64 `json:"cumplimiento_pct"`
	Status         Status  `json:"estado"`
	Action         string  `json:"accion"`
	PurchaseQty    int     `json:"cantidad_comprar"`
	PurchaseValue  float64 `json:"valor_compra"`
	PriorityRank   int     `json:"prioridad_num"`
}

// SummaryMetrics is the flat numeric mapping consumed by dashboard widgets.
type SummaryMetrics struct {
	TotalMaterials     int     `json:"total_materiales"`
	Critical           int     `json:"criticos"`
	Low                int     `json:"bajo"`
	OK                 int     `json:"ok"`
	Overstock          int     `json:"sobreinventario"`
	Unconfigured       int     `json:"sin_configurar"`
	TotalStockValue    float64 `json:"valor_total_stock"`
	RequiredPurchases  float64 `json:"valor_compras_requeridas"`
	CategoryAMaterials int     `json:"materiales_categoria_a"`
	CategoryBMaterials int     `json:"materiales_categoria_b"`
	CategoryCMaterials int     `json:"materiales_categoria_c"`
}

// AnalysisFilter narrows the analyzed table for API consumers.
type AnalysisFilter struct {
	Status      string `json:"estado"`
	Center      string `json:"centro"`
	Criticality string `json:"criticidad"`
	Search      string `json:"buscar"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

// AnalysisResult is a page of analyzed records plus the as-of timestamp of
// the underlying stock snapshot.
type AnalysisResult struct {
	Items []AnalyzedRecord `json:"items"`
	Total int              `json:"total"`
	AsOf  time.Time        `json:"as_of"`
}
