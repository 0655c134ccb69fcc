package domain

import "strings"

// SolpedState tracks a purchase request through its lifecycle.
type SolpedState string

const (
	SolpedPending  SolpedState = "PENDIENTE"
	SolpedApproved SolpedState = "APROBADA"
	SolpedRejected SolpedState = "RECHAZADA"
	SolpedReceived SolpedState = "RECIBIDA"
)

var solpedTransitions = map[SolpedState][]SolpedState{
	SolpedPending:  {SolpedApproved, SolpedRejected},
	SolpedApproved: {SolpedReceived},
}

// CanTransition reports whether a state change is allowed. RECHAZADA and
// RECIBIDA are terminal.
func (s SolpedState) CanTransition(to SolpedState) bool {
	for _, allowed := range solpedTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ParseSolpedState matches a state label case-insensitively.
func ParseSolpedState(label string) (SolpedState, bool) {
	normalized := SolpedState(strings.ToUpper(strings.TrimSpace(label)))
	switch normalized {
	case SolpedPending, SolpedApproved, SolpedRejected, SolpedReceived:
		return normalized, true
	}
	return "", false
}

// CartItem is one line of the in-progress purchase-request cart. The cart is
// an explicit aggregate owned by the caller, not ambient session state.
type CartItem struct {
	Code          string  `json:"codigo"`
	Description   string  `json:"descripcion"`
	TechnicalName string  `json:"nombre_tecnico"`
	Center        string  `json:"centro"`
	CenterName    string  `json:"centro_nombre"`
	Quantity      int     `json:"cantidad"`
	Unit          string  `json:"unidad"`
	UnitPrice     float64 `json:"precio_unitario"`
	Criticality   string  `json:"criticidad"`
	Supplier      string  `json:"proveedor"`
}

// SolpedLine is one persisted line item of a generated purchase request.
type SolpedLine struct {
	Number        string      `json:"solped_numero" db:"solped_numero"`
	Date          string      `json:"fecha" db:"fecha"`
	Code          string      `json:"codigo" db:"codigo"`
	Description   string      `json:"descripcion" db:"descripcion"`
	TechnicalName string      `json:"nombre_tecnico" db:"nombre_tecnico"`
	Center        string      `json:"centro" db:"centro"`
	CenterName    string      `json:"centro_nombre" db:"centro_nombre"`
	Quantity      int         `json:"cantidad_solicitada" db:"cantidad_solicitada"`
	Unit          string      `json:"unidad" db:"unidad"`
	UnitPrice     float64     `json:"precio_unitario" db:"precio_unitario"`
	TotalValue    float64     `json:"valor_total" db:"valor_total"`
	Criticality   string      `json:"criticidad" db:"criticidad"`
	Supplier      string      `json:"proveedor" db:"proveedor"`
	RequestedBy   string      `json:"solicitado_por" db:"solicitado_por"`
	State         SolpedState `json:"estado" db:"estado"`
	Notes         string      `json:"notas" db:"notas"`
}

// SolpedFilter narrows the stored purchase-request history.
type SolpedFilter struct {
	Number string
	State  string
	Center string
}

// SolpedSummary aggregates the stored purchase-request history.
type SolpedSummary struct {
	TotalRequests int     `json:"total_solpeds"`
	TotalItems    int     `json:"total_items"`
	TotalValue    float64 `json:"valor_total"`
	Pending       int     `json:"pendientes"`
}
