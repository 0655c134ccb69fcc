package domain

import "strings"

// Status is the operational classification of one (material, center) line.
type Status string

const (
	StatusCritical     Status = "CRITICO"
	StatusLow          Status = "BAJO"
	StatusOK           Status = "OK"
	StatusOverstock    Status = "SOBREINVENTARIO"
	StatusUnconfigured Status = "SIN CONFIGURAR"
)

// statusSeverity fixes the urgency ordering used to sort the analyzed table.
// The ordering is an explicit contract: most urgent first, unconfigured
// lines always last.
var statusSeverity = map[Status]int{
	StatusCritical:     0,
	StatusLow:          1,
	StatusOK:           2,
	StatusOverstock:    3,
	StatusUnconfigured: 4,
}

// Severity returns the sort rank for a status. Unknown statuses sink below
// every known one.
func (s Status) Severity() int {
	if rank, ok := statusSeverity[s]; ok {
		return rank
	}
	return len(statusSeverity)
}

// ParseStatus matches a status label case-insensitively.
func ParseStatus(label string) (Status, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	for status := range statusSeverity {
		if string(status) == normalized {
			return status, true
		}
	}
	return "", false
}

// criticality tiers map to purchase priority: A first, C last, anything
// else (including blank) after every configured tier.
var criticalityPriority = map[string]int{
	"A": 1,
	"B": 2,
	"C": 3,
}

// PriorityRank returns the purchase priority for a criticality tier.
func PriorityRank(criticality string) int {
	if rank, ok := criticalityPriority[strings.ToUpper(strings.TrimSpace(criticality))]; ok {
		return rank
	}
	return 4
}

// NormalizeCriticality coerces any value outside {A, B, C} to C.
func NormalizeCriticality(value string) string {
	upper := strings.ToUpper(strings.TrimSpace(value))
	if _, ok := criticalityPriority[upper]; ok {
		return upper
	}
	return DefaultCriticality
}
