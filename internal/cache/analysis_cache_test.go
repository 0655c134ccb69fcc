package cache

import (
	"testing"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

func TestFilterHash_StableAcrossEquivalentFilters(t *testing.T) {
	a := domain.AnalysisFilter{Status: "critico", Center: " c001 ", Page: 1}
	b := domain.AnalysisFilter{Status: "CRITICO", Center: "C001", Page: 7, PageSize: 100}

	if filterHash(a) != filterHash(b) {
		t.Error("equivalent filters should share a cache key (pagination excluded)")
	}
}

func TestFilterHash_DistinguishesFilters(t *testing.T) {
	a := domain.AnalysisFilter{Status: "CRITICO"}
	b := domain.AnalysisFilter{Status: "BAJO"}

	if filterHash(a) == filterHash(b) {
		t.Error("different statuses must not collide")
	}
}

func TestFilterHash_EmptyFilterUsesDefaultKey(t *testing.T) {
	if filterHash(domain.AnalysisFilter{}) != "default" {
		t.Error("empty filter should map to the default key")
	}
}
