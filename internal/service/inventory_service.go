// backend-go/internal/service/inventory_service.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jacengineering/inventario/backend-go/internal/cache"
	"github.com/jacengineering/inventario/backend-go/internal/domain"
	"github.com/jacengineering/inventario/backend-go/internal/inventory"
)

// StockSource supplies the latest stock snapshot together with its as-of
// timestamp (sheet refresh or export file modification time).
type StockSource interface {
	LoadStock(ctx context.Context) ([]domain.StockRecord, time.Time, error)
}

// ParameterSource supplies the stocking parameters table.
type ParameterSource interface {
	LoadParameters(ctx context.Context) ([]domain.StockParameters, error)
}

type InventoryService struct {
	stock  StockSource
	params ParameterSource
	cache  cache.AnalysisCache
}

func NewInventoryService(stock StockSource, params ParameterSource, cacheImpl cache.AnalysisCache) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalysisCache()
	}
	return &InventoryService{stock: stock, params: params, cache: cacheImpl}
}

// Analysis runs the full reconcile/classify pass and returns the requested
// page of the filtered, urgency-ordered table.
func (s *InventoryService) Analysis(ctx context.Context, filter domain.AnalysisFilter) (*domain.AnalysisResult, error) {
	analyzed, asOf, err := s.analyzedTable(ctx, filter)
	if err != nil {
		return nil, err
	}

	total := len(analyzed)
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize > 0 {
		start := (page - 1) * pageSize
		if start >= total {
			analyzed = []domain.AnalyzedRecord{}
		} else {
			end := start + pageSize
			if end > total {
				end = total
			}
			analyzed = analyzed[start:end]
		}
	}

	return &domain.AnalysisResult{Items: analyzed, Total: total, AsOf: asOf}, nil
}

// Summary returns the aggregate metrics for the filtered set, memoized for
// the configured TTL window.
func (s *InventoryService) Summary(ctx context.Context, filter domain.AnalysisFilter) (domain.SummaryMetrics, error) {
	if metrics, ok, err := s.cache.GetSummary(ctx, filter); err == nil && ok {
		return metrics, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get summary failed")
	}

	analyzed, _, err := s.analyzedTable(ctx, filter)
	if err != nil {
		return domain.SummaryMetrics{}, err
	}

	metrics := inventory.Summarize(analyzed)

	if err := s.cache.SetSummary(ctx, filter, metrics); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set summary failed")
	}

	return metrics, nil
}

// Recommendations returns the purchase lines the SOLPED workflow consumes.
func (s *InventoryService) Recommendations(ctx context.Context) ([]domain.AnalyzedRecord, error) {
	analyzed, _, err := s.analyzedTable(ctx, domain.AnalysisFilter{})
	if err != nil {
		return nil, err
	}
	return inventory.Recommendations(analyzed), nil
}

// FullTable returns the whole analyzed table, unpaginated, for exports.
func (s *InventoryService) FullTable(ctx context.Context, filter domain.AnalysisFilter) ([]domain.AnalyzedRecord, time.Time, error) {
	filter.Page = 0
	filter.PageSize = 0
	return s.analyzedTable(ctx, filter)
}

func (s *InventoryService) analyzedTable(ctx context.Context, filter domain.AnalysisFilter) ([]domain.AnalyzedRecord, time.Time, error) {
	stock, asOf, err := s.stock.LoadStock(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}

	params, err := s.params.LoadParameters(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}

	unified, report, err := inventory.Reconcile(stock, params)
	if err != nil {
		return nil, time.Time{}, err
	}
	if report.DuplicateKeys > 0 {
		log.Warn().Int("duplicates", report.DuplicateKeys).Msg("inventory: duplicate parameter keys, last writer wins")
	}

	return applyFilter(inventory.Analyze(unified), filter), asOf, nil
}

func applyFilter(analyzed []domain.AnalyzedRecord, filter domain.AnalysisFilter) []domain.AnalyzedRecord {
	status := strings.ToUpper(strings.TrimSpace(filter.Status))
	center := strings.TrimSpace(filter.Center)
	criticality := strings.ToUpper(strings.TrimSpace(filter.Criticality))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	if status == "" && center == "" && criticality == "" && search == "" {
		return analyzed
	}

	filtered := make([]domain.AnalyzedRecord, 0, len(analyzed))
	for _, record := range analyzed {
		if status != "" && string(record.Status) != status {
			continue
		}
		if center != "" && record.Center != center {
			continue
		}
		if criticality != "" && record.Criticality != criticality {
			continue
		}
		if search != "" && !matchesSearch(record, search) {
			continue
		}
		filtered = append(filtered, record)
	}

	return filtered
}

// matchesSearch mirrors the dashboard search box: code, description or
// technical name, case-insensitive substring.
func matchesSearch(record domain.AnalyzedRecord, term string) bool {
	return strings.Contains(strings.ToLower(record.Code), term) ||
		strings.Contains(strings.ToLower(record.Description), term) ||
		strings.Contains(strings.ToLower(record.TechnicalName), term)
}
