package sheets

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/jacengineering/inventario/backend-go/internal/config"
	"github.com/jacengineering/inventario/backend-go/internal/domain"
	"github.com/jacengineering/inventario/backend-go/internal/ingest"
	"github.com/jacengineering/inventario/backend-go/internal/repository"
)

// SyncService pulls the spreadsheet-backed tables into Postgres so the API
// can work off a consistent local copy between sheet refreshes.
type SyncService struct {
	sheets *Service
	cfg    config.SheetsConfig
	params repository.ParametersRepository
	solped repository.SolpedRepository
}

func NewSyncService(sheets *Service, cfg config.SheetsConfig, params repository.ParametersRepository, solped repository.SolpedRepository) *SyncService {
	return &SyncService{sheets: sheets, cfg: cfg, params: params, solped: solped}
}

// SyncParameters replaces the local parameters table with the sheet state.
func (s *SyncService) SyncParameters(ctx context.Context) (int, error) {
	rows, err := s.sheets.ReadTable(ctx, s.cfg.ParametersSheetID, s.cfg.ParametersSheetName)
	if err != nil {
		return 0, fmt.Errorf("sync parameters: %w", err)
	}

	params := ingest.ParametersFromRows(rows)
	if err := s.params.ReplaceAll(ctx, params); err != nil {
		return 0, fmt.Errorf("sync parameters: %w", err)
	}

	log.Info().Int("rows", len(params)).Msg("parameters synced from sheet")
	return len(params), nil
}

// LoadStock reads the stock export straight from the sheet. Stock is not
// persisted locally: the sheet is refreshed by the SAP upload flow and the
// analysis always wants the latest snapshot.
func (s *SyncService) LoadStock(ctx context.Context) ([]domain.StockRecord, error) {
	rows, err := s.sheets.ReadTable(ctx, s.cfg.StockSheetID, s.cfg.StockSheetName)
	if err != nil {
		return nil, fmt.Errorf("load stock from sheet: %w", err)
	}

	return ingest.StockFromRows(rows), nil
}

// PublishSolped mirrors the full stored purchase-request history to the
// shared SOLPED sheet the procurement team reads.
func (s *SyncService) PublishSolped(ctx context.Context) (int, error) {
	lines, err := s.solped.List(ctx, domain.SolpedFilter{})
	if err != nil {
		return 0, fmt.Errorf("publish solped: %w", err)
	}

	rows := make([][]string, 0, len(lines)+1)
	rows = append(rows, []string{
		"SOLPED_Numero", "Fecha", "Codigo", "Descripcion", "Centro",
		"Cantidad_Solicitada", "Unidad", "Precio_Unitario", "Valor_Total",
		"Criticidad", "Proveedor", "Solicitado_Por", "Estado",
	})
	for _, line := range lines {
		rows = append(rows, []string{
			line.Number,
			line.Date,
			line.Code,
			line.Description,
			line.Center,
			strconv.Itoa(line.Quantity),
			line.Unit,
			strconv.FormatFloat(line.UnitPrice, 'f', -1, 64),
			strconv.FormatFloat(line.TotalValue, 'f', -1, 64),
			line.Criticality,
			line.Supplier,
			line.RequestedBy,
			string(line.State),
		})
	}

	if err := s.sheets.WriteTable(ctx, s.cfg.SolpedSheetID, s.cfg.SolpedSheetName, rows); err != nil {
		return 0, fmt.Errorf("publish solped: %w", err)
	}

	log.Info().Int("rows", len(lines)).Msg("solped history published to sheet")
	return len(lines), nil
}
