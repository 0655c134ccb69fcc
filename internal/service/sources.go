package service

import (
	"context"
	"time"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
	"github.com/jacengineering/inventario/backend-go/internal/ingest"
	"github.com/jacengineering/inventario/backend-go/internal/repository"
)

// FileStockSource reads the newest SAP export found in a directory, the
// same rule the planning team applies manually.
type FileStockSource struct {
	Dir string
}

func (s *FileStockSource) LoadStock(ctx context.Context) ([]domain.StockRecord, time.Time, error) {
	path, modTime, err := ingest.LatestExport(s.Dir)
	if err != nil {
		return nil, time.Time{}, err
	}

	records, err := ingest.LoadStockFile(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	return records, modTime, nil
}

// FileParameterSource reads the stocking parameters from a workbook path.
type FileParameterSource struct {
	Path string
}

func (s *FileParameterSource) LoadParameters(ctx context.Context) ([]domain.StockParameters, error) {
	return ingest.LoadParametersFile(s.Path)
}

// RepoParameterSource serves parameters from the Postgres copy maintained by
// the sheet sync.
type RepoParameterSource struct {
	Repo repository.ParametersRepository
}

func (s *RepoParameterSource) LoadParameters(ctx context.Context) ([]domain.StockParameters, error) {
	return s.Repo.List(ctx)
}

// SheetStockSource adapts a sheets-backed loader to the StockSource
// contract; the as-of time is the read time since the sheet carries none.
type SheetStockSource struct {
	Loader interface {
		LoadStock(ctx context.Context) ([]domain.StockRecord, error)
	}
}

func (s *SheetStockSource) LoadStock(ctx context.Context) ([]domain.StockRecord, time.Time, error) {
	records, err := s.Loader.LoadStock(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	return records, time.Now(), nil
}
