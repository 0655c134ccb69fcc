// backend-go/internal/ingest/xlsx.go
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

// readFirstSheet reads every row of the first sheet of an XLSX stream.
func readFirstSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// LoadStockXLSX reads a SAP stock export from an XLSX stream.
func LoadStockXLSX(r io.Reader) ([]domain.StockRecord, error) {
	rows, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	return StockFromRows(rows), nil
}

// LoadParametersXLSX reads a stocking-parameters workbook from an XLSX stream.
func LoadParametersXLSX(r io.Reader) ([]domain.StockParameters, error) {
	rows, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	return ParametersFromRows(rows), nil
}

// LoadStockFile dispatches on the file extension (.xlsx/.xls or .csv).
func LoadStockFile(path string) ([]domain.StockRecord, error) {
	rows, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return StockFromRows(rows), nil
}

// LoadParametersFile dispatches on the file extension (.xlsx/.xls or .csv).
func LoadParametersFile(path string) ([]domain.StockParameters, error) {
	rows, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return ParametersFromRows(rows), nil
}

func loadTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
		}
		return rows, nil
	default:
		return readFirstSheet(f)
	}
}

// LatestExport returns the most recently modified spreadsheet in dir, the
// same "newest SAP download wins" rule the planning team works by.
func LatestExport(dir string) (string, time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}

	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".xlsx" && ext != ".xls" && ext != ".csv" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	if len(candidates) == 0 {
		return "", time.Time{}, fmt.Errorf("no spreadsheet exports found in %s", dir)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime.After(candidates[j].modTime)
	})

	return candidates[0].path, candidates[0].modTime, nil
}
