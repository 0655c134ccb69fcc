// backend-go/internal/sheets/service.go
package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Service wraps the Google Sheets API for the spreadsheet-backed tables
// (stock export, stocking parameters, SOLPED history).
type Service struct {
	srv *sheets.Service
}

func NewService(credentialsJSON string) (*Service, error) {
	config, err := google.JWTConfigFromJSON(
		[]byte(credentialsJSON),
		sheets.SpreadsheetsScope,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %v", err)
	}

	client := config.Client(context.Background())

	srv, err := sheets.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Sheets client: %v", err)
	}

	return &Service{srv: srv}, nil
}

// ReadTable reads a whole sheet as a header row plus data rows. Ragged rows
// are padded so every row spans the header width.
func (s *Service) ReadTable(ctx context.Context, sheetID, sheetName string) ([][]string, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(sheetID, sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %s!%s: %w", sheetID, sheetName, err)
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}

	width := len(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, width)
		for i := 0; i < width && i < len(raw); i++ {
			row[i] = fmt.Sprintf("%v", raw[i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// WriteTable replaces the contents of a sheet with the given rows.
func (s *Service) WriteTable(ctx context.Context, sheetID, sheetName string, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	if _, err := s.srv.Spreadsheets.Values.Clear(sheetID, sheetName, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to clear sheet %s!%s: %w", sheetID, sheetName, err)
	}

	_, err := s.srv.Spreadsheets.Values.Update(sheetID, sheetName, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to write sheet %s!%s: %w", sheetID, sheetName, err)
	}

	return nil
}
