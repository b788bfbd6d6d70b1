package sheets

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleStore is the TabularStore backed by the Google Sheets v4 API.
type GoogleStore struct {
	svc    *gsheets.Service
	logger *zap.Logger
}

// NewGoogleStore builds a client from service-account credentials JSON.
func NewGoogleStore(ctx context.Context, credentialsJSON []byte, logger *zap.Logger) (*GoogleStore, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &GoogleStore{svc: svc, logger: logger}, nil
}

func (s *GoogleStore) Get(ctx context.Context, sheetID, rangeSpec string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(sheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets get %s: %w", rangeSpec, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = fmt.Sprint(cell)
		}
		rows[i] = row
	}
	return rows, nil
}

func (s *GoogleStore) Append(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	_, err := s.svc.Spreadsheets.Values.Append(sheetID, rangeSpec, toValueRange(rows)).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append %s: %w", rangeSpec, err)
	}
	s.logger.Debug("appended rows", zap.String("sheet_id", sheetID), zap.String("range", rangeSpec), zap.Int("rows", len(rows)))
	return nil
}

func (s *GoogleStore) Update(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	_, err := s.svc.Spreadsheets.Values.Update(sheetID, rangeSpec, toValueRange(rows)).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets update %s: %w", rangeSpec, err)
	}
	return nil
}

func (s *GoogleStore) BatchStructuralUpdate(ctx context.Context, sheetID string, ops []StructuralOp) error {
	if len(ops) == 0 {
		return nil
	}

	requests := make([]*gsheets.Request, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case OpAddTab:
			requests = append(requests, &gsheets.Request{
				AddSheet: &gsheets.AddSheetRequest{
					Properties: &gsheets.SheetProperties{Title: op.Title},
				},
			})
		default:
			return fmt.Errorf("unsupported structural op %q", op.Kind)
		}
	}

	_, err := s.svc.Spreadsheets.BatchUpdate(sheetID, &gsheets.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets batch update: %w", err)
	}
	return nil
}

func (s *GoogleStore) DeleteRows(ctx context.Context, sheetID string, tabID int64, rowIndices []int) error {
	if len(rowIndices) == 0 {
		return nil
	}

	// Highest index first so earlier deletions don't shift later ones.
	indices := append([]int(nil), rowIndices...)
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))

	requests := make([]*gsheets.Request, 0, len(indices))
	for _, idx := range indices {
		requests = append(requests, &gsheets.Request{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:    tabID,
					Dimension:  "ROWS",
					StartIndex: int64(idx),
					EndIndex:   int64(idx + 1),
				},
			},
		})
	}

	_, err := s.svc.Spreadsheets.BatchUpdate(sheetID, &gsheets.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets delete rows: %w", err)
	}
	return nil
}

func (s *GoogleStore) Tabs(ctx context.Context, sheetID string) ([]Tab, error) {
	resp, err := s.svc.Spreadsheets.Get(sheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets get spreadsheet: %w", err)
	}

	tabs := make([]Tab, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties == nil {
			continue
		}
		tabs = append(tabs, Tab{ID: sh.Properties.SheetId, Title: sh.Properties.Title})
	}
	return tabs, nil
}

func toValueRange(rows [][]string) *gsheets.ValueRange {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	return &gsheets.ValueRange{Values: values}
}
