package repositories

import (
	"context"
	"fmt"

	"sheetmart/internal/records"
	"sheetmart/internal/sheets"
)

// sheetTable reads and writes one tab layout in any spreadsheet.
type sheetTable struct {
	store sheets.TabularStore
	table records.Table
}

func (t sheetTable) read(ctx context.Context, sheetID string) ([][]string, error) {
	grid, err := t.store.Get(ctx, sheetID, sheets.ColumnsRange(t.table.Tab))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t.table.Tab, err)
	}
	return grid, nil
}

func (t sheetTable) ensure(ctx context.Context, sheetID string) error {
	return sheets.EnsureTab(ctx, t.store, sheetID, t.table.Tab, t.table.Headers())
}

func header(grid [][]string) []string {
	if len(grid) == 0 {
		return nil
	}
	return grid[0]
}

// append ensures the tab exists and appends a canonical row laid out to
// match the tab's header. canonical receives the grid read before appending.
func (t sheetTable) append(ctx context.Context, sheetID string, canonical func(grid [][]string) []string) error {
	if err := t.ensure(ctx, sheetID); err != nil {
		return err
	}
	grid, err := t.read(ctx, sheetID)
	if err != nil {
		return err
	}
	row := records.NewDecoder(t.table, header(grid)).Arrange(canonical(grid), nil)
	if err := t.store.Append(ctx, sheetID, sheets.ColumnsRange(t.table.Tab), [][]string{row}); err != nil {
		return fmt.Errorf("failed to append to %s: %w", t.table.Tab, err)
	}
	return nil
}

// rewrite overwrites 1-based sheet row line.
func (t sheetTable) rewrite(ctx context.Context, sheetID string, line int, canonical []string) error {
	grid, err := t.read(ctx, sheetID)
	if err != nil {
		return err
	}
	var existing []string
	if line-1 < len(grid) {
		existing = grid[line-1]
	}
	row := records.NewDecoder(t.table, header(grid)).Arrange(canonical, existing)
	if err := t.store.Update(ctx, sheetID, sheets.RowRange(t.table.Tab, line, len(row)), [][]string{row}); err != nil {
		return fmt.Errorf("failed to update %s row %d: %w", t.table.Tab, line, err)
	}
	return nil
}

// dataRows counts non-blank rows below the header.
func dataRows(grid [][]string) int {
	n := 0
	for i := 1; i < len(grid); i++ {
		for _, c := range grid[i] {
			if c != "" {
				n++
				break
			}
		}
	}
	return n
}
