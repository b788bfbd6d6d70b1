// Package sheets treats a spreadsheet as a set of named tabs holding 2-D string
// grids. Row 0 of every tab is the header row.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrTabNotFound = errors.New("tab not found")

// OpKind identifies a structural change to a spreadsheet.
type OpKind string

const (
	OpAddTab OpKind = "add_tab"
)

// StructuralOp is one entry of a batch structural update.
type StructuralOp struct {
	Kind  OpKind
	Title string
}

// AddTab returns the operation that creates a tab named title.
func AddTab(title string) StructuralOp {
	return StructuralOp{Kind: OpAddTab, Title: title}
}

// Tab describes a tab inside a spreadsheet.
type Tab struct {
	ID    int64
	Title string
}

// TabularStore is the only contract the rest of the service has with the
// backing spreadsheet service.
type TabularStore interface {
	Get(ctx context.Context, sheetID, rangeSpec string) ([][]string, error)
	Append(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error
	Update(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error
	BatchStructuralUpdate(ctx context.Context, sheetID string, ops []StructuralOp) error
	DeleteRows(ctx context.Context, sheetID string, tabID int64, rowIndices []int) error
	Tabs(ctx context.Context, sheetID string) ([]Tab, error)
}

// FindTab looks a tab up by title, case-insensitively.
func FindTab(ctx context.Context, store TabularStore, sheetID, title string) (*Tab, error) {
	tabs, err := store.Tabs(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	for i := range tabs {
		if strings.EqualFold(tabs[i].Title, title) {
			return &tabs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTabNotFound, title)
}

// EnsureTab creates the tab when it is missing and writes the header row when
// the tab has no rows yet. Existing headers are left alone.
func EnsureTab(ctx context.Context, store TabularStore, sheetID, title string, headers []string) error {
	_, err := FindTab(ctx, store, sheetID, title)
	switch {
	case errors.Is(err, ErrTabNotFound):
		if err := store.BatchStructuralUpdate(ctx, sheetID, []StructuralOp{AddTab(title)}); err != nil {
			return fmt.Errorf("failed to add tab %s: %w", title, err)
		}
	case err != nil:
		return err
	default:
		rows, err := store.Get(ctx, sheetID, ColumnsRange(title))
		if err != nil {
			return fmt.Errorf("failed to read tab %s: %w", title, err)
		}
		if len(rows) > 0 {
			return nil
		}
	}

	if err := store.Update(ctx, sheetID, RowRange(title, 1, len(headers)), [][]string{headers}); err != nil {
		return fmt.Errorf("failed to write headers for %s: %w", title, err)
	}
	return nil
}
