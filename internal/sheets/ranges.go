package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnsRange addresses every row of a tab, e.g. "Inventory!A:Z".
func ColumnsRange(tab string) string {
	return tab + "!A:Z"
}

// RowRange addresses one 1-based sheet row spanning width columns,
// e.g. RowRange("Inventory", 4, 11) == "Inventory!A4:K4".
func RowRange(tab string, row, width int) string {
	if width < 1 {
		width = 1
	}
	return fmt.Sprintf("%s!A%d:%s%d", tab, row, ColumnLetter(width-1), row)
}

// ColumnLetter converts a 0-based column index to A1 letters (0 -> A, 26 -> AA).
func ColumnLetter(index int) string {
	if index < 0 {
		return ""
	}
	var b []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// ColumnIndex is the inverse of ColumnLetter. It returns -1 for invalid input.
func ColumnIndex(letters string) int {
	if letters == "" {
		return -1
	}
	n := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return -1
		}
		n = n*26 + int(r-'A'+1)
	}
	return n - 1
}

// Cell is one end of an A1 range. Row is 0 when the reference is column-only.
type Cell struct {
	Col int
	Row int
}

// ParseRange splits "Tab!A2:C9" into its tab and corners. A bare tab name
// addresses the whole tab.
func ParseRange(rangeSpec string) (tab string, start, end Cell, err error) {
	tab, ref, found := strings.Cut(rangeSpec, "!")
	tab = strings.Trim(tab, "'")
	if !found || ref == "" {
		return tab, Cell{Col: 0}, Cell{Col: ColumnIndex("Z")}, nil
	}

	first, last, isSpan := strings.Cut(ref, ":")
	if start, err = parseCell(first); err != nil {
		return "", Cell{}, Cell{}, fmt.Errorf("invalid range %q: %w", rangeSpec, err)
	}
	end = start
	if isSpan {
		if end, err = parseCell(last); err != nil {
			return "", Cell{}, Cell{}, fmt.Errorf("invalid range %q: %w", rangeSpec, err)
		}
	}
	return tab, start, end, nil
}

func parseCell(ref string) (Cell, error) {
	i := 0
	for i < len(ref) && (ref[i] < '0' || ref[i] > '9') {
		i++
	}
	col := ColumnIndex(ref[:i])
	if col < 0 {
		return Cell{}, fmt.Errorf("bad column in %q", ref)
	}
	if i == len(ref) {
		return Cell{Col: col}, nil
	}
	row, err := strconv.Atoi(ref[i:])
	if err != nil || row < 1 {
		return Cell{}, fmt.Errorf("bad row in %q", ref)
	}
	return Cell{Col: col, Row: row}, nil
}
