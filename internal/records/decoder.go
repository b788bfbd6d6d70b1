package records

import (
	"strconv"
	"strings"
	"unicode"

	"sheetmart/internal/models"
)

// FoldHeader lowercases a header and replaces every whitespace character and
// the character after it with that character uppercased.
// "Minimum Quantity" folds to "minimumQuantity", "Sr. no" to "sr.No".
func FoldHeader(header string) string {
	runes := []rune(strings.ToLower(strings.TrimSpace(header)))
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if unicode.IsSpace(runes[i]) && i+1 < len(runes) {
			out = append(out, unicode.ToUpper(runes[i+1]))
			i++
			continue
		}
		out = append(out, runes[i])
	}
	return string(out)
}

// Decoder resolves a table's fields against one header row.
type Decoder struct {
	table   Table
	columns map[string]int
}

// NewDecoder indexes headers for lookups by folded key, then by verbatim synonym.
func NewDecoder(table Table, headers []string) *Decoder {
	folded := make(map[string]int, len(headers))
	verbatim := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, ok := folded[FoldHeader(h)]; !ok {
			folded[FoldHeader(h)] = i
		}
		if _, ok := verbatim[strings.TrimSpace(h)]; !ok {
			verbatim[strings.TrimSpace(h)] = i
		}
	}

	columns := make(map[string]int, len(table.Fields))
	for _, f := range table.Fields {
		if idx, ok := folded[f.Key]; ok {
			columns[f.Key] = idx
			continue
		}
		for _, h := range f.Headers {
			if idx, ok := verbatim[h]; ok {
				columns[f.Key] = idx
				break
			}
		}
	}
	return &Decoder{table: table, columns: columns}
}

// Column returns the 0-based column of a field, or -1 when no header matched.
func (d *Decoder) Column(key string) int {
	if idx, ok := d.columns[key]; ok {
		return idx
	}
	return -1
}

// Row gives typed access to one data row.
type Row struct {
	d      *Decoder
	cells  []string
	line   int
	errors []models.FieldError
}

// Row wraps cells found on 1-based sheet row line.
func (d *Decoder) Row(cells []string, line int) *Row {
	return &Row{d: d, cells: cells, line: line}
}

// Line is the 1-based sheet row.
func (r *Row) Line() int { return r.line }

// Errors lists malformed values seen so far.
func (r *Row) Errors() []models.FieldError { return r.errors }

func (r *Row) raw(key string) string {
	idx := r.d.Column(key)
	if idx < 0 || idx >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[idx])
}

// Text returns the field value, "" when absent.
func (r *Row) Text(key string) string {
	return r.raw(key)
}

// Number returns the field as a float. Absent values are 0; malformed values
// are 0 and recorded as a FieldError.
func (r *Row) Number(key string) float64 {
	v := r.raw(key)
	if v == "" {
		return 0
	}
	n, err := ParseNumber(v)
	if err != nil {
		r.errors = append(r.errors, models.FieldError{Row: r.line, Field: key, Value: v})
		return 0
	}
	return n
}

// Int truncates Number.
func (r *Row) Int(key string) int {
	return int(r.Number(key))
}

// ParseNumber accepts sheet-formatted numbers such as "₹1,250.50" or "(12)".
func ParseNumber(v string) (float64, error) {
	s := strings.TrimSpace(v)
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.NewReplacer("₹", "", ",", "", " ", "", "\u00a0", "").Replace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if negative {
		n = -n
	}
	return n, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// each walks the data rows of grid (row 0 is the header), skipping blank rows.
func each(table Table, grid [][]string, fn func(*Row)) {
	if len(grid) == 0 {
		return
	}
	d := NewDecoder(table, grid[0])
	for i, cells := range grid[1:] {
		if blank(cells) {
			continue
		}
		fn(d.Row(cells, i+2))
	}
}

// Arrange lays out a row given in the table's canonical order according to the
// sheet's own header row. Columns the table doesn't know keep their existing
// values. With no matching header at all the canonical row is returned.
func (d *Decoder) Arrange(canonical, existing []string) []string {
	if len(d.columns) == 0 {
		return canonical
	}
	width := len(existing)
	for _, idx := range d.columns {
		if idx+1 > width {
			width = idx + 1
		}
	}
	out := make([]string, width)
	copy(out, existing)
	for i, f := range d.table.Fields {
		if idx, ok := d.columns[f.Key]; ok && i < len(canonical) {
			out[idx] = canonical[i]
		}
	}
	return out
}
