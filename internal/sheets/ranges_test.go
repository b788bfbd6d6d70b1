package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnLetterRoundTrip(t *testing.T) {
	cases := map[int]string{0: "A", 10: "K", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for idx, letters := range cases {
		assert.Equal(t, letters, ColumnLetter(idx), "index %d", idx)
		assert.Equal(t, idx, ColumnIndex(letters), "letters %s", letters)
	}
	assert.Equal(t, "", ColumnLetter(-1))
	assert.Equal(t, -1, ColumnIndex("A1"))
}

func TestRowRange(t *testing.T) {
	assert.Equal(t, "Inventory!A4:K4", RowRange("Inventory", 4, 11))
	assert.Equal(t, "Clients!A1:A1", RowRange("Clients", 1, 0))
	assert.Equal(t, "Sales!A:Z", ColumnsRange("Sales"))
}

func TestParseRange(t *testing.T) {
	tab, start, end, err := ParseRange("Inventory!B3:D7")
	require.NoError(t, err)
	assert.Equal(t, "Inventory", tab)
	assert.Equal(t, Cell{Col: 1, Row: 3}, start)
	assert.Equal(t, Cell{Col: 3, Row: 7}, end)

	tab, start, end, err = ParseRange("'Purchase'!A:Z")
	require.NoError(t, err)
	assert.Equal(t, "Purchase", tab)
	assert.Equal(t, Cell{Col: 0}, start)
	assert.Equal(t, Cell{Col: 25}, end)

	tab, _, _, err = ParseRange("Suppliers")
	require.NoError(t, err)
	assert.Equal(t, "Suppliers", tab)

	_, _, _, err = ParseRange("Sales!A0")
	assert.Error(t, err)
}
