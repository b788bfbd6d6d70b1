package records

import (
	"strconv"

	"sheetmart/internal/models"
)

// DecodeInventory maps an Inventory grid, header row included.
func DecodeInventory(grid [][]string) []models.InventoryItem {
	var items []models.InventoryItem
	each(InventoryTable, grid, func(r *Row) {
		item := models.InventoryItem{
			SrNo:            r.Int("srNo"),
			Product:         r.Text("product"),
			Category:        r.Text("category"),
			Unit:            r.Text("unit"),
			MinimumQuantity: r.Number("minimumQuantity"),
			MaximumQuantity: r.Number("maximumQuantity"),
			ReorderQuantity: r.Number("reorderQuantity"),
			Stock:           r.Number("stock"),
			PricePerUnit:    r.Number("pricePerUnit"),
			Value:           r.Number("value"),
			Timestamp:       r.Text("timestamp"),
			Row:             r.Line(),
		}
		item.Errors = r.Errors()
		item.Status = item.CurrentStatus()
		items = append(items, item)
	})
	return items
}

// DecodePurchases maps a Purchase grid.
func DecodePurchases(grid [][]string) []models.PurchaseItem {
	var items []models.PurchaseItem
	each(PurchaseTable, grid, func(r *Row) {
		item := models.PurchaseItem{
			SrNo:            r.Int("srNo"),
			Product:         r.Text("product"),
			Quantity:        r.Number("quantity"),
			Unit:            r.Text("unit"),
			PricePerUnit:    r.Number("pricePerUnit"),
			Value:           r.Number("value"),
			Supplier:        r.Text("supplier"),
			DateOfReceiving: r.Text("dateOfReceiving"),
			Timestamp:       r.Text("timestamp"),
			Row:             r.Line(),
		}
		item.Errors = r.Errors()
		items = append(items, item)
	})
	return items
}

// DecodeSales maps a Sales grid.
func DecodeSales(grid [][]string) []models.SalesItem {
	var items []models.SalesItem
	each(SalesTable, grid, func(r *Row) {
		item := models.SalesItem{
			SrNo:         r.Int("srNo"),
			Product:      r.Text("product"),
			Quantity:     r.Number("quantity"),
			Unit:         r.Text("unit"),
			PricePerUnit: r.Number("pricePerUnit"),
			Value:        r.Number("value"),
			CompanyName:  r.Text("companyName"),
			DateOfIssue:  r.Text("dateOfIssue"),
			Timestamp:    r.Text("timestamp"),
			Row:          r.Line(),
		}
		item.Errors = r.Errors()
		items = append(items, item)
	})
	return items
}

// DecodeSuppliers maps a Suppliers grid.
func DecodeSuppliers(grid [][]string) []models.Supplier {
	var out []models.Supplier
	each(SuppliersTable, grid, func(r *Row) {
		out = append(out, models.Supplier{
			Supplier:    r.Text("supplier"),
			CompanyName: r.Text("companyName"),
			Row:         r.Line(),
		})
	})
	return out
}

// DecodeTenants maps the master Clients grid.
func DecodeTenants(grid [][]string) []*models.Tenant {
	var out []*models.Tenant
	each(ClientsTable, grid, func(r *Row) {
		out = append(out, &models.Tenant{
			ID:        r.Text("clientId"),
			Name:      r.Text("name"),
			Email:     r.Text("email"),
			Phone:     r.Text("phone"),
			LogoURL:   r.Text("logoUrl"),
			SheetID:   r.Text("sheetId"),
			Username:  r.Text("username"),
			Password:  r.Text("password"),
			CreatedAt: r.Text("createdAt"),
		})
	})
	return out
}

// FormatNumber writes a number the way a sheet cell shows it: no trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// encode lays values out in the table's canonical column order.
func encode(table Table, values map[string]string) []string {
	row := make([]string, len(table.Fields))
	for i, f := range table.Fields {
		row[i] = values[f.Key]
	}
	return row
}

func EncodeInventory(item *models.InventoryItem) []string {
	return encode(InventoryTable, map[string]string{
		"srNo":            strconv.Itoa(item.SrNo),
		"product":         item.Product,
		"category":        item.Category,
		"unit":            item.Unit,
		"minimumQuantity": FormatNumber(item.MinimumQuantity),
		"maximumQuantity": FormatNumber(item.MaximumQuantity),
		"reorderQuantity": FormatNumber(item.ReorderQuantity),
		"stock":           FormatNumber(item.Stock),
		"pricePerUnit":    FormatNumber(item.PricePerUnit),
		"value":           FormatNumber(item.Value),
		"timestamp":       item.Timestamp,
	})
}

func EncodePurchase(item *models.PurchaseItem) []string {
	return encode(PurchaseTable, map[string]string{
		"srNo":            strconv.Itoa(item.SrNo),
		"product":         item.Product,
		"quantity":        FormatNumber(item.Quantity),
		"unit":            item.Unit,
		"pricePerUnit":    FormatNumber(item.PricePerUnit),
		"value":           FormatNumber(item.Value),
		"supplier":        item.Supplier,
		"dateOfReceiving": item.DateOfReceiving,
		"timestamp":       item.Timestamp,
	})
}

func EncodeSale(item *models.SalesItem) []string {
	return encode(SalesTable, map[string]string{
		"srNo":         strconv.Itoa(item.SrNo),
		"product":      item.Product,
		"quantity":     FormatNumber(item.Quantity),
		"unit":         item.Unit,
		"pricePerUnit": FormatNumber(item.PricePerUnit),
		"value":        FormatNumber(item.Value),
		"companyName":  item.CompanyName,
		"dateOfIssue":  item.DateOfIssue,
		"timestamp":    item.Timestamp,
	})
}

func EncodeSupplier(s *models.Supplier) []string {
	return encode(SuppliersTable, map[string]string{
		"supplier":    s.Supplier,
		"companyName": s.CompanyName,
	})
}

func EncodeTenant(t *models.Tenant) []string {
	return encode(ClientsTable, map[string]string{
		"clientId":  t.ID,
		"name":      t.Name,
		"email":     t.Email,
		"phone":     t.Phone,
		"logoUrl":   t.LogoURL,
		"sheetId":   t.SheetID,
		"username":  t.Username,
		"password":  t.Password,
		"createdAt": t.CreatedAt,
	})
}
