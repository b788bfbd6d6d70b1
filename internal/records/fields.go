// Package records maps raw tab grids to typed domain records and back.
package records

// Tab names used in tenant spreadsheets and the master directory.
const (
	TabInventory = "Inventory"
	TabPurchase  = "Purchase"
	TabSales     = "Sales"
	TabSuppliers = "Suppliers"
	TabClients   = "Clients"
)

type fieldKind int

const (
	textField fieldKind = iota
	numberField
	intField
)

// Field maps a logical field to the headers it may appear under. Key is
// matched against folded headers, Headers verbatim after trimming. Headers[0]
// is the header written when a tab is created.
type Field struct {
	Key     string
	Headers []string
	kind    fieldKind
}

// Table is the declarative layout of one tab.
type Table struct {
	Tab    string
	Fields []Field
}

// Headers returns the canonical header row.
func (t Table) Headers() []string {
	out := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = f.Headers[0]
	}
	return out
}

func (t Table) field(key string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

func text(key string, headers ...string) Field   { return Field{Key: key, Headers: headers, kind: textField} }
func number(key string, headers ...string) Field { return Field{Key: key, Headers: headers, kind: numberField} }
func integer(key string, headers ...string) Field {
	return Field{Key: key, Headers: headers, kind: intField}
}

var srNo = integer("srNo", "Sr. no", "Sr. No", "Sr No", "S.No", "S. No")

var InventoryTable = Table{
	Tab: TabInventory,
	Fields: []Field{
		srNo,
		text("product", "Product", "Product Name", "Item"),
		text("category", "Category"),
		text("unit", "Unit"),
		number("minimumQuantity", "Minimum Quantity", "Min Quantity", "Min Qty"),
		number("maximumQuantity", "Maximum Quantity", "Max Quantity", "Max Qty"),
		number("reorderQuantity", "Reorder Quantity", "Reorder Qty"),
		number("stock", "Stock", "Current Stock", "Quantity in Stock"),
		number("pricePerUnit", "Price per Unit", "Price Per Unit", "Rate"),
		number("value", "Value", "Total Value"),
		text("timestamp", "Timestamp"),
	},
}

var PurchaseTable = Table{
	Tab: TabPurchase,
	Fields: []Field{
		srNo,
		text("product", "Product", "Product Name", "Item"),
		number("quantity", "Quantity", "Qty"),
		text("unit", "Unit"),
		number("pricePerUnit", "Price per Unit", "Price Per Unit", "Rate"),
		number("value", "Value", "Total Value"),
		text("supplier", "Supplier", "Supplier Name"),
		text("dateOfReceiving", "Date of Receiving", "Date Of Receiving", "Received Date", "Date"),
		text("timestamp", "Timestamp"),
	},
}

var SalesTable = Table{
	Tab: TabSales,
	Fields: []Field{
		srNo,
		text("product", "Product", "Product Name", "Item"),
		number("quantity", "Quantity", "Qty"),
		text("unit", "Unit"),
		number("pricePerUnit", "Price per Unit", "Price Per Unit", "Rate"),
		number("value", "Value", "Total Value"),
		text("companyName", "Company Name", "Company", "Customer"),
		text("dateOfIssue", "Date of Issue", "Date Of Issue", "Issue Date", "Date"),
		text("timestamp", "Timestamp"),
	},
}

var SuppliersTable = Table{
	Tab: TabSuppliers,
	Fields: []Field{
		text("supplier", "Supplier", "Supplier Name"),
		text("companyName", "Company Name", "Company"),
	},
}

var ClientsTable = Table{
	Tab: TabClients,
	Fields: []Field{
		text("clientId", "Client ID", "Client Id", "ID", "Id"),
		text("name", "Name", "Client Name"),
		text("email", "Email", "Email Address"),
		text("phone", "Phone", "Phone Number"),
		text("logoUrl", "Logo URL", "Logo"),
		text("sheetId", "Sheet ID", "Spreadsheet ID"),
		text("username", "Username"),
		text("password", "Password"),
		text("createdAt", "Created At"),
	},
}

// TenantTables are the tabs every tenant spreadsheet carries.
var TenantTables = []Table{InventoryTable, PurchaseTable, SalesTable, SuppliersTable}
