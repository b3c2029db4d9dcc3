package sheets

// Tab names of the workbook's logical tables. Adapters use these as
// defaults (the google adapter allows per-tab env overrides) and audit
// events reference them as the sheet identifier.
const (
	SheetSales       = "Sales"
	SheetLedger      = "SalesLedger"
	SheetSalary      = "Salary"
	SheetLoans       = "Loans"
	SheetLiabilities = "Liabilities"
	SheetAdvances    = "Advances"
	SheetPurchases   = "Purchases"
	SheetStaff       = "Staff"
	SheetProposals   = "Proposals"
	SheetClients     = "Clients"
	SheetUsers       = "Users"
)
