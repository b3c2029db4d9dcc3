package rowcodec

import (
	"fmt"

	"opsboard/internal/core"
)

// Column contracts. Column N of a given sheet always holds a specific
// field; there is no schema validation against the store, so these indexes
// are the single place the layout is pinned down.
const (
	// Sales sheet
	salesColDate = iota
	salesColDepartment
	salesColInputUser
	salesColContractType
	salesColClientName
	salesColProductName
	salesColContractMonths
	salesColMonthlyAmount
	salesColTotalAmount
	salesColSalesPerson
	SalesColumns
)

const (
	salaryColSeq = iota
	salaryColName
	salaryColJoinDate
	salaryColPosition
	salaryColMonthly
	salaryColAnnual
	SalaryColumns
)

const (
	loanColName = iota
	loanColPrincipal
	loanColRepaid
	loanColBalance
	loanColRate
	loanColEndDate
	LoanColumns
)

// Liability sheet: name, one column per calendar month, subtotal.
const (
	liabilityColName     = 0
	liabilityColJan      = 1
	liabilityColSubtotal = 13
	LiabilityColumns     = 14
)

const (
	proposalColRequester = iota
	proposalColClientName
	proposalColClientContact
	proposalColClientEmail
	proposalColProducts
	proposalColPlatforms
	proposalColStatus
	proposalColAssignee
	proposalColCompleted
	proposalColLink
	ProposalColumns
)

const (
	advanceColDate = iota
	advanceColStaffName
	advanceColAmount
	advanceColMemo
	AdvanceColumns
)

const (
	purchaseColDate = iota
	purchaseColVendor
	purchaseColItem
	purchaseColQuantity
	purchaseColUnitPrice
	purchaseColTotalPrice
	purchaseColDepartment
	PurchaseColumns
)

const (
	clientColName = iota
	clientColContactName
	clientColPhone
	clientColEmail
	clientColManager
	clientColNote
	ClientColumns
)

const (
	staffColName = iota
	staffColDepartment
	staffColPosition
	staffColJoinDate
	staffColEmail
	staffColPhone
	StaffColumns
)

const (
	userColEmail = iota
	userColName
	userColRole
	userColDepartment
	userColToken
	UserColumns
)

// DecodeSales maps one raw sales row to a record. rowNum is the 1-based
// sheet row used to synthesize the id. A row without a parseable date is a
// header or filler row and yields ErrSkipRow.
func DecodeSales(row []string, rowNum int) (core.SalesRecord, error) {
	date, ok := ParseDate(Cell(row, salesColDate))
	if !ok {
		return core.SalesRecord{}, fmt.Errorf("row %d: %w", rowNum, ErrSkipRow)
	}
	return core.SalesRecord{
		ID:             RowID("sale", rowNum),
		Date:           date,
		Department:     Cell(row, salesColDepartment),
		InputUser:      NormalizeName(Cell(row, salesColInputUser)),
		ContractType:   Cell(row, salesColContractType),
		ClientName:     Cell(row, salesColClientName),
		ProductName:    Cell(row, salesColProductName),
		ContractMonths: ParseNumber(Cell(row, salesColContractMonths)),
		MonthlyAmount:  ParseNumber(Cell(row, salesColMonthlyAmount)),
		TotalAmount:    ParseNumber(Cell(row, salesColTotalAmount)),
		SalesPerson:    NormalizeName(Cell(row, salesColSalesPerson)),
	}, nil
}

// EncodeSales is the inverse of DecodeSales, producing the positional cell
// values the sheet expects.
func EncodeSales(r core.SalesRecord) []any {
	row := make([]any, SalesColumns)
	row[salesColDate] = FormatDate(r.Date)
	row[salesColDepartment] = r.Department
	row[salesColInputUser] = r.InputUser
	row[salesColContractType] = r.ContractType
	row[salesColClientName] = r.ClientName
	row[salesColProductName] = r.ProductName
	row[salesColContractMonths] = FormatNumber(r.ContractMonths)
	row[salesColMonthlyAmount] = FormatNumber(r.MonthlyAmount)
	row[salesColTotalAmount] = FormatNumber(r.TotalAmount)
	row[salesColSalesPerson] = r.SalesPerson
	return row
}

// DecodeSalary skips rows whose name cell is empty (filler rows at the
// bottom of the tab). The join date is optional; a bad date degrades to the
// zero time instead of skipping, salaries are reported either way.
func DecodeSalary(row []string, rowNum int) (core.SalaryRecord, error) {
	name := Cell(row, salaryColName)
	if name == "" {
		return core.SalaryRecord{}, fmt.Errorf("row %d: %w", rowNum, ErrSkipRow)
	}
	join, _ := ParseDate(Cell(row, salaryColJoinDate))
	return core.SalaryRecord{
		ID:            RowID("salary", rowNum),
		Seq:           int(ParseNumber(Cell(row, salaryColSeq))),
		Name:          NormalizeName(name),
		JoinDate:      join,
		Position:      Cell(row, salaryColPosition),
		MonthlySalary: ParseNumber(Cell(row, salaryColMonthly)),
		AnnualSalary:  ParseNumber(Cell(row, salaryColAnnual)),
	}, nil
}

func DecodeLoan(row []string, rowNum int) (core.LoanRecord, error) {
	name := Cell(row, loanColName)
	if name == "" {
		return core.LoanRecord{}, fmt.Errorf("row %d: %w", rowNum, ErrSkipRow)
	}
	end, _ := ParseDate(Cell(row, loanColEndDate))
	return core.LoanRecord{
		ID:           RowID("loan", rowNum),
		LoanName:     name,
		Principal:    ParseNumber(Cell(row, loanColPrincipal)),
		Repaid:       ParseNumber(Cell(row, loanColRepaid)),
		Balance:      ParseNumber(Cell(row, loanColBalance)),
		InterestRate: ParseNumber(Cell(row, loanColRate)),
		EndDate:      end,
	}, nil
}

func DecodeLiability(row []string, rowNum int) (core.LiabilityRecord, error) {
	name := Cell(row, liabilityColName)
	if name == "" {
		return core.LiabilityRecord{}, fmt.Errorf("row %d: %w", rowNum, ErrSkipRow)
	}
	rec := core.LiabilityRecord{
		ID:       RowID("liability", rowNum),
		Name:     name,
		Subtotal: ParseNumber(Cell(row, liabilityColSubtotal)),
	}
	for m := 0; m < 12; m++ {
		rec.Monthly[m] = ParseNumber(Cell(row, liabilityColJan+m))
	}
	return rec, nil
}

func DecodeProposal(row []string, rowNum int) (core.ProposalRecord, error) {
	requester := Cell(row, proposalColRequester)
	if requester == "" {
		return core.ProposalRecord{}, fmt.Errorf("row %d: %w", rowNum, ErrSkipRow)
	}
	completed, _ := ParseDate(Cell(row, proposalColCompleted))
	status := core.ProposalStatus(Cell(row, proposalColStatus))
	if !status.Valid() {
		// Unknown states in the sheet surface as requested rather than
		// dropping the row.
		status = core.StatusRequested
	}
	return core.ProposalRecord{
		ID:            RowID("prop", rowNum),
		Requester:     NormalizeName(requester),
		ClientName:    Cell(row, proposalColClientName),
		ClientContact: Cell(row, proposalColClientContact),
		ClientEmail:   Cell(row, proposalColClientEmail),
		Products:      SplitList(Cell(row, proposalColProducts)),
		Platforms:     SplitList(Cell(row, proposalColPlatforms)),
		Status:        status,
		Assignee:      NormalizeName(Cell(row, proposalColAssignee)),
		CompletedDate: completed,
		Link:          Cell(row, proposalColLink),
	}, nil
}

func EncodeProposal(p core.ProposalRecord) []any {
	row := make([]any, ProposalColumns)
	row[proposalColRequester] = p.Requester
	row[proposalColClientName] = p.ClientName
	row[proposalColClientContact] = p.ClientContact
	row[proposalColClientEmail] = p.ClientEmail
	row[proposalColProducts] = JoinList(p.Products)
	row[proposalColPlatforms] = JoinList(p.Platforms)
	row[proposalColStatus] = string(p.Status)
	row[proposalColAssignee] = p.Assignee
	row[proposalColCompleted] = FormatDate(p.CompletedDate)
	row[proposalColLink] = p.Link
	return row
}

func DecodeAdvance(row []string, rowNum int) (core.AdvancePayment, error) {
	date, ok := ParseDate(Cell(row, advanceColDate))
	if !ok {
		return core.AdvancePayment{}, fmt.Errorf("row %d: %w", rowNum, ErrSkipRow)
	}
	return core.AdvancePayment{
		ID:        RowID("advance", rowNum),
		Date:      date,
		StaffName: NormalizeName(Cell(row, advanceColStaffName)),
		Amount:    ParseNumber(Cell(row, advanceColAmount)),
		Memo:      Cell(row, advanceColMemo),
	}, nil
}

func DecodePurchase(row []string, rowNum int) (core.PurchaseRecord, error) {
	date, ok := ParseDate(Cell(row, purchaseColDate))
	if !ok {
		return core.PurchaseRecord{}, fmt.Errorf("row %d: %w", rowNum, ErrSkipRow)
	}
	return core.PurchaseRecord{
		ID:         RowID("purchase", rowNum),
		Date:       date,
		Vendor:     Cell(row, purchaseColVendor),
		Item:       Cell(row, purchaseColItem),
		Quantity:   ParseNumber(Cell(row, purchaseColQuantity)),
		UnitPrice:  ParseNumber(Cell(row, purchaseColUnitPrice)),
		TotalPrice: ParseNumber(Cell(row, purchaseColTotalPrice)),
		Department: Cell(row, purchaseColDepartment),
	}, nil
}

func DecodeClient(row []string, rowNum int) (core.ClaimClient, error) {
	name := Cell(row, clientColName)
	if name == "" {
		return core.ClaimClient{}, fmt.Errorf("row %d: %w", rowNum, ErrSkipRow)
	}
	return core.ClaimClient{
		ID:          RowID("client", rowNum),
		ClientName:  name,
		ContactName: Cell(row, clientColContactName),
		Phone:       Cell(row, clientColPhone),
		Email:       Cell(row, clientColEmail),
		Manager:     NormalizeName(Cell(row, clientColManager)),
		Note:        Cell(row, clientColNote),
	}, nil
}

func DecodeStaff(row []string, rowNum int) (core.StaffRecord, error) {
	name := Cell(row, staffColName)
	if name == "" {
		return core.StaffRecord{}, fmt.Errorf("row %d: %w", rowNum, ErrSkipRow)
	}
	join, _ := ParseDate(Cell(row, staffColJoinDate))
	return core.StaffRecord{
		ID:         RowID("staff", rowNum),
		Name:       NormalizeName(name),
		Department: Cell(row, staffColDepartment),
		Position:   Cell(row, staffColPosition),
		JoinDate:   join,
		Email:      Cell(row, staffColEmail),
		Phone:      Cell(row, staffColPhone),
	}, nil
}

// DecodeUser maps one row of the users tab. The token cell is the session
// credential the HTTP layer matches against; rows without one are skipped.
func DecodeUser(row []string, rowNum int) (core.Principal, string, error) {
	token := Cell(row, userColToken)
	if token == "" {
		return core.Principal{}, "", fmt.Errorf("row %d: %w", rowNum, ErrSkipRow)
	}
	return core.Principal{
		Email:      Cell(row, userColEmail),
		Name:       NormalizeName(Cell(row, userColName)),
		Role:       Cell(row, userColRole),
		Department: Cell(row, userColDepartment),
	}, token, nil
}
