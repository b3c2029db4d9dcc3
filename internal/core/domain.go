package core

import (
	"errors"
	"strings"
	"time"
)

// Proposal lifecycle states. A proposal is created as Requested and only
// moves between states through an explicit status update; rows are never
// deleted.
const (
	StatusRequested  ProposalStatus = "requested"
	StatusReviewing  ProposalStatus = "reviewing"
	StatusInProgress ProposalStatus = "in-progress"
	StatusCompleted  ProposalStatus = "completed"
	StatusOnHold     ProposalStatus = "on-hold"
)

const RoleAdmin = "ADMIN"

type (
	ProposalStatus string

	// Principal is the request-scoped caller identity resolved from the
	// session token. It is injected per request, never read from globals.
	Principal struct {
		Email      string
		Name       string
		Role       string
		Department string
	}

	// SalesRecord is one row of the sales sheet. TotalAmount is assumed
	// (not enforced) to equal MonthlyAmount * ContractMonths.
	SalesRecord struct {
		ID             string    `json:"id"`
		Date           time.Time `json:"date"`
		Department     string    `json:"department"`
		InputUser      string    `json:"inputUser"`
		ContractType   string    `json:"contractType"`
		ClientName     string    `json:"clientName"`
		ProductName    string    `json:"productName"`
		ContractMonths float64   `json:"contractMonths"`
		MonthlyAmount  float64   `json:"monthlyAmount"`
		TotalAmount    float64   `json:"totalAmount"`
		SalesPerson    string    `json:"salesPerson"`
	}

	SalaryRecord struct {
		ID            string    `json:"id"`
		Seq           int       `json:"seq"`
		Name          string    `json:"name"`
		JoinDate      time.Time `json:"joinDate"`
		Position      string    `json:"position"`
		MonthlySalary float64   `json:"monthlySalary"`
		AnnualSalary  float64   `json:"annualSalary"`
	}

	// LoanRecord: Balance is assumed (unchecked) to equal Principal - Repaid.
	LoanRecord struct {
		ID           string    `json:"id"`
		LoanName     string    `json:"loanName"`
		Principal    float64   `json:"principal"`
		Repaid       float64   `json:"repaid"`
		Balance      float64   `json:"balance"`
		InterestRate float64   `json:"interestRate"`
		EndDate      time.Time `json:"endDate"`
	}

	// LiabilityRecord carries one amount per calendar month plus a subtotal
	// column that is assumed to be the sum of the monthly buckets.
	LiabilityRecord struct {
		ID       string      `json:"id"`
		Name     string      `json:"name"`
		Monthly  [12]float64 `json:"monthly"`
		Subtotal float64     `json:"subtotal"`
	}

	ProposalRecord struct {
		ID            string         `json:"id"`
		Requester     string         `json:"requester"`
		ClientName    string         `json:"clientName"`
		ClientContact string         `json:"clientContact"`
		ClientEmail   string         `json:"clientEmail"`
		Products      []string       `json:"products"`
		Platforms     []string       `json:"platforms"`
		Status        ProposalStatus `json:"status"`
		Assignee      string         `json:"assignee"`
		CompletedDate time.Time      `json:"completedDate"`
		Link          string         `json:"link"`
	}

	AdvancePayment struct {
		ID        string    `json:"id"`
		Date      time.Time `json:"date"`
		StaffName string    `json:"staffName"`
		Amount    float64   `json:"amount"`
		Memo      string    `json:"memo"`
	}

	PurchaseRecord struct {
		ID         string    `json:"id"`
		Date       time.Time `json:"date"`
		Vendor     string    `json:"vendor"`
		Item       string    `json:"item"`
		Quantity   float64   `json:"quantity"`
		UnitPrice  float64   `json:"unitPrice"`
		TotalPrice float64   `json:"totalPrice"`
		Department string    `json:"department"`
	}

	ClaimClient struct {
		ID          string `json:"id"`
		ClientName  string `json:"clientName"`
		ContactName string `json:"contactName"`
		Phone       string `json:"phone"`
		Email       string `json:"email"`
		Manager     string `json:"manager"`
		Note        string `json:"note"`
	}

	StaffRecord struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Department string    `json:"department"`
		Position   string    `json:"position"`
		JoinDate   time.Time `json:"joinDate"`
		Email      string    `json:"email"`
		Phone      string    `json:"phone"`
	}
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrForbidden        = errors.New("insufficient role")
	ErrEmptyDepartment  = errors.New("empty department")
	ErrEmptyClientName  = errors.New("empty client name")
	ErrEmptyProductName = errors.New("empty product name")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidMonths    = errors.New("invalid contract months")
	ErrEmptyRequester   = errors.New("empty requester")
	ErrInvalidStatus    = errors.New("invalid status")
)

// Valid reports whether s is one of the known lifecycle states.
func (s ProposalStatus) Valid() bool {
	switch s {
	case StatusRequested, StatusReviewing, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// IsAdmin compares the single role string; there is no role hierarchy.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Validate checks a sales record arriving from a create request. Records
// decoded from the sheet are never validated; bad cells degrade to zero
// values instead.
func (r SalesRecord) Validate() error {
	if r.Date.IsZero() {
		return errors.New("missing date")
	}
	if strings.TrimSpace(r.Department) == "" {
		return ErrEmptyDepartment
	}
	if strings.TrimSpace(r.ClientName) == "" {
		return ErrEmptyClientName
	}
	if strings.TrimSpace(r.ProductName) == "" {
		return ErrEmptyProductName
	}
	if r.ContractMonths <= 0 {
		return ErrInvalidMonths
	}
	if r.MonthlyAmount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (p ProposalRecord) Validate() error {
	if strings.TrimSpace(p.Requester) == "" {
		return ErrEmptyRequester
	}
	if strings.TrimSpace(p.ClientName) == "" {
		return ErrEmptyClientName
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
