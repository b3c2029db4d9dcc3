package http

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"opsboard/internal/amqp"
	"opsboard/internal/core"
	"opsboard/internal/report"
	"opsboard/internal/sheets"
	"opsboard/internal/sheets/rowcodec"
)

// handleListSales builds the sales report from a fresh sheet read. Nothing is
// cached between requests.
func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSalesFilter(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	ctx, cancel := s.sheetContext(r)
	defer cancel()
	records, err := s.sales.ListSales(ctx)
	if err != nil {
		writeUpstreamError(w, r, "list sales", err)
		return
	}

	writeJSON(w, http.StatusOK, report.BuildSalesReport(records, filter))
}

type createSaleRequest struct {
	Date           string  `json:"date"`
	Department     string  `json:"department"`
	ContractType   string  `json:"contractType"`
	ClientName     string  `json:"clientName"`
	ProductName    string  `json:"productName"`
	ContractMonths float64 `json:"contractMonths"`
	MonthlyAmount  float64 `json:"monthlyAmount"`
	TotalAmount    float64 `json:"totalAmount"`
	SalesPerson    string  `json:"salesPerson"`
}

// handleCreateSale writes the sale into the sales tab and the per-salesperson
// ledger. The two writes are independent: when the second fails the first is
// not rolled back and the request reports the failure.
func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "malformed JSON body")
		return
	}

	date, err := time.Parse(dateParamLayout, req.Date)
	if err != nil {
		writeValidationError(w, "date must be YYYY-MM-DD")
		return
	}

	p, _ := principalFrom(r.Context())
	rec := core.SalesRecord{
		Date:           date,
		Department:     req.Department,
		InputUser:      p.Name,
		ContractType:   req.ContractType,
		ClientName:     req.ClientName,
		ProductName:    req.ProductName,
		ContractMonths: req.ContractMonths,
		MonthlyAmount:  req.MonthlyAmount,
		TotalAmount:    req.TotalAmount,
		SalesPerson:    req.SalesPerson,
	}
	if rec.TotalAmount == 0 {
		rec.TotalAmount = rec.MonthlyAmount * rec.ContractMonths
	}
	if err := rec.Validate(); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	ctx, cancel := s.sheetContext(r)
	defer cancel()

	id, err := s.salesWriter.AppendSale(ctx, rec)
	if err != nil {
		writeUpstreamError(w, r, "append sale", err)
		return
	}
	cells := rowcodec.ToStrings(rowcodec.EncodeSales(rec))
	s.publishEvent(r.Context(), amqp.NewRowEvent(sheets.SheetSales, amqp.OpAppend, id, p.Email, cells))

	ledgerID, err := s.salesWriter.AppendLedgerSale(ctx, rec)
	if err != nil {
		writeUpstreamError(w, r, "append ledger sale", err)
		return
	}
	s.publishEvent(r.Context(), amqp.NewRowEvent(sheets.SheetLedger, amqp.OpAppend, ledgerID, p.Email, cells))

	writeSuccess(w, http.StatusCreated, "sale recorded", id)
}

// handleDashboard reads the three source tabs concurrently and folds them
// into the company summary.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	ctx, cancel := s.sheetContext(r)
	defer cancel()

	var (
		sales    []core.SalesRecord
		salaries []core.SalaryRecord
		loans    []core.LoanRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = s.sales.ListSales(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		salaries, err = s.salaries.ListSalaries(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		loans, err = s.loans.ListLoans(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeUpstreamError(w, r, "dashboard reads", err)
		return
	}

	writeJSON(w, http.StatusOK, report.BuildDashboard(sales, salaries, loans, start, end))
}

// handleAEPerformance ranks salespeople over the requested window.
func (s *Server) handleAEPerformance(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	ctx, cancel := s.sheetContext(r)
	defer cancel()
	records, err := s.sales.ListSales(ctx)
	if err != nil {
		writeUpstreamError(w, r, "list sales", err)
		return
	}

	writeJSON(w, http.StatusOK, report.BuildAEReport(records, start, end))
}
