package http

import (
	"net/http"

	"opsboard/internal/report"
)

func (s *Server) handleSalary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.sheetContext(r)
	defer cancel()
	records, err := s.salaries.ListSalaries(ctx)
	if err != nil {
		writeUpstreamError(w, r, "list salaries", err)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildSalaryReport(records))
}

func (s *Server) handleLoans(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.sheetContext(r)
	defer cancel()
	records, err := s.loans.ListLoans(ctx)
	if err != nil {
		writeUpstreamError(w, r, "list loans", err)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildLoanReport(records))
}

func (s *Server) handleLiabilities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.sheetContext(r)
	defer cancel()
	records, err := s.liabilities.ListLiabilities(ctx)
	if err != nil {
		writeUpstreamError(w, r, "list liabilities", err)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildLiabilityReport(records))
}

func (s *Server) handleAdvances(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}
	ctx, cancel := s.sheetContext(r)
	defer cancel()
	records, err := s.advances.ListAdvances(ctx)
	if err != nil {
		writeUpstreamError(w, r, "list advances", err)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildAdvanceReport(records, start, end))
}

func (s *Server) handlePurchases(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}
	ctx, cancel := s.sheetContext(r)
	defer cancel()
	records, err := s.purchases.ListPurchases(ctx)
	if err != nil {
		writeUpstreamError(w, r, "list purchases", err)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildPurchaseReport(records, start, end))
}
