package report

import (
	"time"

	"opsboard/internal/core"
)

// SalaryReport is the JSON contract of GET /api/salary (admin only).
type SalaryReport struct {
	Data          []core.SalaryRecord `json:"data"`
	Summary       SalarySummary       `json:"summary"`
	PositionStats []GroupStat         `json:"positionStats"`
}

type SalarySummary struct {
	Headcount    int     `json:"headcount"`
	MonthlyTotal float64 `json:"monthlyTotal"`
	AnnualTotal  float64 `json:"annualTotal"`
}

func BuildSalaryReport(records []core.SalaryRecord) SalaryReport {
	var sum SalarySummary
	for _, r := range records {
		sum.Headcount++
		sum.MonthlyTotal += r.MonthlySalary
		sum.AnnualTotal += r.AnnualSalary
	}
	return SalaryReport{
		Data:    records,
		Summary: sum,
		PositionStats: SumBy(records,
			func(r core.SalaryRecord) string { return r.Position },
			func(r core.SalaryRecord) float64 { return r.MonthlySalary }),
	}
}

// LoanReport is the JSON contract of GET /api/loans.
type LoanReport struct {
	Data    []core.LoanRecord `json:"data"`
	Summary LoanSummary       `json:"summary"`
}

type LoanSummary struct {
	Count          int     `json:"count"`
	TotalPrincipal float64 `json:"totalPrincipal"`
	TotalRepaid    float64 `json:"totalRepaid"`
	TotalBalance   float64 `json:"totalBalance"`
	RepaidPct      float64 `json:"repaidPct"`
}

func BuildLoanReport(records []core.LoanRecord) LoanReport {
	var sum LoanSummary
	for _, r := range records {
		sum.Count++
		sum.TotalPrincipal += r.Principal
		sum.TotalRepaid += r.Repaid
		sum.TotalBalance += r.Balance
	}
	sum.RepaidPct = Ratio(sum.TotalRepaid, sum.TotalPrincipal) * 100
	return LoanReport{Data: records, Summary: sum}
}

// LiabilityReport is the JSON contract of GET /api/liabilities. The
// monthlyTotals column always has twelve entries, one per calendar month,
// even when no row carries an amount for that month.
type LiabilityReport struct {
	Data          []core.LiabilityRecord `json:"data"`
	Summary       LiabilitySummary       `json:"summary"`
	MonthlyTotals [12]float64            `json:"monthlyTotals"`
}

type LiabilitySummary struct {
	Count         int     `json:"count"`
	SubtotalTotal float64 `json:"subtotalTotal"`
}

func BuildLiabilityReport(records []core.LiabilityRecord) LiabilityReport {
	var rep LiabilityReport
	rep.Data = records
	for _, r := range records {
		rep.Summary.Count++
		rep.Summary.SubtotalTotal += r.Subtotal
		for m := 0; m < 12; m++ {
			rep.MonthlyTotals[m] += r.Monthly[m]
		}
	}
	return rep
}

// AdvanceReport is the JSON contract of GET /api/advances.
type AdvanceReport struct {
	Data       []core.AdvancePayment `json:"data"`
	Summary    AdvanceSummary        `json:"summary"`
	StaffStats []GroupStat           `json:"staffStats"`
}

type AdvanceSummary struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

func BuildAdvanceReport(records []core.AdvancePayment, start, end time.Time) AdvanceReport {
	data := make([]core.AdvancePayment, 0, len(records))
	for _, r := range records {
		if (!start.IsZero() || !end.IsZero()) && !inRange(r.Date, start, end) {
			continue
		}
		data = append(data, r)
	}
	var sum AdvanceSummary
	for _, r := range data {
		sum.Count++
		sum.TotalAmount += r.Amount
	}
	return AdvanceReport{
		Data:    data,
		Summary: sum,
		StaffStats: SumBy(data,
			func(r core.AdvancePayment) string { return r.StaffName },
			func(r core.AdvancePayment) float64 { return r.Amount }),
	}
}

// PurchaseReport is the JSON contract of GET /api/purchases.
type PurchaseReport struct {
	Data        []core.PurchaseRecord `json:"data"`
	Summary     PurchaseSummary       `json:"summary"`
	VendorStats []GroupStat           `json:"vendorStats"`
}

type PurchaseSummary struct {
	Count      int     `json:"count"`
	TotalPrice float64 `json:"totalPrice"`
}

func BuildPurchaseReport(records []core.PurchaseRecord, start, end time.Time) PurchaseReport {
	data := make([]core.PurchaseRecord, 0, len(records))
	for _, r := range records {
		if (!start.IsZero() || !end.IsZero()) && !inRange(r.Date, start, end) {
			continue
		}
		data = append(data, r)
	}
	var sum PurchaseSummary
	for _, r := range data {
		sum.Count++
		sum.TotalPrice += r.TotalPrice
	}
	return PurchaseReport{
		Data:    data,
		Summary: sum,
		VendorStats: SumBy(data,
			func(r core.PurchaseRecord) string { return r.Vendor },
			func(r core.PurchaseRecord) float64 { return r.TotalPrice }),
	}
}

// StaffReport is the JSON contract of GET /api/staff.
type StaffReport struct {
	Data            []core.StaffRecord `json:"data"`
	Summary         StaffSummary       `json:"summary"`
	DepartmentStats []GroupStat        `json:"departmentStats"`
}

type StaffSummary struct {
	Headcount int `json:"headcount"`
}

func BuildStaffReport(records []core.StaffRecord) StaffReport {
	return StaffReport{
		Data:    records,
		Summary: StaffSummary{Headcount: len(records)},
		DepartmentStats: SumBy(records,
			func(r core.StaffRecord) string { return r.Department },
			func(core.StaffRecord) float64 { return 1 }),
	}
}

// Dashboard is the JSON contract of GET /api/dashboard: a cross-table
// company summary. Profit is revenue minus payroll cost over the window;
// margin guards the zero-revenue case.
type Dashboard struct {
	Summary         DashboardSummary `json:"summary"`
	DepartmentStats []GroupStat      `json:"departmentStats"`
	MonthlyStats    []MonthStat      `json:"monthlyStats"`
}

type DashboardSummary struct {
	Revenue     float64 `json:"revenue"`
	PayrollCost float64 `json:"payrollCost"`
	Profit      float64 `json:"profit"`
	MarginPct   float64 `json:"marginPct"`
	LoanBalance float64 `json:"loanBalance"`
	Headcount   int     `json:"headcount"`
}

func BuildDashboard(sales []core.SalesRecord, salaries []core.SalaryRecord, loans []core.LoanRecord, start, end time.Time) Dashboard {
	window := FilterSales(sales, SalesFilter{Start: start, End: end})

	var sum DashboardSummary
	for _, r := range window {
		sum.Revenue += r.TotalAmount
	}
	for _, s := range salaries {
		sum.Headcount++
		sum.PayrollCost += s.MonthlySalary
	}
	// Payroll is a monthly figure; scale it to the number of month buckets
	// in the window.
	wstart, wend := seriesWindow(window, start, end)
	monthly := MonthlySeries(window,
		func(r core.SalesRecord) time.Time { return r.Date },
		func(r core.SalesRecord) float64 { return r.TotalAmount },
		wstart, wend)
	sum.PayrollCost *= float64(len(monthly))

	for _, l := range loans {
		sum.LoanBalance += l.Balance
	}
	sum.Profit = sum.Revenue - sum.PayrollCost
	sum.MarginPct = MarginPct(sum.Profit, sum.Revenue)

	return Dashboard{
		Summary: sum,
		DepartmentStats: SumBy(window,
			func(r core.SalesRecord) string { return r.Department },
			func(r core.SalesRecord) float64 { return r.TotalAmount }),
		MonthlyStats: monthly,
	}
}
