package report

import (
	"testing"
	"time"

	"opsboard/internal/core"
)

func sale(date time.Time, dept, person string, months, monthly float64) core.SalesRecord {
	return core.SalesRecord{
		Date:           date,
		Department:     dept,
		SalesPerson:    person,
		ContractMonths: months,
		MonthlyAmount:  monthly,
		TotalAmount:    months * monthly,
	}
}

func TestFilterSales(t *testing.T) {
	records := []core.SalesRecord{
		sale(day(2024, time.January, 10), "영업부", "홍길동", 3, 100),
		sale(day(2024, time.February, 5), "마케팅", "김영희", 6, 200),
		sale(day(2024, time.March, 1), "영업부", "김영희", 12, 300),
	}

	got := FilterSales(records, SalesFilter{Department: "영업부"})
	if len(got) != 2 {
		t.Fatalf("department filter: len = %d", len(got))
	}

	got = FilterSales(records, SalesFilter{
		Start: day(2024, time.February, 1),
		End:   day(2024, time.February, 28),
	})
	if len(got) != 1 || got[0].Department != "마케팅" {
		t.Fatalf("date filter: %+v", got)
	}

	got = FilterSales(records, SalesFilter{SalesPerson: "김영희", Department: "영업부"})
	if len(got) != 1 || got[0].TotalAmount != 3600 {
		t.Fatalf("combined filter: %+v", got)
	}

	if got = FilterSales(records, SalesFilter{}); len(got) != 3 {
		t.Fatalf("empty filter should keep everything, got %d", len(got))
	}
}

func TestBuildSalesReport(t *testing.T) {
	records := []core.SalesRecord{
		sale(day(2024, time.January, 10), "영업부", "홍길동", 3, 1000000),
		sale(day(2024, time.March, 1), "영업부", "김영희", 6, 500000),
		sale(day(2024, time.March, 20), "마케팅", "김영희", 12, 250000),
	}

	rep := BuildSalesReport(records, SalesFilter{
		Start: day(2024, time.January, 1),
		End:   day(2024, time.March, 31),
	})

	if rep.Summary.Count != 3 {
		t.Fatalf("count = %d", rep.Summary.Count)
	}
	if rep.Summary.TotalAmount != 3000000+3000000+3000000 {
		t.Fatalf("total = %v", rep.Summary.TotalAmount)
	}
	if rep.Summary.AvgContractMonths != 7 {
		t.Fatalf("avg months = %v", rep.Summary.AvgContractMonths)
	}
	if len(rep.DepartmentStats) != 2 || rep.DepartmentStats[0].Name != "영업부" {
		t.Fatalf("department stats = %+v", rep.DepartmentStats)
	}
	if len(rep.MonthlyStats) != 3 {
		t.Fatalf("monthly buckets = %d, want Jan..Mar", len(rep.MonthlyStats))
	}
	if rep.MonthlyStats[1].Count != 0 {
		t.Fatalf("february should be a zero bucket: %+v", rep.MonthlyStats[1])
	}
}

func TestBuildSalesReportEmpty(t *testing.T) {
	rep := BuildSalesReport(nil, SalesFilter{})
	if rep.Summary.Count != 0 || rep.Summary.AvgContractMonths != 0 {
		t.Fatalf("empty summary = %+v", rep.Summary)
	}
	if len(rep.Data) != 0 {
		t.Fatalf("data = %v", rep.Data)
	}
}

func TestBuildAEReport(t *testing.T) {
	records := []core.SalesRecord{
		sale(day(2024, time.January, 5), "영업부", "홍길동", 1, 100),
		sale(day(2024, time.January, 6), "영업부", "김영희", 1, 300),
		sale(day(2024, time.January, 7), "영업부", "홍길동", 1, 100),
	}
	rep := BuildAEReport(records, day(2024, time.January, 1), day(2024, time.January, 31))

	if rep.Summary.SalesPersons != 2 || rep.Summary.TotalAmount != 500 {
		t.Fatalf("summary = %+v", rep.Summary)
	}
	if rep.Data[0].Name != "김영희" || rep.Data[0].SharePct != 60 {
		t.Fatalf("top AE = %+v", rep.Data[0])
	}
	if rep.Data[1].Count != 2 || rep.Data[1].SharePct != 40 {
		t.Fatalf("second AE = %+v", rep.Data[1])
	}
}

func TestBuildAEReportZeroRevenue(t *testing.T) {
	records := []core.SalesRecord{
		sale(day(2024, time.January, 5), "영업부", "홍길동", 0, 0),
	}
	rep := BuildAEReport(records, day(2024, time.January, 1), day(2024, time.January, 31))
	if rep.Data[0].SharePct != 0 {
		t.Fatalf("share with zero revenue = %v, want 0", rep.Data[0].SharePct)
	}
}

func TestBuildDashboard(t *testing.T) {
	sales := []core.SalesRecord{
		sale(day(2024, time.January, 10), "영업부", "홍길동", 1, 10000000),
		sale(day(2024, time.February, 10), "마케팅", "김영희", 1, 5000000),
	}
	salaries := []core.SalaryRecord{
		{Name: "홍길동", MonthlySalary: 3000000},
		{Name: "김영희", MonthlySalary: 2000000},
	}
	loans := []core.LoanRecord{
		{LoanName: "운전자금", Balance: 40000000},
	}

	d := BuildDashboard(sales, salaries, loans,
		day(2024, time.January, 1), day(2024, time.February, 28))

	if d.Summary.Revenue != 15000000 {
		t.Fatalf("revenue = %v", d.Summary.Revenue)
	}
	// Two month buckets, 5M monthly payroll.
	if d.Summary.PayrollCost != 10000000 {
		t.Fatalf("payroll = %v", d.Summary.PayrollCost)
	}
	if d.Summary.Profit != 5000000 {
		t.Fatalf("profit = %v", d.Summary.Profit)
	}
	if d.Summary.LoanBalance != 40000000 || d.Summary.Headcount != 2 {
		t.Fatalf("summary = %+v", d.Summary)
	}
	if len(d.MonthlyStats) != 2 {
		t.Fatalf("monthly buckets = %d", len(d.MonthlyStats))
	}
}

func TestBuildLiabilityReportMonthlyTotals(t *testing.T) {
	records := []core.LiabilityRecord{
		{Name: "카드", Monthly: [12]float64{100, 0, 50}, Subtotal: 150},
		{Name: "임차료", Monthly: [12]float64{200, 200, 200}, Subtotal: 600},
	}
	rep := BuildLiabilityReport(records)
	if rep.MonthlyTotals[0] != 300 || rep.MonthlyTotals[1] != 200 || rep.MonthlyTotals[2] != 250 {
		t.Fatalf("monthly totals = %v", rep.MonthlyTotals)
	}
	if rep.MonthlyTotals[11] != 0 {
		t.Fatalf("december should be zero, got %v", rep.MonthlyTotals[11])
	}
	if rep.Summary.SubtotalTotal != 750 {
		t.Fatalf("subtotal = %v", rep.Summary.SubtotalTotal)
	}
}

func TestBuildLoanReportRepaidPct(t *testing.T) {
	rep := BuildLoanReport([]core.LoanRecord{
		{LoanName: "a", Principal: 1000, Repaid: 250, Balance: 750},
		{LoanName: "b", Principal: 1000, Repaid: 250, Balance: 750},
	})
	if rep.Summary.RepaidPct != 25 {
		t.Fatalf("repaid pct = %v", rep.Summary.RepaidPct)
	}
	if empty := BuildLoanReport(nil); empty.Summary.RepaidPct != 0 {
		t.Fatalf("zero principal should yield 0, got %v", empty.Summary.RepaidPct)
	}
}
