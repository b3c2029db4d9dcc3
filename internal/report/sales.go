package report

import (
	"sort"
	"time"

	"opsboard/internal/core"
)

// SalesFilter narrows the sales rows a report is built from. Zero-valued
// fields match everything.
type SalesFilter struct {
	Start       time.Time
	End         time.Time
	Department  string
	SalesPerson string
}

type SalesSummary struct {
	Count             int     `json:"count"`
	TotalAmount       float64 `json:"totalAmount"`
	MonthlyAmount     float64 `json:"monthlyAmount"`
	AvgContractMonths float64 `json:"avgContractMonths"`
}

// SalesReport is the JSON contract of GET /api/sales.
type SalesReport struct {
	Data            []core.SalesRecord `json:"data"`
	Summary         SalesSummary       `json:"summary"`
	DepartmentStats []GroupStat        `json:"departmentStats"`
	MonthlyStats    []MonthStat        `json:"monthlyStats"`
}

// FilterSales keeps the rows matching f, preserving sheet order.
func FilterSales(records []core.SalesRecord, f SalesFilter) []core.SalesRecord {
	out := make([]core.SalesRecord, 0, len(records))
	for _, r := range records {
		if !f.Start.IsZero() || !f.End.IsZero() {
			if !inRange(r.Date, f.Start, f.End) {
				continue
			}
		}
		if f.Department != "" && r.Department != f.Department {
			continue
		}
		if f.SalesPerson != "" && r.SalesPerson != f.SalesPerson {
			continue
		}
		out = append(out, r)
	}
	return out
}

// BuildSalesReport aggregates the filtered rows into the sales page shape.
// Department buckets keep first-seen order; the monthly series is
// zero-filled over the filter window (or the span of the data when the
// filter carries no dates).
func BuildSalesReport(records []core.SalesRecord, f SalesFilter) SalesReport {
	data := FilterSales(records, f)

	var sum SalesSummary
	var months float64
	for _, r := range data {
		sum.Count++
		sum.TotalAmount += r.TotalAmount
		sum.MonthlyAmount += r.MonthlyAmount
		months += r.ContractMonths
	}
	sum.AvgContractMonths = Ratio(months, float64(sum.Count))

	start, end := seriesWindow(data, f.Start, f.End)
	return SalesReport{
		Data:    data,
		Summary: sum,
		DepartmentStats: SumBy(data,
			func(r core.SalesRecord) string { return r.Department },
			func(r core.SalesRecord) float64 { return r.TotalAmount }),
		MonthlyStats: MonthlySeries(data,
			func(r core.SalesRecord) time.Time { return r.Date },
			func(r core.SalesRecord) float64 { return r.TotalAmount },
			start, end),
	}
}

// AEStat is the per-salesperson slice of the AE performance page.
type AEStat struct {
	Name        string  `json:"name"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
	SharePct    float64 `json:"sharePct"`
}

// AEReport is the JSON contract of GET /api/ae.
type AEReport struct {
	Data         []AEStat  `json:"data"`
	Summary      AESummary `json:"summary"`
	MonthlyStats []MonthStat `json:"monthlyStats"`
}

type AESummary struct {
	SalesPersons int     `json:"salesPersons"`
	TotalAmount  float64 `json:"totalAmount"`
}

// BuildAEReport ranks salespeople by contract amount over the window and
// attaches the zero-filled monthly trend. Share percentages guard the
// zero-revenue case.
func BuildAEReport(records []core.SalesRecord, start, end time.Time) AEReport {
	data := FilterSales(records, SalesFilter{Start: start, End: end})

	groups := SumBy(data,
		func(r core.SalesRecord) string { return r.SalesPerson },
		func(r core.SalesRecord) float64 { return r.TotalAmount })

	var total float64
	for _, g := range groups {
		total += g.Total
	}
	stats := make([]AEStat, 0, len(groups))
	for _, g := range groups {
		stats = append(stats, AEStat{
			Name:        g.Name,
			Count:       g.Count,
			TotalAmount: g.Total,
			SharePct:    Ratio(g.Total, total) * 100,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalAmount > stats[j].TotalAmount
	})

	wstart, wend := seriesWindow(data, start, end)
	return AEReport{
		Data:    stats,
		Summary: AESummary{SalesPersons: len(stats), TotalAmount: total},
		MonthlyStats: MonthlySeries(data,
			func(r core.SalesRecord) time.Time { return r.Date },
			func(r core.SalesRecord) float64 { return r.TotalAmount },
			wstart, wend),
	}
}

// seriesWindow resolves the bucket range: the caller's explicit window when
// given, otherwise the span of the data, otherwise the current month.
func seriesWindow(records []core.SalesRecord, start, end time.Time) (time.Time, time.Time) {
	if !start.IsZero() && !end.IsZero() {
		return start, end
	}
	var lo, hi time.Time
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		if lo.IsZero() || r.Date.Before(lo) {
			lo = r.Date
		}
		if hi.IsZero() || r.Date.After(hi) {
			hi = r.Date
		}
	}
	if lo.IsZero() {
		now := time.Now().UTC()
		return now, now
	}
	if !start.IsZero() {
		lo = start
	}
	if !end.IsZero() {
		hi = end
	}
	return lo, hi
}
