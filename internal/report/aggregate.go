// Package report implements the grouping/reduction stage and the per-page
// report assembly. All sums are plain float64 accumulation, matching the
// numeric model of the sheets themselves; ratio math substitutes 0 for
// division by zero so a report never carries NaN or Inf into JSON.
package report

import (
	"time"
)

// GroupStat is one bucket of a keyed aggregation.
type GroupStat struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

// MonthStat is one calendar-month bucket of a date series.
type MonthStat struct {
	Month     string  `json:"month"` // YYYY-MM
	Count     int     `json:"count"`
	Total     float64 `json:"total"`
	GrowthPct float64 `json:"growthPct"` // vs previous bucket
}

// SumBy groups items by key and reduces to count/sum/average. Buckets
// appear in the order their key is first encountered, not sorted; callers
// that want a different order sort afterwards.
func SumBy[T any](items []T, key func(T) string, val func(T) float64) []GroupStat {
	index := make(map[string]int)
	var out []GroupStat
	for _, it := range items {
		k := key(it)
		i, seen := index[k]
		if !seen {
			i = len(out)
			index[k] = i
			out = append(out, GroupStat{Name: k})
		}
		out[i].Count++
		out[i].Total += val(it)
	}
	for i := range out {
		out[i].Average = Ratio(out[i].Total, float64(out[i].Count))
	}
	return out
}

// Ratio divides a by b, substituting 0 for a zero divisor.
func Ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// MarginPct returns profit as a percentage of revenue, 0 when revenue is 0.
func MarginPct(profit, revenue float64) float64 {
	return Ratio(profit, revenue) * 100
}

// GrowthPct returns the period-over-period change of cur against prev as a
// percentage, 0 when prev is 0.
func GrowthPct(prev, cur float64) float64 {
	return Ratio(cur-prev, prev) * 100
}

// MonthlySeries folds items into calendar-month buckets over [start, end].
// Every month in the range is pre-populated with a zero bucket, so months
// with no activity are present in the output rather than merely absent.
// Growth percentages are filled against the preceding bucket.
func MonthlySeries[T any](items []T, date func(T) time.Time, val func(T) float64, start, end time.Time) []MonthStat {
	if end.Before(start) {
		return nil
	}
	index := make(map[string]int)
	var out []MonthStat
	for cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		k := cur.Format("2006-01")
		index[k] = len(out)
		out = append(out, MonthStat{Month: k})
	}
	for _, it := range items {
		d := date(it)
		if d.IsZero() {
			continue
		}
		i, ok := index[d.Format("2006-01")]
		if !ok {
			continue // outside the requested range
		}
		out[i].Count++
		out[i].Total += val(it)
	}
	for i := 1; i < len(out); i++ {
		out[i].GrowthPct = GrowthPct(out[i-1].Total, out[i].Total)
	}
	return out
}

// DayStat is one calendar-day bucket.
type DayStat struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// DailySeries is MonthlySeries at day granularity: one zero-filled bucket
// per calendar day in [start, end].
func DailySeries[T any](items []T, date func(T) time.Time, val func(T) float64, start, end time.Time) []DayStat {
	if end.Before(start) {
		return nil
	}
	index := make(map[string]int)
	var out []DayStat
	for cur := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC); !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		k := cur.Format("2006-01-02")
		index[k] = len(out)
		out = append(out, DayStat{Date: k})
	}
	for _, it := range items {
		d := date(it)
		if d.IsZero() {
			continue
		}
		i, ok := index[d.Format("2006-01-02")]
		if !ok {
			continue
		}
		out[i].Count++
		out[i].Total += val(it)
	}
	return out
}

// inRange reports whether d falls inside the inclusive [start, end] window.
// Zero bounds are open on that side.
func inRange(d, start, end time.Time) bool {
	if d.IsZero() {
		return false
	}
	if !start.IsZero() && d.Before(start) {
		return false
	}
	if !end.IsZero() && d.After(end) {
		return false
	}
	return true
}
