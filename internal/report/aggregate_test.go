package report

import (
	"testing"
	"time"
)

type row struct {
	key  string
	date time.Time
	val  float64
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSumByKeepsInsertionOrder(t *testing.T) {
	rows := []row{
		{key: "영업부", val: 100},
		{key: "마케팅", val: 50},
		{key: "영업부", val: 200},
		{key: "개발", val: 10},
	}
	got := SumBy(rows, func(r row) string { return r.key }, func(r row) float64 { return r.val })
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Name != "영업부" || got[1].Name != "마케팅" || got[2].Name != "개발" {
		t.Fatalf("order = %v %v %v, want first-seen order", got[0].Name, got[1].Name, got[2].Name)
	}
	if got[0].Count != 2 || got[0].Total != 300 || got[0].Average != 150 {
		t.Fatalf("영업부 bucket = %+v", got[0])
	}
}

func TestSumByEmpty(t *testing.T) {
	got := SumBy(nil, func(r row) string { return r.key }, func(r row) float64 { return r.val })
	if len(got) != 0 {
		t.Fatalf("expected no buckets, got %v", got)
	}
}

func TestRatioZeroDivisor(t *testing.T) {
	if got := Ratio(5, 0); got != 0 {
		t.Errorf("Ratio(5, 0) = %v", got)
	}
	if got := MarginPct(100, 0); got != 0 {
		t.Errorf("MarginPct(100, 0) = %v", got)
	}
	if got := GrowthPct(0, 100); got != 0 {
		t.Errorf("GrowthPct(0, 100) = %v", got)
	}
	if got := GrowthPct(100, 150); got != 50 {
		t.Errorf("GrowthPct(100, 150) = %v", got)
	}
}

func TestMonthlySeriesZeroFills(t *testing.T) {
	rows := []row{
		{date: day(2024, time.January, 15), val: 100},
		{date: day(2024, time.March, 2), val: 300},
	}
	got := MonthlySeries(rows,
		func(r row) time.Time { return r.date },
		func(r row) float64 { return r.val },
		day(2024, time.January, 1), day(2024, time.April, 30))
	if len(got) != 4 {
		t.Fatalf("len = %d, want one bucket per month", len(got))
	}
	if got[1].Month != "2024-02" || got[1].Count != 0 || got[1].Total != 0 {
		t.Fatalf("empty month bucket = %+v", got[1])
	}
	if got[2].Total != 300 {
		t.Fatalf("march = %+v", got[2])
	}
	// 0 -> 300 has a zero base, so growth stays 0.
	if got[2].GrowthPct != 0 {
		t.Fatalf("march growth = %v", got[2].GrowthPct)
	}
	if got[3].GrowthPct != -100 {
		t.Fatalf("april growth = %v, want -100", got[3].GrowthPct)
	}
}

func TestMonthlySeriesDropsOutOfRange(t *testing.T) {
	rows := []row{
		{date: day(2023, time.December, 31), val: 999},
		{date: day(2024, time.January, 1), val: 1},
	}
	got := MonthlySeries(rows,
		func(r row) time.Time { return r.date },
		func(r row) float64 { return r.val },
		day(2024, time.January, 1), day(2024, time.January, 31))
	if len(got) != 1 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Total != 1 {
		t.Fatalf("out-of-range row leaked into bucket: %+v", got[0])
	}
}

func TestMonthlySeriesInvertedRange(t *testing.T) {
	got := MonthlySeries([]row{},
		func(r row) time.Time { return r.date },
		func(r row) float64 { return r.val },
		day(2024, time.May, 1), day(2024, time.January, 1))
	if got != nil {
		t.Fatalf("inverted range should yield nil, got %v", got)
	}
}

func TestDailySeriesBucketCount(t *testing.T) {
	got := DailySeries([]row{{date: day(2024, time.February, 29), val: 7}},
		func(r row) time.Time { return r.date },
		func(r row) float64 { return r.val },
		day(2024, time.February, 1), day(2024, time.February, 29))
	if len(got) != 29 {
		t.Fatalf("len = %d, want 29 for a leap February", len(got))
	}
	if got[28].Date != "2024-02-29" || got[28].Total != 7 {
		t.Fatalf("last bucket = %+v", got[28])
	}
}
