package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"opsboard/internal/report"
)

const dateParamLayout = "2006-01-02"

// parseDateRange reads the startDate/endDate query parameters. Both are
// optional; when present they must be YYYY-MM-DD and startDate must not be
// after endDate.
func parseDateRange(r *http.Request) (start, end time.Time, err error) {
	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("startDate")); v != "" {
		start, err = time.Parse(dateParamLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("startDate must be YYYY-MM-DD")
		}
	}
	if v := strings.TrimSpace(q.Get("endDate")); v != "" {
		end, err = time.Parse(dateParamLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("endDate must be YYYY-MM-DD")
		}
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("startDate must not be after endDate")
	}
	return start, end, nil
}

// parseSalesFilter combines the date range with the categorical filters of
// the sales endpoints.
func parseSalesFilter(r *http.Request) (report.SalesFilter, error) {
	start, end, err := parseDateRange(r)
	if err != nil {
		return report.SalesFilter{}, err
	}
	q := r.URL.Query()
	return report.SalesFilter{
		Start:       start,
		End:         end,
		Department:  strings.TrimSpace(q.Get("department")),
		SalesPerson: strings.TrimSpace(q.Get("salesPerson")),
	}, nil
}

// parseSearchQuery enforces the two-character minimum of the free-text
// query parameter.
func parseSearchQuery(r *http.Request) (string, error) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if len([]rune(query)) < 2 {
		return "", fmt.Errorf("query must be at least 2 characters")
	}
	return query, nil
}
