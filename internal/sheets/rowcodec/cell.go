// Package rowcodec maps raw spreadsheet rows (positional cell strings) to
// typed records and back. Decoding never fails on a cell: missing or
// out-of-range cells become zero values, non-numeric text becomes 0, and a
// row with an unparseable date is skipped by returning ErrSkipRow so the
// caller can drop it without aborting the whole read.
package rowcodec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrSkipRow marks a row that decoded to nothing useful (header rows, blank
// padding, unparseable dates). Callers skip the row; they never propagate it.
var ErrSkipRow = errors.New("skip row")

// dateLayouts accepted by ParseDate, tried in order after the separators
// have been normalized.
var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006.1.2",
	"01/02/2006",
	"1/2/2006",
	"2006-1-2",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
}

// jobSuffixes are job-title suffixes that staff names carry inconsistently
// across tabs ("홍길동 부장" vs "홍길동"). First exact-suffix match wins and
// is stripped once.
var jobSuffixes = []string{
	"대표이사", "부사장", "본부장", "사업부장",
	"부장", "차장", "과장", "팀장", "실장", "이사", "대리", "주임", "사원", "인턴",
}

// Cell returns the trimmed cell at idx, or "" when the row is shorter than
// the column contract expects.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParseNumber coerces a cell to a float64. Every rune that is not a digit,
// dot, or minus sign is stripped first ("₩1,200,000" -> 1200000). A cell
// that still fails to parse, or parses to NaN, yields 0. It never errors.
func ParseNumber(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseDate normalizes the textual date formats that appear in the sheets:
// ISO (2024-03-01), dot-separated with optional spaces (2024. 3. 1), and
// US slash form (03/01/2024), with a small layout list as fallback. The
// second return is false when nothing matched; callers skip such rows.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// Dot-separated dates are frequently typed with spaces after the dots
	// and a trailing dot ("2024. 3. 1.").
	compact := strings.TrimSuffix(strings.ReplaceAll(s, " ", ""), ".")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, compact); err == nil {
			return t, true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeName strips one known job-title suffix from a staff name so the
// same person entered as "김영수 과장" and "김영수" aggregates into one key.
// Applied once; normalizing an already-normalized name is a no-op.
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	for _, suffix := range jobSuffixes {
		if s != suffix && strings.HasSuffix(s, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(s, suffix))
		}
	}
	return s
}

// SplitList splits a comma-joined cell ("네이버, 카카오") into its parts.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// JoinList is the encode-side inverse of SplitList.
func JoinList(parts []string) string {
	return strings.Join(parts, ", ")
}

// RowID synthesizes the record id from its sheet position. Ids are unstable
// across inserts and deletes; callers that mutate by id re-read the row
// before writing.
func RowID(prefix string, rowNum int) string {
	return fmt.Sprintf("%s-%d", prefix, rowNum)
}

// RowNum recovers the sheet row number from a synthesized id.
func RowNum(prefix, id string) (int, error) {
	rest, ok := strings.CutPrefix(id, prefix+"-")
	if !ok {
		return 0, fmt.Errorf("malformed %s id %q", prefix, id)
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("malformed %s id %q", prefix, id)
	}
	return n, nil
}

// ToStrings flattens the interface matrix returned by the Sheets API into
// trimmed cell strings.
func ToStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// FormatDate renders a date in the canonical ISO form used on write.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// FormatNumber renders an amount the way the sheets store it: integers
// without a decimal tail, fractions with up to two digits.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
