package match

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"삼성전자", "삼성전자", 100},
		{"acme", "ACME", 100},
		{"삼성 전자", "삼성전자", 100},
		// "(주)" loses its parens in normalization: 삼성전자 vs 삼성전자주.
		{"삼성전자", "삼성전자(주)", 80},
		{"삼성전자", "(주)삼성전자", 80},
		{"acme", "acme, inc.", 57},
		{"", "삼성전자", 0},
		{"삼성전자", "", 0},
		{"", "", 0},
		{"   ", "삼성전자", 0},
	}
	for _, tt := range tests {
		if got := Score(tt.a, tt.b); got != tt.want {
			t.Errorf("Score(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"삼성전자", "삼성전자(주)"},
		{"kakao", "카카오"},
		{"네이버", "네이버클라우드"},
	}
	for _, p := range pairs {
		if Score(p[0], p[1]) != Score(p[1], p[0]) {
			t.Errorf("Score not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestScoreVariantAboveThreshold(t *testing.T) {
	if got := Score("삼성전자", "삼성전자(주)"); got < Threshold {
		t.Errorf("Score(삼성전자, 삼성전자(주)) = %d, want >= %d", got, Threshold)
	}
	if got := Score("삼성전자", "현대자동차"); got >= Threshold {
		t.Errorf("Score(삼성전자, 현대자동차) = %d, want < %d", got, Threshold)
	}
}

func TestRank(t *testing.T) {
	candidates := []string{"삼성전자", "현대자동차", "삼성 전자 (주)", "엘지전자"}
	got := Rank("삼성전자", candidates)
	if len(got) != 2 {
		t.Fatalf("results = %+v, want the exact name and the (주) variant", got)
	}
	if got[0].Index != 0 || got[0].Score != 100 {
		t.Errorf("best = %+v, want exact match first", got[0])
	}
	if got[1].Index != 2 {
		t.Errorf("second = %+v, want the (주) variant included", got[1])
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("results not sorted descending: %+v", got)
		}
	}
	for _, r := range got {
		if r.Score < Threshold {
			t.Errorf("result below threshold: %+v", r)
		}
	}
}

func TestRankTruncates(t *testing.T) {
	candidates := make([]string, 25)
	for i := range candidates {
		candidates[i] = "삼성전자"
	}
	got := Rank("삼성전자", candidates)
	if len(got) != MaxResults {
		t.Fatalf("len = %d, want %d", len(got), MaxResults)
	}
	// Ties keep candidate order.
	for i, r := range got {
		if r.Index != i {
			t.Fatalf("tie order broken: %+v", got)
		}
	}
}
