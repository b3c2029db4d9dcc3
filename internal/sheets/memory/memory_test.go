package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"opsboard/internal/core"
	"opsboard/internal/sheets"
)

func TestListSalesSkipsHeaderAndFillerRows(t *testing.T) {
	store := New()
	store.Seed(sheets.SheetSales, [][]string{
		{"날짜", "부서", "입력자", "구분", "광고주", "상품", "개월", "월금액", "총금액", "담당AE"},
		{"2024-03-01", "영업부", "홍길동", "신규", "ACME", "상품A", "3", "1000000", "3000000", "홍길동"},
		{"합계", "", "", "", "", "", "", "", "9000000", ""},
		{"2024-03-05", "마케팅", "김영희", "갱신", "BETA", "상품B", "6", "500000", "3000000", "김영희"},
	})

	got, err := store.ListSales(context.Background())
	if err != nil {
		t.Fatalf("ListSales: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want header and subtotal rows dropped", len(got))
	}
	// Ids reflect the sheet row position, not the filtered position.
	if got[0].ID != "sale-2" || got[1].ID != "sale-4" {
		t.Fatalf("ids = %q, %q", got[0].ID, got[1].ID)
	}
}

func TestAppendSaleRoundTrip(t *testing.T) {
	store := New()
	rec := core.SalesRecord{
		Date:           mustDate(t, "2024-04-01"),
		Department:     "영업부",
		InputUser:      "홍길동",
		ContractType:   "신규",
		ClientName:     "ACME",
		ProductName:    "상품A",
		ContractMonths: 3,
		MonthlyAmount:  1000000,
		TotalAmount:    3000000,
		SalesPerson:    "홍길동",
	}

	id, err := store.AppendSale(context.Background(), rec)
	if err != nil {
		t.Fatalf("AppendSale: %v", err)
	}
	if id != "sale-1" {
		t.Fatalf("id = %q", id)
	}

	ledgerID, err := store.AppendLedgerSale(context.Background(), rec)
	if err != nil {
		t.Fatalf("AppendLedgerSale: %v", err)
	}
	if ledgerID != "ledger-1" {
		t.Fatalf("ledger id = %q", ledgerID)
	}
	if rows := store.Rows(sheets.SheetLedger); len(rows) != 1 {
		t.Fatalf("ledger rows = %d", len(rows))
	}

	got, err := store.ListSales(context.Background())
	if err != nil {
		t.Fatalf("ListSales: %v", err)
	}
	if len(got) != 1 || got[0].TotalAmount != 3000000 || got[0].ClientName != "ACME" {
		t.Fatalf("read-back = %+v", got)
	}
}

func TestProposalLifecycle(t *testing.T) {
	ctx := context.Background()
	store := New()

	id, err := store.AppendProposal(ctx, core.ProposalRecord{
		Requester:  "홍길동",
		ClientName: "ACME",
		Products:   []string{"배너", "영상"},
		Status:     core.StatusRequested,
	})
	if err != nil {
		t.Fatalf("AppendProposal: %v", err)
	}

	got, err := store.GetProposal(ctx, id)
	if err != nil {
		t.Fatalf("GetProposal: %v", err)
	}
	if got.Status != core.StatusRequested || len(got.Products) != 2 {
		t.Fatalf("got = %+v", got)
	}

	got.Status = core.StatusInProgress
	got.Assignee = "김영희"
	if err := store.UpdateProposal(ctx, got); err != nil {
		t.Fatalf("UpdateProposal: %v", err)
	}

	after, err := store.GetProposal(ctx, id)
	if err != nil {
		t.Fatalf("GetProposal after update: %v", err)
	}
	if after.Status != core.StatusInProgress || after.Assignee != "김영희" {
		t.Fatalf("after = %+v", after)
	}
	// Untouched fields survive the in-place overwrite.
	if after.ClientName != "ACME" || len(after.Products) != 2 {
		t.Fatalf("update clobbered fields: %+v", after)
	}
}

func TestGetProposalNotFound(t *testing.T) {
	store := New()
	for _, id := range []string{"prop-1", "prop-99", "sale-1", "garbage"} {
		if _, err := store.GetProposal(context.Background(), id); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("GetProposal(%q) = %v, want ErrNotFound", id, err)
		}
	}
}

func TestFindUserByToken(t *testing.T) {
	store := New()
	store.Seed(sheets.SheetUsers, [][]string{
		{"admin@corp.kr", "관리자", "ADMIN", "경영지원", "tok-admin"},
		{"ae@corp.kr", "홍길동 부장", "USER", "영업부", "tok-user"},
		{"broken@corp.kr", "토큰없음", "USER", "영업부", ""},
	})

	p, err := store.FindUserByToken(context.Background(), "tok-user")
	if err != nil {
		t.Fatalf("FindUserByToken: %v", err)
	}
	if p.Name != "홍길동" || p.IsAdmin() {
		t.Fatalf("principal = %+v", p)
	}

	if _, err := store.FindUserByToken(context.Background(), "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("unknown token: %v", err)
	}
	if _, err := store.FindUserByToken(context.Background(), ""); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("empty token must not match tokenless rows: %v", err)
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}
