// Package memory implements the sheet ports over an in-process table of raw
// rows. It is the dev/test backend: rows go through the same rowcodec as the
// Google adapter, so column-contract behavior is identical.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"opsboard/internal/core"
	"opsboard/internal/sheets"
	"opsboard/internal/sheets/rowcodec"
)

type Store struct {
	mu   sync.Mutex
	tabs map[string][][]string
}

func New() *Store {
	return &Store{tabs: make(map[string][][]string)}
}

// Seed replaces the rows of a tab. Row 0 is data, not a header; header rows
// simply fail to decode and are skipped, same as on the real sheet.
func (s *Store) Seed(tab string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	s.tabs[tab] = cp
}

// Rows returns a copy of a tab, for tests that assert on raw cells.
func (s *Store) Rows(tab string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tabs[tab]
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	return cp
}

func (s *Store) appendRow(tab string, row []any) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	s.tabs[tab] = append(s.tabs[tab], cells)
	return len(s.tabs[tab])
}

func (s *Store) ListSales(_ context.Context) ([]core.SalesRecord, error) {
	var out []core.SalesRecord
	for i, row := range s.Rows(sheets.SheetSales) {
		rec, err := rowcodec.DecodeSales(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) AppendSale(_ context.Context, r core.SalesRecord) (string, error) {
	n := s.appendRow(sheets.SheetSales, rowcodec.EncodeSales(r))
	return rowcodec.RowID("sale", n), nil
}

func (s *Store) AppendLedgerSale(_ context.Context, r core.SalesRecord) (string, error) {
	n := s.appendRow(sheets.SheetLedger, rowcodec.EncodeSales(r))
	return rowcodec.RowID("ledger", n), nil
}

func (s *Store) ListSalaries(_ context.Context) ([]core.SalaryRecord, error) {
	var out []core.SalaryRecord
	for i, row := range s.Rows(sheets.SheetSalary) {
		rec, err := rowcodec.DecodeSalary(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) ListLoans(_ context.Context) ([]core.LoanRecord, error) {
	var out []core.LoanRecord
	for i, row := range s.Rows(sheets.SheetLoans) {
		rec, err := rowcodec.DecodeLoan(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) ListLiabilities(_ context.Context) ([]core.LiabilityRecord, error) {
	var out []core.LiabilityRecord
	for i, row := range s.Rows(sheets.SheetLiabilities) {
		rec, err := rowcodec.DecodeLiability(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) ListAdvances(_ context.Context) ([]core.AdvancePayment, error) {
	var out []core.AdvancePayment
	for i, row := range s.Rows(sheets.SheetAdvances) {
		rec, err := rowcodec.DecodeAdvance(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) ListPurchases(_ context.Context) ([]core.PurchaseRecord, error) {
	var out []core.PurchaseRecord
	for i, row := range s.Rows(sheets.SheetPurchases) {
		rec, err := rowcodec.DecodePurchase(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) ListStaff(_ context.Context) ([]core.StaffRecord, error) {
	var out []core.StaffRecord
	for i, row := range s.Rows(sheets.SheetStaff) {
		rec, err := rowcodec.DecodeStaff(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) ListClients(_ context.Context) ([]core.ClaimClient, error) {
	var out []core.ClaimClient
	for i, row := range s.Rows(sheets.SheetClients) {
		rec, err := rowcodec.DecodeClient(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) ListProposals(_ context.Context) ([]core.ProposalRecord, error) {
	var out []core.ProposalRecord
	for i, row := range s.Rows(sheets.SheetProposals) {
		rec, err := rowcodec.DecodeProposal(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) AppendProposal(_ context.Context, p core.ProposalRecord) (string, error) {
	n := s.appendRow(sheets.SheetProposals, rowcodec.EncodeProposal(p))
	return rowcodec.RowID("prop", n), nil
}

func (s *Store) GetProposal(_ context.Context, id string) (core.ProposalRecord, error) {
	n, err := rowcodec.RowNum("prop", id)
	if err != nil {
		return core.ProposalRecord{}, core.ErrNotFound
	}
	s.mu.Lock()
	rows := s.tabs[sheets.SheetProposals]
	if n > len(rows) {
		s.mu.Unlock()
		return core.ProposalRecord{}, core.ErrNotFound
	}
	row := append([]string(nil), rows[n-1]...)
	s.mu.Unlock()
	rec, err := rowcodec.DecodeProposal(row, n)
	if err != nil {
		return core.ProposalRecord{}, core.ErrNotFound
	}
	return rec, nil
}

func (s *Store) UpdateProposal(_ context.Context, p core.ProposalRecord) error {
	n, err := rowcodec.RowNum("prop", p.ID)
	if err != nil {
		return core.ErrNotFound
	}
	encoded := rowcodec.EncodeProposal(p)
	cells := make([]string, len(encoded))
	for i, v := range encoded {
		cells[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tabs[sheets.SheetProposals]
	if n > len(rows) {
		return core.ErrNotFound
	}
	rows[n-1] = cells
	return nil
}

func (s *Store) FindUserByToken(_ context.Context, token string) (core.Principal, error) {
	for i, row := range s.Rows(sheets.SheetUsers) {
		p, t, err := rowcodec.DecodeUser(row, i+1)
		if err != nil {
			continue
		}
		if t == token {
			return p, nil
		}
	}
	return core.Principal{}, core.ErrNotFound
}
