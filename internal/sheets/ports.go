package sheets

import (
	"context"

	"opsboard/internal/core"
)

// Ports for outbound adapters. One repository per logical table keeps the
// column-index contract inside a single adapter, so a layout change in a
// tab has one blast radius.
type (
	SalesReader interface {
		// ListSales returns every decodable row of the sales tab in sheet
		// order. Rows that fail to decode are silently dropped.
		ListSales(ctx context.Context) ([]core.SalesRecord, error)
	}

	SalesWriter interface {
		// AppendSale appends after the last row of the sales tab and
		// returns the synthesized record id.
		AppendSale(ctx context.Context, r core.SalesRecord) (string, error)
		// AppendLedgerSale writes the same sale into the per-salesperson
		// ledger tab. Independent of AppendSale; a partial failure leaves
		// the two tabs inconsistent with no compensation.
		AppendLedgerSale(ctx context.Context, r core.SalesRecord) (string, error)
	}

	SalaryReader interface {
		ListSalaries(ctx context.Context) ([]core.SalaryRecord, error)
	}

	LoanReader interface {
		ListLoans(ctx context.Context) ([]core.LoanRecord, error)
	}

	LiabilityReader interface {
		ListLiabilities(ctx context.Context) ([]core.LiabilityRecord, error)
	}

	AdvanceReader interface {
		ListAdvances(ctx context.Context) ([]core.AdvancePayment, error)
	}

	PurchaseReader interface {
		ListPurchases(ctx context.Context) ([]core.PurchaseRecord, error)
	}

	StaffReader interface {
		ListStaff(ctx context.Context) ([]core.StaffRecord, error)
	}

	ClientReader interface {
		ListClients(ctx context.Context) ([]core.ClaimClient, error)
	}

	ProposalRepository interface {
		ListProposals(ctx context.Context) ([]core.ProposalRecord, error)
		AppendProposal(ctx context.Context, p core.ProposalRecord) (string, error)
		// GetProposal reads the single row the id points at. Returns
		// core.ErrNotFound when the row is missing or empty.
		GetProposal(ctx context.Context, id string) (core.ProposalRecord, error)
		// UpdateProposal overwrites the row in place. Callers merge into a
		// freshly read record so untouched cells survive.
		UpdateProposal(ctx context.Context, p core.ProposalRecord) error
	}

	// UserReader resolves a session token to the caller identity.
	UserReader interface {
		FindUserByToken(ctx context.Context, token string) (core.Principal, error)
	}
)
