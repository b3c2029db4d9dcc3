// Package google implements the sheet ports over the Google Sheets API.
// Each logical table is one tab; reads fetch whole-column ranges and writes
// land after the last occupied row, mirroring how the spreadsheet is edited
// by hand.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"opsboard/internal/core"
	ports "opsboard/internal/sheets"
	"opsboard/internal/sheets/rowcodec"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string

	salesSheet     string
	ledgerSheet    string
	salarySheet    string
	loanSheet      string
	liabilitySheet string
	advanceSheet   string
	purchaseSheet  string
	staffSheet     string
	proposalSheet  string
	clientSheet    string
	userSheet      string
}

// Ensure interface conformance
var (
	_ ports.SalesReader        = (*Client)(nil)
	_ ports.SalesWriter        = (*Client)(nil)
	_ ports.SalaryReader       = (*Client)(nil)
	_ ports.LoanReader         = (*Client)(nil)
	_ ports.LiabilityReader    = (*Client)(nil)
	_ ports.AdvanceReader      = (*Client)(nil)
	_ ports.PurchaseReader     = (*Client)(nil)
	_ ports.StaffReader        = (*Client)(nil)
	_ ports.ClientReader       = (*Client)(nil)
	_ ports.ProposalRepository = (*Client)(nil)
	_ ports.UserReader         = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials
// (GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS). Tab names are overridable per table via
// SHEET_<TABLE>_NAME and default to the tab names used by the workbook.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:            svc,
		spreadsheetID:  spreadsheetID,
		salesSheet:     sheetName("SHEET_SALES_NAME", ports.SheetSales),
		ledgerSheet:    sheetName("SHEET_LEDGER_NAME", ports.SheetLedger),
		salarySheet:    sheetName("SHEET_SALARY_NAME", ports.SheetSalary),
		loanSheet:      sheetName("SHEET_LOANS_NAME", ports.SheetLoans),
		liabilitySheet: sheetName("SHEET_LIABILITIES_NAME", ports.SheetLiabilities),
		advanceSheet:   sheetName("SHEET_ADVANCES_NAME", ports.SheetAdvances),
		purchaseSheet:  sheetName("SHEET_PURCHASES_NAME", ports.SheetPurchases),
		staffSheet:     sheetName("SHEET_STAFF_NAME", ports.SheetStaff),
		proposalSheet:  sheetName("SHEET_PROPOSALS_NAME", ports.SheetProposals),
		clientSheet:    sheetName("SHEET_CLIENTS_NAME", ports.SheetClients),
		userSheet:      sheetName("SHEET_USERS_NAME", ports.SheetUsers),
	}, nil
}

func sheetName(envKey, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	return fallback
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// readRows fetches the rectangular block sheet!span and returns it as
// trimmed cell strings, one slice per row.
func (c *Client) readRows(ctx context.Context, sheet, span string) ([][]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!%s", sheet, span)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = rowcodec.ToStrings(row)
	}
	return rows, nil
}

// appendRow finds the next empty row by counting column A and writes the
// values there. Returns the 1-based row number written.
func (c *Client) appendRow(ctx context.Context, sheet string, lastCol string, values []any) (int, error) {
	if c.svc == nil {
		return 0, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:A", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get sheet dimensions for %s: %w", sheet, err)
	}
	nextRow := len(resp.Values) + 1

	dataRange := fmt.Sprintf("%s!A%d:%s%d", sheet, nextRow, lastCol, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", dataRange, err)
	}
	return nextRow, nil
}

// overwriteRow replaces one existing row in place.
func (c *Client) overwriteRow(ctx context.Context, sheet string, lastCol string, rowNum int, values []any) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	dataRange := fmt.Sprintf("%s!A%d:%s%d", sheet, rowNum, lastCol, rowNum)
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", dataRange, err)
	}
	return nil
}

func (c *Client) ListSales(ctx context.Context) ([]core.SalesRecord, error) {
	rows, err := c.readRows(ctx, c.salesSheet, "A:J")
	if err != nil {
		return nil, err
	}
	var out []core.SalesRecord
	for i, row := range rows {
		rec, err := rowcodec.DecodeSales(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) AppendSale(ctx context.Context, r core.SalesRecord) (string, error) {
	n, err := c.appendRow(ctx, c.salesSheet, "J", rowcodec.EncodeSales(r))
	if err != nil {
		return "", fmt.Errorf("append sale: %w", err)
	}
	return rowcodec.RowID("sale", n), nil
}

func (c *Client) AppendLedgerSale(ctx context.Context, r core.SalesRecord) (string, error) {
	n, err := c.appendRow(ctx, c.ledgerSheet, "J", rowcodec.EncodeSales(r))
	if err != nil {
		return "", fmt.Errorf("append ledger sale: %w", err)
	}
	return rowcodec.RowID("ledger", n), nil
}

func (c *Client) ListSalaries(ctx context.Context) ([]core.SalaryRecord, error) {
	rows, err := c.readRows(ctx, c.salarySheet, "A:F")
	if err != nil {
		return nil, err
	}
	var out []core.SalaryRecord
	for i, row := range rows {
		rec, err := rowcodec.DecodeSalary(row, i+1)
		if err != nil {
			continue
		}
		// Header rows survive the empty-name check; drop rows where both
		// salary figures coerced to zero and no join date parsed.
		if rec.MonthlySalary == 0 && rec.AnnualSalary == 0 && rec.JoinDate.IsZero() {
			slog.DebugContext(ctx, "Skipping non-data salary row", "row", i+1)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) ListLoans(ctx context.Context) ([]core.LoanRecord, error) {
	rows, err := c.readRows(ctx, c.loanSheet, "A:F")
	if err != nil {
		return nil, err
	}
	var out []core.LoanRecord
	for i, row := range rows {
		rec, err := rowcodec.DecodeLoan(row, i+1)
		if err != nil {
			continue
		}
		if rec.Principal == 0 && rec.Balance == 0 && rec.EndDate.IsZero() {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) ListLiabilities(ctx context.Context) ([]core.LiabilityRecord, error) {
	rows, err := c.readRows(ctx, c.liabilitySheet, "A:N")
	if err != nil {
		return nil, err
	}
	var out []core.LiabilityRecord
	for i, row := range rows {
		rec, err := rowcodec.DecodeLiability(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) ListAdvances(ctx context.Context) ([]core.AdvancePayment, error) {
	rows, err := c.readRows(ctx, c.advanceSheet, "A:D")
	if err != nil {
		return nil, err
	}
	var out []core.AdvancePayment
	for i, row := range rows {
		rec, err := rowcodec.DecodeAdvance(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) ListPurchases(ctx context.Context) ([]core.PurchaseRecord, error) {
	rows, err := c.readRows(ctx, c.purchaseSheet, "A:G")
	if err != nil {
		return nil, err
	}
	var out []core.PurchaseRecord
	for i, row := range rows {
		rec, err := rowcodec.DecodePurchase(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) ListStaff(ctx context.Context) ([]core.StaffRecord, error) {
	rows, err := c.readRows(ctx, c.staffSheet, "A:F")
	if err != nil {
		return nil, err
	}
	var out []core.StaffRecord
	for i, row := range rows {
		rec, err := rowcodec.DecodeStaff(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) ListClients(ctx context.Context) ([]core.ClaimClient, error) {
	rows, err := c.readRows(ctx, c.clientSheet, "A:F")
	if err != nil {
		return nil, err
	}
	var out []core.ClaimClient
	for i, row := range rows {
		rec, err := rowcodec.DecodeClient(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) ListProposals(ctx context.Context) ([]core.ProposalRecord, error) {
	rows, err := c.readRows(ctx, c.proposalSheet, "A:J")
	if err != nil {
		return nil, err
	}
	var out []core.ProposalRecord
	for i, row := range rows {
		rec, err := rowcodec.DecodeProposal(row, i+1)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) AppendProposal(ctx context.Context, p core.ProposalRecord) (string, error) {
	n, err := c.appendRow(ctx, c.proposalSheet, "J", rowcodec.EncodeProposal(p))
	if err != nil {
		return "", fmt.Errorf("append proposal: %w", err)
	}
	return rowcodec.RowID("prop", n), nil
}

func (c *Client) GetProposal(ctx context.Context, id string) (core.ProposalRecord, error) {
	n, err := rowcodec.RowNum("prop", id)
	if err != nil {
		return core.ProposalRecord{}, core.ErrNotFound
	}
	rows, err := c.readRows(ctx, c.proposalSheet, fmt.Sprintf("A%d:J%d", n, n))
	if err != nil {
		return core.ProposalRecord{}, err
	}
	if len(rows) == 0 {
		return core.ProposalRecord{}, core.ErrNotFound
	}
	rec, err := rowcodec.DecodeProposal(rows[0], n)
	if err != nil {
		return core.ProposalRecord{}, core.ErrNotFound
	}
	return rec, nil
}

func (c *Client) UpdateProposal(ctx context.Context, p core.ProposalRecord) error {
	n, err := rowcodec.RowNum("prop", p.ID)
	if err != nil {
		return core.ErrNotFound
	}
	return c.overwriteRow(ctx, c.proposalSheet, "J", n, rowcodec.EncodeProposal(p))
}

// FindUserByToken scans the users tab for a matching session token. The
// token column is the credential; rows without one never match.
func (c *Client) FindUserByToken(ctx context.Context, token string) (core.Principal, error) {
	rows, err := c.readRows(ctx, c.userSheet, "A:E")
	if err != nil {
		return core.Principal{}, err
	}
	for i, row := range rows {
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
