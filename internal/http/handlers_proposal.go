package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"opsboard/internal/amqp"
	"opsboard/internal/core"
	"opsboard/internal/sheets"
	"opsboard/internal/sheets/rowcodec"
)

type proposalListResponse struct {
	Data    []core.ProposalRecord `json:"data"`
	Summary proposalSummary       `json:"summary"`
}

type proposalSummary struct {
	Count    int            `json:"count"`
	ByStatus map[string]int `json:"byStatus"`
}

// handleListProposals returns every proposal row, optionally narrowed to one
// lifecycle state via ?status=.
func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	statusFilter := core.ProposalStatus(r.URL.Query().Get("status"))
	if statusFilter != "" && !statusFilter.Valid() {
		writeValidationError(w, "unknown status "+string(statusFilter))
		return
	}

	ctx, cancel := s.sheetContext(r)
	defer cancel()
	records, err := s.proposals.ListProposals(ctx)
	if err != nil {
		writeUpstreamError(w, r, "list proposals", err)
		return
	}

	resp := proposalListResponse{
		Data:    make([]core.ProposalRecord, 0, len(records)),
		Summary: proposalSummary{ByStatus: make(map[string]int)},
	}
	for _, p := range records {
		resp.Summary.ByStatus[string(p.Status)]++
		if statusFilter != "" && p.Status != statusFilter {
			continue
		}
		resp.Data = append(resp.Data, p)
	}
	resp.Summary.Count = len(records)

	writeJSON(w, http.StatusOK, resp)
}

type createProposalRequest struct {
	ClientName    string   `json:"clientName"`
	ClientContact string   `json:"clientContact"`
	ClientEmail   string   `json:"clientEmail"`
	Products      []string `json:"products"`
	Platforms     []string `json:"platforms"`
}

// handleCreateProposal appends a new row in the requested state. The
// requester is the session principal, never a body field.
func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	var req createProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "malformed JSON body")
		return
	}

	p, _ := principalFrom(r.Context())
	rec := core.ProposalRecord{
		Requester:     p.Name,
		ClientName:    req.ClientName,
		ClientContact: req.ClientContact,
		ClientEmail:   req.ClientEmail,
		Products:      req.Products,
		Platforms:     req.Platforms,
		Status:        core.StatusRequested,
	}
	if err := rec.Validate(); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	ctx, cancel := s.sheetContext(r)
	defer cancel()
	id, err := s.proposals.AppendProposal(ctx, rec)
	if err != nil {
		writeUpstreamError(w, r, "append proposal", err)
		return
	}
	s.publishEvent(r.Context(), amqp.NewRowEvent(sheets.SheetProposals, amqp.OpAppend, id,
		p.Email, rowcodec.ToStrings(rowcodec.EncodeProposal(rec))))

	writeSuccess(w, http.StatusCreated, "proposal created", id)
}

type updateProposalRequest struct {
	Status        *string `json:"status"`
	Assignee      *string `json:"assignee"`
	CompletedDate *string `json:"completedDate"`
	Link          *string `json:"link"`
}

// handleUpdateProposal merges the provided fields into a freshly read row
// and writes the row back in place. Absent fields survive untouched.
func (s *Server) handleUpdateProposal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "malformed JSON body")
		return
	}

	ctx, cancel := s.sheetContext(r)
	defer cancel()

	rec, err := s.proposals.GetProposal(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "proposal not found", "")
			return
		}
		writeUpstreamError(w, r, "get proposal", err)
		return
	}

	if req.Status != nil {
		next := core.ProposalStatus(*req.Status)
		if !next.Valid() {
			writeValidationError(w, "unknown status "+*req.Status)
			return
		}
		rec.Status = next
	}
	if req.Assignee != nil {
		rec.Assignee = *req.Assignee
	}
	if req.CompletedDate != nil {
		if *req.CompletedDate == "" {
			rec.CompletedDate = time.Time{}
		} else {
			d, err := time.Parse(dateParamLayout, *req.CompletedDate)
			if err != nil {
				writeValidationError(w, "completedDate must be YYYY-MM-DD")
				return
			}
			rec.CompletedDate = d
		}
	}
	if req.Link != nil {
		rec.Link = *req.Link
	}

	if err := s.proposals.UpdateProposal(ctx, rec); err != nil {
		writeUpstreamError(w, r, "update proposal", err)
		return
	}

	p, _ := principalFrom(r.Context())
	s.publishEvent(r.Context(), amqp.NewRowEvent(sheets.SheetProposals, amqp.OpUpdate, id,
		p.Email, rowcodec.ToStrings(rowcodec.EncodeProposal(rec))))

	writeSuccess(w, http.StatusOK, "proposal updated", id)
}
