package http

import (
	"net/http"

	"opsboard/internal/core"
	"opsboard/internal/match"
	"opsboard/internal/report"
)

func (s *Server) handleStaff(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.sheetContext(r)
	defer cancel()
	records, err := s.staff.ListStaff(ctx)
	if err != nil {
		writeUpstreamError(w, r, "list staff", err)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildStaffReport(records))
}

type clientMatch struct {
	core.ClaimClient
	Score int `json:"score"`
}

type clientSearchResponse struct {
	Data  []clientMatch `json:"data"`
	Query string        `json:"query"`
	Count int           `json:"count"`
}

// handleClientSearch fuzzy-matches the query against every client name and
// returns the top scorers.
func (s *Server) handleClientSearch(w http.ResponseWriter, r *http.Request) {
	query, err := parseSearchQuery(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	ctx, cancel := s.sheetContext(r)
	defer cancel()
	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		writeUpstreamError(w, r, "list clients", err)
		return
	}

	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.ClientName
	}

	ranked := match.Rank(query, names)
	data := make([]clientMatch, 0, len(ranked))
	for _, res := range ranked {
		data = append(data, clientMatch{ClaimClient: clients[res.Index], Score: res.Score})
	}

	writeJSON(w, http.StatusOK, clientSearchResponse{
		Data:  data,
		Query: query,
		Count: len(data),
	})
}
