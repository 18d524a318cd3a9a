package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okubo/chobo/internal/ledger"
)

func (s *Server) projectLedger(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	q := r.URL.Query()

	filter := ledger.LedgerFilter{
		Nendo: q.Get("nendo"),
		Month: q.Get("month"),
		Note:  q.Get("note"),
	}
	if v := q.Get("checked"); v != "" {
		checked := v == "true" || v == "1"
		filter.Checked = &checked
	}

	page := ledger.Page{}
	if v := q.Get("page"); v != "" {
		page.Number, _ = strconv.Atoi(v)
	}
	if v := q.Get("size"); v != "" {
		page.Size, _ = strconv.Atoi(v)
	}

	result, err := s.service.ProjectLedger(r.Context(), account, filter, page)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type breakdownRequest struct {
	Requests []ledger.BreakdownRequest `json:"requests"`
}

func (s *Server) aggregateBreakdown(w http.ResponseWriter, r *http.Request) {
	var req breakdownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	result, err := s.service.AggregateBreakdown(r.Context(), req.Requests)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
