package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okubo/chobo/internal/ledger"
)

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if accounts == nil {
		accounts = []ledger.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := s.store.Account(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) listFiscalYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.store.ListFiscalYears(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if years == nil {
		years = []ledger.FiscalYear{}
	}
	writeJSON(w, http.StatusOK, years)
}
