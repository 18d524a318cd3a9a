package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okubo/chobo/internal/ledger"
	"github.com/okubo/chobo/internal/server"
	"github.com/okubo/chobo/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := ledger.NewService(st, st, st, "101")
	srv := server.New(st, svc, ":0", log)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func patchJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPatch, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func validBody() map[string]any {
	return map[string]any{
		"nendo":          "2021",
		"date":           "20210510",
		"debit_account":  "501",
		"debit_amount":   5000,
		"credit_account": "101",
		"credit_amount":  5000,
		"note":           "office supplies",
	}
}

func TestCreateJournal_Created(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/journal", validBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := decode[ledger.JournalEntry](t, resp)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, int64(5000), entry.DebitAmount)
}

func TestCreateJournal_ViolationsOrdered(t *testing.T) {
	ts, _ := newTestServer(t)

	body := validBody()
	body["date"] = "20210331"
	body["debit_amount"] = -100
	body["credit_amount"] = -100

	resp := postJSON(t, ts.URL+"/api/v1/journal", body)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	payload := decode[struct {
		Violations []ledger.Violation `json:"violations"`
	}](t, resp)
	require.Len(t, payload.Violations, 3)
	assert.Equal(t, ledger.CodeOutOfFiscalYear, payload.Violations[0].Code)
	assert.Equal(t, ledger.CodeInvalidDebitAmount, payload.Violations[1].Code)
	assert.Equal(t, ledger.CodeInvalidCreditAmount, payload.Violations[2].Code)
}

func TestCreateSinglePosting(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/journal/single", map[string]any{
		"nendo":        "2021",
		"date":         "20210615",
		"account":      "401",
		"credit_amount": 8000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := decode[ledger.JournalEntry](t, resp)
	assert.Equal(t, "101", entry.DebitAccount, "implicit counter-account")
	assert.Equal(t, "401", entry.CreditAccount)
}

func TestUpdateJournal_LockedYear(t *testing.T) {
	ts, st := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/journal", validBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	entry := decode[ledger.JournalEntry](t, resp)

	require.NoError(t, st.UpsertFiscalYear(context.Background(), ledger.FiscalYear{Nendo: "2021", Fixed: true}))

	resp = patchJSON(t, ts.URL+"/api/v1/journal/"+entry.ID, map[string]any{"note": "too late"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdateJournal_Partial(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/journal", validBody())
	entry := decode[ledger.JournalEntry](t, resp)

	resp = patchJSON(t, ts.URL+"/api/v1/journal/"+entry.ID, map[string]any{"checked": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := decode[ledger.JournalEntry](t, resp)
	assert.True(t, updated.Checked)
	assert.Equal(t, entry.DebitAmount, updated.DebitAmount)
	assert.True(t, updated.UpdatedAt.After(entry.UpdatedAt) || updated.UpdatedAt.Equal(entry.UpdatedAt))
}

func TestUpdateJournal_NotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := patchJSON(t, ts.URL+"/api/v1/journal/no-such-id", map[string]any{"checked": true})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProjectLedger(t *testing.T) {
	ts, _ := newTestServer(t)

	for day := 1; day <= 3; day++ {
		body := validBody()
		body["date"] = fmt.Sprintf("202105%02d", day)
		resp := postJSON(t, ts.URL+"/api/v1/journal", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/api/v1/ledger/501?nendo=2021")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	page := decode[ledger.LedgerPage](t, resp)
	require.Len(t, page.Rows, 3)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, int64(15000), page.Rows[0].Balance, "newest first with full accumulation")
	assert.Equal(t, int64(5000), page.Rows[2].Balance)
}

func TestProjectLedger_UnknownAccount(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/ledger/999")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBreakdown_UnknownClassificationIsServerFault(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/breakdown", map[string]any{
		"requests": []map[string]any{
			{"nendo": "2021", "classification_code": "E", "granularity": "account", "side": "karikata", "time_unit": "annual"},
			{"nendo": "2021", "classification_code": "Z", "granularity": "account", "side": "karikata", "time_unit": "annual"},
		},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "whole batch aborts, no partial results")
}

func TestBreakdown_Annual(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/journal", validBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/api/v1/breakdown", map[string]any{
		"requests": []map[string]any{
			{"nendo": "2021", "classification_code": "E", "granularity": "account", "side": "net", "time_unit": "annual"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decode[ledger.BreakdownResult](t, resp)
	require.Len(t, result.Annual, 1)
	require.Len(t, result.Annual[0].Totals, 1)
	assert.Equal(t, "501", result.Annual[0].Totals[0].Code)
	assert.Equal(t, int64(5000), result.Annual[0].Totals[0].Value)
}

func TestReferenceData(t *testing.T) {
	ts, st := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/accounts")
	require.NoError(t, err)
	accounts := decode[[]ledger.Account](t, resp)
	assert.Len(t, accounts, len(ledger.DefaultAccounts))

	resp, err = http.Get(ts.URL + "/api/v1/accounts/101")
	require.NoError(t, err)
	acct := decode[ledger.Account](t, resp)
	assert.Equal(t, "Cash", acct.Name)

	require.NoError(t, st.UpsertFiscalYear(context.Background(), ledger.FiscalYear{Nendo: "2021"}))
	resp, err = http.Get(ts.URL + "/api/v1/fiscal-years")
	require.NoError(t, err)
	years := decode[[]ledger.FiscalYear](t, resp)
	assert.Len(t, years, 1)
}
