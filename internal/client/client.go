package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okubo/chobo/internal/ledger"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ViolationError carries the server's ordered violation list so the CLI can
// print every problem at once.
type ViolationError struct {
	Violations []ledger.Violation
}

func (e *ViolationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s (%s): %s", v.Code, v.Path, v.Message)
	}
	return "validation failed:\n  " + strings.Join(parts, "\n  ")
}

func (c *Client) CreateJournal(ctx context.Context, req ledger.JournalCreate) (*ledger.JournalEntry, error) {
	var result ledger.JournalEntry
	if err := c.post(ctx, "/api/v1/journal", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateSinglePosting(ctx context.Context, req ledger.SinglePosting) (*ledger.JournalEntry, error) {
	var result ledger.JournalEntry
	if err := c.post(ctx, "/api/v1/journal/single", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateJournal(ctx context.Context, id string, patch ledger.JournalPatch) (*ledger.JournalEntry, error) {
	var result ledger.JournalEntry
	if err := c.patch(ctx, "/api/v1/journal/"+url.PathEscape(id), patch, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Ledger(ctx context.Context, account string, f ledger.LedgerFilter, page ledger.Page) (*ledger.LedgerPage, error) {
	params := url.Values{}
	if f.Nendo != "" {
		params.Set("nendo", f.Nendo)
	}
	if f.Month != "" {
		params.Set("month", f.Month)
	}
	if f.Note != "" {
		params.Set("note", f.Note)
	}
	if f.Checked != nil {
		params.Set("checked", fmt.Sprintf("%t", *f.Checked))
	}
	if page.Number > 0 {
		params.Set("page", fmt.Sprintf("%d", page.Number))
	}
	if page.Size > 0 {
		params.Set("size", fmt.Sprintf("%d", page.Size))
	}

	var result ledger.LedgerPage
	if err := c.get(ctx, "/api/v1/ledger/"+url.PathEscape(account)+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Breakdown(ctx context.Context, requests []ledger.BreakdownRequest) (*ledger.BreakdownResult, error) {
	body := map[string]any{"requests": requests}
	var result ledger.BreakdownResult
	if err := c.post(ctx, "/api/v1/breakdown", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	var result []ledger.Account
	if err := c.get(ctx, "/api/v1/accounts", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ListFiscalYears(ctx context.Context) ([]ledger.FiscalYear, error) {
	var result []ledger.FiscalYear
	if err := c.get(ctx, "/api/v1/fiscal-years", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

func (c *Client) patch(ctx context.Context, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "PATCH", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

type apiError struct {
	Error      string             `json:"error"`
	Violations []ledger.Violation `json:"violations"`
}

func (c *Client) doRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil {
			if len(apiErr.Violations) > 0 {
				return &ViolationError{Violations: apiErr.Violations}
			}
			if apiErr.Error != "" {
				return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Error)
			}
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
