package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 15 * time.Second

// TokenStore holds the bearer token between calls. The zero value is an
// unauthenticated store.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

func (t *TokenStore) Get() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

func (t *TokenStore) Set(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = token
}

func (t *TokenStore) Clear() {
	t.Set("")
}

// APIError is returned when the server answers with a non-2xx status or a
// success=false envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// Client talks to the renewal tracking API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenStore
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     &TokenStore{},
	}
}

// Tokens exposes the token store so callers can persist or restore sessions.
func (c *Client) Tokens() *TokenStore {
	return c.tokens
}

// do executes a request and normalizes the response body. A 401 clears the
// stored token so the next call starts unauthenticated.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (Envelope, int, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return Envelope{}, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Envelope{}, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Clear()
	}

	env := NormalizeEnvelope(raw)
	return env, resp.StatusCode, nil
}

// call runs a request and converts failure envelopes and non-2xx statuses
// into an APIError. out, when non-nil, receives the decoded data payload.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	env, status, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 || !env.Success {
		return &APIError{StatusCode: status, Message: env.Message}
	}
	if out != nil && len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

type loginData struct {
	Token string `json:"token"`
}

// Login authenticates and stores the returned token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var data loginData
	payload := map[string]string{"email": email, "password": password}
	if err := c.call(ctx, http.MethodPost, "/api/auth/v1/login", nil, payload, &data); err != nil {
		return err
	}
	if data.Token == "" {
		return fmt.Errorf("login succeeded but no token was returned")
	}
	c.tokens.Set(data.Token)
	return nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, email, password, fullName string) error {
	payload := map[string]string{"email": email, "password": password, "full_name": fullName}
	return c.call(ctx, http.MethodPost, "/api/auth/v1/register", nil, payload, nil)
}

// Logout invalidates the session server-side (a no-op on stateless servers)
// and always clears the local token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.call(ctx, http.MethodPost, "/api/auth/v1/logout", nil, nil, nil)
	c.tokens.Clear()
	return err
}

// ListOptions narrows and orders ListRenewals results. Zero fields are
// omitted from the query.
type ListOptions struct {
	Type     string
	Status   string
	Provider string
	Search   string
	From     string
	To       string
	SortBy   string
	SortDir  string
	Shape    string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("type", o.Type)
	set("status", o.Status)
	set("provider", o.Provider)
	set("search", o.Search)
	set("from", o.From)
	set("to", o.To)
	set("sort_by", o.SortBy)
	set("sort_dir", o.SortDir)
	set("shape", o.Shape)
	return q
}

// ListRenewals returns the caller's renewal records as wire maps.
func (c *Client) ListRenewals(ctx context.Context, opts ListOptions) ([]map[string]any, error) {
	var records []map[string]any
	if err := c.call(ctx, http.MethodGet, "/api/renewal/v1", opts.query(), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListRenewalsByStatus returns the caller's records in one lifecycle status.
func (c *Client) ListRenewalsByStatus(ctx context.Context, status string) ([]map[string]any, error) {
	var records []map[string]any
	path := "/api/renewal/v1/status/" + url.PathEscape(status)
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListAllRenewals returns every user's records. Requires an admin token.
func (c *Client) ListAllRenewals(ctx context.Context, opts ListOptions) ([]map[string]any, error) {
	var records []map[string]any
	if err := c.call(ctx, http.MethodGet, "/api/renewal/v1/all", opts.query(), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetRenewal fetches one record. shape may be "legacy", "current", or empty
// for the server default.
func (c *Client) GetRenewal(ctx context.Context, id, shape string) (map[string]any, error) {
	q := url.Values{}
	if shape != "" {
		q.Set("shape", shape)
	}
	var record map[string]any
	if err := c.call(ctx, http.MethodGet, "/api/renewal/v1/"+url.PathEscape(id), q, nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// CreateRenewal accepts a record in either wire shape and returns the stored
// record.
func (c *Client) CreateRenewal(ctx context.Context, record map[string]any) (map[string]any, error) {
	var created map[string]any
	if err := c.call(ctx, http.MethodPost, "/api/renewal/v1", nil, record, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateRenewal applies a partial patch. It tries PUT first and retries with
// PATCH on any server rejection; older deployments only route one of the two.
// Transport errors are not retried.
func (c *Client) UpdateRenewal(ctx context.Context, id string, patch map[string]any) (map[string]any, error) {
	path := "/api/renewal/v1/" + url.PathEscape(id)

	var updated map[string]any
	err := c.call(ctx, http.MethodPut, path, nil, patch, &updated)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		updated = nil
		err = c.call(ctx, http.MethodPatch, path, nil, patch, &updated)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRenewal removes a record.
func (c *Client) DeleteRenewal(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/renewal/v1/"+url.PathEscape(id), nil, nil, nil)
}

// UpdateStatus moves a record to the given status. startDate and endDate are
// optional overrides in YYYY-MM-DD form; "renewed" without overrides rolls
// the term forward server-side.
func (c *Client) UpdateStatus(ctx context.Context, id, status, startDate, endDate string) (map[string]any, error) {
	payload := map[string]string{"status": status}
	if startDate != "" {
		payload["start_date"] = startDate
	}
	if endDate != "" {
		payload["end_date"] = endDate
	}
	var updated map[string]any
	if err := c.call(ctx, http.MethodPut, "/api/renewal/v1/"+url.PathEscape(id)+"/status", nil, payload, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Stats holds the aggregate counters shown on the dashboard.
type Stats struct {
	Active       int     `json:"active"`
	ExpiringSoon int     `json:"expiringSoon"`
	Expired      int     `json:"expired"`
	Total        int     `json:"total"`
	TotalCost    float64 `json:"totalCost"`
}

func (c *Client) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := c.call(ctx, http.MethodGet, "/api/renewal/v1/statistics", nil, nil, &stats)
	return stats, err
}

// LogEntry is one audit record for a renewal.
type LogEntry struct {
	Id          string `json:"id"`
	RenewalId   string `json:"renewal_id"`
	Action      string `json:"action"`
	PerformedBy string `json:"performed_by"`
	Notes       string `json:"notes,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// AppendLog records an audit entry. Failures are non-fatal by design of the
// dashboard flow, so the error is returned for optional inspection only.
func (c *Client) AppendLog(ctx context.Context, id, action, notes string) error {
	payload := map[string]string{"action": action}
	if notes != "" {
		payload["notes"] = notes
	}
	return c.call(ctx, http.MethodPost, "/api/renewal/v1/"+url.PathEscape(id)+"/log", nil, payload, nil)
}

// GetLogs lists a renewal's audit trail, newest first.
func (c *Client) GetLogs(ctx context.Context, id string) ([]LogEntry, error) {
	var entries []LogEntry
	if err := c.call(ctx, http.MethodGet, "/api/renewal/v1/"+url.PathEscape(id)+"/logs", nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
