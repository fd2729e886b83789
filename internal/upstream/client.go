// Package upstream is the HTTP client of the external portfolio API server.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"foliogate/internal/config"
	"foliogate/internal/domain"
	"foliogate/internal/port"
)

const maxErrorBody = 500

// Client implements port.PortfolioAPI over HTTP. Extraction calls are bounded
// by the caller's context only; every other call also gets the configured
// timeout.
type Client struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

var _ port.PortfolioAPI = (*Client)(nil)

// NewClient creates a portfolio API client from config.
func NewClient(cfg *config.UpstreamConfig) *Client {
	return NewClientWithHTTP(cfg, &http.Client{})
}

// NewClientWithHTTP creates a client using a custom http.Client (for testing).
func NewClientWithHTTP(cfg *config.UpstreamConfig, hc *http.Client) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{baseURL: cfg.BaseURL, timeout: timeout, client: hc}
}

func (c *Client) ExtractTransactions(ctx context.Context, token string, input port.ExtractInput) (*domain.ExtractResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, input.FileName))
	h.Set("Content-Type", input.ContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating multipart part: %w", err)
	}
	if _, err := part.Write(input.Data); err != nil {
		return nil, fmt.Errorf("writing multipart part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	env, err := c.do(ctx, token, http.MethodPost, "/transaction-extraction", nil, mw.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}
	var data extractData
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("decoding extraction result: %w", err)
		}
	}
	return data.toResult(), nil
}

func (c *Client) CreateTransactions(ctx context.Context, token string, drafts []domain.TransactionDraft) (*port.CreateOutput, error) {
	rows := make([]transactionPayload, len(drafts))
	for i := range drafts {
		rows[i] = toPayload(drafts[i])
	}
	env, err := c.doJSON(ctx, token, http.MethodPost, "/transaction-history", map[string]any{"transactions": rows})
	if err != nil {
		return nil, err
	}
	out := &port.CreateOutput{Message: env.Message, Count: len(drafts)}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		var data struct {
			Transactions json.RawMessage `json:"transactions"`
			Count        *int            `json:"count"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("decoding create result: %w", err)
		}
		out.Transactions = data.Transactions
		if data.Count != nil {
			out.Count = *data.Count
		}
	}
	return out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, token, id string, body json.RawMessage) (json.RawMessage, error) {
	env, err := c.doJSON(ctx, token, http.MethodPut, "/transaction-history/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, token, id string) ([]string, error) {
	env, err := c.doJSON(ctx, token, http.MethodDelete, "/transaction-history/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	ids, err := deletedIDs(env)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		ids = []string{id}
	}
	return ids, nil
}

func (c *Client) DeleteTransactions(ctx context.Context, token string, ids []string) ([]string, error) {
	env, err := c.doJSON(ctx, token, http.MethodDelete, "/transaction-history", map[string]any{"ids": numericIDs(ids)})
	if err != nil {
		return nil, err
	}
	deleted, err := deletedIDs(env)
	if err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		deleted = append([]string{}, ids...)
	}
	return deleted, nil
}

func (c *Client) ListTransactions(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return c.get(ctx, token, "/transaction-history", query)
}

func (c *Client) PortfolioSummary(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return c.get(ctx, token, "/portfolio/summary", query)
}

func (c *Client) Holdings(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return c.get(ctx, token, "/portfolio/holdings", query)
}

func (c *Client) HistoricalChart(ctx context.Context, token string, query url.Values) (json.RawMessage, error) {
	return c.get(ctx, token, "/portfolio/historical-chart", query)
}

func (c *Client) get(ctx context.Context, token, path string, query url.Values) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	env, err := c.do(ctx, token, http.MethodGet, path, query, "", nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) doJSON(ctx context.Context, token, method, path string, payload any) (*envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if payload == nil {
		return c.do(ctx, token, method, path, nil, "", nil)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	return c.do(ctx, token, method, path, nil, "application/json", bytes.NewReader(b))
}

func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, contentType string, body io.Reader) (*envelope, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrUpstreamUnavailable, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &Error{StatusCode: resp.StatusCode, Message: env.text(), Err: domain.ErrUpstreamUnauthorized}
	case resp.StatusCode == http.StatusTooManyRequests:
		baseErr := fmt.Errorf("portfolio API error (status %d): %s", resp.StatusCode, truncate(string(respBody), maxErrorBody))
		return nil, NewRateLimitError(baseErr, ParseRetryAfterHeader(resp.Header.Get("Retry-After")))
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &Error{StatusCode: resp.StatusCode, Message: env.text(), Err: domain.ErrUpstreamUnavailable}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &Error{StatusCode: resp.StatusCode, Message: env.text(), Err: domain.ErrNotFound}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg := env.text()
		if msg == "" {
			msg = fmt.Sprintf("portfolio API error (status %d): %s", resp.StatusCode, truncate(string(respBody), maxErrorBody))
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("unmarshaling response: %w (raw: %s)", decodeErr, truncate(string(respBody), maxErrorBody))
	}
	if !env.Success {
		msg := env.text()
		if msg == "" {
			msg = "portfolio API reported failure"
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: msg}
	}
	return &env, nil
}

func deletedIDs(env *envelope) ([]string, error) {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}
	var data deleteData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		var list []flexID
		if err2 := json.Unmarshal(env.Data, &list); err2 != nil {
			return nil, fmt.Errorf("decoding delete result: %w", err)
		}
		data.DeletedIDs = list
	}
	return data.ids(), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
