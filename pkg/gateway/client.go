// Package gateway is the HTTP client for the third-party billing API that
// issues payable links for monthly dues. Request and response shapes belong
// to the gateway; this package only maps them onto Go types.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// LineItem is one billable row on an invoice (one per dues month).
type LineItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// InvoiceRequest creates a single payable link covering all items.
type InvoiceRequest struct {
	Name        string     `json:"name"`
	Email       string     `json:"email,omitempty"`
	Mobile      string     `json:"mobile,omitempty"`
	Description string     `json:"description"`
	ReferenceID string     `json:"reference_id"`
	Items       []LineItem `json:"items"`
}

// InvoiceResponse is the subset of the gateway's reply the server keeps.
type InvoiceResponse struct {
	LinkID     string `json:"link_id"`
	PaymentURL string `json:"payment_url"`
	Status     string `json:"status"`
}

// Error is a non-2xx reply from the gateway. The API layer propagates the
// status code and message to the caller without writing any ledger rows.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the billing API with a bearer key.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateInvoice posts an invoice request and returns the payable link.
// There is no retry here: a timeout or 5xx fails the whole payment request
// and the resident resubmits.
func (c *Client) CreateInvoice(ctx context.Context, req *InvoiceRequest) (*InvoiceResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode invoice request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invoices", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	var wrapped struct {
		Data InvoiceResponse `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	if wrapped.Data.PaymentURL == "" {
		return nil, fmt.Errorf("gateway response missing payment_url")
	}
	return &wrapped.Data, nil
}

// errorMessage pulls the gateway's message field out of an error body,
// falling back to the raw text.
func errorMessage(raw []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &e); err == nil && e.Message != "" {
		return e.Message
	}
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "unknown gateway error"
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
