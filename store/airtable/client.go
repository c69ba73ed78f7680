// Package airtable is the remote record store adapter. Airtable hands back
// untyped field bags; this package translates them to and from the typed
// entity structs at the adapter boundary and nowhere else.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/ronautumn/hhnyc-api/store"
)

const defaultBaseURL = "https://api.airtable.com/v0"

const (
	productsTable   = "Products"
	categoriesTable = "Categories"
	ordersTable     = "Orders"
)

var ErrMissingCredentials = errors.New("airtable: api key and base id are required")

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	baseID  string
	log     *zap.SugaredLogger
}

// New builds a client. Placeholder credentials left over from .env templates
// count as missing, so a bad deploy fails at startup instead of on first use.
func New(apiKey, baseID string, log *zap.SugaredLogger) (*Client, error) {
	if apiKey == "" || baseID == "" || apiKey == "your_airtable_api_key" || baseID == "your_airtable_base_id" {
		return nil, ErrMissingCredentials
	}
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		baseID:  baseID,
		log:     log,
	}, nil
}

// WithBaseURL points the client at a different API root. Tests use this to
// talk to an httptest server.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// record is Airtable's wire shape: an opaque id plus an untyped field bag.
type record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type listResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("airtable: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("airtable: %s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return store.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var aerr apiError
		msg := resp.Status
		if decodeErr := json.NewDecoder(resp.Body).Decode(&aerr); decodeErr == nil && aerr.Error.Message != "" {
			msg = fmt.Sprintf("%s (%s)", aerr.Error.Message, aerr.Error.Type)
		}
		return fmt.Errorf("airtable: %s %s: %s", method, rawURL, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("airtable: decode response: %w", err)
		}
	}
	return nil
}

// listAll pages through a table until Airtable stops returning an offset.
func (c *Client) listAll(ctx context.Context, table string) ([]record, error) {
	var records []record
	offset := ""
	for {
		u := c.tableURL(table)
		if offset != "" {
			u += "?offset=" + url.QueryEscape(offset)
		}
		var page listResponse
		if err := c.do(ctx, http.MethodGet, u, nil, &page); err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

func (c *Client) getRecord(ctx context.Context, table, id string) (record, error) {
	var rec record
	err := c.do(ctx, http.MethodGet, c.tableURL(table)+"/"+url.PathEscape(id), nil, &rec)
	return rec, err
}

func (c *Client) createRecord(ctx context.Context, table string, fields map[string]any) (record, error) {
	var rec record
	err := c.do(ctx, http.MethodPost, c.tableURL(table), map[string]any{"fields": fields}, &rec)
	return rec, err
}

func (c *Client) updateRecord(ctx context.Context, table, id string, fields map[string]any) (record, error) {
	var rec record
	err := c.do(ctx, http.MethodPatch, c.tableURL(table)+"/"+url.PathEscape(id), map[string]any{"fields": fields}, &rec)
	return rec, err
}

func (c *Client) deleteRecord(ctx context.Context, table, id string) error {
	return c.do(ctx, http.MethodDelete, c.tableURL(table)+"/"+url.PathEscape(id), nil, nil)
}

// -------- field bag helpers --------

func fieldString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func fieldFloat(m map[string]any, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0
}

func fieldInt(m map[string]any, key string) int {
	return int(fieldFloat(m, key))
}

func fieldBool(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func fieldStrings(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
