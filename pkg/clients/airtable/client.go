package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// Record is a single Airtable row
type Record struct {
	ID          string         `json:"id,omitempty"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

// Client defines the interface for interacting with Airtable API
type Client interface {
	CreateRecord(ctx context.Context, table string, fields map[string]any) (Record, error)
	ListRecords(ctx context.Context, table, formula string) ([]Record, error)
}

type clientImpl struct {
	apiKey     string
	baseID     string
	baseURL    string
	httpClient *http.Client
}

// Option customises a client
type Option func(*clientImpl)

// WithBaseURL points the client at another API root, such as a test server
func WithBaseURL(u string) Option {
	return func(c *clientImpl) { c.baseURL = u }
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientImpl) { c.httpClient = hc }
}

// NewClient creates a new Airtable client
func NewClient(apiKey, baseID string, opts ...Option) Client {
	c := &clientImpl{
		apiKey:     apiKey,
		baseID:     baseID,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *clientImpl) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))
}

func (c *clientImpl) CreateRecord(ctx context.Context, table string, fields map[string]any) (Record, error) {
	payload := map[string]any{
		"records": []Record{{Fields: fields}},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return Record{}, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(table), bytes.NewBuffer(jsonPayload))
	if err != nil {
		return Record{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")

	var response struct {
		Records []Record `json:"records"`
	}
	if err := c.do(req, &response); err != nil {
		return Record{}, fmt.Errorf("error creating Airtable record: %w", err)
	}
	if len(response.Records) == 0 {
		return Record{}, fmt.Errorf("error creating Airtable record: empty response")
	}
	return response.Records[0], nil
}

func (c *clientImpl) ListRecords(ctx context.Context, table, formula string) ([]Record, error) {
	var records []Record
	offset := ""
	for {
		query := url.Values{}
		if formula != "" {
			query.Set("filterByFormula", formula)
		}
		if offset != "" {
			query.Set("offset", offset)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL(table)+"?"+query.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("error creating request: %w", err)
		}

		var page struct {
			Records []Record `json:"records"`
			Offset  string   `json:"offset"`
		}
		if err := c.do(req, &page); err != nil {
			return nil, fmt.Errorf("error listing Airtable records: %w", err)
		}
		records = append(records, page.Records...)
		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

func (c *clientImpl) do(req *http.Request, out any) error {
	req.Header.Add("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error from Airtable API: %s", string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}
	return nil
}
