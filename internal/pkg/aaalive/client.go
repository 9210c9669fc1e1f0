// Package aaalive is the read-only client for the external driver-attendance
// upstream. The upstream speaks HTTPS JSON with an API-key header.
package aaalive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Driver is one driver known to the upstream.
type Driver struct {
	DriverID string `json:"driver_id"`
	Name     string `json:"name"`
	IC       string `json:"ic"`
	Phone    string `json:"phone"`
	Active   bool   `json:"active"`
}

// Shift is one attendance row from the upstream for a single day.
type Shift struct {
	DriverID string `json:"driver_id"`
	Name     string `json:"name"`
	IC       string `json:"ic"`
	Date     string `json:"date"` // YYYY-MM-DD
	ClockIn  string `json:"clock_in"`
	ClockOut string `json:"clock_out"`
	Outlet   string `json:"outlet"`
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether the upstream credentials are present.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

// Test verifies connectivity and credentials.
func (c *Client) Test(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/api/v1/ping", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("upstream ping returned status %q", out.Status)
	}
	return nil
}

// Drivers lists all drivers registered upstream.
func (c *Client) Drivers(ctx context.Context) ([]Driver, error) {
	var out struct {
		Drivers []Driver `json:"drivers"`
	}
	if err := c.get(ctx, "/api/v1/drivers", nil, &out); err != nil {
		return nil, err
	}
	return out.Drivers, nil
}

// Shifts returns the attendance rows for one calendar date.
func (c *Client) Shifts(ctx context.Context, date string) ([]Shift, error) {
	params := url.Values{}
	params.Set("date", date)

	var out struct {
		Shifts []Shift `json:"shifts"`
	}
	if err := c.get(ctx, "/api/v1/shifts", params, &out); err != nil {
		return nil, err
	}
	return out.Shifts, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if !c.Configured() {
		return fmt.Errorf("aaalive upstream is not configured")
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upstream returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}
