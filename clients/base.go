// Package clients talks to the storefront backend over HTTP.
package clients

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

	"storefront/middleware"
)

// ErrMalformedResponse is returned when a 2xx body does not have the expected shape.
var ErrMalformedResponse = errors.New("malformed response")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Service string
	Status  int
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.Status, e.Body)
}

type Client struct {
	Name    string
	BaseURL *url.URL
	HTTP    *http.Client
}

func NewClient(name, baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid %s base url %q: %w", name, baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Name: name, BaseURL: u, HTTP: httpClient}, nil
}

func (c *Client) Do(ctx context.Context, method, path, rawQuery string, body io.Reader, inHeaders http.Header) (*http.Response, error) {
	u := c.BaseURL.JoinPath(path)
	u.RawQuery = rawQuery

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for k, vv := range inHeaders {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}

	// propagate correlation id downstream
	if cid := middleware.GetCorrelationID(ctx); cid != "" {
		req.Header.Set(middleware.HeaderCorrelationID, cid)
	}
	if tok := middleware.GetBearerToken(ctx); tok != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	return c.HTTP.Do(req)
}

// doJSON sends in as JSON (when non-nil) and decodes a 2xx body into out.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	headers := http.Header{}
	headers.Set("Accept", "application/json")
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", c.Name, err)
		}
		body = bytes.NewReader(buf)
		headers.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(ctx, method, path, "", body, headers)
	if err != nil {
		return fmt.Errorf("%s: %s %s: %w", c.Name, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &APIError{Service: c.Name, Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %v", c.Name, ErrMalformedResponse, err)
	}
	return nil
}

func malformed(service, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", service, ErrMalformedResponse, fmt.Sprintf(format, args...))
}
