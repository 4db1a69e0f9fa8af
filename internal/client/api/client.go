package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Client sends JSON requests to the backend through the interceptor pipeline.
type Client struct {
	endpoints Endpoints
	http      *http.Client

	mu           sync.RWMutex
	interceptors []Interceptor
	handler      Handler
}

// New returns a Client for baseURL. A nil httpClient means a default client
// with no timeout; deadlines come from the request context.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		endpoints: NewEndpoints(baseURL),
		http:      httpClient,
		handler:   transport(httpClient),
	}
}

// Use appends interceptors to the pipeline. Interceptors added earlier stay
// outermost.
func (c *Client) Use(interceptors ...Interceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.interceptors = append(c.interceptors, interceptors...)
	c.handler = Chain(transport(c.http), c.interceptors...)
}

func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// Do sends req through the pipeline. On success the caller owns resp.Body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.mu.RLock()
	h := c.handler
	c.mu.RUnlock()

	return h.Do(req)
}

// NewRequest builds a request for an API path, JSON-encoding body when non-nil.
func (c *Client) NewRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoints.URL(path), r)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	return req, nil
}

// JSON sends in as the request body and decodes the response into out. A nil
// out discards the body; an empty body leaves out untouched.
func (c *Client) JSON(ctx context.Context, method, path string, in, out any) error {
	body, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Text sends in and returns the raw response body.
func (c *Client) Text(ctx context.Context, method, path string, in any) (string, error) {
	body, err := c.send(ctx, method, path, in)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.JSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.JSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.JSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.JSON(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) send(ctx context.Context, method, path string, in any) ([]byte, error) {
	req, err := c.NewRequest(ctx, method, path, in)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
