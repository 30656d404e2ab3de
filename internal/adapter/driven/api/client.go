// Package api implements the request pipeline to the storefront REST backend:
// bearer-token attachment, JSON or multipart bodies, and normalization of every
// outcome into a model.Result.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/port/driven"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 10 << 20

// Compile-time interface satisfaction checks.
var (
	_ driven.AuthAPI         = (*Client)(nil)
	_ driven.TokenAuthorizer = (*Client)(nil)
	_ driven.ProductAPI      = (*Client)(nil)
	_ driven.CategoryAPI     = (*Client)(nil)
)

// Request describes one backend call. At most one of JSON and Form is set.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	JSON   any
	Form   *Multipart
}

// Client is the single HTTP pipeline to the backend API root.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a Client with the following transport stack:
//  1. httpcache (ETag/Last-Modified conditional request caching for GETs)
//  2. net/http client with the given overall timeout
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	httpClient := &http.Client{
		Transport: cacheTransport,
		Timeout:   timeout,
	}
	return NewClientWithHTTPClient(httpClient, baseURL, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// Tests use it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	return &Client{
		baseURL: u,
		http:    httpClient,
		logger:  logger,
	}, nil
}

// SetToken installs the bearer token attached to every subsequent call.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Do executes req and returns the decoded envelope. It never panics and never
// returns a raw transport error: every failure becomes model.Err with the best
// available message.
func (c *Client) Do(ctx context.Context, req Request) model.Result[Envelope] {
	switch req.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return model.Err[Envelope](fmt.Sprintf("unsupported method %q", req.Method))
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		c.logger.Error("build api request", "method", req.Method, "path", req.Path, "error", err)
		return model.Err[Envelope](err.Error())
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("api request failed", "method", req.Method, "path", req.Path, "error", err)
		return model.Err[Envelope](err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.Warn("read api response", "method", req.Method, "path", req.Path, "error", err)
		return model.Err[Envelope](err.Error())
	}

	c.logger.Debug("api request",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"cached", resp.Header.Get(httpcache.XFromCache) != "",
		"duration", time.Since(start).Round(time.Microsecond),
	)

	return decodeEnvelope(resp.StatusCode, body)
}

// call executes req and decodes the envelope's data into T. A successful
// envelope without data yields Ok with T's zero value.
func call[T any](ctx context.Context, c *Client, req Request) model.Result[T] {
	res := c.Do(ctx, req)
	env, ok := res.Payload()
	if !ok {
		return model.Err[T](res.ErrorMessage())
	}

	var out T
	if !env.HasData() {
		return model.Ok(out)
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		c.logger.Warn("decode api data", "method", req.Method, "path", req.Path, "error", err)
		return model.Err[T](invalidResponseMessage)
	}
	return model.Ok(out)
}

// fetch is call for endpoints whose data is mandatory: a success envelope
// without data fails with fallback, matching the backend client's contract.
func fetch[T any](ctx context.Context, c *Client, req Request, fallback string) (T, error) {
	var zero T

	out, err := call[*T](ctx, c, req).Unwrap()
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, &model.APIError{Message: fallback}
	}
	return *out, nil
}

// exec is for endpoints where only success matters.
func exec(ctx context.Context, c *Client, req Request) error {
	_, err := call[json.RawMessage](ctx, c, req).Unwrap()
	return err
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Form != nil:
		// The multipart writer's boundary-carrying content type is the only
		// one that may accompany a form body.
		buf, ct, err := req.Form.encode()
		if err != nil {
			return nil, fmt.Errorf("encode multipart body: %w", err)
		}
		body, contentType = buf, ct
	case req.JSON != nil:
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode json body: %w", err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if token := c.currentToken(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, nil
}
