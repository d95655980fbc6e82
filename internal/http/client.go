// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"runtime"
	"time"

	"github.com/wneessen/geokit/internal/logger"
)

const (
	// DefaultTimeout is the default timeout value for the HTTPClient
	DefaultTimeout = time.Second * 10

	// MaxBodySize limits the number of bytes read from a plain text response body
	MaxBodySize = 1 << 20
)

var (
	// version is the version of the application (will be set at build time)
	version = "dev"
	// UserAgent is the User-Agent that the HTTP client sends with API requests
	UserAgent = fmt.Sprintf("Mozilla/5.0 (%s; %s) geokit/%s (+https://github.com/wneessen/geokit/)",
		runtime.GOOS,
		runtime.GOARCH,
		version,
	)

	ErrNonPointerTarget = errors.New("target must be a non-nil pointer")
	ErrNilResponse      = errors.New("nil response received")
)

// Client is a type wrapper for the Go stdlib http.Client and the application logger
type Client struct {
	*http.Client
	logger *logger.Logger
}

// New returns a new HTTP client
func New(logger *logger.Logger) *Client {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	httpTransport := &http.Transport{
		TLSClientConfig:     tlsConfig,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}
	httpClient := &http.Client{
		Timeout:   DefaultTimeout,
		Transport: httpTransport,
	}
	return &Client{httpClient, logger}
}

// Get performs a HTTP GET request for the given URL and json-unmarshals the response
// into target
func (h *Client) Get(ctx context.Context, endpoint string, target any, query url.Values, headers map[string]string) (int, error) {
	return h.GetWithTimeout(ctx, endpoint, target, query, headers, DefaultTimeout)
}

// GetWithTimeout performs a HTTP GET request for the given URL and timeout and JSON-unmarshals
// a 2xx response into target
func (h *Client) GetWithTimeout(ctx context.Context, endpoint string, target any, query url.Values, headers map[string]string, timeout time.Duration) (int, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return 0, ErrNonPointerTarget
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	response, err := h.do(ctx, endpoint, query, headers)
	if err != nil {
		return 0, err
	}
	defer h.closeBody(response.Body)

	// Error responses are not guaranteed to be JSON, leave them to the caller's status check
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return response.StatusCode, nil
	}

	// Unmarshal the JSON API response into target
	if err = json.NewDecoder(response.Body).Decode(target); err != nil {
		return response.StatusCode, fmt.Errorf("failed to decode JSON: %w", err)
	}

	return response.StatusCode, nil
}

// GetBody performs a HTTP GET request for the given URL and returns the raw response body
func (h *Client) GetBody(ctx context.Context, endpoint string, query url.Values, headers map[string]string) (int, []byte, error) {
	return h.GetBodyWithTimeout(ctx, endpoint, query, headers, DefaultTimeout)
}

// GetBodyWithTimeout performs a HTTP GET request for the given URL and timeout and returns
// the raw response body, limited to MaxBodySize bytes
func (h *Client) GetBodyWithTimeout(ctx context.Context, endpoint string, query url.Values, headers map[string]string, timeout time.Duration) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	response, err := h.do(ctx, endpoint, query, headers)
	if err != nil {
		return 0, nil, err
	}
	defer h.closeBody(response.Body)

	body, err := io.ReadAll(io.LimitReader(response.Body, MaxBodySize))
	if err != nil {
		return response.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return response.StatusCode, body, nil
}

func (h *Client) do(ctx context.Context, endpoint string, query url.Values, headers map[string]string) (*http.Response, error) {
	// Prepare URL and query parameters
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	// Prepare HTTP request
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed create new HTTP request with context: %w", err)
	}
	request.Header.Set("User-Agent", UserAgent)
	for k, v := range headers {
		request.Header.Set(k, v)
	}

	// Execute HTTP request
	response, err := h.Do(request)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to perform HTTP request: %w", err)
	}
	if response == nil {
		return nil, ErrNilResponse
	}
	h.logger.Debug("HTTP request completed", slog.String("host", reqURL.Host),
		slog.String("path", reqURL.Path), slog.Int("status", response.StatusCode))

	return response, nil
}

func (h *Client) closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		h.logger.Error("failed to close HTTP request body", logger.Err(err))
	}
}
