// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package testhelper holds shared helpers for the geokit tests.
package testhelper

import (
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
)

// TestOnlineAPIURL is a reachable endpoint for integration tests.
const TestOnlineAPIURL = "https://httpbin.org/delay/2"

// MockRoundTripper replaces the transport of an HTTP client with a function.
type MockRoundTripper struct {
	Fn func(*http.Request) (*http.Response, error)
}

// RoundTrip implements http.RoundTripper.
func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// Response returns an http.Response with the given status code and body.
func Response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// FileResponse returns a round trip function that serves the given file.
func FileResponse(t *testing.T, file string) func(*http.Request) (*http.Response, error) {
	t.Helper()
	return func(*http.Request) (*http.Response, error) {
		data, err := os.Open(file)
		if err != nil {
			t.Fatalf("failed to open response file: %s", err)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       data,
			Header:     make(http.Header),
		}, nil
	}
}

// RequestRecorder records the requests passing through a MockRoundTripper.
type RequestRecorder struct {
	mu       sync.Mutex
	requests []*http.Request
}

// Record wraps fn and stores each request before handing it to fn.
func (r *RequestRecorder) Record(fn func(*http.Request) (*http.Response, error)) MockRoundTripper {
	return MockRoundTripper{Fn: func(req *http.Request) (*http.Response, error) {
		r.mu.Lock()
		r.requests = append(r.requests, req)
		r.mu.Unlock()
		return fn(req)
	}}
}

// Requests returns the recorded requests.
func (r *RequestRecorder) Requests() []*http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*http.Request(nil), r.requests...)
}

// PerformIntegrationTests skips the test unless GEOKIT_INTEGRATION_TESTS is set.
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	if os.Getenv("GEOKIT_INTEGRATION_TESTS") == "" {
		t.Skip("skipping online integration test, set GEOKIT_INTEGRATION_TESTS to run it")
	}
}
