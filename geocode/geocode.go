// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geocode defines the contract shared by all geocoding providers and the
// building blocks to compose them: a failover aggregator, a provider registry and
// decorators for caching, rate limiting and instrumentation.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/wneessen/geokit/geo"
)

var (
	// ErrNoProviders is returned when a failover chain or selection would be empty.
	ErrNoProviders = fmt.Errorf("%w: no geocoding providers configured", geo.ErrConfiguration)

	// ErrUnknownProvider is returned when a provider name is not registered.
	ErrUnknownProvider = fmt.Errorf("%w: unknown geocoding provider", geo.ErrConfiguration)

	// ErrEmptyQuery is the failure reason for blank queries.
	ErrEmptyQuery = errors.New("empty geocoding query")

	// ErrNoResult is the failure reason when a provider answered without a match.
	ErrNoResult = errors.New("no result found for query")

	// ErrUnexpectedStatus is the failure reason when a provider answered with a
	// non-200 HTTP status or an error status in the payload.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Geocoder turns a free form query into a geo.Location.
//
// Geocode never returns an error. A failed lookup is a Location with Success set to
// false and Err holding the reason.
type Geocoder interface {
	Name() string
	Geocode(ctx context.Context, query string) geo.Location
}

// HTTPClient is the transport the HTTP based providers depend on.
type HTTPClient interface {
	GetWithTimeout(ctx context.Context, endpoint string, target any, query url.Values,
		headers map[string]string, timeout time.Duration) (int, error)
	GetBodyWithTimeout(ctx context.Context, endpoint string, query url.Values,
		headers map[string]string, timeout time.Duration) (int, []byte, error)
}

// GeocoderFunc adapts a plain function to the Geocoder interface. Its name is "func",
// use Named to give it a proper one.
type GeocoderFunc func(ctx context.Context, query string) geo.Location

// Name implements Geocoder.
func (f GeocoderFunc) Name() string {
	return "func"
}

// Geocode implements Geocoder.
func (f GeocoderFunc) Geocode(ctx context.Context, query string) geo.Location {
	return f(ctx, query)
}

type namedGeocoder struct {
	name string
	fn   GeocoderFunc
}

// Named returns a Geocoder with the given name that calls fn.
func Named(name string, fn GeocoderFunc) Geocoder {
	return namedGeocoder{name: name, fn: fn}
}

func (n namedGeocoder) Name() string {
	return n.name
}

func (n namedGeocoder) Geocode(ctx context.Context, query string) geo.Location {
	return n.fn(ctx, query)
}

// StatusError returns the failure reason for a non-200 HTTP status.
func StatusError(provider string, code int) error {
	return fmt.Errorf("%w from %s API: %d", ErrUnexpectedStatus, provider, code)
}
