// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package census implements a geocoder for the US Census Bureau one-line address API.
package census

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/geocode"
)

const (
	APIEndpoint      = "https://geocoding.geo.census.gov/geocoder/locations/onelineaddress"
	DefaultBenchmark = "Public_AR_Current"
	name             = "census"
)

type Census struct {
	benchmark string
	http      geocode.HTTPClient
	settings  geocode.Settings
}

type Response struct {
	Result Result `json:"result"`
}

type Result struct {
	AddressMatches []AddressMatch `json:"addressMatches"`
}

type AddressMatch struct {
	Coordinates       Coordinates       `json:"coordinates"`
	MatchedAddress    string            `json:"matchedAddress"`
	AddressComponents AddressComponents `json:"addressComponents"`
}

// Coordinates as returned by the Census API, X is the longitude and Y the latitude.
// Missing values stay nil.
type Coordinates struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type AddressComponents struct {
	Zip   string `json:"zip"`
	State string `json:"state"`
	City  string `json:"city"`
}

// New returns a Census geocoder. An empty benchmark selects DefaultBenchmark.
func New(client geocode.HTTPClient, benchmark string, opts ...geocode.Option) *Census {
	if benchmark == "" {
		benchmark = DefaultBenchmark
	}
	return &Census{
		benchmark: benchmark,
		http:      client,
		settings:  geocode.NewSettings(APIEndpoint, opts...),
	}
}

func (c *Census) Name() string {
	return name
}

func (c *Census) Geocode(ctx context.Context, address string) geo.Location {
	if strings.TrimSpace(address) == "" {
		return geo.Failure(name, geocode.ErrEmptyQuery)
	}
	var response Response

	query := url.Values{}
	query.Set("address", address)
	query.Set("benchmark", c.benchmark)
	query.Set("format", "json")

	code, err := c.http.GetWithTimeout(ctx, c.settings.Endpoint, &response, query, nil, c.settings.Timeout)
	if err != nil {
		return geo.Failure(name, fmt.Errorf("failed to retrieve coordinates from Census API: %w", err))
	}
	if code != http.StatusOK {
		return geo.Failure(name, geocode.StatusError(name, code))
	}
	if len(response.Result.AddressMatches) < 1 {
		return geo.Failure(name, geocode.ErrNoResult)
	}

	match := response.Result.AddressMatches[0]
	location := geo.Location{
		CountryCode: "US",
		Provider:    name,
		Precision:   geo.PrecisionAddress,
		Success:     true,
	}
	applyMatchedAddress(&location, match.MatchedAddress)
	if location.Zip == "" {
		location.Zip = match.AddressComponents.Zip
	}
	if location.State == "" {
		location.State = match.AddressComponents.State
	}
	if location.City() == "" {
		location.SetCity(match.AddressComponents.City)
	}

	if match.Coordinates.X == nil || match.Coordinates.Y == nil {
		return location.Fail(fmt.Errorf("%w: result without coordinates", geocode.ErrNoResult))
	}
	location.Point = geo.Point{Lat: *match.Coordinates.Y, Lng: *match.Coordinates.X}

	return location
}

// applyMatchedAddress splits a matched address of the form "STREET, CITY, ST, ZIP" into
// the location's components. Missing trailing parts are left unset.
func applyMatchedAddress(location *geo.Location, matched string) {
	parts := strings.Split(matched, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 0 && parts[0] != "" {
		location.SetStreetAddress(parts[0])
	}
	if len(parts) > 1 {
		location.SetCity(parts[1])
	}
	if len(parts) > 2 {
		location.State = strings.ToUpper(parts[2])
	}
	if len(parts) > 3 {
		location.Zip = parts[3]
	}
}
