// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geoip implements an IP geolocation provider for the reallyfreegeoip.org JSON API.
package geoip

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"strings"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/geocode"
)

const (
	APIEndpoint = "https://reallyfreegeoip.org/json/"
	name        = "geoip"
)

var (
	// ErrInvalidIP is the failure reason for queries that are not IP addresses.
	ErrInvalidIP = errors.New("query is not a valid IP address")

	// ErrNonPublicIP is the failure reason for private, loopback and unspecified addresses.
	ErrNonPublicIP = errors.New("IP address is not publicly routable")

	// ErrUnknownLocation is the failure reason when the API returned no country.
	ErrUnknownLocation = errors.New("location of IP address is unknown")
)

type GeoIP struct {
	http     geocode.HTTPClient
	settings geocode.Settings
}

type APIResult struct {
	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country_name"`
	RegionCode  string  `json:"region_code,omitempty"`
	Region      string  `json:"region_name,omitempty"`
	City        string  `json:"city,omitempty"`
	ZipCode     string  `json:"zip_code,omitempty"`
	TimeZone    string  `json:"time_zone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	MetroCode   int     `json:"metro_code"`
}

func New(client geocode.HTTPClient, opts ...geocode.Option) *GeoIP {
	return &GeoIP{
		http:     client,
		settings: geocode.NewSettings(APIEndpoint, opts...),
	}
}

func (p *GeoIP) Name() string {
	return name
}

// Geocode looks up the location of ip. An empty ip locates the caller's own public
// address.
func (p *GeoIP) Geocode(ctx context.Context, ip string) geo.Location {
	ip = strings.TrimSpace(ip)
	if ip != "" {
		addr, err := netip.ParseAddr(ip)
		if err != nil {
			return geo.Failure(name, fmt.Errorf("%w: %q", ErrInvalidIP, ip))
		}
		if addr.IsPrivate() || addr.IsLoopback() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() {
			return geo.Failure(name, fmt.Errorf("%w: %s", ErrNonPublicIP, addr))
		}
	}

	result := new(APIResult)
	endpoint := strings.TrimSuffix(p.settings.Endpoint, "/") + "/" + ip
	code, err := p.http.GetWithTimeout(ctx, endpoint, result, nil, nil, p.settings.Timeout)
	if err != nil {
		return geo.Failure(name, fmt.Errorf("failed to get geolocation data from API: %w", err))
	}
	if code != http.StatusOK {
		return geo.Failure(name, geocode.StatusError(name, code))
	}
	if result.CountryCode == "" {
		return geo.Failure(name, ErrUnknownLocation)
	}

	location := geo.Location{
		Point:       geo.Point{Lat: result.Latitude, Lng: result.Longitude},
		State:       result.RegionCode,
		Zip:         result.ZipCode,
		CountryCode: strings.ToUpper(result.CountryCode),
		Provider:    name,
		Precision:   geo.PrecisionCountry,
		Success:     true,
	}
	location.SetCity(result.City)
	if result.RegionCode != "" {
		location.Precision = geo.PrecisionState
	}
	if result.City != "" {
		location.Precision = geo.PrecisionCity
	}
	if result.ZipCode != "" {
		location.Precision = geo.PrecisionZip
	}

	return location
}
