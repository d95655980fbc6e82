// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package hostip implements an IP geolocation provider for the hostip.info text API.
package hostip

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"strconv"
	"strings"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/geocode"
	"github.com/wneessen/geokit/internal/vartype"
)

const (
	APIEndpoint = "http://api.hostip.info/get_html.php"
	name        = "hostip"
)

var (
	// ErrInvalidIP is the failure reason for queries that are not IPv4 dotted quads.
	ErrInvalidIP = errors.New("query is not a valid IPv4 address")

	// ErrNonPublicIP is the failure reason for private, loopback and unspecified addresses.
	ErrNonPublicIP = errors.New("IP address is not publicly routable")

	// ErrUnknownLocation is the failure reason when the service marks the address as
	// private or unknown, for example with a "(Private Address)" city.
	ErrUnknownLocation = errors.New("location of IP address is unknown")

	// ErrMissingCoordinates is the failure reason when no latitude or longitude was reported.
	ErrMissingCoordinates = errors.New("response did not contain coordinates")
)

type HostIP struct {
	http     geocode.HTTPClient
	settings geocode.Settings
}

func New(client geocode.HTTPClient, opts ...geocode.Option) *HostIP {
	return &HostIP{
		http:     client,
		settings: geocode.NewSettings(APIEndpoint, opts...),
	}
}

func (h *HostIP) Name() string {
	return name
}

// Geocode looks up the location of the IPv4 address ip. Addresses that are invalid or
// not publicly routable fail without a request.
func (h *HostIP) Geocode(ctx context.Context, ip string) geo.Location {
	if err := checkIP(ip); err != nil {
		return geo.Failure(name, err)
	}

	query := url.Values{}
	query.Set("ip", strings.TrimSpace(ip))
	query.Set("position", "true")

	code, body, err := h.http.GetBodyWithTimeout(ctx, h.settings.Endpoint, query, nil, h.settings.Timeout)
	if err != nil {
		return geo.Failure(name, fmt.Errorf("failed to retrieve IP location from hostip API: %w", err))
	}
	if code != http.StatusOK {
		return geo.Failure(name, geocode.StatusError(name, code))
	}

	return Parse(body)
}

// Parse turns a hostip text response of "Key: value" lines into a Location.
func Parse(body []byte) geo.Location {
	location := geo.Location{Provider: name}
	var lat, lng vartype.VarFloat64
	var city vartype.VarString

	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "country":
			location.CountryCode = countryCode(value)
		case "city":
			city.Set(value)
		case "latitude":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				lat.Set(f)
			}
		case "longitude":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				lng.Set(f)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return location.Fail(fmt.Errorf("failed to read hostip response: %w", err))
	}

	if strings.HasPrefix(city.Value(), "(") {
		return location.Fail(fmt.Errorf("%w: %s", ErrUnknownLocation, city.Value()))
	}
	if city.IsSet() && city.Value() != "" {
		cityName, state, _ := strings.Cut(city.Value(), ",")
		location.SetCity(cityName)
		location.State = strings.ToUpper(strings.TrimSpace(state))
		location.Precision = geo.PrecisionCity
	} else if location.CountryCode != "" {
		location.Precision = geo.PrecisionCountry
	}

	if !lat.IsSet() || !lng.IsSet() {
		return location.Fail(fmt.Errorf("%w: latitude %s, longitude %s", ErrMissingCoordinates, lat, lng))
	}
	location.Point = geo.Point{Lat: lat.Value(), Lng: lng.Value()}
	if !location.Valid() {
		return location.Fail(fmt.Errorf("%w: %s", geo.ErrInvalidPoint, location.Point))
	}
	location.Success = true

	return location
}

// countryCode extracts the parenthesized code of a "NAME (CC)" country value.
func countryCode(value string) string {
	open := strings.LastIndexByte(value, '(')
	end := strings.LastIndexByte(value, ')')
	if open < 0 || end <= open {
		return ""
	}
	code := strings.ToUpper(strings.TrimSpace(value[open+1 : end]))
	if len(code) != 2 || code == "XX" {
		return ""
	}
	return code
}

func checkIP(ip string) error {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil || !addr.Is4() {
		return fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}
	if addr.IsPrivate() || addr.IsLoopback() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() {
		return fmt.Errorf("%w: %s", ErrNonPublicIP, addr)
	}
	return nil
}
