// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package google implements a geocoder for the Google Geocoding API.
package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/geocode"
)

const (
	APIEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"
	name        = "google"

	statusOK = "OK"
)

type Google struct {
	apikey   string
	http     geocode.HTTPClient
	settings geocode.Settings
}

type Response struct {
	Results      []Result `json:"results"`
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message"`
}

type Result struct {
	AddressComponents []Component `json:"address_components"`
	FormattedAddress  string      `json:"formatted_address"`
	Geometry          Geometry    `json:"geometry"`
	Types             []string    `json:"types"`
}

type Component struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type Geometry struct {
	Location     Location `json:"location"`
	LocationType string   `json:"location_type"`
}

// Location holds the result coordinates. Missing values stay nil.
type Location struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func New(client geocode.HTTPClient, apikey string, opts ...geocode.Option) *Google {
	return &Google{
		apikey:   apikey,
		http:     client,
		settings: geocode.NewSettings(APIEndpoint, opts...),
	}
}

func (g *Google) Name() string {
	return name
}

func (g *Google) Geocode(ctx context.Context, address string) geo.Location {
	if strings.TrimSpace(address) == "" {
		return geo.Failure(name, geocode.ErrEmptyQuery)
	}
	var response Response

	query := url.Values{}
	query.Set("address", address)
	query.Set("key", g.apikey)
	query.Set("language", g.settings.Language.String())

	code, err := g.http.GetWithTimeout(ctx, g.settings.Endpoint, &response, query, nil, g.settings.Timeout)
	if err != nil {
		return geo.Failure(name, fmt.Errorf("failed to retrieve coordinates from Google API: %w", err))
	}
	if code != http.StatusOK {
		return geo.Failure(name, geocode.StatusError(name, code))
	}
	if response.Status != statusOK {
		g.settings.Logger.Debug("google geocoding returned non-OK status",
			slog.String("status", response.Status), slog.String("message", response.ErrorMessage))
		return geo.Failure(name, fmt.Errorf("%w from Google API: %s", geocode.ErrUnexpectedStatus, response.Status))
	}
	if len(response.Results) < 1 {
		return geo.Failure(name, geocode.ErrNoResult)
	}

	return toLocation(response.Results[0])
}

func toLocation(result Result) geo.Location {
	location := geo.Location{
		Provider:  name,
		Precision: precision(result.Geometry.LocationType, result.Types),
		Success:   true,
	}

	var number, route string
	for _, component := range result.AddressComponents {
		switch {
		case has(component, "street_number"):
			number = component.LongName
		case has(component, "route"):
			route = component.LongName
		case has(component, "locality"):
			location.SetCity(component.LongName)
		case has(component, "administrative_area_level_1"):
			location.State = component.ShortName
		case has(component, "postal_code"):
			location.Zip = component.LongName
		case has(component, "country"):
			location.CountryCode = component.ShortName
		}
	}
	if street := strings.TrimSpace(number + " " + route); street != "" {
		location.SetStreetAddress(street)
	}
	location.SetFullAddress(result.FormattedAddress)

	coords := result.Geometry.Location
	if coords.Lat == nil || coords.Lng == nil {
		return location.Fail(fmt.Errorf("%w: result without coordinates", geocode.ErrNoResult))
	}
	location.Point = geo.Point{Lat: *coords.Lat, Lng: *coords.Lng}

	return location
}

// precision maps Google's location_type and result types onto geo.Precision.
func precision(locationType string, types []string) geo.Precision {
	switch strings.ToUpper(locationType) {
	case "ROOFTOP":
		return geo.PrecisionAddress
	case "RANGE_INTERPOLATED":
		return geo.PrecisionStreet
	}
	switch {
	case slices.Contains(types, "street_address"), slices.Contains(types, "premise"):
		return geo.PrecisionAddress
	case slices.Contains(types, "route"), slices.Contains(types, "intersection"):
		return geo.PrecisionStreet
	case slices.Contains(types, "postal_code"):
		return geo.PrecisionZip
	case slices.Contains(types, "locality"), slices.Contains(types, "sublocality"):
		return geo.PrecisionCity
	case slices.Contains(types, "administrative_area_level_1"):
		return geo.PrecisionState
	case slices.Contains(types, "country"):
		return geo.PrecisionCountry
	}
	return geo.PrecisionUnknown
}

func has(component Component, kind string) bool {
	return slices.Contains(component.Types, kind)
}
