// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package opencage

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
	APIEndpoint = "https://api.opencagedata.com/geocode/v1/json"
	name        = "opencage"
)

type OpenCage struct {
	apikey   string
	http     geocode.HTTPClient
	settings geocode.Settings
}

type Response struct {
	Results      []Result `json:"results"`
	Status       Status   `json:"status"`
	TotalResults int      `json:"total_results"`
}

type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Result struct {
	Components  Components `json:"components"`
	Confidence  int        `json:"confidence"`
	DisplayName string     `json:"formatted"`
	Geometry    Geometry   `json:"geometry"`
}

type Components struct {
	Type          string `json:"_type"`
	NomalizedCity string `json:"_normalized_city"`
	City          string `json:"city"`
	Country       string `json:"country"`
	CountryCode   string `json:"country_code"`
	HouseNumber   string `json:"house_number"`
	Postcode      string `json:"postcode"`
	Road          string `json:"road"`
	State         string `json:"state"`
	StateCode     string `json:"state_code"`
	Town          string `json:"town"`
	Village       string `json:"village"`
}

// Geometry holds the result coordinates. Missing values stay nil.
type Geometry struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lng"`
}

func New(client geocode.HTTPClient, apikey string, opts ...geocode.Option) *OpenCage {
	return &OpenCage{
		apikey:   apikey,
		http:     client,
		settings: geocode.NewSettings(APIEndpoint, opts...),
	}
}

func (o *OpenCage) Name() string {
	return name
}

func (o *OpenCage) Geocode(ctx context.Context, address string) geo.Location {
	if strings.TrimSpace(address) == "" {
		return geo.Failure(name, geocode.ErrEmptyQuery)
	}
	var response Response

	query := url.Values{}
	query.Set("key", o.apikey)
	query.Set("q", address)
	query.Set("limit", "1")
	query.Set("no_annotations", "1")
	query.Set("no_record", "1")
	query.Set("language", o.settings.Language.String())

	code, err := o.http.GetWithTimeout(ctx, o.settings.Endpoint, &response, query, nil, o.settings.Timeout)
	if err != nil {
		return geo.Failure(name, fmt.Errorf("failed to retrieve coordinates from OpenCage API: %w", err))
	}
	if code != http.StatusOK {
		return geo.Failure(name, geocode.StatusError(name, code))
	}
	if len(response.Results) < 1 {
		return geo.Failure(name, geocode.ErrNoResult)
	}

	// Fill the geo.Location struct
	result := response.Results[0]
	components := result.Components
	location := geo.Location{
		State:       components.StateCode,
		Zip:         components.Postcode,
		CountryCode: strings.ToUpper(components.CountryCode),
		Provider:    name,
		Precision:   precision(components.Type),
		Success:     true,
	}
	if location.State == "" {
		location.State = components.State
	}

	city := components.NomalizedCity
	if city == "" {
		city = components.City
	}
	if components.Town != "" {
		city = components.Town
	}
	if components.Village != "" {
		city = components.Village
	}
	location.SetCity(city)
	if street := strings.TrimSpace(components.HouseNumber + " " + components.Road); street != "" {
		location.SetStreetAddress(street)
	}
	location.SetFullAddress(result.DisplayName)

	if result.Geometry.Lat == nil || result.Geometry.Lon == nil {
		return location.Fail(fmt.Errorf("%w: result without coordinates", geocode.ErrNoResult))
	}
	location.Point = geo.Point{Lat: *result.Geometry.Lat, Lng: *result.Geometry.Lon}

	return location
}

// precision maps the OpenCage component type onto geo.Precision.
func precision(kind string) geo.Precision {
	switch kind {
	case "building", "house":
		return geo.PrecisionAddress
	case "road":
		return geo.PrecisionStreet
	case "postcode":
		return geo.PrecisionZip
	case "city", "town", "village", "hamlet", "neighbourhood", "suburb":
		return geo.PrecisionCity
	case "state", "county":
		return geo.PrecisionState
	case "country":
		return geo.PrecisionCountry
	}
	return geo.PrecisionUnknown
}
