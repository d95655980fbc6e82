// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocodeearth

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
	APIEndpoint = "https://api.geocode.earth"
	name        = "geocode-earth"
)

type GeocodeEarth struct {
	apikey   string
	http     geocode.HTTPClient
	settings geocode.Settings
}

type SearchResponse struct {
	Features []SearchFeature `json:"features"`
	Type     string          `json:"type"`
}

type SearchFeature struct {
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
	Type       string     `json:"type"`
}

type Geometry struct {
	Coordinates []float64 `json:"coordinates"`
	Type        string    `json:"type"`
}

type Properties struct {
	Layer       string `json:"layer"`
	DisplayName string `json:"label"`
	City        string `json:"locality"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	HouseNumber string `json:"housenumber"`
	Postcode    string `json:"postalcode"`
	Road        string `json:"street"`
	State       string `json:"region"`
	StateCode   string `json:"region_a"`
}

func New(client geocode.HTTPClient, apikey string, opts ...geocode.Option) *GeocodeEarth {
	return &GeocodeEarth{
		apikey:   apikey,
		http:     client,
		settings: geocode.NewSettings(APIEndpoint, opts...),
	}
}

func (g *GeocodeEarth) Name() string {
	return name
}

func (g *GeocodeEarth) Geocode(ctx context.Context, address string) geo.Location {
	if strings.TrimSpace(address) == "" {
		return geo.Failure(name, geocode.ErrEmptyQuery)
	}
	var response SearchResponse

	query := url.Values{}
	query.Set("api_key", g.apikey)
	query.Set("text", address)
	query.Set("size", "1")
	query.Set("lang", g.settings.Language.String())

	endpoint := strings.TrimSuffix(g.settings.Endpoint, "/") + "/v1/search"
	code, err := g.http.GetWithTimeout(ctx, endpoint, &response, query, nil, g.settings.Timeout)
	if err != nil {
		return geo.Failure(name, fmt.Errorf("failed to retrieve coordinates from geocode.earth API: %w", err))
	}
	if code != http.StatusOK {
		return geo.Failure(name, geocode.StatusError(name, code))
	}
	if len(response.Features) < 1 {
		return geo.Failure(name, geocode.ErrNoResult)
	}

	// Fill the geo.Location struct
	feature := response.Features[0]
	props := feature.Properties
	location := geo.Location{
		State:       props.StateCode,
		Zip:         props.Postcode,
		CountryCode: strings.ToUpper(props.CountryCode),
		Provider:    name,
		Precision:   precision(props.Layer),
	}
	if location.State == "" {
		location.State = props.State
	}
	location.SetCity(props.City)
	if street := strings.TrimSpace(props.HouseNumber + " " + props.Road); street != "" {
		location.SetStreetAddress(street)
	}
	location.SetFullAddress(props.DisplayName)

	// GeoJSON orders coordinates as longitude, latitude
	if len(feature.Geometry.Coordinates) < 2 {
		return location.Fail(fmt.Errorf("%w: feature without coordinates", geocode.ErrNoResult))
	}
	location.Lng = feature.Geometry.Coordinates[0]
	location.Lat = feature.Geometry.Coordinates[1]
	location.Success = true

	return location
}

// precision maps the Pelias layer onto geo.Precision.
func precision(layer string) geo.Precision {
	switch layer {
	case "address", "venue":
		return geo.PrecisionAddress
	case "street":
		return geo.PrecisionStreet
	case "postalcode":
		return geo.PrecisionZip
	case "locality", "localadmin", "borough", "neighbourhood":
		return geo.PrecisionCity
	case "region", "macroregion", "county", "macrocounty":
		return geo.PrecisionState
	case "country", "dependency":
		return geo.PrecisionCountry
	}
	return geo.PrecisionUnknown
}
