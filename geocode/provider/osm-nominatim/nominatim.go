// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/geocode"
)

const (
	APIEndpoint = "https://nominatim.openstreetmap.org"
	name        = "osm-nominatim"
)

type Nominatim struct {
	http     geocode.HTTPClient
	settings geocode.Settings
}

type SearchResult struct {
	APILat      string  `json:"lat"`
	APILon      string  `json:"lon"`
	AddressType string  `json:"addresstype"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
}

type Address struct {
	HouseNumber  string `json:"house_number"`
	Road         string `json:"road"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	State        string `json:"state"`
	ISO31662Lvl4 string `json:"ISO3166-2-lvl4"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
}

func New(client geocode.HTTPClient, opts ...geocode.Option) *Nominatim {
	return &Nominatim{
		http:     client,
		settings: geocode.NewSettings(APIEndpoint, opts...),
	}
}

func (n *Nominatim) Name() string {
	return name
}

func (n *Nominatim) Geocode(ctx context.Context, address string) geo.Location {
	if strings.TrimSpace(address) == "" {
		return geo.Failure(name, geocode.ErrEmptyQuery)
	}
	var results []SearchResult

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("q", address)
	query.Set("addressdetails", "1")
	query.Set("limit", "1")
	query.Set("accept-language", n.settings.Language.String())

	endpoint := strings.TrimSuffix(n.settings.Endpoint, "/") + "/search"
	code, err := n.http.GetWithTimeout(ctx, endpoint, &results, query, nil, n.settings.Timeout)
	if err != nil {
		return geo.Failure(name, fmt.Errorf("failed to fetch address details from Nominatim API: %w", err))
	}
	if code != http.StatusOK {
		return geo.Failure(name, geocode.StatusError(name, code))
	}
	if len(results) < 1 {
		return geo.Failure(name, geocode.ErrNoResult)
	}

	// Fill the geo.Location struct
	result := results[0]
	location := geo.Location{
		Zip:         result.Address.Postcode,
		CountryCode: strings.ToUpper(result.Address.CountryCode),
		Provider:    name,
		Precision:   precision(result.AddressType),
	}
	location.State = result.Address.State
	if _, subdivision, ok := strings.Cut(result.Address.ISO31662Lvl4, "-"); ok && subdivision != "" {
		location.State = subdivision
	}
	switch {
	case result.Address.City != "":
		location.SetCity(result.Address.City)
	case result.Address.Town != "":
		location.SetCity(result.Address.Town)
	case result.Address.Village != "":
		location.SetCity(result.Address.Village)
	}
	if street := strings.TrimSpace(result.Address.HouseNumber + " " + result.Address.Road); street != "" {
		location.SetStreetAddress(street)
	}
	location.SetFullAddress(result.DisplayName)

	location.Lat, err = strconv.ParseFloat(result.APILat, 64)
	if err != nil {
		return location.Fail(fmt.Errorf("failed to parse latitude from Nominatim API response: %w", err))
	}
	location.Lng, err = strconv.ParseFloat(result.APILon, 64)
	if err != nil {
		return location.Fail(fmt.Errorf("failed to parse longitude from Nominatim API response: %w", err))
	}
	location.Success = true

	return location
}

// precision maps the Nominatim address type onto geo.Precision.
func precision(addressType string) geo.Precision {
	switch addressType {
	case "building", "house", "amenity", "shop", "office", "place":
		return geo.PrecisionAddress
	case "road":
		return geo.PrecisionStreet
	case "postcode":
		return geo.PrecisionZip
	case "city", "town", "village", "hamlet", "municipality", "suburb", "neighbourhood":
		return geo.PrecisionCity
	case "state", "county", "region", "province":
		return geo.PrecisionState
	case "country":
		return geo.PrecisionCountry
	}
	return geo.PrecisionUnknown
}
