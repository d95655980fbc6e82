// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Location is the result of a geocoding lookup. It is built by exactly one provider and
// handed out by value.
//
// City and street address are title-cased when assigned through their setters, so the
// output looks the same no matter which provider answered.
type Location struct {
	Point

	State       string
	Zip         string
	CountryCode string
	Provider    string
	Precision   Precision
	Success     bool
	CacheHit    bool

	// Err holds the reason of a failed lookup. It is informational only, failures are
	// signalled through Success.
	Err error

	streetAddress string
	city          string
	fullAddress   string
}

// Failure returns an empty, failed Location for the given provider.
func Failure(provider string, err error) Location {
	return Location{Provider: provider, Err: err}
}

// Fail returns a copy of l marked as failed. Fields populated so far are kept.
func (l Location) Fail(err error) Location {
	l.Success = false
	l.Err = err
	return l
}

// StreetAddress returns the street address (number and street name).
func (l Location) StreetAddress() string {
	return l.streetAddress
}

// SetStreetAddress assigns the street address in title case.
func (l *Location) SetStreetAddress(street string) {
	l.streetAddress = titleCase(street)
}

// City returns the city name.
func (l Location) City() string {
	return l.city
}

// SetCity assigns the city name in title case.
func (l *Location) SetCity(city string) {
	l.city = titleCase(city)
}

// SetFullAddress stores a provider supplied, fully formatted address as-is.
func (l *Location) SetFullAddress(address string) {
	l.fullAddress = strings.TrimSpace(address)
}

// FullAddress returns the provider supplied full address. If none was given it joins the
// non-empty address components with ", ".
func (l Location) FullAddress() string {
	if l.fullAddress != "" {
		return l.fullAddress
	}
	parts := make([]string, 0, 5)
	for _, part := range []string{l.streetAddress, l.city, l.State, l.Zip, l.CountryCode} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// IsUS reports whether the location is in the United States.
func (l Location) IsUS() bool {
	return l.CountryCode == "US"
}

// StreetNumber returns the leading run of digits of the street address.
func (l Location) StreetNumber() string {
	end := 0
	for end < len(l.streetAddress) && l.streetAddress[end] >= '0' && l.streetAddress[end] <= '9' {
		end++
	}
	return l.streetAddress[:end]
}

// StreetName returns the street address without its leading street number.
func (l Location) StreetName() string {
	return strings.TrimSpace(l.streetAddress[len(l.StreetNumber()):])
}

type locationJSON struct {
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	StreetAddress string    `json:"street_address,omitempty"`
	StreetNumber  string    `json:"street_number,omitempty"`
	StreetName    string    `json:"street_name,omitempty"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	Zip           string    `json:"zip,omitempty"`
	CountryCode   string    `json:"country_code,omitempty"`
	FullAddress   string    `json:"full_address,omitempty"`
	IsUS          bool      `json:"is_us"`
	Provider      string    `json:"provider,omitempty"`
	Precision     Precision `json:"precision"`
	Success       bool      `json:"success"`
	CacheHit      bool      `json:"cache_hit,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// MarshalJSON implements json.Marshaler, including the derived address fields.
func (l Location) MarshalJSON() ([]byte, error) {
	out := locationJSON{
		Lat:           l.Lat,
		Lng:           l.Lng,
		StreetAddress: l.streetAddress,
		StreetNumber:  l.StreetNumber(),
		StreetName:    l.StreetName(),
		City:          l.city,
		State:         l.State,
		Zip:           l.Zip,
		CountryCode:   l.CountryCode,
		FullAddress:   l.FullAddress(),
		IsUS:          l.IsUS(),
		Provider:      l.Provider,
		Precision:     l.Precision,
		Success:       l.Success,
		CacheHit:      l.CacheHit,
	}
	if l.Err != nil {
		out.Error = l.Err.Error()
	}
	return json.Marshal(out)
}

// titleCase upper-cases the first letter of every word. Casers are not safe for concurrent
// use, so a new one is created per call.
func titleCase(value string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(value))
}
