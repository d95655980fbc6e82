// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/geokit/geo"
)

// ErrFailedResolution matches every GeocodeError of kind FailedResolution.
var ErrFailedResolution = errors.New("failed to resolve origin")

// ErrorKind classifies a GeocodeError.
type ErrorKind int

const (
	// FailedResolution means an origin could not be turned into coordinates.
	FailedResolution ErrorKind = iota + 1
)

// GeocodeError is returned by callers that need coordinates and could not get them.
// The geocoders themselves never return it.
type GeocodeError struct {
	Kind     ErrorKind
	Origin   Origin
	Provider string
	Err      error
}

func (e *GeocodeError) Error() string {
	msg := fmt.Sprintf("%s %q", ErrFailedResolution, e.Origin.String())
	if e.Provider != "" {
		msg += " via " + e.Provider
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GeocodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFailedResolution and e is of that kind.
func (e *GeocodeError) Is(target error) bool {
	return target == ErrFailedResolution && e.Kind == FailedResolution
}

// Resolver turns an Origin into coordinates. Addresses handles street addresses, IP
// handles IP addresses. Either may be nil, resolving that kind then fails.
type Resolver struct {
	Addresses Geocoder
	IP        Geocoder
}

// Lookup returns the Location for origin. Point origins are returned without a
// network call.
func (r Resolver) Lookup(ctx context.Context, origin Origin) (geo.Location, error) {
	var coder Geocoder
	switch origin.Kind() {
	case OriginPoint:
		point, _ := origin.Point()
		if !point.Valid() {
			return geo.Location{}, resolutionError(origin, "", geo.ErrInvalidPoint)
		}
		return geo.Location{Point: point, Success: true}, nil
	case OriginAddress:
		coder = r.Addresses
	case OriginIP:
		coder = r.IP
	default:
		return geo.Location{}, resolutionError(origin, "", ErrEmptyQuery)
	}
	if coder == nil {
		return geo.Location{}, resolutionError(origin, "", fmt.Errorf("%w for %s origins",
			ErrNoProviders, origin.Kind()))
	}

	location := coder.Geocode(ctx, origin.Query())
	if !location.Success {
		err := location.Err
		if err == nil {
			err = ErrNoResult
		}
		return location, resolutionError(origin, location.Provider, err)
	}
	return location, nil
}

// Resolve returns the coordinates for origin.
func (r Resolver) Resolve(ctx context.Context, origin Origin) (geo.Point, error) {
	location, err := r.Lookup(ctx, origin)
	if err != nil {
		return geo.Point{}, err
	}
	return location.Point, nil
}

func resolutionError(origin Origin, provider string, err error) *GeocodeError {
	return &GeocodeError{Kind: FailedResolution, Origin: origin, Provider: provider, Err: err}
}
