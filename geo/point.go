// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPoint is returned when a coordinate pair cannot be parsed or is out of range.
var ErrInvalidPoint = errors.New("invalid geographic point")

// Locatable is implemented by every type that can be placed on the map. Callers adapt their
// own coordinate-bearing types to it at the boundary.
type Locatable interface {
	GeoPoint() Point
}

// Point represents a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewPoint returns a Point for the given latitude and longitude.
func NewPoint(lat, lng float64) Point {
	return Point{Lat: lat, Lng: lng}
}

// ParsePoint parses a "lat,lng" string into a Point.
func ParsePoint(value string) (Point, error) {
	latStr, lngStr, ok := strings.Cut(value, ",")
	if !ok {
		return Point{}, fmt.Errorf("%w: %q is not a lat,lng pair", ErrInvalidPoint, value)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: failed to parse latitude: %w", ErrInvalidPoint, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: failed to parse longitude: %w", ErrInvalidPoint, err)
	}
	point := Point{Lat: lat, Lng: lng}
	if !point.Valid() {
		return Point{}, fmt.Errorf("%w: %s is out of range", ErrInvalidPoint, point)
	}
	return point, nil
}

// GeoPoint satisfies the Locatable interface.
func (p Point) GeoPoint() Point {
	return p
}

// Valid checks if the point is within the EPSG:4326 coordinate range
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Equal reports whether both points have exactly the same latitude and longitude.
func (p Point) Equal(other Point) bool {
	return p.Lat == other.Lat && p.Lng == other.Lng
}

// IsZero reports whether the point is the zero value.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// DistanceTo returns the distance from p to other. It is the method form of DistanceBetween.
func (p Point) DistanceTo(other Locatable, units Units, formula Formula) (float64, error) {
	return DistanceBetween(p, other.GeoPoint(), units, formula)
}

// HeadingTo returns the initial bearing from p to other in degrees.
func (p Point) HeadingTo(other Locatable) float64 {
	return HeadingBetween(p, other.GeoPoint())
}

// String returns the point in "lat,lng" notation.
func (p Point) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
