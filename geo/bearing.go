// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"fmt"
	"math"
)

// HeadingBetween returns the initial great-circle bearing from a to b in degrees, normalized
// to [0, 360).
func HeadingBetween(a, b Point) float64 {
	latA, latB := radians(a.Lat), radians(b.Lat)
	dLng := radians(b.Lng - a.Lng)

	y := math.Sin(dLng) * math.Cos(latB)
	x := math.Cos(latA)*math.Sin(latB) - math.Sin(latA)*math.Cos(latB)*math.Cos(dLng)
	return math.Mod(degrees(math.Atan2(y, x))+360, 360)
}

// Endpoint returns the point reached when travelling distance from start along the given
// heading (degrees) on a great circle.
func Endpoint(start Point, heading, distance float64, units Units) (Point, error) {
	if !units.Valid() {
		return Point{}, fmt.Errorf("%w: %q", ErrUnknownUnits, units)
	}
	angular := distance / earthRadius(units)
	bearing := radians(heading)
	lat := radians(start.Lat)
	lng := radians(start.Lng)

	endLat := math.Asin(math.Sin(lat)*math.Cos(angular) + math.Cos(lat)*math.Sin(angular)*math.Cos(bearing))
	endLng := lng + math.Atan2(math.Sin(bearing)*math.Sin(angular)*math.Cos(lat),
		math.Cos(angular)-math.Sin(lat)*math.Sin(endLat))

	return Point{Lat: degrees(endLat), Lng: normalizeLongitude(degrees(endLng))}, nil
}

// Midpoint returns the great-circle midpoint between a and b.
func Midpoint(a, b Point) Point {
	latA, lngA := radians(a.Lat), radians(a.Lng)
	latB := radians(b.Lat)
	dLng := radians(b.Lng - a.Lng)

	bx := math.Cos(latB) * math.Cos(dLng)
	by := math.Cos(latB) * math.Sin(dLng)
	lat := math.Atan2(math.Sin(latA)+math.Sin(latB), math.Sqrt((math.Cos(latA)+bx)*(math.Cos(latA)+bx)+by*by))
	lng := lngA + math.Atan2(by, math.Cos(latA)+bx)

	return Point{Lat: degrees(lat), Lng: normalizeLongitude(degrees(lng))}
}

func normalizeLongitude(lng float64) float64 {
	lng = math.Mod(lng+540, 360) - 180
	if lng == -180 {
		return 180
	}
	return lng
}
