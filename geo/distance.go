// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// EarthRadiusMiles is the mean earth radius used by the sphere formula.
	EarthRadiusMiles = 3963.0
	// KilometersPerMile converts miles into kilometers.
	KilometersPerMile = 1.609
	// EarthRadiusKilometers is EarthRadiusMiles expressed in kilometers.
	EarthRadiusKilometers = EarthRadiusMiles * KilometersPerMile
	// MilesPerLatitudeDegree is the length of one degree of latitude used by the flat formula.
	MilesPerLatitudeDegree = 69.1
	// KilometersPerLatitudeDegree is MilesPerLatitudeDegree expressed in kilometers.
	KilometersPerLatitudeDegree = MilesPerLatitudeDegree * KilometersPerMile
)

// Units selects the unit of length for distance calculations.
type Units string

// Formula selects the distance calculation method.
type Formula string

const (
	Miles      Units = "miles"
	Kilometers Units = "kilometers"

	// Sphere calculates the great-circle distance using the spherical law of cosines.
	Sphere Formula = "sphere"
	// Flat calculates a Pythagorean approximation using per-degree distance scales.
	Flat Formula = "flat"

	DefaultUnits   = Miles
	DefaultFormula = Sphere
)

var (
	// ErrConfiguration marks misuse of the distance engine or geocoder configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrUnknownUnits is returned for units other than Miles or Kilometers.
	ErrUnknownUnits = fmt.Errorf("%w: unknown distance units", ErrConfiguration)
	// ErrUnknownFormula is returned for formulas other than Sphere or Flat.
	ErrUnknownFormula = fmt.Errorf("%w: unknown distance formula", ErrConfiguration)
)

// ParseUnits converts a configuration string into Units.
func ParseUnits(value string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "miles", "mile", "mi":
		return Miles, nil
	case "kilometers", "kilometres", "kms", "km":
		return Kilometers, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnits, value)
}

// ParseFormula converts a configuration string into a Formula.
func ParseFormula(value string) (Formula, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "sphere":
		return Sphere, nil
	case "flat":
		return Flat, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormula, value)
}

// Valid reports whether u is a supported unit.
func (u Units) Valid() bool {
	return u == Miles || u == Kilometers
}

// Abbreviation returns the short unit symbol.
func (u Units) Abbreviation() string {
	switch u {
	case Miles:
		return "mi"
	case Kilometers:
		return "km"
	default:
		return string(u)
	}
}

// Valid reports whether f is a supported formula.
func (f Formula) Valid() bool {
	return f == Sphere || f == Flat
}

// DistanceBetween returns the distance between a and b in the requested units using the
// requested formula. Unknown units or formulas are rejected with an ErrConfiguration error and
// points outside of the EPSG:4326 range with ErrInvalidPoint.
func DistanceBetween(a, b Point, units Units, formula Formula) (float64, error) {
	for _, p := range []Point{a, b} {
		if !p.Valid() {
			return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidPoint, p)
		}
	}
	if !units.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnits, units)
	}
	switch formula {
	case Sphere:
		return sphereDistance(a, b, units), nil
	case Flat:
		return flatDistance(a, b, units), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormula, formula)
	}
}

// Distance returns the distance between a and b in miles using the sphere formula.
func Distance(a, b Point) float64 {
	return sphereDistance(a, b, DefaultUnits)
}

func sphereDistance(a, b Point, units Units) float64 {
	if a.Equal(b) {
		return 0
	}
	latA, lngA := radians(a.Lat), radians(a.Lng)
	latB, lngB := radians(b.Lat), radians(b.Lng)
	cosine := math.Sin(latA)*math.Sin(latB) + math.Cos(latA)*math.Cos(latB)*math.Cos(lngB-lngA)

	// Rounding may push the cosine slightly outside of acos' domain for very close points.
	cosine = math.Max(-1, math.Min(1, cosine))
	return math.Acos(cosine) * earthRadius(units)
}

func flatDistance(a, b Point, units Units) float64 {
	latScale := latitudeDegree(units)
	lngScale := longitudeDegree(a.Lat, units)
	dLat := latScale * (b.Lat - a.Lat)
	dLng := lngScale * (b.Lng - a.Lng)
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

func earthRadius(units Units) float64 {
	if units == Kilometers {
		return EarthRadiusKilometers
	}
	return EarthRadiusMiles
}

func latitudeDegree(units Units) float64 {
	if units == Kilometers {
		return KilometersPerLatitudeDegree
	}
	return MilesPerLatitudeDegree
}

// longitudeDegree returns the length of one degree of longitude at the given latitude.
func longitudeDegree(lat float64, units Units) float64 {
	return math.Abs(latitudeDegree(units) * math.Cos(radians(lat)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
