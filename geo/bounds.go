// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

// Bounds is a rectangular area given by its south-west and north-east corners. A bounds whose
// south-west longitude is greater than its north-east longitude crosses the antimeridian.
type Bounds struct {
	SW Point `json:"sw"`
	NE Point `json:"ne"`
}

// BoundsFromRadius returns the bounds spanned by the endpoints reached from center when travelling
// radius at headings 0, 90, 180 and 270. Away from the equator the circle bulges past the east and
// west edges, so the result is an approximation rather than the enclosing rectangle.
func BoundsFromRadius(center Point, radius float64, units Units) (Bounds, error) {
	var corners [4]Point
	for i, heading := range []float64{0, 90, 180, 270} {
		point, err := Endpoint(center, heading, radius, units)
		if err != nil {
			return Bounds{}, err
		}
		corners[i] = point
	}
	return Bounds{
		SW: Point{Lat: corners[2].Lat, Lng: corners[3].Lng},
		NE: Point{Lat: corners[0].Lat, Lng: corners[1].Lng},
	}, nil
}

// CrossesAntimeridian reports whether the bounds wrap around the 180th meridian.
func (b Bounds) CrossesAntimeridian() bool {
	return b.SW.Lng > b.NE.Lng
}

// Contains reports whether the given point lies within the bounds (edges included).
func (b Bounds) Contains(l Locatable) bool {
	p := l.GeoPoint()
	if p.Lat < b.SW.Lat || p.Lat > b.NE.Lat {
		return false
	}
	if b.CrossesAntimeridian() {
		return p.Lng >= b.SW.Lng || p.Lng <= b.NE.Lng
	}
	return p.Lng >= b.SW.Lng && p.Lng <= b.NE.Lng
}

// Center returns the midpoint between the two corners.
func (b Bounds) Center() Point {
	return Midpoint(b.SW, b.NE)
}
