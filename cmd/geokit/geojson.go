// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/internal/service"
)

// GeoJSON positions are longitude first.
func pointGeometry(point geo.Point) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{point.Lng, point.Lat})
}

func locationProperties(location geo.Location) map[string]any {
	properties := map[string]any{
		"address":   location.FullAddress(),
		"precision": location.Precision.String(),
	}
	for key, value := range map[string]string{
		"street":   location.StreetAddress(),
		"city":     location.City(),
		"state":    location.State,
		"zip":      location.Zip,
		"country":  location.CountryCode,
		"provider": location.Provider,
	} {
		if value != "" {
			properties[key] = value
		}
	}
	return properties
}

func locationFeature(location geo.Location) *geojson.Feature {
	return &geojson.Feature{
		Geometry:   pointGeometry(location.Point),
		Properties: locationProperties(location),
	}
}

func measurementFeature(from, to string, measurement service.Measurement) *geojson.Feature {
	a, b := measurement.From.Point, measurement.To.Point
	return &geojson.Feature{
		Geometry: geom.NewLineStringFlat(geom.XY, []float64{a.Lng, a.Lat, b.Lng, b.Lat}),
		Properties: map[string]any{
			"from":     from,
			"to":       to,
			"distance": measurement.Distance,
			"units":    string(measurement.Units),
			"formula":  string(measurement.Formula),
		},
	}
}

func rankedCollection(ranked []geo.Ranked[geo.Location], units geo.Units) *geojson.FeatureCollection {
	collection := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(ranked))}
	for i, r := range ranked {
		feature := locationFeature(r.Item)
		feature.Properties["rank"] = i + 1
		feature.Properties["distance"] = r.Distance
		feature.Properties["units"] = string(units)
		collection.Features = append(collection.Features, feature)
	}
	return collection
}
