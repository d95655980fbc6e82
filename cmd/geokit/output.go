// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/internal/service"
)

type field struct {
	name  string
	value string
}

func (a *app) printLocation(cmd *cobra.Command, location geo.Location) error {
	switch {
	case a.geojson:
		return writeJSON(cmd.OutOrStdout(), locationFeature(location))
	case a.json:
		return writeJSON(cmd.OutOrStdout(), location)
	}
	fields := []field{
		{"Coordinates", location.Point.String()},
		{"Address", location.FullAddress()},
		{"Street", location.StreetAddress()},
		{"City", location.City()},
		{"State", location.State},
		{"Zip", location.Zip},
		{"Country", location.CountryCode},
		{"Precision", location.Precision.String()},
		{"Provider", location.Provider},
	}
	if location.CacheHit {
		fields = append(fields, field{"Cached", "yes"})
	}
	return writeFields(cmd.OutOrStdout(), fields)
}

func (a *app) printDistance(cmd *cobra.Command, from, to string, measurement service.Measurement) error {
	switch {
	case a.geojson:
		return writeJSON(cmd.OutOrStdout(), measurementFeature(from, to, measurement))
	case a.json:
		return writeJSON(cmd.OutOrStdout(), struct {
			From     geo.Location `json:"from"`
			To       geo.Location `json:"to"`
			Distance float64      `json:"distance"`
			Units    geo.Units    `json:"units"`
			Formula  geo.Formula  `json:"formula"`
		}{measurement.From, measurement.To, measurement.Distance, measurement.Units, measurement.Formula})
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatDistance(measurement.Distance),
		measurement.Units.Abbreviation())
	return err
}

func (a *app) printRanked(cmd *cobra.Command, ranked []geo.Ranked[geo.Location], units geo.Units) error {
	if a.geojson {
		return writeJSON(cmd.OutOrStdout(), rankedCollection(ranked, units))
	}
	if a.json {
		type entry struct {
			Location geo.Location `json:"location"`
			Distance float64      `json:"distance"`
		}
		entries := make([]entry, 0, len(ranked))
		for _, r := range ranked {
			entries = append(entries, entry{r.Item, r.Distance})
		}
		return writeJSON(cmd.OutOrStdout(), struct {
			Units   geo.Units `json:"units"`
			Results []entry   `json:"results"`
		}{units, entries})
	}

	width := 0
	for _, r := range ranked {
		width = max(width, runewidth.StringWidth(r.Item.FullAddress()))
	}
	for i, r := range ranked {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s  %s %s\n", i+1,
			runewidth.FillRight(r.Item.FullAddress(), width), formatDistance(r.Distance),
			units.Abbreviation()); err != nil {
			return err
		}
	}
	return nil
}

// writeFields prints name/value pairs with aligned values. Empty values are skipped.
func writeFields(w io.Writer, fields []field) error {
	width := 0
	for _, f := range fields {
		width = max(width, runewidth.StringWidth(f.name))
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(f.name+":", width+1), f.value); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func formatDistance(distance float64) string {
	return strconv.FormatFloat(distance, 'f', 2, 64)
}
