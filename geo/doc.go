// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geo implements the geokit data model (points and geocoded locations) and the
// distance engine used to rank and filter location records.
//
// Distances are calculated either on a sphere (law-of-cosines great-circle distance) or on a
// flat plane (Pythagorean approximation with per-degree scales). Both formulas support miles
// and kilometers. Callers adapt their own coordinate-bearing types through the Locatable
// interface.
package geo
