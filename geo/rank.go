// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"slices"
)

// Ranked pairs an item with its distance from an origin.
type Ranked[T Locatable] struct {
	Item     T
	Distance float64
}

// Nearest returns all items ordered by ascending distance from origin. Items at the same
// distance keep their input order.
func Nearest[T Locatable](origin Point, items []T, units Units, formula Formula) ([]Ranked[T], error) {
	ranked := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		distance, err := DistanceBetween(origin, item.GeoPoint(), units, formula)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, Ranked[T]{Item: item, Distance: distance})
	}
	slices.SortStableFunc(ranked, func(a, b Ranked[T]) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})
	return ranked, nil
}

// Within returns the items whose distance from origin is at most radius, nearest first.
func Within[T Locatable](origin Point, items []T, radius float64, units Units, formula Formula) ([]Ranked[T], error) {
	ranked, err := Nearest(origin, items, units, formula)
	if err != nil {
		return nil, err
	}
	idx, _ := slices.BinarySearchFunc(ranked, radius, func(r Ranked[T], target float64) int {
		if r.Distance <= target {
			return -1
		}
		return 1
	})
	return ranked[:idx], nil
}
