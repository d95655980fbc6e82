// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/wneessen/geokit/geo"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		value string
		kind  OriginKind
	}{
		{"41.7696,-88.4588", OriginPoint},
		{" 41.7696, -88.4588 ", OriginPoint},
		{"12.215.42.19", OriginIP},
		{"1600 Pennsylvania Ave NW, Washington, DC", OriginAddress},
		{"95,10", OriginAddress},
		{"2001:db8::1", OriginAddress},
	}
	for _, tc := range tests {
		t.Run("classifying "+tc.value, func(t *testing.T) {
			if got := FromString(tc.value).Kind(); got != tc.kind {
				t.Errorf("expected kind %s, got %s", tc.kind, got)
			}
		})
	}
}

func TestOrigin(t *testing.T) {
	t.Run("point origins expose their point", func(t *testing.T) {
		origin := FromLocatable(testPoint)
		point, ok := origin.Point()
		if !ok {
			t.Fatal("expected a point origin")
		}
		if !point.Equal(testPoint) {
			t.Errorf("expected point %s, got %s", testPoint, point)
		}
		if origin.String() != testPoint.String() {
			t.Errorf("expected string %s, got %s", testPoint, origin)
		}
	})
	t.Run("address origins expose their query", func(t *testing.T) {
		origin := FromAddress("  Sugar Grove, IL ")
		if _, ok := origin.Point(); ok {
			t.Error("did not expect a point origin")
		}
		if origin.Query() != "Sugar Grove, IL" {
			t.Errorf("expected trimmed query, got %q", origin.Query())
		}
	})
}

func TestResolver_Resolve(t *testing.T) {
	addresses := &countingCoder{name: "census", success: true}
	ips := &countingCoder{name: "hostip"}
	resolver := Resolver{Addresses: addresses, IP: ips}

	t.Run("points resolve without a lookup", func(t *testing.T) {
		point, err := resolver.Resolve(t.Context(), FromPoint(geo.Point{Lat: 1, Lng: 2}))
		if err != nil {
			t.Fatalf("failed to resolve point: %s", err)
		}
		if !point.Equal(geo.Point{Lat: 1, Lng: 2}) {
			t.Errorf("unexpected point %s", point)
		}
		if addresses.calls.Load() != 0 || ips.calls.Load() != 0 {
			t.Error("did not expect any provider call")
		}
	})
	t.Run("invalid points fail to resolve", func(t *testing.T) {
		_, err := resolver.Resolve(t.Context(), FromPoint(geo.Point{Lat: 91}))
		if !errors.Is(err, ErrFailedResolution) {
			t.Errorf("expected error to be %s, got %s", ErrFailedResolution, err)
		}
		if !errors.Is(err, geo.ErrInvalidPoint) {
			t.Errorf("expected error to wrap %s, got %s", geo.ErrInvalidPoint, err)
		}
	})
	t.Run("addresses resolve through the address geocoder", func(t *testing.T) {
		point, err := resolver.Resolve(t.Context(), FromAddress("Sugar Grove, IL"))
		if err != nil {
			t.Fatalf("failed to resolve address: %s", err)
		}
		if !point.Equal(testPoint) {
			t.Errorf("expected point %s, got %s", testPoint, point)
		}
	})
	t.Run("a failed lookup is a resolution error", func(t *testing.T) {
		_, err := resolver.Resolve(t.Context(), FromIP("12.215.42.19"))
		if !errors.Is(err, ErrFailedResolution) {
			t.Fatalf("expected error to be %s, got %s", ErrFailedResolution, err)
		}
		var geoErr *GeocodeError
		if !errors.As(err, &geoErr) {
			t.Fatal("expected a GeocodeError")
		}
		if geoErr.Kind != FailedResolution {
			t.Errorf("expected kind FailedResolution, got %d", geoErr.Kind)
		}
		if geoErr.Provider != "hostip" {
			t.Errorf("expected provider hostip, got %q", geoErr.Provider)
		}
		if geoErr.Origin.Kind() != OriginIP {
			t.Errorf("expected ip origin, got %s", geoErr.Origin.Kind())
		}
	})
	t.Run("a missing geocoder is a resolution error", func(t *testing.T) {
		_, err := Resolver{}.Resolve(t.Context(), FromAddress("Sugar Grove, IL"))
		if !errors.Is(err, ErrFailedResolution) {
			t.Errorf("expected error to be %s, got %s", ErrFailedResolution, err)
		}
		if !errors.Is(err, ErrNoProviders) {
			t.Errorf("expected error to wrap %s, got %s", ErrNoProviders, err)
		}
	})
	t.Run("a zero origin is a resolution error", func(t *testing.T) {
		_, err := resolver.Resolve(t.Context(), Origin{})
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("expected error to wrap %s, got %s", ErrEmptyQuery, err)
		}
	})
	t.Run("failures without a reason fall back to no result", func(t *testing.T) {
		silent := Named("silent", func(context.Context, string) geo.Location {
			return geo.Location{Provider: "silent"}
		})
		_, err := Resolver{Addresses: silent}.Resolve(t.Context(), FromAddress("x"))
		if !errors.Is(err, ErrNoResult) {
			t.Errorf("expected error to wrap %s, got %s", ErrNoResult, err)
		}
	})
}
