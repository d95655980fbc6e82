// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wneessen/geokit/geo"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry(&countingCoder{name: "census"}, &countingCoder{name: "google"}, nil)
	registry.Register(&countingCoder{name: "opencage"})

	t.Run("names are sorted", func(t *testing.T) {
		want := []string{"census", "google", "opencage"}
		if diff := cmp.Diff(want, registry.Names()); diff != "" {
			t.Errorf("unexpected names (-want +got):\n%s", diff)
		}
	})
	t.Run("lookup finds registered providers", func(t *testing.T) {
		if _, ok := registry.Lookup("google"); !ok {
			t.Error("expected google to be registered")
		}
		if _, ok := registry.Lookup("bing"); ok {
			t.Error("did not expect bing to be registered")
		}
	})
	t.Run("select keeps the requested order", func(t *testing.T) {
		selected, err := registry.Select([]string{"opencage", "census"})
		if err != nil {
			t.Fatalf("failed to select providers: %s", err)
		}
		var names []string
		for _, provider := range selected {
			names = append(names, provider.Name())
		}
		if diff := cmp.Diff([]string{"opencage", "census"}, names); diff != "" {
			t.Errorf("unexpected selection (-want +got):\n%s", diff)
		}
	})
	t.Run("selecting an unknown provider fails", func(t *testing.T) {
		_, err := registry.Select([]string{"census", "bing"})
		if !errors.Is(err, ErrUnknownProvider) {
			t.Errorf("expected error to be %s, got %s", ErrUnknownProvider, err)
		}
		if !errors.Is(err, geo.ErrConfiguration) {
			t.Errorf("expected error to wrap %s, got %s", geo.ErrConfiguration, err)
		}
	})
	t.Run("an empty selection fails", func(t *testing.T) {
		if _, err := registry.Select(nil); !errors.Is(err, ErrNoProviders) {
			t.Errorf("expected error to be %s, got %s", ErrNoProviders, err)
		}
	})
}
