// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/geocode"
)

func TestNew(t *testing.T) {
	const (
		expectLogLevel = slog.LevelInfo
		expectTimeout  = time.Second * 10
		expectHitTTL   = time.Hour * 24
		expectMissTTL  = time.Minute * 10
	)
	t.Run("new config with all defaults set", func(t *testing.T) {
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.LogLevel != expectLogLevel {
			t.Errorf("expected log level to be: %s, got %s", expectLogLevel, conf.LogLevel)
		}
		if conf.DistanceUnits() != geo.Miles {
			t.Errorf("expected units to be: %s, got %s", geo.Miles, conf.DistanceUnits())
		}
		if conf.DistanceFormula() != geo.Sphere {
			t.Errorf("expected formula to be: %s, got %s", geo.Sphere, conf.DistanceFormula())
		}
		if diff := cmp.Diff([]string{ProviderCensus, ProviderNominatim}, conf.Geocoder.Order); diff != "" {
			t.Errorf("unexpected default geocoder order (-want +got):\n%s", diff)
		}
		if conf.Geocoder.IPProvider != ProviderHostIP {
			t.Errorf("expected IP provider to be: %s, got %s", ProviderHostIP, conf.Geocoder.IPProvider)
		}
		if conf.Geocoder.Timeout != expectTimeout {
			t.Errorf("expected timeout to be: %s, got %s", expectTimeout, conf.Geocoder.Timeout)
		}
		if conf.Geocoder.Concurrency != 4 {
			t.Errorf("expected concurrency to be: 4, got %d", conf.Geocoder.Concurrency)
		}
		if conf.Geocoder.Cache.Disabled {
			t.Error("expected cache to be enabled by default")
		}
		if conf.Geocoder.Cache.HitTTL != expectHitTTL {
			t.Errorf("expected hit TTL to be: %s, got %s", expectHitTTL, conf.Geocoder.Cache.HitTTL)
		}
		if conf.Geocoder.Cache.MissTTL != expectMissTTL {
			t.Errorf("expected miss TTL to be: %s, got %s", expectMissTTL, conf.Geocoder.Cache.MissTTL)
		}
		if conf.Providers.Census.Benchmark != "Public_AR_Current" {
			t.Errorf("expected census benchmark to be Public_AR_Current, got %s", conf.Providers.Census.Benchmark)
		}
		if conf.Locale == "" {
			t.Error("expected locale to be detected")
		}
	})
	t.Run("unit abbreviations are normalized", func(t *testing.T) {
		t.Setenv("GEOKIT_DISTANCE_UNITS", "km")
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.DistanceUnits() != geo.Kilometers {
			t.Errorf("expected units to be: %s, got %s", geo.Kilometers, conf.DistanceUnits())
		}
	})
	t.Run("the locale can be set from env", func(t *testing.T) {
		t.Setenv("GEOKIT_LOCALE", "de-DE")
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		base, _ := conf.Language().Base()
		if base.String() != "de" {
			t.Errorf("expected language de, got %s", conf.Language())
		}
	})
	t.Run("new config with invalid values from env", func(t *testing.T) {
		t.Setenv("GEOKIT_LOGLEVEL", "invalid")
		_, err := New()
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
	t.Run("config validate units", func(t *testing.T) {
		t.Setenv("GEOKIT_DISTANCE_UNITS", "furlongs")
		_, err := New()
		if !errors.Is(err, geo.ErrUnknownUnits) {
			t.Errorf("expected error to be %s, got %v", geo.ErrUnknownUnits, err)
		}
	})
	t.Run("config validate formula", func(t *testing.T) {
		t.Setenv("GEOKIT_DISTANCE_FORMULA", "vincenty")
		_, err := New()
		if !errors.Is(err, geo.ErrUnknownFormula) {
			t.Errorf("expected error to be %s, got %v", geo.ErrUnknownFormula, err)
		}
	})
	t.Run("config validate unknown providers", func(t *testing.T) {
		t.Setenv("GEOKIT_GEOCODER_ORDER", "[census,bing]")
		_, err := New()
		if !errors.Is(err, geocode.ErrUnknownProvider) {
			t.Errorf("expected error to be %s, got %v", geocode.ErrUnknownProvider, err)
		}
	})
	t.Run("config validate unknown IP provider", func(t *testing.T) {
		t.Setenv("GEOKIT_GEOCODER_IP_PROVIDER", "census")
		_, err := New()
		if !errors.Is(err, geocode.ErrUnknownProvider) {
			t.Errorf("expected error to be %s, got %v", geocode.ErrUnknownProvider, err)
		}
	})
	t.Run("config validate concurrency", func(t *testing.T) {
		t.Setenv("GEOKIT_GEOCODER_CONCURRENCY", "0")
		_, err := New()
		if !errors.Is(err, geo.ErrConfiguration) {
			t.Errorf("expected error to wrap %s, got %v", geo.ErrConfiguration, err)
		}
	})
	t.Run("config validate missing API keys", func(t *testing.T) {
		t.Setenv("GEOKIT_GEOCODER_ORDER", "[google,census]")
		_, err := New()
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("expected error to be %s, got %v", ErrMissingAPIKey, err)
		}
		if !errors.Is(err, geo.ErrConfiguration) {
			t.Errorf("expected error to wrap %s, got %v", geo.ErrConfiguration, err)
		}
	})
	t.Run("keyed providers with API key pass validation", func(t *testing.T) {
		t.Setenv("GEOKIT_GEOCODER_ORDER", "[google,census]")
		t.Setenv("GEOKIT_PROVIDERS_GOOGLE_API_KEY", "test-key")
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.Providers.Google.APIKey != "test-key" {
			t.Errorf("expected Google API key to be set, got %q", conf.Providers.Google.APIKey)
		}
	})
	t.Run("config validate timeout", func(t *testing.T) {
		t.Setenv("GEOKIT_GEOCODER_TIMEOUT", "-1s")
		_, err := New()
		if !errors.Is(err, geo.ErrConfiguration) {
			t.Errorf("expected error to wrap %s, got %v", geo.ErrConfiguration, err)
		}
	})
}

func TestNewFromFile(t *testing.T) {
	t.Run("reading config from valid file succeeds", func(t *testing.T) {
		conf, err := NewFromFile("../../etc", "geokit.toml")
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.LogLevel != slog.LevelInfo {
			t.Errorf("expected log level to be: %s, got %s", slog.LevelInfo, conf.LogLevel)
		}
		if conf.Language() != language.AmericanEnglish {
			t.Errorf("expected language to be en-US, got %s", conf.Language())
		}
		if conf.Geocoder.RateLimit != 1 {
			t.Errorf("expected rate limit to be 1, got %f", conf.Geocoder.RateLimit)
		}
		if conf.Providers.Nominatim.Endpoint != "https://nominatim.openstreetmap.org" {
			t.Errorf("unexpected nominatim endpoint %q", conf.Providers.Nominatim.Endpoint)
		}
	})
	t.Run("reading config from non-existent file fails", func(t *testing.T) {
		_, err := NewFromFile("../../etc", "non-existent.toml")
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
	t.Run("reading invalid config file fails", func(t *testing.T) {
		_, err := NewFromFile("../../testdata", "invalid.toml")
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
}
