// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"

	"github.com/wneessen/geokit/geocode"
	"github.com/wneessen/geokit/geocode/provider/census"
	geocodeearth "github.com/wneessen/geokit/geocode/provider/geocode-earth"
	"github.com/wneessen/geokit/geocode/provider/geoip"
	"github.com/wneessen/geokit/geocode/provider/google"
	"github.com/wneessen/geokit/geocode/provider/hostip"
	"github.com/wneessen/geokit/geocode/provider/opencage"
	nominatim "github.com/wneessen/geokit/geocode/provider/osm-nominatim"
	"github.com/wneessen/geokit/internal/config"
)

// newProvider creates the named provider from the configuration.
func (s *Service) newProvider(name string) (geocode.Geocoder, error) {
	providers := s.config.Providers
	var coder geocode.Geocoder

	switch name {
	case config.ProviderGoogle:
		if providers.Google.APIKey == "" {
			return nil, fmt.Errorf("%w for provider %q", config.ErrMissingAPIKey, name)
		}
		coder = google.New(s.http, providers.Google.APIKey, s.options(providers.Google.Endpoint)...)
	case config.ProviderOpenCage:
		if providers.OpenCage.APIKey == "" {
			return nil, fmt.Errorf("%w for provider %q", config.ErrMissingAPIKey, name)
		}
		coder = opencage.New(s.http, providers.OpenCage.APIKey, s.options(providers.OpenCage.Endpoint)...)
	case config.ProviderGeocodeEarth:
		if providers.GeocodeEarth.APIKey == "" {
			return nil, fmt.Errorf("%w for provider %q", config.ErrMissingAPIKey, name)
		}
		coder = geocodeearth.New(s.http, providers.GeocodeEarth.APIKey, s.options(providers.GeocodeEarth.Endpoint)...)
	case config.ProviderCensus:
		coder = census.New(s.http, providers.Census.Benchmark, s.options(providers.Census.Endpoint)...)
	case config.ProviderNominatim:
		coder = nominatim.New(s.http, s.options(providers.Nominatim.Endpoint)...)
	case config.ProviderHostIP:
		coder = hostip.New(s.http, s.options(providers.HostIP.Endpoint)...)
	case config.ProviderGeoIP:
		coder = geoip.New(s.http, s.options(providers.GeoIP.Endpoint)...)
	default:
		return nil, fmt.Errorf("%w: %q", geocode.ErrUnknownProvider, name)
	}

	if s.config.Geocoder.RateLimit > 0 {
		coder = geocode.RateLimit(coder, s.config.Geocoder.RateLimit, 1)
	}
	if s.metrics != nil {
		coder = geocode.Instrument(coder, s.metrics)
	}
	return coder, nil
}

func (s *Service) options(endpoint string) []geocode.Option {
	return []geocode.Option{
		geocode.WithEndpoint(endpoint),
		geocode.WithTimeout(s.config.Geocoder.Timeout),
		geocode.WithLanguage(s.config.Language()),
		geocode.WithLogger(s.logger.Logger),
	}
}

// cached wraps coder with the configured TTL cache unless caching is disabled.
func (s *Service) cached(coder geocode.Geocoder) geocode.Geocoder {
	if s.config.Geocoder.Cache.Disabled {
		return coder
	}
	cache := geocode.NewCache(coder, s.config.Geocoder.Cache.HitTTL, s.config.Geocoder.Cache.MissTTL,
		geocode.WithClock(s.clock))
	s.caches = append(s.caches, cache)
	return cache
}
