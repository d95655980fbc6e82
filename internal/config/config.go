// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/Xuanwo/go-locale"
	"github.com/kkyr/fig"
	"golang.org/x/text/language"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/geocode"
)

const configEnv = "GEOKIT"

// Provider names known to the configuration.
const (
	ProviderGoogle       = "google"
	ProviderOpenCage     = "opencage"
	ProviderCensus       = "census"
	ProviderNominatim    = "osm-nominatim"
	ProviderGeocodeEarth = "geocode-earth"
	ProviderHostIP       = "hostip"
	ProviderGeoIP        = "geoip"
)

var (
	// AddressProviders lists the providers that geocode street addresses.
	AddressProviders = []string{ProviderGoogle, ProviderOpenCage, ProviderCensus, ProviderNominatim,
		ProviderGeocodeEarth}

	// IPProviders lists the providers that locate IP addresses.
	IPProviders = []string{ProviderHostIP, ProviderGeoIP}

	// ErrMissingAPIKey is returned when a configured provider requires an API key but has none.
	ErrMissingAPIKey = fmt.Errorf("%w: missing API key", geo.ErrConfiguration)
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Distance struct {
		// Allowed values: miles, kilometers (and their abbreviations)
		Units string `fig:"units" default:"miles"`
		// Allowed values: sphere, flat
		Formula string `fig:"formula" default:"sphere"`
	} `fig:"distance"`

	Geocoder struct {
		Order      []string      `fig:"order" default:"[census,osm-nominatim]"`
		IPProvider string        `fig:"ip_provider" default:"hostip"`
		Timeout    time.Duration `fig:"timeout" default:"10s"`
		// Requests per second per provider, 0 disables rate limiting
		RateLimit float64 `fig:"rate_limit" default:"0"`
		// Maximum number of concurrent lookups when resolving many origins
		Concurrency int `fig:"concurrency" default:"4"`

		Cache struct {
			Disabled bool          `fig:"disabled"`
			HitTTL   time.Duration `fig:"hit_ttl" default:"24h"`
			MissTTL  time.Duration `fig:"miss_ttl" default:"10m"`
		} `fig:"cache"`
	} `fig:"geocoder"`

	Providers struct {
		Google       Provider `fig:"google"`
		OpenCage     Provider `fig:"opencage"`
		GeocodeEarth Provider `fig:"geocode_earth"`
		Nominatim    Provider `fig:"osm_nominatim"`
		HostIP       Provider `fig:"hostip"`
		GeoIP        Provider `fig:"geoip"`
		Census       struct {
			Endpoint  string `fig:"endpoint"`
			Benchmark string `fig:"benchmark" default:"Public_AR_Current"`
		} `fig:"census"`
	} `fig:"providers"`
}

// Provider holds the settings of a single geocoding provider.
type Provider struct {
	APIKey   string `fig:"api_key"`
	Endpoint string `fig:"endpoint"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate checks the configuration and normalizes units and formula names.
func (c *Config) Validate() error {
	units, err := geo.ParseUnits(c.Distance.Units)
	if err != nil {
		return fmt.Errorf("invalid distance units: %w", err)
	}
	c.Distance.Units = string(units)
	formula, err := geo.ParseFormula(c.Distance.Formula)
	if err != nil {
		return fmt.Errorf("invalid distance formula: %w", err)
	}
	c.Distance.Formula = string(formula)

	if len(c.Geocoder.Order) == 0 {
		return fmt.Errorf("invalid geocoder order: %w", geocode.ErrNoProviders)
	}
	var errs []error
	for _, name := range c.Geocoder.Order {
		if !slices.Contains(AddressProviders, name) {
			errs = append(errs, fmt.Errorf("invalid geocoder order: %w: %q", geocode.ErrUnknownProvider, name))
			continue
		}
		if err = c.requireAPIKey(name); err != nil {
			errs = append(errs, err)
		}
	}
	if !slices.Contains(IPProviders, c.Geocoder.IPProvider) {
		errs = append(errs, fmt.Errorf("invalid IP provider: %w: %q", geocode.ErrUnknownProvider,
			c.Geocoder.IPProvider))
	}
	if c.Geocoder.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: invalid geocoder timeout: %s", geo.ErrConfiguration, c.Geocoder.Timeout))
	}
	if c.Geocoder.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: invalid rate limit: %f", geo.ErrConfiguration, c.Geocoder.RateLimit))
	}
	if c.Geocoder.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: invalid concurrency: %d", geo.ErrConfiguration, c.Geocoder.Concurrency))
	}
	if err = errors.Join(errs...); err != nil {
		return err
	}

	if c.Locale == "" {
		c.Locale = getLocale()
	}
	return nil
}

// Language returns the configured locale as language tag.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// DistanceUnits returns the validated distance units.
func (c *Config) DistanceUnits() geo.Units {
	return geo.Units(c.Distance.Units)
}

// DistanceFormula returns the validated distance formula.
func (c *Config) DistanceFormula() geo.Formula {
	return geo.Formula(c.Distance.Formula)
}

func (c *Config) requireAPIKey(name string) error {
	var key string
	switch name {
	case ProviderGoogle:
		key = c.Providers.Google.APIKey
	case ProviderOpenCage:
		key = c.Providers.OpenCage.APIKey
	case ProviderGeocodeEarth:
		key = c.Providers.GeocodeEarth.APIKey
	default:
		return nil
	}
	if key == "" {
		return fmt.Errorf("%w for provider %q", ErrMissingAPIKey, name)
	}
	return nil
}

// getLocale detects the locale of the environment and falls back to English.
func getLocale() string {
	tag, err := locale.Detect()
	if err != nil || tag == language.Und {
		return language.English.String()
	}
	return tag.String()
}
