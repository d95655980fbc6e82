// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"log/slog"
	"time"

	"golang.org/x/text/language"
)

// DefaultTimeout is the per request timeout a provider uses unless configured otherwise.
const DefaultTimeout = time.Second * 10

// Settings holds the configuration shared by all HTTP based providers.
type Settings struct {
	Endpoint string
	Timeout  time.Duration
	Language language.Tag
	Logger   *slog.Logger
}

// Option configures Settings.
type Option func(*Settings)

// NewSettings returns the Settings for a provider with the given default endpoint
// after applying opts.
func NewSettings(endpoint string, opts ...Option) Settings {
	settings := Settings{
		Endpoint: endpoint,
		Timeout:  DefaultTimeout,
		Language: language.English,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}
	if settings.Logger == nil {
		settings.Logger = slog.New(slog.DiscardHandler)
	}
	return settings
}

// WithEndpoint overrides the provider's API endpoint. An empty endpoint is ignored.
func WithEndpoint(endpoint string) Option {
	return func(s *Settings) {
		if endpoint != "" {
			s.Endpoint = endpoint
		}
	}
}

// WithTimeout sets the per request timeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Settings) {
		if timeout > 0 {
			s.Timeout = timeout
		}
	}
}

// WithLanguage sets the preferred result language for providers that support it.
func WithLanguage(lang language.Tag) Option {
	return func(s *Settings) {
		s.Language = lang
	}
}

// WithLogger sets the logger a provider reports to.
func WithLogger(log *slog.Logger) Option {
	return func(s *Settings) {
		s.Logger = log
	}
}
