// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/internal/logger"
)

// Failover tries an ordered list of providers one after another and answers with the
// first successful Location.
type Failover struct {
	providers []Geocoder
	log       *slog.Logger
	name      string
}

// NewFailover returns a Failover that consults providers in the given order. A nil
// logger discards all output.
func NewFailover(log *slog.Logger, providers ...Geocoder) (*Failover, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	names := make([]string, 0, len(providers))
	for i, provider := range providers {
		if provider == nil {
			return nil, fmt.Errorf("%w: provider at position %d is nil", ErrNoProviders, i)
		}
		names = append(names, provider.Name())
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Failover{
		providers: append([]Geocoder(nil), providers...),
		log:       log,
		name:      "failover(" + strings.Join(names, ",") + ")",
	}, nil
}

// Name implements Geocoder.
func (f *Failover) Name() string {
	return f.name
}

// Providers returns the providers in the order they are consulted.
func (f *Failover) Providers() []Geocoder {
	return append([]Geocoder(nil), f.providers...)
}

// Geocode asks each provider in order and returns the first successful Location. If
// every provider fails, the failure of the last provider is returned. A cancelled
// context stops the chain before the next provider is asked.
func (f *Failover) Geocode(ctx context.Context, query string) geo.Location {
	var last geo.Location
	asked := 0
	for _, provider := range f.providers {
		if err := ctx.Err(); err != nil {
			if asked == 0 {
				return geo.Failure(f.name, err)
			}
			f.log.Debug("geocoding chain aborted", slog.Int("asked", asked), logger.Err(err))
			return last
		}

		location := provider.Geocode(ctx, query)
		asked++
		if location.Success {
			return location
		}
		f.log.Debug("geocoding provider failed", slog.String("provider", provider.Name()),
			logger.Err(location.Err))
		last = location
	}
	return last
}
