// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/wneessen/geokit/geo"
)

// RateLimited is a Geocoder decorator that throttles requests to the wrapped provider.
type RateLimited struct {
	coder   Geocoder
	limiter *rate.Limiter
}

// RateLimit wraps coder so that at most rps lookups per second reach it. A burst
// smaller than one is raised to one.
func RateLimit(coder Geocoder, rps float64, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		coder:   coder,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Name implements Geocoder. The decorator is transparent and reports the wrapped name.
func (r *RateLimited) Name() string {
	return r.coder.Name()
}

// Geocode waits for the limiter and then asks the wrapped provider. A wait aborted by
// the context is a failed lookup.
func (r *RateLimited) Geocode(ctx context.Context, query string) geo.Location {
	if err := r.limiter.Wait(ctx); err != nil {
		return geo.Failure(r.coder.Name(), fmt.Errorf("rate limit wait aborted: %w", err))
	}
	return r.coder.Geocode(ctx, query)
}
