// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service wires the configured geocoding providers into a ready to use lookup
// and distance service.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/geocode"
	"github.com/wneessen/geokit/internal/config"
	"github.com/wneessen/geokit/internal/http"
	"github.com/wneessen/geokit/internal/logger"
)

type Service struct {
	config   *config.Config
	logger   *logger.Logger
	http     geocode.HTTPClient
	clock    clockwork.Clock
	metrics  *geocode.Metrics
	registry *geocode.Registry
	caches   []*geocode.Cache
	workers  int

	address  geocode.Geocoder
	ip       geocode.Geocoder
	resolver geocode.Resolver
}

// Option configures a Service.
type Option func(*Service)

// WithHTTPClient replaces the HTTP client the providers use.
func WithHTTPClient(client geocode.HTTPClient) Option {
	return func(s *Service) {
		s.http = client
	}
}

// WithClock replaces the clock of the result caches.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithMetrics enables Prometheus instrumentation of every provider, registered on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Service) {
		metrics, err := geocode.NewMetrics(reg)
		if err != nil {
			s.logger.Error("failed to register geocoding metrics", logger.Err(err))
			return
		}
		s.metrics = metrics
	}
}

func New(conf *config.Config, log *logger.Logger, opts ...Option) (*Service, error) {
	service := &Service{
		config:   conf,
		logger:   log,
		clock:    clockwork.NewRealClock(),
		registry: geocode.NewRegistry(),
		workers:  max(1, conf.Geocoder.Concurrency),
	}
	for _, opt := range opts {
		opt(service)
	}
	if service.http == nil {
		service.http = http.New(log)
	}

	names := append([]string{}, conf.Geocoder.Order...)
	names = append(names, conf.Geocoder.IPProvider)
	for _, name := range names {
		if _, ok := service.registry.Lookup(name); ok {
			continue
		}
		coder, err := service.newProvider(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create geocoding provider: %w", err)
		}
		service.registry.Register(coder)
	}

	chain, err := service.registry.Select(conf.Geocoder.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to select geocoding providers: %w", err)
	}
	failover, err := geocode.NewFailover(log.Logger, chain...)
	if err != nil {
		return nil, fmt.Errorf("failed to create failover geocoder: %w", err)
	}
	ipCoder, ok := service.registry.Lookup(conf.Geocoder.IPProvider)
	if !ok {
		return nil, fmt.Errorf("%w: %q", geocode.ErrUnknownProvider, conf.Geocoder.IPProvider)
	}

	service.address = service.cached(failover)
	service.ip = service.cached(ipCoder)
	service.resolver = geocode.Resolver{Addresses: service.address, IP: service.ip}
	log.Debug("geocoding service initialized", slog.String("geocoder", failover.Name()),
		slog.String("ip_provider", ipCoder.Name()))

	return service, nil
}

// Geocoder returns the address geocoder chain.
func (s *Service) Geocoder() geocode.Geocoder {
	return s.address
}

// Geocode looks up a street address through the configured provider order.
func (s *Service) Geocode(ctx context.Context, address string) geo.Location {
	return s.address.Geocode(ctx, address)
}

// Locate looks up an IP address with the configured IP provider.
func (s *Service) Locate(ctx context.Context, ip string) geo.Location {
	return s.ip.Geocode(ctx, ip)
}

// Resolve classifies origin as point, IP or address and looks it up.
func (s *Service) Resolve(ctx context.Context, origin string) (geo.Location, error) {
	return s.resolver.Lookup(ctx, geocode.FromString(origin))
}

// Measurement is the result of a distance calculation between two resolved origins.
type Measurement struct {
	From     geo.Location
	To       geo.Location
	Distance float64
	Units    geo.Units
	Formula  geo.Formula
}

// Distance resolves both origins and returns the distance between them. Empty units or
// formula select the configured defaults.
func (s *Service) Distance(ctx context.Context, from, to string, units geo.Units, formula geo.Formula) (Measurement, error) {
	units, formula = s.defaults(units, formula)
	measurement := Measurement{Units: units, Formula: formula}
	var err error
	if measurement.From, err = s.Resolve(ctx, from); err != nil {
		return measurement, err
	}
	if measurement.To, err = s.Resolve(ctx, to); err != nil {
		return measurement, err
	}
	measurement.Distance, err = geo.DistanceBetween(measurement.From.Point, measurement.To.Point, units, formula)
	return measurement, err
}

// RankRequest describes a ranking of candidates by their distance from an origin.
type RankRequest struct {
	Origin     string
	Candidates []string
	// Radius drops candidates farther away than Radius if positive
	Radius  float64
	Units   geo.Units
	Formula geo.Formula
	// Progress is called once per resolved candidate, possibly concurrently
	Progress func()
}

// Rank resolves origin and candidates and returns the candidates ordered by distance.
func (s *Service) Rank(ctx context.Context, req RankRequest) ([]geo.Ranked[geo.Location], error) {
	units, formula := s.defaults(req.Units, req.Formula)
	center, err := s.resolver.Resolve(ctx, geocode.FromString(req.Origin))
	if err != nil {
		return nil, err
	}
	locations, err := s.ResolveAll(ctx, req.Candidates, req.Progress)
	if err != nil {
		return nil, err
	}

	if req.Radius > 0 {
		return geo.Within(center, locations, req.Radius, units, formula)
	}
	return geo.Nearest(center, locations, units, formula)
}

// ResolveAll resolves origins concurrently and returns the locations in input order.
// Locations without a provider supplied address carry the origin as full address.
// The first failed resolution cancels the remaining lookups.
func (s *Service) ResolveAll(ctx context.Context, origins []string, progress func()) ([]geo.Location, error) {
	locations := make([]geo.Location, len(origins))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)

	for i, origin := range origins {
		group.Go(func() error {
			location, err := s.resolver.Lookup(groupCtx, geocode.FromString(origin))
			if err != nil {
				return err
			}
			if location.FullAddress() == "" {
				location.SetFullAddress(origin)
			}
			locations[i] = location
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return locations, nil
}

// Prune removes expired entries from all result caches.
func (s *Service) Prune() int {
	removed := 0
	for _, cache := range s.caches {
		removed += cache.Prune()
	}
	if removed > 0 {
		s.logger.Debug("pruned geocoding cache", slog.Int("removed", removed))
	}
	return removed
}

func (s *Service) defaults(units geo.Units, formula geo.Formula) (geo.Units, geo.Formula) {
	if units == "" {
		units = s.config.DistanceUnits()
	}
	if formula == "" {
		formula = s.config.DistanceFormula()
	}
	return units, formula
}
