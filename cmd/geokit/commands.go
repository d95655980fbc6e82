// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wneessen/geokit/geo"
	"github.com/wneessen/geokit/geocode"
	"github.com/wneessen/geokit/internal/service"
)

func newGeocodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "geocode <address>",
		Short: "Look up the coordinates of a street address",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := a.serv.Geocode(cmd.Context(), strings.Join(args, " "))
			if !location.Success {
				return lookupError("failed to geocode address", location)
			}
			return a.printLocation(cmd, location)
		},
	}
}

func newLocateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locate [ip]",
		Short: "Look up the location of an IP address",
		Long:  "Look up the location of an IP address. Without an argument the IP provider locates the caller, if it supports that.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ip := ""
			if len(args) > 0 {
				ip = args[0]
			}
			location := a.serv.Locate(cmd.Context(), ip)
			if !location.Success {
				return lookupError("failed to locate IP address", location)
			}
			return a.printLocation(cmd, location)
		},
	}
}

// lookupError wraps the failure of an unsuccessful lookup. A failure without an error
// is reported as geocode.ErrNoResult.
func lookupError(msg string, location geo.Location) error {
	err := location.Err
	if err == nil {
		err = geocode.ErrNoResult
	}
	return fmt.Errorf("%s: %w", msg, err)
}

type distanceFlags struct {
	units   string
	formula string
}

func (f *distanceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.units, "units", "u", "", "distance units: miles or kilometers (default from config)")
	cmd.Flags().StringVarP(&f.formula, "formula", "f", "", "distance formula: sphere or flat (default from config)")
}

func (f *distanceFlags) parse() (geo.Units, geo.Formula, error) {
	var units geo.Units
	var formula geo.Formula
	var err error
	if f.units != "" {
		if units, err = geo.ParseUnits(f.units); err != nil {
			return "", "", err
		}
	}
	if f.formula != "" {
		if formula, err = geo.ParseFormula(f.formula); err != nil {
			return "", "", err
		}
	}
	return units, formula, nil
}

func newDistanceCmd(a *app) *cobra.Command {
	flags := new(distanceFlags)
	cmd := &cobra.Command{
		Use:   "distance <from> <to>",
		Short: "Calculate the distance between two origins",
		Long:  "Calculate the distance between two origins. An origin is a \"lat,lng\" pair, an IPv4 address or a street address.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			units, formula, err := flags.parse()
			if err != nil {
				return err
			}
			measurement, err := a.serv.Distance(cmd.Context(), args[0], args[1], units, formula)
			if err != nil {
				return err
			}
			return a.printDistance(cmd, args[0], args[1], measurement)
		},
	}
	flags.register(cmd)
	return cmd
}

func newRankCmd(a *app) *cobra.Command {
	flags := new(distanceFlags)
	var within float64
	cmd := &cobra.Command{
		Use:   "rank <origin> <candidate>...",
		Short: "Order candidates by their distance from an origin",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			units, formula, err := flags.parse()
			if err != nil {
				return err
			}
			if within < 0 {
				return fmt.Errorf("%w: radius must not be negative", geo.ErrConfiguration)
			}
			bar := newProgressBar(len(args)-1)
			ranked, err := a.serv.Rank(cmd.Context(), service.RankRequest{
				Origin:     args[0],
				Candidates: args[1:],
				Radius:     within,
				Units:      units,
				Formula:    formula,
				Progress:   bar.add,
			})
			bar.finish()
			if err != nil {
				return err
			}
			if units == "" {
				units = a.conf.DistanceUnits()
			}
			return a.printRanked(cmd, ranked, units)
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64VarP(&within, "within", "w", 0, "only list candidates within this distance")
	return cmd
}
