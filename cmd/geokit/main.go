// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the geokit command line tool.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wneessen/geokit/internal/config"
	"github.com/wneessen/geokit/internal/logger"
	"github.com/wneessen/geokit/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type app struct {
	configPath string
	envFile    string
	json       bool
	geojson    bool

	log  *logger.Logger
	conf *config.Config
	serv *service.Service
	opts []service.Option
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "geokit: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "geokit",
		Short:         "Geocode addresses and IPs and measure distances",
		Long:          "geokit resolves street addresses, IP addresses and coordinates through a chain of geocoding providers and calculates distances between them.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to the config file")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "load GEOKIT_* environment variables from a dotenv file")
	root.PersistentFlags().BoolVar(&a.json, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVar(&a.geojson, "geojson", false, "print results as GeoJSON")
	root.MarkFlagsMutuallyExclusive("json", "geojson")

	root.AddCommand(newGeocodeCmd(a), newLocateCmd(a), newDistanceCmd(a), newRankCmd(a))
	return root
}

// setup loads the configuration and creates the geocoding service.
func (a *app) setup() error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil {
			return fmt.Errorf("failed to load environment file: %w", err)
		}
	}

	conf, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.conf = conf
	a.log = logger.New(conf.LogLevel)

	a.serv, err = service.New(conf, a.log, a.opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize geokit service: %w", err)
	}
	a.log.Debug("geokit service initialized", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		conf, err := config.NewFromFile(filepath.Dir(a.configPath), filepath.Base(a.configPath))
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		return conf, nil
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		conf, err := config.NewFromFile(path, file)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		return conf, nil
	}
	return config.New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "geokit", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
