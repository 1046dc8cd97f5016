package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MKhiriev/go-list-keeper/internal/adapter"
	"github.com/MKhiriev/go-list-keeper/internal/config"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/render"
	"github.com/MKhiriev/go-list-keeper/internal/store"
	"github.com/MKhiriev/go-list-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error getting configs:", err)
		os.Exit(1)
	}

	dataDir := filepath.Dir(cfg.Storage.CacheDSN)
	log := logger.NewClientLogger("go-list-client", filepath.Join(dataDir, "list-keeper-client.log"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open response cache")
	}
	cache := store.NewResponseCache(db, cfg.Storage.CacheTTL)
	defer cache.Close()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	cli := &commands{
		server:    adapter.NewCachedAdapter(serverAdapter, cache, log),
		theme:     render.DefaultTheme(),
		out:       os.Stdout,
		tokenFile: filepath.Join(dataDir, ".list-keeper-token"),
		baseURL:   cfg.Adapter.BaseURL,
		build: models.AppInfo{
			Version:     buildVersion,
			BuildDate:   buildDate,
			BuildCommit: buildCommit,
		},
	}

	if err = cli.run(ctx, flag.Args()); err != nil {
		log.Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, cli.theme.Error(err))
		stop()
		os.Exit(1)
	}
}
