package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	catalogapp "github.com/dwikikusuma/fruit-stand/internal/catalog/app"
	"github.com/dwikikusuma/fruit-stand/internal/catalog/infra/memory"
	"github.com/dwikikusuma/fruit-stand/internal/session"
	"github.com/dwikikusuma/fruit-stand/internal/storefront"
	"github.com/dwikikusuma/fruit-stand/pkg/config"
	"github.com/dwikikusuma/fruit-stand/pkg/logger"
	"github.com/dwikikusuma/fruit-stand/pkg/shutdown"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load(getenv("FRUITSTAND_CONFIG", "configs/config.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service:    "storefront",
		Env:        cfg.App.Env,
		Level:      cfg.Log.Level,
		AddSource:  true,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})

	ctx, cancel := shutdown.WithSignals(context.Background(), log)
	defer cancel()

	repo, err := loadCatalog(cfg.Catalog.SeedFile)
	if err != nil {
		log.Error("catalog load failed", slog.Any("err", err), slog.String("seed_file", cfg.Catalog.SeedFile))
		os.Exit(1)
	}

	term := storefront.NewTerminal(os.Stdout, log.With("component", "terminal"))
	sess := session.New(catalogapp.NewService(repo), term, log)

	if err := sess.Start(ctx); err != nil {
		log.Error("session start failed", slog.Any("err", err))
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// quit or EOF ends the session; cancel so the group unwinds.
		defer cancel()
		return term.Run(gctx, os.Stdin, sess)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("storefront stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("bye",
		slog.String("session_id", sess.ID),
		slog.String("ledger", sess.Ledger().String()),
	)
}

func loadCatalog(seedFile string) (*memory.ProductRepo, error) {
	if seedFile == "" {
		return memory.NewDefaultProductRepo()
	}
	return memory.NewProductRepoFromFile(seedFile)
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
