package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/straitgame/relay-backend/internal/catalog"
	"github.com/straitgame/relay-backend/internal/config"
	"github.com/straitgame/relay-backend/internal/game"
	"github.com/straitgame/relay-backend/internal/httpapi"
	"github.com/straitgame/relay-backend/internal/hub"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := loadCatalog(cfg)
	if err != nil {
		logger.Fatalf("catalog: %v", err)
	}
	logger.Infow("catalog loaded", "cards", len(cat.Numbers()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := hub.NewHub(ctx, logger)
	dispatcher := game.NewDispatcher(cat)
	handler := httpapi.SetupRoutes(h, cat, dispatcher, logger, cfg.SendBuffer)

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		h.Inbox() <- hub.ShutdownHub{}

		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalf("server: %v", err)
	}
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CardsFile != "" {
		return catalog.LoadFile(cfg.CardsFile)
	}
	return catalog.Load()
}
