package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Bombastion/taproom-offering-engine/configs"
	"github.com/Bombastion/taproom-offering-engine/repository"
	"github.com/Bombastion/taproom-offering-engine/routes"
	"github.com/Bombastion/taproom-offering-engine/ws"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log, err := configs.NewLogger(cfg)
	if err != nil {
		logrus.Fatalf("configure logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := newProvider(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("open data provider")
	}

	hub := ws.NewMenuHub(log)
	go hub.Run()
	defer hub.Close()

	// HTTP
	if cfg.LogLevel != "debug" && cfg.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := routes.RegisterRoutes(r, routes.Deps{Config: cfg, Repo: repo, Hub: hub, Log: log}); err != nil {
		log.WithError(err).Fatal("register routes")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "provider": cfg.DataProvider}).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	case <-ctx.Done():
		log.Info("shutting down")
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
			os.Exit(1)
		}
	}
}

func newProvider(ctx context.Context, cfg *configs.Config, log logrus.FieldLogger) (repository.DataProvider, error) {
	switch cfg.DataProvider {
	case configs.ProviderGorm:
		db, err := configs.OpenDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		p := repository.NewGormProvider(db, log)
		if err := p.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		if cfg.DBSeed {
			if err := configs.SeedFixtures(ctx, p, cfg.DataDir, log); err != nil {
				return nil, fmt.Errorf("seed: %w", err)
			}
		}
		return p, nil
	default:
		p, err := repository.NewLocalProviderFromDir(cfg.DataDir, log)
		if err != nil {
			return nil, err
		}
		log.WithField("dir", cfg.DataDir).Info("loaded fixtures into memory")
		return p, nil
	}
}
