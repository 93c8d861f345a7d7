package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/config"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/infra"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/router"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/service"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Seed the stock payment methods on first boot; idempotent afterwards.
	metodoRepo := repository.NewMetodoPagoRepository(db)
	if err := metodoRepo.SeedDefaults(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed payment methods")
	}

	// Worker pool keeps the daily dashboard cache warm after each sale.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ventaRepo := repository.NewVentaRepository(db)
	cisternaRepo := repository.NewCisternaRepository(db)
	tasaRepo := repository.NewTasaCambioRepository(db)
	reporteSvc := service.NewReporteService(ventaRepo, cisternaRepo, tasaRepo, rdb)
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, reporteSvc)

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("WTPsa backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
