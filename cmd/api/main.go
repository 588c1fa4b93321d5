package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"scouthook/internal/config"
	"scouthook/internal/db"
	httpSrv "scouthook/internal/http"
	"scouthook/internal/migrations"
	"scouthook/internal/sheet"
	"scouthook/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// Embedded migrations, idempotent on every startup.
	if err := migrations.Run(cfg.DatabaseURL); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}

	dbase := db.MustOpen(cfg.DatabaseURL)
	photos, err := storage.New(context.Background(), cfg.S3)
	if err != nil {
		logger.Fatal("photo store", zap.Error(err))
	}

	srv := httpSrv.NewServer(cfg, sheet.NewPostgres(dbase), photos, logger)
	logger.Info("scouting webhook listening", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
