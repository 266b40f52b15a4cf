package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/n0troot/WheresBenny/internal/app"
	"github.com/n0troot/WheresBenny/internal/config"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize app")
	}

	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	log.WithFields(log.Fields{
		"addr":       cfg.Addr(),
		"public_url": cfg.PublicBaseURL(),
	}).Info("wheresbenny started")

	<-ctx.Done() // wait for Ctrl+C

	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("graceful shutdown failed")
	}

	log.Info("wheresbenny stopped cleanly")
}
