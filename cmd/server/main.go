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

	"puissancen/config"
	"puissancen/game"
	"puissancen/party"
)

func main() {
	cfg, err := config.Load(".env", os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("configuration")
	}
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger := log.WithField("app", "puissancen")

	defaults := game.DefaultOptions()
	defaults.Width, defaults.WinLength = cfg.BoardWidth, cfg.WinLength
	reg := party.NewRegistry(defaults, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go sweep(ctx, reg, cfg.PartyTTL)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: party.NewServer(reg, logger),
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	logger.WithFields(log.Fields{"port": cfg.Port, "width": cfg.BoardWidth, "winLength": cfg.WinLength}).
		Infof("Serveur démarré sur : http://localhost:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("listen")
	}
}

// sweep purge régulièrement les parties abandonnées.
func sweep(ctx context.Context, reg *party.Registry, ttl time.Duration) {
	t := time.NewTicker(ttl / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			reg.Sweep(ttl)
		}
	}
}
