package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"annals/internal/handler"
	"annals/internal/metrics"
	"annals/internal/service"
)

func serveCmd(opts *globalOptions) *cli.Command {
	cmd := cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
	}
	cmd.Flags = append([]cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Usage:   "HTTP listen address",
			EnvVars: []string{"ANNALS_ADDR"},
		},
	}, databaseFlags()...)

	cmd.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c, opts)
		if err != nil {
			return err
		}

		repo, _, err := openStore(c.Context, cfg.Database)
		if err != nil {
			return err
		}
		defer repo.Close()
		log.Info().Str("driver", cfg.Database.Driver).Msg("database opened")

		m := metrics.New()
		eventBus := service.NewEventBus()
		eventBus.Subscribe(m.ObserveEvent)
		eventBus.Subscribe(func(e service.Event) {
			log.Info().Str("event", string(e.Type)).Int64("entry_id", e.EntryID).Int("count", e.Count).Msg("entry changed")
		})

		svc := service.NewEntryService(repo, eventBus)
		svc.SetObserver(m)
		m.RegisterEntryGauge(svc)

		server := &http.Server{
			Addr: cfg.Server.Addr,
			Handler: handler.NewRouter(handler.RouterConfig{
				Service:        svc,
				Observer:       m,
				MetricsHandler: m.Handler(),
				AllowedOrigins: cfg.Server.AllowedOrigins,
			}),
			ReadTimeout:  cfg.Server.ReadTimeout.Duration(),
			WriteTimeout: cfg.Server.WriteTimeout.Duration(),
			IdleTimeout:  cfg.Server.IdleTimeout.Duration(),
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", cfg.Server.Addr).Msg("server listening")
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-c.Context.Done():
		}

		log.Info().Msg("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return err
		}

		log.Info().Msg("server stopped")
		return nil
	}
	return &cmd
}
