package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"annals/internal/config"
	"annals/internal/logging"
	"annals/internal/version"
)

// globalOptions are shared by every command
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	// Variables from .env must be visible before flags read their EnvVars.
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := &globalOptions{}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp()
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "%v\n%s", c.App.Name, version.BuildInfo())
	}
	app.Name = "annals"
	app.Usage = "historical entry service"
	app.Version = version.Version()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to the YAML config file",
			EnvVars:     []string{config.EnvConfigPath},
			Destination: &opts.configPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level ([trace, debug, info, warn, error])",
			EnvVars:     []string{"LOG_LEVEL"},
			Value:       config.DefaultLogLevel,
			Destination: &opts.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format ([auto, human, json])",
			EnvVars:     []string{"LOG_FORMAT"},
			Value:       config.DefaultLogFormat,
			Destination: &opts.logFormat,
		},
	}

	app.Before = func(c *cli.Context) error {
		return logging.Setup(opts.logLevel, opts.logFormat)
	}
	app.Commands = []*cli.Command{
		serveCmd(opts),
		migrateCmd(opts),
		importCmd(opts),
		exportCmd(opts),
		initConfigCmd(),
	}

	err := app.RunContext(ctx, os.Args)
	if err != nil && err != context.Canceled {
		log.Error().Stack().Err(err).Msg("error while running annals")
		os.Exit(1)
	}
}

// loadConfig reads the config file and lets flags and environment override it
func loadConfig(c *cli.Context, opts *globalOptions) (*config.Config, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if opts.configPath != "" {
		cfg, path, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = opts.logFormat
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}

	applyDatabaseFlags(c, cfg)
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if path != "" {
		log.Info().Str("path", path).Msg("config loaded")
	}
	log.Debug().Str("config", cfg.Summary()).Msg("effective configuration")
	return cfg, nil
}
