package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"annals/internal/config"
)

func initConfigCmd() *cli.Command {
	cmd := cli.Command{
		Name:  "init-config",
		Usage: "write a config file with default settings",
	}
	cmd.Flags = append([]cli.Flag{
		&cli.StringFlag{
			Name:  "file",
			Usage: "destination path",
			Value: config.ConfigFileName,
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "overwrite an existing file",
		},
		&cli.StringFlag{
			Name:  "addr",
			Usage: "HTTP listen address",
		},
	}, databaseFlags()...)

	cmd.Action = func(c *cli.Context) error {
		path := c.String("file")
		if _, err := os.Stat(path); err == nil && !c.Bool("force") {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}

		cfg := config.DefaultConfig()
		applyDatabaseFlags(c, cfg)
		if c.IsSet("addr") {
			cfg.Server.Addr = c.String("addr")
		}
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Save creates missing parent directories.
		if err := cfg.Save(path); err != nil {
			return err
		}

		log.Info().Str("path", path).Msg("config written")
		fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
		return nil
	}
	return &cmd
}
