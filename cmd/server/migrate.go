package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"annals/internal/migrations"
)

func migrateCmd(opts *globalOptions) *cli.Command {
	cmd := cli.Command{
		Name:  "migrate",
		Usage: "apply pending schema migrations and report the schema version",
		Flags: databaseFlags(),
	}

	cmd.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c, opts)
		if err != nil {
			return err
		}

		// Opening a store applies pending migrations.
		repo, dialect, err := openStore(c.Context, cfg.Database)
		if err != nil {
			return err
		}
		defer repo.Close()

		v, err := migrations.Version(c.Context, repo.DB(), dialect)
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		n, err := repo.Count(c.Context)
		if err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer, "driver: %s\nschema version: %d\nentries: %d\n", cfg.Database.Driver, v, n)
		return nil
	}
	return &cmd
}
