package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"annals/internal/codec"
	"annals/internal/domain"
	"annals/internal/service"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "document format ([json, yaml]); guessed from the file extension when unset",
	}
}

func chooseCodec(c *cli.Context, path string) (codec.Codec, error) {
	format := c.String("format")
	if format == "" {
		format = codec.FormatFromPath(path)
	}
	return codec.ByFormat(format)
}

func importCmd(opts *globalOptions) *cli.Command {
	cmd := cli.Command{
		Name:  "import",
		Usage: "create entries from a JSON or YAML document",
	}
	cmd.Flags = append([]cli.Flag{
		&cli.StringFlag{
			Name:     "file",
			Usage:    "document to import",
			Required: true,
		},
		formatFlag(),
	}, databaseFlags()...)

	cmd.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c, opts)
		if err != nil {
			return err
		}

		path := c.String("file")
		cd, err := chooseCodec(c, path)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		inputs, err := cd.Parse(f)
		if err != nil {
			return err
		}

		repo, _, err := openStore(c.Context, cfg.Database)
		if err != nil {
			return err
		}
		defer repo.Close()

		svc := service.NewEntryService(repo, nil)
		created, err := svc.Import(log.Logger.WithContext(c.Context), inputs)
		if err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer, "imported %d entries from %s\n", len(created), path)
		return nil
	}
	return &cmd
}

func exportCmd(opts *globalOptions) *cli.Command {
	cmd := cli.Command{
		Name:  "export",
		Usage: "write every entry to a JSON or YAML document",
	}
	cmd.Flags = append([]cli.Flag{
		&cli.StringFlag{
			Name:  "file",
			Usage: "destination file; stdout when unset",
		},
		formatFlag(),
	}, databaseFlags()...)

	cmd.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c, opts)
		if err != nil {
			return err
		}

		path := c.String("file")
		cd, err := chooseCodec(c, path)
		if err != nil {
			return err
		}

		repo, _, err := openStore(c.Context, cfg.Database)
		if err != nil {
			return err
		}
		defer repo.Close()

		entries, err := service.NewEntryService(repo, nil).Export(log.Logger.WithContext(c.Context))
		if err != nil {
			return err
		}

		if err := writeExport(cd, entries, path, c.App.Writer); err != nil {
			return err
		}

		if path != "" {
			log.Info().Int("count", len(entries)).Str("path", path).Msg("entries exported")
		}
		return nil
	}
	return &cmd
}

// writeExport writes entries to path, or to stdout when path is empty.
// The file is reported written only once Close has succeeded.
func writeExport(cd codec.Exporter, entries []domain.Entry, path string, stdout io.Writer) error {
	if path == "" {
		return cd.Export(entries, stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := cd.Export(entries, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
