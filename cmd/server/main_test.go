package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"annals/internal/codec"
	"annals/internal/config"
	"annals/internal/domain"
)

func newTestApp(out *bytes.Buffer, cmds ...*cli.Command) *cli.App {
	return &cli.App{
		Name:     "annals",
		Writer:   out,
		Commands: cmds,
	}
}

func TestInitConfig(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "etc", "annals.yaml")

	app := newTestApp(&out, initConfigCmd())
	err := app.Run([]string{"annals", "init-config", "--file", path,
		"--db-driver", "postgres", "--database-url", "postgres://localhost/annals"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), path)

	cfg, _, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/annals", cfg.Database.DSN)
	assert.Equal(t, config.DefaultAddr, cfg.Server.Addr)

	// An existing file is kept unless forced.
	err = newTestApp(&out, initConfigCmd()).Run([]string{"annals", "init-config", "--file", path})
	assert.Error(t, err)

	err = newTestApp(&out, initConfigCmd()).Run([]string{"annals", "init-config", "--file", path, "--force"})
	require.NoError(t, err)
	cfg, _, err = config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, config.DefaultDBPath, cfg.Database.Path)
}

func TestLoadConfigDriverFlagOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annals.yaml")
	data := "database:\n  driver: postgres\n  dsn: postgres://localhost/annals\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	opts := &globalOptions{configPath: path, logLevel: "info", logFormat: "json"}
	var got *config.Config
	check := &cli.Command{
		Name:  "check",
		Flags: databaseFlags(),
		Action: func(c *cli.Context) error {
			var err error
			got, err = loadConfig(c, opts)
			return err
		},
	}

	var out bytes.Buffer
	require.NoError(t, newTestApp(&out, check).Run([]string{"annals", "check", "--db-driver", "sqlite"}))
	require.NotNil(t, got)
	assert.Equal(t, config.DriverSQLite, got.Database.Driver)
	assert.Equal(t, config.DefaultDBPath, got.Database.Path)
}

func TestWriteExport(t *testing.T) {
	entries := []domain.Entry{
		{ID: 1, Name: "Treaty of Westphalia", Details: json.RawMessage(`{"year":1648}`)},
	}

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.json")
		require.NoError(t, writeExport(codec.NewJSONCodec(), entries, path, nil))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		inputs, err := codec.NewJSONCodec().Parse(f)
		require.NoError(t, err)
		require.Len(t, inputs, 1)
		assert.Equal(t, "Treaty of Westphalia", inputs[0].Name)
	})

	t.Run("stdout", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeExport(codec.NewYAMLCodec(), entries, "", &out))
		assert.Contains(t, out.String(), "year: 1648")
	})

	t.Run("full device", func(t *testing.T) {
		if _, err := os.Stat("/dev/full"); err != nil {
			t.Skip("/dev/full not available")
		}
		assert.Error(t, writeExport(codec.NewJSONCodec(), entries, "/dev/full", nil))
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "export.json")
		assert.Error(t, writeExport(codec.NewJSONCodec(), entries, path, nil))
	})
}
