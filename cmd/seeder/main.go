package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/smartprop/internal/config"
	dbRedis "github.com/kailas-cloud/smartprop/internal/db/redis"
	logpkg "github.com/kailas-cloud/smartprop/internal/logger"
	propertyrepo "github.com/kailas-cloud/smartprop/internal/repository/property"
	userrepo "github.com/kailas-cloud/smartprop/internal/repository/user"
	"github.com/kailas-cloud/smartprop/internal/version"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "seeder",
		Usage:   "Load users and property listings into the smartprop store",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Config environment (reads config/<env>.yaml)",
				EnvVars: []string{"ENV"},
				Value:   "local",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "load",
				Usage:  "Write every document in a seed file to the store",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON file of the form {\"users\":{id:{...}},\"properties\":{id:{...}}}",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Validate the seed file without writing",
					},
				},
			},
		},
	}
}

func loadCommand(c *cli.Context) error {
	f, err := os.Open(filepath.Clean(c.String("file")))
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := parseSeed(f)
	if err != nil {
		return err
	}
	if c.Bool("dry-run") {
		fmt.Fprintf(c.App.Writer, "seed file ok: %d users, %d properties\n", len(s.Users), len(s.Properties))
		return nil
	}

	env := c.String("env")
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return err
	}

	if err := userrepo.New(store, cfg.Storage.KeyPrefix, logger).Put(ctx, s.Users); err != nil {
		return fmt.Errorf("store users: %w", err)
	}
	if err := propertyrepo.New(store, cfg.Storage.KeyPrefix, logger).Put(ctx, s.Properties); err != nil {
		return fmt.Errorf("store properties: %w", err)
	}

	logger.Info("Seed loaded",
		zap.Int("users", len(s.Users)),
		zap.Int("properties", len(s.Properties)),
		zap.String("key_prefix", cfg.Storage.KeyPrefix),
	)
	return nil
}
