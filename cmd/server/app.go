package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iniside/velesarc-craft/internal/assets"
	"github.com/iniside/velesarc-craft/internal/orchestrators/craft"
	"github.com/iniside/velesarc-craft/internal/pkg/clock"
	"github.com/iniside/velesarc-craft/internal/pkg/idgen"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
	redisclient "github.com/iniside/velesarc-craft/internal/redis"
	assetsrepo "github.com/iniside/velesarc-craft/internal/repositories/assets"
	craftqueue "github.com/iniside/velesarc-craft/internal/repositories/craft_queue"
	"github.com/iniside/velesarc-craft/internal/repositories/stations"
)

var (
	logLevel  string
	logFormat string

	assetsDir     string
	sqlitePath    string
	assetCacheTTL time.Duration
	redisAddr     string
	seed          uint64
)

// addDataFlags registers the flags that select where assets and state live
func addDataFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&assetsDir, "assets-dir", "data", "Directory of JSON data assets")
	cmd.Flags().StringVar(&sqlitePath, "sqlite-path", "", "SQLite asset database; replaces --assets-dir when set")
	cmd.Flags().DurationVar(&assetCacheTTL, "asset-cache-ttl", 0, "Evict decoded assets after this long (0 keeps them)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", redisclient.MemoryAddr,
		`Redis address, comma separated for a cluster, or "memory" for an embedded server`)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 uses the dice roller)")
}

func setupLogging(_ *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(logFormat) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format %q", logFormat)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// app holds the wired components shared by the server and the offline tools
type app struct {
	registry *assets.Registry
	craft    craft.Service
	cleanup  []func()
}

func (a *app) Close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
}

func openAssetStore(ctx context.Context) (assetsrepo.Repository, func(), error) {
	if sqlitePath != "" {
		store, closeDB, err := assetsrepo.NewSQLiteRepository(ctx, &assetsrepo.SQLiteConfig{
			Path:  sqlitePath,
			Clock: clock.New(),
		})
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Using sqlite asset store", "sqlite_path", sqlitePath)
		return store, func() {
			if err := closeDB(); err != nil {
				slog.Warn("Failed to close asset database", "error", err)
			}
		}, nil
	}

	store, err := assetsrepo.NewFilesystemRepository(&assetsrepo.FilesystemConfig{Root: assetsDir})
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Using asset directory", "assets_dir", assetsDir)
	return store, func() {}, nil
}

func newApp(ctx context.Context) (*app, error) {
	a := &app{}

	store, closeStore, err := openAssetStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset store: %w", err)
	}
	a.cleanup = append(a.cleanup, closeStore)

	a.registry, err = assets.NewRegistry(&assets.Config{Store: store, CacheTTL: assetCacheTTL})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create asset registry: %w", err)
	}

	client, closeRedis, err := redisclient.Open(redisAddr, &redisclient.Options{})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open redis: %w", err)
	}
	a.cleanup = append(a.cleanup, closeRedis)
	if err := client.Ping(ctx).Err(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", redisAddr, err)
	}

	queueRepo, err := craftqueue.NewRedis(&craftqueue.RedisConfig{Client: client})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create queue repository: %w", err)
	}
	stationRepo, err := stations.NewRedis(&stations.RedisConfig{Client: client})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create station repository: %w", err)
	}

	var random rng.Source
	if seed != 0 {
		random = rng.NewSeeded(seed)
	}

	a.craft, err = craft.NewOrchestrator(&craft.Config{
		Assets:      a.registry,
		QueueRepo:   queueRepo,
		StationRepo: stationRepo,
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID(""),
		Random:      random,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create craft orchestrator: %w", err)
	}

	return a, nil
}
