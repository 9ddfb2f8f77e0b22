// Command companyfetch fetches company profiles from the GraphQL API for a
// CSV of identifiers and exports the normalized records.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"companyfetch/internal/config"
	"companyfetch/internal/export"
	"companyfetch/internal/ids"
	"companyfetch/pkg/batch"
	"companyfetch/pkg/cache"
	"companyfetch/pkg/client"
	"companyfetch/pkg/logging"
	"companyfetch/pkg/query"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to YAML config")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "companyfetch: %v\n", err)
		os.Exit(1)
	}
}

// defaultConfigPath resolves the config path from COMPANYFETCH_CONFIG when
// the flag is not given.
func defaultConfigPath() string {
	if v := os.Getenv("COMPANYFETCH_CONFIG"); v != "" {
		return v
	}
	return "config.yaml"
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Pretty,
		Output: os.Stderr,
	})
	logger := logging.NewLogger("companyfetch")

	identifiers, err := ids.ReadCSV(cfg.Input.IDFile, cfg.Input.IDColumn)
	if err != nil {
		return err
	}
	logger.Info().
		Int("identifiers", len(identifiers)).
		Str("file", cfg.Input.IDFile).
		Msg("Loaded identifiers")

	fragments, err := query.Load(cfg.API.FragmentsPath)
	if err != nil {
		return err
	}
	queryDoc := query.Build(fragments, cfg.API.BindKey)

	executor, err := client.New(client.Config{
		BaseURL:      cfg.API.BaseURL,
		APIKey:       cfg.API.APIKey,
		APIKeyHeader: cfg.API.APIKeyHeader,
		Query:        queryDoc,
		BindKey:      client.BindKey(cfg.API.BindKey),
		Timeout:      cfg.API.Timeout(),
	})
	if err != nil {
		return err
	}

	fetcher, cleanup, err := buildFetcher(ctx, cfg, executor)
	if err != nil {
		return err
	}
	defer cleanup()

	outcomes, runErr := batch.RunBatches(ctx, identifiers, fetcher.Execute, cfg.Fetch.BatchSize, nil)
	if runErr != nil {
		logger.Warn().
			Err(runErr).
			Int("partial_results", len(outcomes)).
			Msg("Run interrupted; exporting partial results")
	}

	for _, out := range outcomes {
		if !out.Success() {
			logger.Warn().
				Str("id", out.Err.ID.String()).
				Str("kind", string(out.Err.Kind)).
				Str("message", out.Err.Message).
				Msg("Fetch failed")
		}
	}

	rows := export.Flatten(outcomes)
	logger.Info().
		Int("records", len(rows)).
		Int("failures", len(outcomes)-len(rows)).
		Msg("Fetch run finished")

	if cfg.Export.CSVPath != "" {
		if err := export.WriteCSV(cfg.Export.CSVPath, rows); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.Export.CSVPath).Msg("Wrote CSV export")
	}

	if cfg.Export.DatabaseDSN != "" {
		sink, err := export.NewPostgresSink(cfg.Export.DatabaseDSN, cfg.Export.Table)
		if err != nil {
			return err
		}
		defer sink.Close()

		if err := sink.EnsureTable(ctx); err != nil {
			return err
		}
		if err := sink.Save(ctx, rows); err != nil {
			return err
		}
		logger.Info().Str("table", cfg.Export.Table).Int("rows", len(rows)).Msg("Wrote database export")
	}

	return runErr
}

// buildFetcher wraps the executor with the Redis payload cache when one is
// configured. The returned cleanup closes the Redis connection.
func buildFetcher(ctx context.Context, cfg config.Config, executor *client.Executor) (client.Fetcher, func(), error) {
	if !cfg.Cache.Enabled() {
		return executor, func() {}, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Cache.RedisAddr, err)
	}

	manager := cache.NewManager(redisClient, cfg.Cache.TTL())
	caching := cache.NewCachingExecutor(executor, manager, cfg.API.BindKey)

	return caching, func() { redisClient.Close() }, nil
}
