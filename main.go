package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/xanderstrike/traktkit/lib/config"
	"github.com/xanderstrike/traktkit/lib/logging"
	"github.com/xanderstrike/traktkit/lib/server"
	"github.com/xanderstrike/traktkit/lib/store"
	"github.com/xanderstrike/traktkit/lib/trakt"
)

func main() {
	logger := logging.Init(config.LogLevel, config.LogFormat, os.Stderr)
	logger.Info().Msg("Started!")

	if config.TraktClientId == "" {
		logger.Fatal().Msg("TRAKT_ID is required")
	}

	storage, err := newStorage(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Cannot open storage")
	}

	client := trakt.New(config.TraktClientId,
		trakt.WithBaseURL(config.TraktURL),
		trakt.WithLogger(logger.With().Str("component", "trakt").Logger()),
	)
	srv := &http.Server{
		Addr:              config.Listen,
		Handler:           server.New(client, storage, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("listen", config.Listen).Msg("Serving")
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped")
	}
}

func newStorage(logger zerolog.Logger) (store.Store, error) {
	if config.PostgresqlUrl != "" {
		db, err := store.NewPostgresqlClient(config.PostgresqlUrl)
		if err != nil {
			return nil, err
		}
		postgres, err := store.NewPostgresqlStore(db)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("Using postgresql storage")
		return postgres, nil
	} else if config.RedisUrl != "" {
		client, err := store.NewRedisClientWithUrl(config.RedisUrl)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("Using redis storage")
		return store.NewRedisStore(client), nil
	} else if config.RedisUri != "" {
		client, err := store.NewRedisClient(config.RedisUri, config.RedisPassword)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("redis", config.RedisUri).Msg("Using redis storage")
		return store.NewRedisStore(client), nil
	}
	logger.Info().Str("path", config.DiskStorePath).Msg("Using disk storage")
	disk, err := store.NewDiskStore(config.DiskStorePath)
	if err != nil {
		return nil, err
	}
	return disk, nil
}
