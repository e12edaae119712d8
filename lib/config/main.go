package config

import (
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const DefaultTraktURL = "https://api.trakt.tv"

var TraktClientId = getConfig("TRAKT_ID")
var TraktURL = getConfigDefault("TRAKT_API_URL", DefaultTraktURL)
var Listen = getConfigDefault("LISTEN", "0.0.0.0:8000")
var LogLevel = getConfigDefault("LOG_LEVEL", "info")
var LogFormat = getConfigDefault("LOG_FORMAT", "json")
var PostgresqlUrl = getConfig("POSTGRESQL_URL")
var RedisUrl = getConfig("REDIS_URL")
var RedisUri = getConfig("REDIS_URI")
var RedisPassword = getConfig("REDIS_PASSWORD")
var DiskStorePath = getConfigDefault("DISK_STORE_PATH", "keystore")

var dotenv sync.Once

func getConfigDefault(name, fallback string) string {
	if value := getConfig(name); value != "" {
		return value
	}
	return fallback
}

func getConfig(name string) string {
	// .env never overrides variables already set in the environment
	dotenv.Do(func() { _ = godotenv.Load() })

	if os.Getenv(name) != "" {
		return os.Getenv(name)
	} else if os.Getenv(name+"_FILE") != "" {
		file, err := os.ReadFile(os.Getenv(name + "_FILE"))

		if err != nil {
			panic(err)
		}

		return strings.TrimSpace(string(file))
	}

	return ""
}
